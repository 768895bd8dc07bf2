package yoga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium/internal/astro"
)

// chartWith builds a seven-planet chart from sign placements, every
// planet at the given degree within its sign.
func chartWith(degree float64, signs map[astro.Body]astro.Sign) map[astro.Body]astro.BodyPosition {
	// A quiet baseline: spread the planets so no accidental same-sign
	// contacts or attendant placements appear.
	base := map[astro.Body]astro.Sign{
		astro.Sun:     astro.Leo,
		astro.Moon:    astro.Scorpio,
		astro.Mercury: astro.Gemini,
		astro.Venus:   astro.Capricorn,
		astro.Mars:    astro.Pisces,
		astro.Jupiter: astro.Taurus,
		astro.Saturn:  astro.Virgo,
	}
	for b, s := range signs {
		base[b] = s
	}
	out := make(map[astro.Body]astro.BodyPosition, len(base))
	for b, s := range base {
		out[b] = astro.BodyPosition{Body: b, Longitude: float64(s)*30 + degree}
	}
	return out
}

func names(ys []Yoga) []string {
	var out []string
	for _, y := range ys {
		out = append(out, y.Name)
	}
	return out
}

func findYoga(t *testing.T, ys []Yoga, name string) Yoga {
	t.Helper()
	for _, y := range ys {
		if y.Name == name {
			return y
		}
	}
	t.Fatalf("yoga %q not found in %v", name, names(ys))
	return Yoga{}
}

func TestDignityOf(t *testing.T) {
	cases := []struct {
		body astro.Body
		lon  float64
		want Dignity
	}{
		{astro.Sun, 10, Exalted},        // 10° Aries
		{astro.Sun, 190, Debilitated},   // 10° Libra
		{astro.Sun, 130, OwnSign},       // Leo
		{astro.Sun, 75, Neutral},        // Gemini
		{astro.Mars, 298, Exalted},      // 28° Capricorn
		{astro.Mars, 220, OwnSign},      // Scorpio
		{astro.Jupiter, 95, Exalted},    // 5° Cancer
		{astro.Venus, 357, Exalted},     // 27° Pisces
		{astro.Saturn, 200, Exalted},    // 20° Libra
		{astro.Saturn, 15, Debilitated}, // Aries
		{astro.Rahu, 45, Neutral},       // no dignity table
	}
	for _, tc := range cases {
		got := DignityOf(astro.BodyPosition{Body: tc.body, Longitude: tc.lon})
		assert.Equal(t, tc.want, got, "%s at %.0f°", tc.body, tc.lon)
	}
}

func TestMahapurushaYogas(t *testing.T) {
	t.Run("exalted Mars in a kendra is Ruchaka", func(t *testing.T) {
		// Capricorn ascendant puts Mars in Capricorn in house 1.
		positions := chartWith(28, map[astro.Body]astro.Sign{astro.Mars: astro.Capricorn})
		found, err := Detect(positions, 270+5, Options{})
		require.NoError(t, err)

		y := findYoga(t, found, "Ruchaka")
		assert.Equal(t, "mahapurusha", y.Category)
		assert.Equal(t, []astro.Body{astro.Mars}, y.Bodies)
		assert.Equal(t, []int{1}, y.Houses)
		assert.Equal(t, Strong, y.Strength, "sitting on the exact exaltation degree")
	})

	t.Run("dignified planet outside a kendra does not qualify", func(t *testing.T) {
		// Same exalted Mars, but Aquarius ascendant makes Capricorn the
		// twelfth house.
		positions := chartWith(28, map[astro.Body]astro.Sign{astro.Mars: astro.Capricorn})
		found, err := Detect(positions, 300+5, Options{IncludeWeak: true})
		require.NoError(t, err)
		assert.NotContains(t, names(found), "Ruchaka")
	})

	t.Run("strength decays away from the exact degree", func(t *testing.T) {
		positions := chartWith(14, map[astro.Body]astro.Sign{astro.Saturn: astro.Libra})
		found, err := Detect(positions, 185, Options{})
		require.NoError(t, err)

		y := findYoga(t, found, "Sasa")
		assert.Equal(t, Moderate, y.Strength, "6° from deepest exaltation")
	})
}

func TestConjunctionYogas(t *testing.T) {
	t.Run("Budhaditya from a tight Sun-Mercury conjunction", func(t *testing.T) {
		positions := chartWith(10, map[astro.Body]astro.Sign{astro.Mercury: astro.Leo})
		found, err := Detect(positions, 95, Options{})
		require.NoError(t, err)

		y := findYoga(t, found, "Budhaditya")
		assert.Equal(t, "surya", y.Category)
		assert.Equal(t, Strong, y.Strength, "zero orb")
	})

	t.Run("Chandra-Mangala from Moon with Mars", func(t *testing.T) {
		positions := chartWith(10, map[astro.Body]astro.Sign{astro.Mars: astro.Scorpio})
		found, err := Detect(positions, 95, Options{})
		require.NoError(t, err)
		assert.Contains(t, names(found), "Chandra-Mangala")
	})
}

func TestGajakesari(t *testing.T) {
	// Jupiter in Taurus, Moon in Scorpio: the seventh sign from the
	// Moon, a kendra.
	positions := chartWith(10, nil)
	found, err := Detect(positions, 95, Options{})
	require.NoError(t, err)

	y := findYoga(t, found, "Gajakesari")
	assert.Equal(t, "chandra", y.Category)
	assert.Equal(t, Moderate, y.Strength, "Jupiter without dignity")
}

func TestAttendantYogas(t *testing.T) {
	t.Run("planet after the Moon forms Sunapha", func(t *testing.T) {
		positions := chartWith(10, map[astro.Body]astro.Sign{astro.Venus: astro.Sagittarius})
		found, err := Detect(positions, 95, Options{IncludeWeak: true})
		require.NoError(t, err)

		y := findYoga(t, found, "Sunapha")
		assert.Contains(t, y.Bodies, astro.Moon)
		assert.Contains(t, y.Bodies, astro.Venus)
	})

	t.Run("planets on both sides form Durudhara", func(t *testing.T) {
		positions := chartWith(10, map[astro.Body]astro.Sign{
			astro.Venus: astro.Sagittarius,
			astro.Mars:  astro.Libra,
		})
		found, err := Detect(positions, 95, Options{})
		require.NoError(t, err)
		assert.Contains(t, names(found), "Durudhara")
		assert.NotContains(t, names(found), "Sunapha")
	})

	t.Run("the Sun never counts as an attendant", func(t *testing.T) {
		positions := chartWith(10, map[astro.Body]astro.Sign{astro.Sun: astro.Sagittarius})
		found, err := Detect(positions, 95, Options{IncludeWeak: true})
		require.NoError(t, err)
		assert.NotContains(t, names(found), "Sunapha")
	})
}

func TestKemadruma(t *testing.T) {
	// Baseline chart: Moon in Scorpio with Libra and Sagittarius empty
	// and nothing conjunct the Moon.
	positions := chartWith(10, nil)
	found, err := Detect(positions, 95, Options{})
	require.NoError(t, err)

	y := findYoga(t, found, "Kemadruma")
	assert.Equal(t, "negative", y.Category)

	// A single attendant dissolves it.
	positions = chartWith(10, map[astro.Body]astro.Sign{astro.Venus: astro.Sagittarius})
	found, err = Detect(positions, 95, Options{IncludeWeak: true})
	require.NoError(t, err)
	assert.NotContains(t, names(found), "Kemadruma")
}

func TestRajaYoga(t *testing.T) {
	// Aries ascendant: Saturn rules the 10th (Capricorn), Jupiter the
	// 9th (Sagittarius). Conjoin them in Capricorn.
	positions := chartWith(10, map[astro.Body]astro.Sign{
		astro.Saturn:  astro.Capricorn,
		astro.Jupiter: astro.Capricorn,
	})
	found, err := Detect(positions, 5, Options{IncludeWeak: true})
	require.NoError(t, err)

	var raja []Yoga
	for _, y := range found {
		if y.Category == "raja" {
			raja = append(raja, y)
		}
	}
	require.NotEmpty(t, raja, "kendra lord with trikona lord must register")
	found9and10 := false
	for _, y := range raja {
		if len(y.Houses) >= 2 && y.Houses[0] == 9 && y.Houses[len(y.Houses)-1] == 10 {
			found9and10 = true
		}
	}
	assert.True(t, found9and10, "expected a 9th/10th lord combination, got %v", raja)
}

func TestRajaYogaSharedLord(t *testing.T) {
	// Cancer ascendant: the Moon rules house 1, which is both a kendra
	// and a trikona, so the Moon-Mars pair is reachable from either
	// group. Moon in Scorpio with Mars in Cancer is a mutual exchange;
	// it must come out as a single canonical record every time.
	positions := chartWith(10, map[astro.Body]astro.Sign{astro.Mars: astro.Cancer})
	first, err := Detect(positions, 95, Options{IncludeWeak: true})
	require.NoError(t, err)

	y := findYoga(t, first, "Raja (Moon-Mars)")
	assert.Equal(t, Strong, y.Strength, "mutual exchange")
	assert.Equal(t, []astro.Body{astro.Moon, astro.Mars}, y.Bodies)
	assert.Equal(t, []int{1, 5, 10}, y.Houses, "union of every house either lord rules")
	assert.NotContains(t, names(first), "Raja (Mars-Moon)")

	for i := 0; i < 50; i++ {
		again, err := Detect(positions, 95, Options{IncludeWeak: true})
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestDetectRequiresAllPlanets(t *testing.T) {
	positions := chartWith(10, nil)
	delete(positions, astro.Jupiter)

	_, err := Detect(positions, 0, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrIncompleteChartData))
}

func TestWeakSuppression(t *testing.T) {
	// A sloppy Sun-Mercury conjunction: Sun at 10° Leo, Mercury at 29°.
	positions := chartWith(10, map[astro.Body]astro.Sign{astro.Mercury: astro.Leo})
	positions[astro.Mercury] = astro.BodyPosition{Body: astro.Mercury, Longitude: float64(astro.Leo)*30 + 29}

	suppressed, err := Detect(positions, 95, Options{})
	require.NoError(t, err)
	assert.NotContains(t, names(suppressed), "Budhaditya")

	kept, err := Detect(positions, 95, Options{IncludeWeak: true})
	require.NoError(t, err)
	y := findYoga(t, kept, "Budhaditya")
	assert.Equal(t, Weak, y.Strength)
}

func TestDetectDeterministicOrder(t *testing.T) {
	positions := chartWith(10, nil)
	a, err := Detect(positions, 95, Options{IncludeWeak: true})
	require.NoError(t, err)
	b, err := Detect(positions, 95, Options{IncludeWeak: true})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
