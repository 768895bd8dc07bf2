package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium/internal/astro"
)

var (
	testMoment = astro.NewMoment(1995, 8, 17, 14, 30, 0, 0)
	london     = astro.GeoLocation{Latitude: 51.5074, Longitude: -0.1278}
	delhi      = astro.GeoLocation{Latitude: 28.6139, Longitude: 77.209}
	tromso     = astro.GeoLocation{Latitude: 69.6492, Longitude: 18.9553}
)

func allSystems() []HouseSystem {
	return []HouseSystem{Placidus, Koch, WholeSign, Equal}
}

func TestCalculateHousesPartition(t *testing.T) {
	for _, system := range allSystems() {
		t.Run(string(system), func(t *testing.T) {
			h, err := CalculateHouses(testMoment, london, system, HouseOptions{})
			require.NoError(t, err)

			// The 12 cusps cover the circle exactly once.
			total := 0.0
			for i := 0; i < 12; i++ {
				span := astro.Forward(h.Cusps[i], h.Cusps[(i+1)%12])
				assert.Greater(t, span, 0.0, "cusp %d span", i+1)
				total += span
			}
			assert.InDelta(t, 360, total, 1e-6)

			// Every longitude is a member of exactly one cusp interval.
			for lon := 0.0; lon < 360; lon += 7.3 {
				count := 0
				for i := 0; i < 12; i++ {
					span := astro.Forward(h.Cusps[i], h.Cusps[(i+1)%12])
					if astro.Forward(h.Cusps[i], lon) < span {
						count++
					}
				}
				assert.Equal(t, 1, count, "%s: longitude %.1f", system, lon)
			}
		})
	}
}

func TestEqualHouses(t *testing.T) {
	h, err := CalculateHouses(testMoment, london, Equal, HouseOptions{})
	require.NoError(t, err)

	assert.InDelta(t, h.Ascendant, h.Cusps[0], 1e-9)
	for i := 1; i < 12; i++ {
		assert.InDelta(t, astro.Normalize(h.Ascendant+30*float64(i)), h.Cusps[i], 1e-9)
	}
}

func TestWholeSignHouses(t *testing.T) {
	h, err := CalculateHouses(testMoment, delhi, WholeSign, HouseOptions{})
	require.NoError(t, err)

	t.Run("first cusp opens the ascendant's sign", func(t *testing.T) {
		assert.InDelta(t, 0.0, math.Mod(h.Cusps[0], 30), 1e-9)
		assert.Equal(t, astro.SignOf(h.Ascendant), astro.SignOf(h.Cusps[0]))
	})

	t.Run("cusps advance one sign at a time", func(t *testing.T) {
		for i := 1; i < 12; i++ {
			assert.InDelta(t, 30, astro.Forward(h.Cusps[i-1], h.Cusps[i]), 1e-9)
		}
	})
}

func TestQuadrantAnchors(t *testing.T) {
	for _, system := range []HouseSystem{Placidus, Koch} {
		t.Run(string(system), func(t *testing.T) {
			h, err := CalculateHouses(testMoment, london, system, HouseOptions{})
			require.NoError(t, err)

			assert.InDelta(t, h.Ascendant, h.Cusps[0], 1e-6, "cusp 1 is the ascendant")
			assert.InDelta(t, h.MC, h.Cusps[9], 1e-6, "cusp 10 is the MC")

			// Opposite cusps are exact antipodes.
			for i := 0; i < 6; i++ {
				assert.InDelta(t, 180, astro.Forward(h.Cusps[i], h.Cusps[i+6]), 1e-6, "cusps %d/%d", i+1, i+7)
			}
		})
	}
}

func TestTimeBasedSystemsFailNearPoles(t *testing.T) {
	for _, system := range []HouseSystem{Placidus, Koch} {
		t.Run(string(system), func(t *testing.T) {
			_, err := CalculateHouses(testMoment, tromso, system, HouseOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, astro.ErrHouseSystemUndefined))
		})
	}
}

func TestPolarFallbackSystemsStillWork(t *testing.T) {
	for _, system := range []HouseSystem{Equal, WholeSign} {
		_, err := CalculateHouses(testMoment, tromso, system, HouseOptions{})
		assert.NoError(t, err, "%s must be defined at polar latitudes", system)
	}
}

func TestHousesRejectBadInput(t *testing.T) {
	_, err := CalculateHouses(testMoment, astro.GeoLocation{Latitude: 95}, Equal, HouseOptions{})
	assert.Error(t, err)

	_, err = CalculateHouses(testMoment, london, HouseSystem("campanus"), HouseOptions{})
	assert.Error(t, err)
}

func TestHouseOf(t *testing.T) {
	h := Houses{System: Equal}
	for i := range h.Cusps {
		h.Cusps[i] = astro.Normalize(350 + 30*float64(i))
	}

	assert.Equal(t, 1, h.HouseOf(350))
	assert.Equal(t, 1, h.HouseOf(5)) // wraps across 0°
	assert.Equal(t, 2, h.HouseOf(20))
	assert.Equal(t, 12, h.HouseOf(349.99))
}

func TestLocalSiderealTime(t *testing.T) {
	// GMST at J2000 noon is a textbook value.
	lst := localSiderealTime(astro.NewMoment(2000, 1, 1, 12, 0, 0, 0), 0)
	assert.InDelta(t, 280.46, lst, 0.01)

	// East longitude advances sidereal time.
	east := localSiderealTime(testMoment, 90)
	greenwich := localSiderealTime(testMoment, 0)
	assert.InDelta(t, 90, astro.Forward(greenwich, east), 1e-9)
}

func TestObliquity(t *testing.T) {
	eps := obliquity(astro.NewMoment(2000, 1, 1, 12, 0, 0, 0))
	assert.InDelta(t, 23.4393, eps, 1e-3)
}
