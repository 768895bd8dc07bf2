package ephemeris

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium/internal/astro"
)

var testMoments = []astro.Moment{
	astro.NewMoment(1950, 7, 1, 0, 0, 0, 0),
	astro.NewMoment(1987, 3, 21, 6, 45, 0, 0),
	astro.NewMoment(2000, 1, 1, 12, 0, 0, 0),
	astro.NewMoment(2024, 11, 30, 18, 30, 0, 0),
}

func TestAnalyticLongitudeNormalization(t *testing.T) {
	p := NewAnalytic()
	ctx := context.Background()

	for _, m := range testMoments {
		for _, body := range astro.ModernBodies {
			raw, err := p.Position(ctx, m, body)
			require.NoError(t, err, "%s at %v", body, m)
			assert.GreaterOrEqual(t, raw.Longitude, 0.0, "%s", body)
			assert.Less(t, raw.Longitude, 360.0, "%s", body)
		}
	}
}

func TestAnalyticSunMotion(t *testing.T) {
	p := NewAnalytic()
	m := astro.NewMoment(2000, 3, 20, 12, 0, 0, 0)

	raw, err := p.Position(context.Background(), m, astro.Sun)
	require.NoError(t, err)

	// Around the equinox the Sun sits at the end of Pisces / start of
	// Aries and moves just under 1°/day.
	assert.InDelta(t, 0.986, raw.Speed, 0.03)
	sep := astro.Separation(raw.Longitude, 0)
	assert.Less(t, sep, 1.5, "sun near 0° Aries at the 2000 equinox, got %.3f", raw.Longitude)
}

func TestAnalyticNodes(t *testing.T) {
	p := NewAnalytic()
	ctx := context.Background()
	m := testMoments[1]

	rahu, err := p.Position(ctx, m, astro.Rahu)
	require.NoError(t, err)
	ketu, err := p.Position(ctx, m, astro.Ketu)
	require.NoError(t, err)

	assert.InDelta(t, 180, astro.Separation(rahu.Longitude, ketu.Longitude), 1e-9)
	assert.Negative(t, rahu.Speed, "mean node regresses")
}

func TestAnalyticRangeGuard(t *testing.T) {
	p := NewAnalytic()
	ctx := context.Background()

	_, err := p.Position(ctx, astro.NewMoment(1500, 1, 1, 0, 0, 0, 0), astro.Sun)
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrEphemerisUnavailable))

	_, err = p.Position(ctx, astro.NewMoment(2300, 1, 1, 0, 0, 0, 0), astro.Mars)
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrEphemerisUnavailable))
}

func TestAnalyticUnknownBody(t *testing.T) {
	p := NewAnalytic()
	_, err := p.Position(context.Background(), testMoments[2], astro.Ascendant)
	require.Error(t, err)
	assert.True(t, errors.Is(err, astro.ErrEphemerisUnavailable))
}

func TestAnalyticCancelledContext(t *testing.T) {
	p := NewAnalytic()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Position(ctx, testMoments[2], astro.Sun)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAyanamsaValue(t *testing.T) {
	t.Run("lahiri near J2000", func(t *testing.T) {
		v, err := AyanamsaValue(AyanamsaLahiri, astro.NewMoment(2000, 1, 1, 12, 0, 0, 0))
		require.NoError(t, err)
		assert.InDelta(t, 23.854, v, 0.01)
	})

	t.Run("grows with time", func(t *testing.T) {
		early, err := AyanamsaValue(AyanamsaLahiri, astro.NewMoment(1950, 1, 1, 0, 0, 0, 0))
		require.NoError(t, err)
		late, err := AyanamsaValue(AyanamsaLahiri, astro.NewMoment(2020, 1, 1, 0, 0, 0, 0))
		require.NoError(t, err)
		assert.Greater(t, late, early)
		// ~50.3″/year over 70 years is close to one degree.
		assert.InDelta(t, 0.978, late-early, 0.01)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		_, err := AyanamsaValue("fagan", testMoments[0])
		assert.Error(t, err)
	})
}
