package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stellium/internal/aspects"
	"stellium/internal/chart"
	"stellium/internal/ephemeris"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "tropical", cfg.Zodiac.Mode)
	assert.Equal(t, "lahiri", cfg.Zodiac.Ayanamsa)
	assert.Equal(t, "placidus", cfg.Houses.System)
	assert.Equal(t, 1, cfg.Dasha.Depth)
	assert.Equal(t, 120.0, cfg.Dasha.HorizonYears)
	assert.Equal(t, 30, cfg.Ashtakavarga.StrongThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Aspects.IncludeMinors)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stellium.yaml")
	data := `
zodiac:
  mode: sidereal
  ayanamsa: raman
houses:
  system: whole_sign
aspects:
  include_minors: true
  orbs:
    conjunction: 10
dasha:
  depth: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sidereal", cfg.Zodiac.Mode)
	assert.Equal(t, "raman", cfg.Zodiac.Ayanamsa)
	assert.Equal(t, "whole_sign", cfg.Houses.System)
	assert.True(t, cfg.Aspects.IncludeMinors)
	assert.Equal(t, 10.0, cfg.Aspects.Orbs["conjunction"])
	assert.Equal(t, 2, cfg.Dasha.Depth)

	// Unset sections keep their defaults.
	assert.Equal(t, 30, cfg.Ashtakavarga.StrongThreshold)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zodiac: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "stellium.yaml")

	cfg := DefaultConfig()
	cfg.Zodiac.Mode = "sidereal"
	cfg.Yoga.IncludeWeak = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STELLIUM_ZODIAC", "sidereal")
	t.Setenv("STELLIUM_AYANAMSA", "krishnamurti")
	t.Setenv("STELLIUM_HOUSE_SYSTEM", "koch")
	t.Setenv("STELLIUM_DASHA_DEPTH", "0")
	t.Setenv("STELLIUM_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sidereal", cfg.Zodiac.Mode)
	assert.Equal(t, "krishnamurti", cfg.Zodiac.Ayanamsa)
	assert.Equal(t, "koch", cfg.Houses.System)
	assert.Equal(t, 0, cfg.Dasha.Depth)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrideIgnoresBadDepth(t *testing.T) {
	t.Setenv("STELLIUM_DASHA_DEPTH", "deep")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Dasha.Depth)
}

func TestOrbConfigConversion(t *testing.T) {
	t.Run("empty table falls back to the conventional orbs", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, aspects.DefaultOrbs(), cfg.OrbConfig())
	})

	t.Run("explicit table replaces the defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Aspects.Orbs = map[string]float64{"square": 5}
		orbs := cfg.OrbConfig()
		assert.Equal(t, 5.0, orbs[aspects.Square])
		assert.NotContains(t, orbs, aspects.Trine)
	})

	t.Run("minors extend whichever table is active", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Aspects.IncludeMinors = true
		orbs := cfg.OrbConfig()
		assert.Contains(t, orbs, aspects.Quincunx)
		assert.Equal(t, aspects.DefaultOrbs()[aspects.Square], orbs[aspects.Square])
	})
}

func TestBandsConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ashtakavarga.StrongThreshold = 35
	cfg.Ashtakavarga.ModerateThreshold = 0 // zero keeps the default

	b := cfg.Bands()
	assert.Equal(t, 35, b.Strong)
	assert.Equal(t, 20, b.Moderate)
}

func TestFrameConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zodiac.Mode = "sidereal"
	cfg.Zodiac.Ayanamsa = "raman"
	cfg.Houses.System = "equal"

	opts := cfg.PositionOptions()
	assert.Equal(t, chart.Sidereal, opts.Mode)
	assert.Equal(t, ephemeris.AyanamsaRaman, opts.Ayanamsa)
	assert.Equal(t, chart.Equal, cfg.HouseSystem())
}
