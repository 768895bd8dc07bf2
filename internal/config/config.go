// Package config holds all stellium configuration: zodiac frame, house
// system, orb tables, and the knobs of the derived engines. Engine
// packages receive plain values from here and never read files
// themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"stellium/internal/ashtakavarga"
	"stellium/internal/aspects"
	"stellium/internal/chart"
	"stellium/internal/ephemeris"
)

// Config is the full engine configuration.
type Config struct {
	Zodiac       ZodiacConfig       `yaml:"zodiac"`
	Houses       HousesConfig       `yaml:"houses"`
	Aspects      AspectsConfig      `yaml:"aspects"`
	Dasha        DashaConfig        `yaml:"dasha"`
	Ashtakavarga AshtakavargaConfig `yaml:"ashtakavarga"`
	Yoga         YogaConfig         `yaml:"yoga"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ZodiacConfig selects the reference frame.
type ZodiacConfig struct {
	Mode     string `yaml:"mode"`     // tropical, sidereal
	Ayanamsa string `yaml:"ayanamsa"` // lahiri, raman, krishnamurti
}

// HousesConfig selects the house-division algorithm.
type HousesConfig struct {
	System string `yaml:"system"` // placidus, koch, whole_sign, equal
}

// AspectsConfig configures the aspect engine.
type AspectsConfig struct {
	// Orbs maps aspect names to orb tolerances in degrees. Empty means
	// the conventional major-aspect table.
	Orbs map[string]float64 `yaml:"orbs"`

	// IncludeMinors extends the orb table with the minor aspects.
	IncludeMinors bool `yaml:"include_minors"`

	// StelliumSpan is the maximum arc of a stellium, degrees.
	StelliumSpan float64 `yaml:"stellium_span"`

	// StelliumMin is the minimum stellium member count.
	StelliumMin int `yaml:"stellium_min"`
}

// DashaConfig bounds the Vimshottari tree.
type DashaConfig struct {
	Depth        int     `yaml:"depth"`         // 0, 1, or 2 sub-levels
	HorizonYears float64 `yaml:"horizon_years"` // 0 means the full cycle
}

// AshtakavargaConfig holds the transit score thresholds.
type AshtakavargaConfig struct {
	StrongThreshold   int `yaml:"strong_threshold"`
	ModerateThreshold int `yaml:"moderate_threshold"`
}

// YogaConfig controls yoga detection.
type YogaConfig struct {
	IncludeWeak bool `yaml:"include_weak"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the defaults: tropical placidus charts with
// major aspects, full-cycle mahadashas, classical score bands.
func DefaultConfig() *Config {
	return &Config{
		Zodiac: ZodiacConfig{
			Mode:     string(chart.Tropical),
			Ayanamsa: string(ephemeris.AyanamsaLahiri),
		},
		Houses: HousesConfig{
			System: string(chart.Placidus),
		},
		Aspects: AspectsConfig{
			StelliumSpan: 10,
			StelliumMin:  3,
		},
		Dasha: DashaConfig{
			Depth:        1,
			HorizonYears: 120,
		},
		Ashtakavarga: AshtakavargaConfig{
			StrongThreshold:   30,
			ModerateThreshold: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config, falling back to defaults when the file does
// not exist. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STELLIUM_ZODIAC"); v != "" {
		c.Zodiac.Mode = v
	}
	if v := os.Getenv("STELLIUM_AYANAMSA"); v != "" {
		c.Zodiac.Ayanamsa = v
	}
	if v := os.Getenv("STELLIUM_HOUSE_SYSTEM"); v != "" {
		c.Houses.System = v
	}
	if v := os.Getenv("STELLIUM_DASHA_DEPTH"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			c.Dasha.Depth = d
		}
	}
	if v := os.Getenv("STELLIUM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// OrbConfig converts the configured orb table into the aspect engine's
// representation.
func (c *Config) OrbConfig() aspects.OrbConfig {
	var orbs aspects.OrbConfig
	if len(c.Aspects.Orbs) == 0 {
		orbs = aspects.DefaultOrbs()
	} else {
		orbs = make(aspects.OrbConfig, len(c.Aspects.Orbs))
		for name, orb := range c.Aspects.Orbs {
			orbs[aspects.Type(name)] = orb
		}
	}
	if c.Aspects.IncludeMinors {
		orbs = orbs.WithMinors()
	}
	return orbs
}

// PatternConfig converts the stellium knobs.
func (c *Config) PatternConfig() aspects.PatternConfig {
	return aspects.PatternConfig{
		StelliumSpan: c.Aspects.StelliumSpan,
		StelliumMin:  c.Aspects.StelliumMin,
	}
}

// Bands converts the ashtakavarga thresholds.
func (c *Config) Bands() ashtakavarga.Bands {
	b := ashtakavarga.DefaultBands()
	if c.Ashtakavarga.StrongThreshold > 0 {
		b.Strong = c.Ashtakavarga.StrongThreshold
	}
	if c.Ashtakavarga.ModerateThreshold > 0 {
		b.Moderate = c.Ashtakavarga.ModerateThreshold
	}
	return b
}

// PositionOptions builds the resolver options for the configured frame.
func (c *Config) PositionOptions() chart.PositionOptions {
	return chart.PositionOptions{
		Mode:     chart.ZodiacMode(c.Zodiac.Mode),
		Ayanamsa: ephemeris.Ayanamsa(c.Zodiac.Ayanamsa),
	}
}

// HouseSystem returns the configured system tag.
func (c *Config) HouseSystem() chart.HouseSystem {
	return chart.HouseSystem(c.Houses.System)
}
