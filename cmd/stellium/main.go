package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stellium/internal/astro"
	"stellium/internal/config"
	"stellium/internal/logging"
)

var (
	// Global flags
	birthDate  string
	birthTime  string
	utcOffset  float64
	latitude   float64
	longitude  float64
	configPath string
	verbose    bool

	// Loaded configuration and logger, set in the root PersistentPreRunE.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "stellium",
	Short: "stellium - astrological computation engine",
	Long: `stellium computes astrological charts and their derived layers from
raw birth data: body positions, house cusps, aspects and geometric
patterns, Vimshottari dashas, Ashtakavarga tables, yogas, and the
Human Design bodygraph.

All computation is deterministic: identical inputs always produce
identical output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// parseMoment builds the birth Moment from the global date/time flags.
func parseMoment() (astro.Moment, error) {
	d, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return astro.Moment{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", birthDate, err)
	}
	layout := "15:04"
	if strings.Count(birthTime, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, birthTime)
	if err != nil {
		return astro.Moment{}, fmt.Errorf("invalid --time %q (want HH:MM[:SS]): %w", birthTime, err)
	}
	offset := time.Duration(utcOffset * float64(time.Hour))
	return astro.NewMoment(d.Year(), int(d.Month()), d.Day(),
		t.Hour(), t.Minute(), float64(t.Second()), offset), nil
}

func parseLocation() (astro.GeoLocation, error) {
	loc := astro.GeoLocation{Latitude: latitude, Longitude: longitude}
	if err := loc.Validate(); err != nil {
		return astro.GeoLocation{}, err
	}
	return loc, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&birthDate, "date", "", "birth date, YYYY-MM-DD")
	rootCmd.PersistentFlags().StringVar(&birthTime, "time", "12:00", "birth time, HH:MM[:SS]")
	rootCmd.PersistentFlags().Float64Var(&utcOffset, "tz", 0, "UTC offset of the birth time, hours")
	rootCmd.PersistentFlags().Float64Var(&latitude, "lat", 0, "latitude, degrees north")
	rootCmd.PersistentFlags().Float64Var(&longitude, "lon", 0, "longitude, degrees east")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "stellium.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(housesCmd)
	rootCmd.AddCommand(aspectsCmd)
	rootCmd.AddCommand(dashaCmd)
	rootCmd.AddCommand(ashtakavargaCmd)
	rootCmd.AddCommand(yogasCmd)
	rootCmd.AddCommand(humanDesignCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
