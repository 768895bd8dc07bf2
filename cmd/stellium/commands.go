package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stellium/internal/ashtakavarga"
	"stellium/internal/aspects"
	"stellium/internal/astro"
	"stellium/internal/chart"
	"stellium/internal/dasha"
	"stellium/internal/ephemeris"
	"stellium/internal/humandesign"
	"stellium/internal/yoga"
)

// chartCmd computes the full natal chart: positions, houses, aspects,
// and patterns.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute positions, houses, aspects and patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		loc, err := parseLocation()
		if err != nil {
			return err
		}

		provider := ephemeris.NewAnalytic()
		logger.Debug("calculating chart",
			zap.Float64("jd", m.JulianDay),
			zap.String("system", string(cfg.HouseSystem())))

		c, err := chart.Calculate(cmd.Context(), provider, m, loc, chart.Options{
			Position: cfg.PositionOptions(),
			System:   cfg.HouseSystem(),
		})
		if err != nil {
			return err
		}

		fmt.Printf("Chart %s  (%s)\n\n", c.ID, m)
		for _, p := range c.Positions {
			house := c.Houses.HouseOf(p.Longitude)
			retro := ""
			if p.Retrograde() {
				retro = " R"
			}
			fmt.Printf("  %-8s %8.4f°  %s %6.2f°%s  house %d\n",
				p.Body, p.Longitude, p.Sign(), p.DegreeInSign(), retro, house)
		}

		fmt.Printf("\nHouses (%s):\n", c.Houses.System)
		for i, cusp := range c.Houses.Cusps {
			fmt.Printf("  %2d  %8.4f°  %s\n", i+1, cusp, astro.SignOf(cusp))
		}

		found := aspects.Calculate(c.Positions, cfg.OrbConfig())
		fmt.Printf("\nAspects (%d):\n", len(found))
		for _, a := range found {
			fmt.Printf("  %s\n", a)
		}

		patterns := aspects.DetectPatterns(c.Positions, found, cfg.PatternConfig())
		if len(patterns) > 0 {
			fmt.Printf("\nPatterns:\n")
			for _, p := range patterns {
				fmt.Printf("  %s: %v\n", p.Kind, p.Bodies)
			}
		}
		return nil
	},
}

// positionsCmd resolves body positions in the configured frame without
// the house or aspect layers.
var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Compute body positions only",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		positions, err := chart.CalculatePositions(cmd.Context(), ephemeris.NewAnalytic(), m, cfg.PositionOptions())
		if err != nil {
			return err
		}
		for _, p := range positions {
			retro := ""
			if p.Retrograde() {
				retro = " R"
			}
			fmt.Printf("  %-8s %8.4f°  %s %6.2f°%s  %+.4f°/d\n",
				p.Body, p.Longitude, p.Sign(), p.DegreeInSign(), retro, p.Speed)
		}
		return nil
	},
}

// housesCmd computes cusps for the configured system only.
var housesCmd = &cobra.Command{
	Use:   "houses",
	Short: "Compute house cusps only",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		loc, err := parseLocation()
		if err != nil {
			return err
		}
		h, err := chart.CalculateHouses(m, loc, cfg.HouseSystem(), chart.HouseOptions{
			Mode:     cfg.PositionOptions().Mode,
			Ayanamsa: cfg.PositionOptions().Ayanamsa,
		})
		if err != nil {
			return err
		}
		fmt.Printf("System: %s   Asc %8.4f°   MC %8.4f°\n", h.System, h.Ascendant, h.MC)
		for i, cusp := range h.Cusps {
			fmt.Printf("  %2d  %8.4f°  %s\n", i+1, cusp, astro.SignOf(cusp))
		}
		return nil
	},
}

// aspectsCmd lists aspects and patterns without the house layer.
var aspectsCmd = &cobra.Command{
	Use:   "aspects",
	Short: "Compute aspects and patterns only",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		positions, err := chart.CalculatePositions(cmd.Context(), ephemeris.NewAnalytic(), m, cfg.PositionOptions())
		if err != nil {
			return err
		}
		found := aspects.Calculate(positions, cfg.OrbConfig())
		for _, a := range found {
			fmt.Printf("  %s\n", a)
		}
		for _, p := range aspects.DetectPatterns(positions, found, cfg.PatternConfig()) {
			fmt.Printf("  %s: %v\n", p.Kind, p.Bodies)
		}
		return nil
	},
}

// dashaCmd prints the Vimshottari period tree. The Moon longitude is
// always taken sidereal regardless of the configured chart frame.
var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Compute the Vimshottari dasha tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		moon, err := siderealPositions(cmd, m, []astro.Body{astro.Moon})
		if err != nil {
			return err
		}

		tree, err := dasha.Calculate(moon[0].Longitude, m, dasha.Options{
			Depth:        cfg.Dasha.Depth,
			HorizonYears: cfg.Dasha.HorizonYears,
		})
		if err != nil {
			return err
		}
		printPeriods(tree, "")
		return nil
	},
}

func printPeriods(periods []dasha.Period, indent string) {
	for _, p := range periods {
		fmt.Printf("%s%-8s %s — %s  (%.2fy)\n", indent, p.Lord,
			p.Start.Time().Format("2006-01-02"), p.End.Time().Format("2006-01-02"), p.Years)
		printPeriods(p.Children, indent+"  ")
	}
}

// ashtakavargaCmd prints the per-planet bindu tables and the Sarva sum.
var ashtakavargaCmd = &cobra.Command{
	Use:   "ashtakavarga",
	Short: "Compute the Ashtakavarga bindu tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		positions, asc, err := siderealChart(cmd, m)
		if err != nil {
			return err
		}

		res, err := ashtakavarga.Calculate(chart.PositionMap(positions), asc)
		if err != nil {
			return err
		}
		for _, p := range astro.ClassicalPlanets {
			fmt.Printf("  %-8s %v  (total %d)\n", p, res.Planets[p], res.Planets[p].Total())
		}
		fmt.Printf("  %-8s %v\n", "Sarva", res.Sarva)

		for s := astro.Aries; s <= astro.Pisces; s++ {
			score, band := res.TransitScore(s, cfg.Bands())
			fmt.Printf("  %-12s %2d  %s\n", s, score, band)
		}
		return nil
	},
}

// yogasCmd runs the yoga rule catalog over the sidereal chart.
var yogasCmd = &cobra.Command{
	Use:   "yogas",
	Short: "Detect classical yogas",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		positions, asc, err := siderealChart(cmd, m)
		if err != nil {
			return err
		}

		found, err := yoga.Detect(chart.PositionMap(positions), asc, yoga.Options{
			IncludeWeak: cfg.Yoga.IncludeWeak,
		})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			fmt.Println("No yogas detected.")
			return nil
		}
		for _, y := range found {
			fmt.Printf("  %-24s %-12s %-8s %v houses %v\n",
				y.Name, y.Category, y.Strength, y.Bodies, y.Houses)
		}
		return nil
	},
}

// humanDesignCmd derives the bodygraph.
var humanDesignCmd = &cobra.Command{
	Use:   "humandesign",
	Short: "Derive the Human Design bodygraph",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := parseMoment()
		if err != nil {
			return err
		}
		loc, err := parseLocation()
		if err != nil {
			return err
		}

		res, err := humandesign.Calculate(cmd.Context(), ephemeris.NewAnalytic(), m, loc)
		if err != nil {
			return err
		}

		fmt.Printf("Type:      %s\n", res.Type)
		fmt.Printf("Authority: %s\n", res.Authority)
		fmt.Printf("Profile:   %s\n", res.Profile)
		fmt.Printf("Design:    %s\n\n", res.DesignMoment)
		fmt.Printf("Centers:   %v\n", res.Centers)
		fmt.Printf("Channels:  %v\n\n", res.Channels)
		fmt.Println("Personality        Design")
		for i := range res.Personality {
			pa, da := res.Personality[i], res.Design[i]
			fmt.Printf("  %-8s %2d.%d      %-8s %2d.%d\n",
				pa.Body, pa.Gate, pa.Line, da.Body, da.Gate, da.Line)
		}
		return nil
	},
}

// siderealPositions resolves the given bodies in the sidereal frame
// with the configured ayanamsa.
func siderealPositions(cmd *cobra.Command, m astro.Moment, bodies []astro.Body) ([]astro.BodyPosition, error) {
	return chart.CalculatePositions(cmd.Context(), ephemeris.NewAnalytic(), m, chart.PositionOptions{
		Bodies:   bodies,
		Mode:     chart.Sidereal,
		Ayanamsa: ephemeris.Ayanamsa(cfg.Zodiac.Ayanamsa),
	})
}

// siderealChart resolves the classical planets and the whole-sign
// ascendant in the sidereal frame, as the Vedic engines expect.
func siderealChart(cmd *cobra.Command, m astro.Moment) ([]astro.BodyPosition, float64, error) {
	loc, err := parseLocation()
	if err != nil {
		return nil, 0, err
	}
	positions, err := siderealPositions(cmd, m, astro.ClassicalPlanets)
	if err != nil {
		return nil, 0, err
	}
	houses, err := chart.CalculateHouses(m, loc, chart.WholeSign, chart.HouseOptions{
		Mode:     chart.Sidereal,
		Ayanamsa: ephemeris.Ayanamsa(cfg.Zodiac.Ayanamsa),
	})
	if err != nil {
		return nil, 0, err
	}
	return positions, houses.Ascendant, nil
}
