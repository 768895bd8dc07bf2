// Package chart turns raw ephemeris output into chart-level structures:
// zodiacal body positions (tropical or sidereal) and house cusps under
// the supported house systems. Everything here is a deterministic pure
// function of its inputs; identical inputs produce bit-identical output.
package chart

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stellium/internal/astro"
	"stellium/internal/ephemeris"
)

// ZodiacMode selects the reference frame for longitudes.
type ZodiacMode string

const (
	Tropical ZodiacMode = "tropical"
	Sidereal ZodiacMode = "sidereal"
)

// PositionOptions configures the position resolver.
type PositionOptions struct {
	Bodies   []astro.Body
	Mode     ZodiacMode
	Ayanamsa ephemeris.Ayanamsa // required when Mode == Sidereal
}

// CalculatePositions resolves every requested body at the given moment.
// Provider queries have no cross-dependency, so they fan out one
// goroutine per body; results keep the caller's body order. Any
// provider failure aborts the whole calculation.
func CalculatePositions(ctx context.Context, p ephemeris.Provider, m astro.Moment, opts PositionOptions) ([]astro.BodyPosition, error) {
	if len(opts.Bodies) == 0 {
		opts.Bodies = astro.ModernBodies
	}
	mode := opts.Mode
	if mode == "" {
		mode = Tropical
	}

	var ayanamsa float64
	if mode == Sidereal {
		v, err := ephemeris.AyanamsaValue(opts.Ayanamsa, m)
		if err != nil {
			return nil, fmt.Errorf("resolving ayanamsa: %w", err)
		}
		ayanamsa = v
	}

	positions := make([]astro.BodyPosition, len(opts.Bodies))
	g, ctx := errgroup.WithContext(ctx)
	for i, body := range opts.Bodies {
		i, body := i, body // per-iteration copies; module builds with pre-1.22 loopvar semantics
		g.Go(func() error {
			raw, err := p.Position(ctx, m, body)
			if err != nil {
				return fmt.Errorf("position of %s: %w", body, err)
			}
			positions[i] = astro.BodyPosition{
				Body:      body,
				Longitude: astro.Normalize(raw.Longitude - ayanamsa),
				Latitude:  raw.Latitude,
				Distance:  raw.Distance,
				Speed:     raw.Speed,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return positions, nil
}

// PositionMap indexes a position slice by body. Later duplicates win;
// the resolver never produces duplicates.
func PositionMap(positions []astro.BodyPosition) map[astro.Body]astro.BodyPosition {
	m := make(map[astro.Body]astro.BodyPosition, len(positions))
	for _, p := range positions {
		m[p.Body] = p
	}
	return m
}
