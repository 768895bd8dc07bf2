package chart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stellium/internal/astro"
	"stellium/internal/ephemeris"
)

// Chart bundles the positions and houses of one calculation for the
// presentation layer. The ID exists only so external layers can key
// cached or persisted copies; the engine itself never stores charts.
// It is derived from the inputs, so recalculating the same chart
// reproduces the same ID.
type Chart struct {
	ID        uuid.UUID
	Moment    astro.Moment
	Location  astro.GeoLocation
	Positions []astro.BodyPosition
	Houses    Houses
}

// Options configures a full chart calculation.
type Options struct {
	Position PositionOptions
	System   HouseSystem
}

// Calculate resolves positions and houses together. Either failure
// aborts the chart; callers wanting partial results call the two
// calculations separately.
func Calculate(ctx context.Context, p ephemeris.Provider, m astro.Moment, loc astro.GeoLocation, opts Options) (Chart, error) {
	if opts.System == "" {
		opts.System = Placidus
	}
	positions, err := CalculatePositions(ctx, p, m, opts.Position)
	if err != nil {
		return Chart{}, err
	}
	houses, err := CalculateHouses(m, loc, opts.System, HouseOptions{
		Mode:     opts.Position.Mode,
		Ayanamsa: opts.Position.Ayanamsa,
	})
	if err != nil {
		return Chart{}, fmt.Errorf("calculating houses: %w", err)
	}
	return Chart{
		ID:        chartID(m, loc, opts),
		Moment:    m,
		Location:  loc,
		Positions: positions,
		Houses:    houses,
	}, nil
}

// chartID is a name-based UUID over the calculation inputs.
func chartID(m astro.Moment, loc astro.GeoLocation, opts Options) uuid.UUID {
	key := fmt.Sprintf("%.9f|%.6f|%.6f|%s|%s|%s",
		m.JulianDay, loc.Latitude, loc.Longitude,
		opts.Position.Mode, opts.Position.Ayanamsa, opts.System)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// AscendantPosition exposes the ascendant as a BodyPosition so the
// derived engines can treat it like any other reference point.
func (c Chart) AscendantPosition() astro.BodyPosition {
	return astro.BodyPosition{Body: astro.Ascendant, Longitude: c.Houses.Ascendant}
}
