package humandesign

import (
	"context"
	"fmt"
	"math"
	"sort"

	"stellium/internal/astro"
	"stellium/internal/ephemeris"
)

// trackedBodies are the thirteen activation points of the bodygraph.
var trackedBodies = []astro.Body{
	astro.Sun, astro.Earth, astro.Moon, astro.Rahu, astro.Ketu,
	astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter,
	astro.Saturn, astro.Uranus, astro.Neptune, astro.Pluto,
}

// Activation is one body's gate/line in one snapshot.
type Activation struct {
	Body astro.Body
	Gate Gate
	Line Line
}

// Type is the energetic type from the decision tree.
type Type string

const (
	Manifestor           Type = "manifestor"
	Generator            Type = "generator"
	ManifestingGenerator Type = "manifesting_generator"
	Projector            Type = "projector"
	Reflector            Type = "reflector"
)

// Authority names the first defined center in the fixed priority order.
type Authority string

const (
	Emotional     Authority = "emotional"
	SacralAuth    Authority = "sacral"
	Splenic       Authority = "splenic"
	Ego           Authority = "ego"
	SelfProjected Authority = "self_projected"
	Mental        Authority = "mental"
	Lunar         Authority = "lunar"
)

// Result is a complete bodygraph derivation.
type Result struct {
	Personality  []Activation // birth snapshot
	Design       []Activation // solar-arc offset snapshot
	DesignMoment astro.Moment
	Channels     []Channel // fully activated
	Centers      []Center  // defined, sorted
	Type         Type
	Authority    Authority
	Profile      string // "<personality sun line>/<design sun line>"
}

// designArc is the solar arc, in degrees, between design and birth.
const designArc = 88.0

// Search bounds for the design moment, days before birth. The Sun
// covers 88° in roughly 86–91 days depending on season.
const (
	searchMinDays = 80.0
	searchMaxDays = 95.0
)

// convergence tolerance on the Sun's longitude, degrees.
const designTolerance = 1e-4

// maxBisections bounds the design search loop.
const maxBisections = 64

// Calculate derives the full bodygraph. The location parameter is
// accepted for interface symmetry with the chart calculations; the
// wheel mapping itself is location-independent.
func Calculate(ctx context.Context, p ephemeris.Provider, birth astro.Moment, _ astro.GeoLocation) (Result, error) {
	birthSun, err := p.Position(ctx, birth, astro.Sun)
	if err != nil {
		return Result{}, fmt.Errorf("birth sun: %w", err)
	}

	designMoment, err := findDesignMoment(ctx, p, birth, birthSun.Longitude)
	if err != nil {
		return Result{}, err
	}

	personality, err := snapshot(ctx, p, birth)
	if err != nil {
		return Result{}, fmt.Errorf("personality snapshot: %w", err)
	}
	design, err := snapshot(ctx, p, designMoment)
	if err != nil {
		return Result{}, fmt.Errorf("design snapshot: %w", err)
	}

	res := Result{
		Personality:  personality,
		Design:       design,
		DesignMoment: designMoment,
	}
	derive(&res)
	return res, nil
}

// findDesignMoment bisects backward in time for the moment the Sun
// stood exactly designArc degrees behind its birth longitude.
func findDesignMoment(ctx context.Context, p ephemeris.Provider, birth astro.Moment, birthSunLon float64) (astro.Moment, error) {
	target := astro.Normalize(birthSunLon - designArc)

	// diff is the signed arc from the target to the Sun at t; positive
	// once the Sun has passed the target. Monotonic over the window.
	diff := func(m astro.Moment) (float64, error) {
		pos, err := p.Position(ctx, m, astro.Sun)
		if err != nil {
			return 0, err
		}
		return astro.SignedDelta(target, pos.Longitude), nil
	}

	lo, hi := birth.AddDays(-searchMaxDays), birth.AddDays(-searchMinDays)
	dlo, err := diff(lo)
	if err != nil {
		return astro.Moment{}, fmt.Errorf("design search lower bound: %w", astro.ErrInsufficientEphemerisRange)
	}
	dhi, err := diff(hi)
	if err != nil {
		return astro.Moment{}, fmt.Errorf("design search upper bound: %w", astro.ErrInsufficientEphemerisRange)
	}
	if dlo > 0 || dhi < 0 {
		return astro.Moment{}, fmt.Errorf("design arc not bracketed in [%.0f, %.0f] days before birth: %w",
			searchMinDays, searchMaxDays, astro.ErrInsufficientEphemerisRange)
	}

	for i := 0; i < maxBisections; i++ {
		mid := astro.Moment{JulianDay: (lo.JulianDay + hi.JulianDay) / 2, UTCOffset: birth.UTCOffset}
		d, err := diff(mid)
		if err != nil {
			return astro.Moment{}, fmt.Errorf("design search: %w", astro.ErrInsufficientEphemerisRange)
		}
		if math.Abs(d) < designTolerance {
			return mid, nil
		}
		if d < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return astro.Moment{}, fmt.Errorf("design search did not converge after %d bisections: %w",
		maxBisections, astro.ErrInsufficientEphemerisRange)
}

// snapshot resolves every tracked body at one moment and maps it onto
// the wheel.
func snapshot(ctx context.Context, p ephemeris.Provider, m astro.Moment) ([]Activation, error) {
	out := make([]Activation, 0, len(trackedBodies))
	for _, body := range trackedBodies {
		pos, err := p.Position(ctx, m, body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", body, err)
		}
		gate, line := GateOf(pos.Longitude)
		out = append(out, Activation{Body: body, Gate: gate, Line: line})
	}
	return out, nil
}

// derive fills channels, centers, type, authority, and profile from the
// two activation sets.
func derive(res *Result) {
	active := make(map[Gate]bool)
	for _, a := range res.Personality {
		active[a.Gate] = true
	}
	for _, a := range res.Design {
		active[a.Gate] = true
	}

	defined := make(map[Center]bool)
	for _, ch := range channels {
		if active[ch.A] && active[ch.B] {
			res.Channels = append(res.Channels, ch)
			ca, cb := ch.Centers()
			defined[ca] = true
			defined[cb] = true
		}
	}
	for c := range defined {
		res.Centers = append(res.Centers, c)
	}
	sort.Slice(res.Centers, func(i, j int) bool { return res.Centers[i] < res.Centers[j] })

	res.Type = deriveType(defined, res.Channels)
	res.Authority = deriveAuthority(defined)
	res.Profile = fmt.Sprintf("%d/%d", sunLine(res.Personality), sunLine(res.Design))
}

// deriveType walks the fixed decision tree over defined centers and
// motor-to-throat connectivity.
func deriveType(defined map[Center]bool, activated []Channel) Type {
	if len(defined) == 0 {
		return Reflector
	}
	motorToThroat := hasMotorThroatPath(defined, activated)
	if defined[Sacral] {
		if motorToThroat {
			return ManifestingGenerator
		}
		return Generator
	}
	if motorToThroat {
		return Manifestor
	}
	return Projector
}

// hasMotorThroatPath searches the defined-center graph, edges being the
// activated channels, for a path from any motor center to the throat.
func hasMotorThroatPath(defined map[Center]bool, activated []Channel) bool {
	adj := make(map[Center][]Center)
	for _, ch := range activated {
		a, b := ch.Centers()
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	visited := make(map[Center]bool)
	var queue []Center
	for c := range defined {
		if motorCenters[c] {
			queue = append(queue, c)
			visited[c] = true
		}
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == Throat {
			return true
		}
		for _, next := range adj[c] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// authorityOrder is the fixed priority of defined centers.
var authorityOrder = []struct {
	center Center
	auth   Authority
}{
	{SolarPlexus, Emotional},
	{Sacral, SacralAuth},
	{Spleen, Splenic},
	{Heart, Ego},
	{G, SelfProjected},
}

func deriveAuthority(defined map[Center]bool) Authority {
	for _, entry := range authorityOrder {
		if defined[entry.center] {
			return entry.auth
		}
	}
	if defined[Ajna] || defined[Head] {
		return Mental
	}
	return Lunar
}

func sunLine(activations []Activation) Line {
	for _, a := range activations {
		if a.Body == astro.Sun {
			return a.Line
		}
	}
	return 0
}
