// Package aspects computes angular relationships between chart bodies
// and scans the resulting aspect set for named geometric patterns.
package aspects

import (
	"fmt"
	"math"
	"sort"

	"stellium/internal/astro"
)

// Type names an aspect by its exact angle.
type Type string

const (
	Conjunction Type = "conjunction" // 0°
	Sextile     Type = "sextile"     // 60°
	Square      Type = "square"      // 90°
	Trine       Type = "trine"       // 120°
	Opposition  Type = "opposition"  // 180°

	// Minor aspects
	SemiSextile Type = "semi_sextile"   // 30°
	SemiSquare  Type = "semi_square"    // 45°
	Sesquiquad  Type = "sesquiquadrate" // 135°
	Quincunx    Type = "quincunx"       // 150°
)

// Angle returns the exact angle of the aspect type.
func (t Type) Angle() float64 { return aspectAngles[t] }

var aspectAngles = map[Type]float64{
	Conjunction: 0, SemiSextile: 30, SemiSquare: 45, Sextile: 60,
	Square: 90, Trine: 120, Sesquiquad: 135, Quincunx: 150, Opposition: 180,
}

// OrbConfig maps each enabled aspect type to its orb tolerance in
// degrees. Types absent from the map are not detected.
type OrbConfig map[Type]float64

// DefaultOrbs enables the five major aspects with conventional orbs.
func DefaultOrbs() OrbConfig {
	return OrbConfig{
		Conjunction: 8, Opposition: 8, Trine: 8, Square: 7, Sextile: 6,
	}
}

// WithMinors extends an orb table with the minor aspects.
func (o OrbConfig) WithMinors() OrbConfig {
	out := make(OrbConfig, len(o)+4)
	for t, orb := range o {
		out[t] = orb
	}
	for _, t := range []Type{SemiSextile, SemiSquare, Sesquiquad, Quincunx} {
		if _, ok := out[t]; !ok {
			out[t] = 2
		}
	}
	return out
}

// Aspect is a classified angular relationship between two bodies. The
// pair is canonicalized: First is always the lower-numbered body, so
// aspect(a,b) and aspect(b,a) are the same record.
type Aspect struct {
	First    astro.Body
	Second   astro.Body
	Type     Type
	Orb      float64 // |separation - exact angle|, degrees
	Applying bool    // moving toward exactness
}

func (a Aspect) String() string {
	dir := "separating"
	if a.Applying {
		dir = "applying"
	}
	return fmt.Sprintf("%s %s %s (orb %.2f°, %s)", a.First, a.Type, a.Second, a.Orb, dir)
}

// Involves reports whether the aspect touches the body.
func (a Aspect) Involves(b astro.Body) bool { return a.First == b || a.Second == b }

// Calculate computes at most one aspect per unordered body pair: among
// all configured types whose orb tolerance the pair satisfies, the one
// with the smallest orb wins. Output order is deterministic (by body
// pair).
func Calculate(positions []astro.BodyPosition, orbs OrbConfig) []Aspect {
	if orbs == nil {
		orbs = DefaultOrbs()
	}
	sorted := make([]astro.BodyPosition, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Body < sorted[j].Body })

	var out []Aspect
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if a, ok := classify(sorted[i], sorted[j], orbs); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// classify finds the best matching aspect type for one pair. Candidate
// types are tried in ascending exact-angle order, so an exact-orb tie
// between two configured types always resolves to the smaller angle.
func classify(pa, pb astro.BodyPosition, orbs OrbConfig) (Aspect, bool) {
	sep := astro.Separation(pa.Longitude, pb.Longitude)

	types := make([]Type, 0, len(orbs))
	for t := range orbs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return aspectAngles[types[i]] < aspectAngles[types[j]] })

	best := Aspect{Orb: math.MaxFloat64}
	found := false
	for _, t := range types {
		orb := math.Abs(sep - aspectAngles[t])
		if orb <= orbs[t] && orb < best.Orb {
			best = Aspect{First: pa.Body, Second: pb.Body, Type: t, Orb: orb}
			found = true
		}
	}
	if !found {
		return Aspect{}, false
	}
	best.Applying = applying(pa, pb, best.Type.Angle())
	return best, true
}

// applying reports whether the separation is moving toward the exact
// angle: the sign of d(separation)/dt, driven by the relative speed,
// must point from the current separation toward the aspect angle.
func applying(pa, pb astro.BodyPosition, exact float64) bool {
	delta := astro.Forward(pb.Longitude, pa.Longitude) // a measured ahead of b
	rel := pa.Speed - pb.Speed
	sepRate := rel
	if delta > 180 {
		sepRate = -rel
	}
	sep := astro.Separation(pa.Longitude, pb.Longitude)
	if sep < exact {
		return sepRate > 0
	}
	return sepRate < 0
}
