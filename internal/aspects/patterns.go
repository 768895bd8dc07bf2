package aspects

import (
	"sort"

	"stellium/internal/astro"
)

// PatternKind names a geometric configuration of three or more bodies.
type PatternKind string

const (
	GrandTrine PatternKind = "grand_trine"
	TSquare    PatternKind = "t_square"
	Yod        PatternKind = "yod"
	Stellium   PatternKind = "stellium"
)

// Pattern references the bodies forming one detected configuration.
// Bodies are sorted; the apex (for t-squares and yods) is Bodies' last
// entry by convention, also recorded explicitly.
type Pattern struct {
	Kind   PatternKind
	Bodies []astro.Body
	Apex   astro.Body // t-square and yod only
}

// PatternConfig controls the pattern scan.
type PatternConfig struct {
	// StelliumSpan is the maximum arc, in degrees, covered by a stellium's
	// members. Zero means the default of 10°.
	StelliumSpan float64
	// StelliumMin is the minimum member count, default 3.
	StelliumMin int
}

// DetectPatterns scans a computed aspect set plus the raw positions for
// higher-order configurations. Pure scan: neither aspects nor positions
// are modified.
func DetectPatterns(positions []astro.BodyPosition, found []Aspect, cfg PatternConfig) []Pattern {
	if cfg.StelliumSpan == 0 {
		cfg.StelliumSpan = 10
	}
	if cfg.StelliumMin == 0 {
		cfg.StelliumMin = 3
	}

	pairs := make(map[[2]astro.Body]Type, len(found))
	for _, a := range found {
		pairs[pairKey(a.First, a.Second)] = a.Type
	}
	has := func(a, b astro.Body, t Type) bool { return pairs[pairKey(a, b)] == t }

	bodies := make([]astro.Body, len(positions))
	for i, p := range positions {
		bodies[i] = p.Body
	}
	sort.Slice(bodies, func(i, j int) bool { return bodies[i] < bodies[j] })

	var out []Pattern

	// Grand trine: three bodies mutually in trine.
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if !has(bodies[i], bodies[j], Trine) {
				continue
			}
			for k := j + 1; k < len(bodies); k++ {
				if has(bodies[i], bodies[k], Trine) && has(bodies[j], bodies[k], Trine) {
					out = append(out, Pattern{
						Kind:   GrandTrine,
						Bodies: []astro.Body{bodies[i], bodies[j], bodies[k]},
					})
				}
			}
		}
	}

	// T-square: an opposition whose ends both square a third body.
	// Yod: a sextile whose ends both quincunx a third body.
	apexScan := func(kind PatternKind, base, leg Type) {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				if !has(bodies[i], bodies[j], base) {
					continue
				}
				for _, apex := range bodies {
					if apex == bodies[i] || apex == bodies[j] {
						continue
					}
					if has(bodies[i], apex, leg) && has(bodies[j], apex, leg) {
						out = append(out, Pattern{
							Kind:   kind,
							Bodies: []astro.Body{bodies[i], bodies[j], apex},
							Apex:   apex,
						})
					}
				}
			}
		}
	}
	apexScan(TSquare, Opposition, Square)
	apexScan(Yod, Sextile, Quincunx)

	out = append(out, stelliums(positions, cfg)...)
	return out
}

func pairKey(a, b astro.Body) [2]astro.Body {
	if a > b {
		a, b = b, a
	}
	return [2]astro.Body{a, b}
}

// stelliums groups bodies sharing a sign whose total arc fits within
// the configured span. Each sign yields at most one (maximal) group.
func stelliums(positions []astro.BodyPosition, cfg PatternConfig) []Pattern {
	bySign := make(map[astro.Sign][]astro.BodyPosition)
	for _, p := range positions {
		bySign[p.Sign()] = append(bySign[p.Sign()], p)
	}

	var out []Pattern
	for s := astro.Aries; s <= astro.Pisces; s++ {
		group := bySign[s]
		if len(group) < cfg.StelliumMin {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Longitude < group[j].Longitude })
		if group[len(group)-1].Longitude-group[0].Longitude > cfg.StelliumSpan {
			continue
		}
		bodies := make([]astro.Body, len(group))
		for i, p := range group {
			bodies[i] = p.Body
		}
		sort.Slice(bodies, func(i, j int) bool { return bodies[i] < bodies[j] })
		out = append(out, Pattern{Kind: Stellium, Bodies: bodies})
	}
	return out
}
