// Package dasha implements the Vimshottari planetary period system: a
// recursive proportional subdivision of a 120-year cycle, anchored by
// the Moon's nakshatra at birth.
package dasha

import (
	"fmt"

	"stellium/internal/astro"
)

// Level of a period in the tree.
type Level int

const (
	Mahadasha Level = iota
	Antardasha
	Pratyantardasha
)

func (l Level) String() string {
	switch l {
	case Mahadasha:
		return "mahadasha"
	case Antardasha:
		return "antardasha"
	case Pratyantardasha:
		return "pratyantardasha"
	default:
		return "unknown"
	}
}

// Period is one node of the dasha tree. Children subdivide exactly the
// parent's span and live only inside the calculation that produced
// them; the whole tree is recomputed from scratch on every request.
type Period struct {
	Lord     astro.Body
	Level    Level
	Start    astro.Moment
	End      astro.Moment
	Years    float64
	Children []Period
}

// lords is the fixed Vimshottari planetary order; years the fixed
// whole-year duration of each lord's Mahadasha. The durations total
// exactly 120.
var lords = [9]astro.Body{
	astro.Ketu, astro.Venus, astro.Sun, astro.Moon, astro.Mars,
	astro.Rahu, astro.Jupiter, astro.Saturn, astro.Mercury,
}

var years = map[astro.Body]float64{
	astro.Ketu: 7, astro.Venus: 20, astro.Sun: 6, astro.Moon: 10,
	astro.Mars: 7, astro.Rahu: 18, astro.Jupiter: 16, astro.Saturn: 19,
	astro.Mercury: 17,
}

// CycleYears is the full Vimshottari cycle length.
const CycleYears = 120.0

// nakshatraWidth is 13°20′: 27 equal lunar mansions.
const nakshatraWidth = 360.0 / 27

// Options bounds the generated tree.
type Options struct {
	// Depth: 0 = Mahadashas only, 1 = +Antardashas, 2 = +Pratyantardashas.
	Depth int
	// HorizonYears cuts off Mahadasha emission after this many years from
	// birth. Zero means the full 120-year cycle.
	HorizonYears float64
}

// Calculate builds the dasha tree from the Moon's sidereal longitude at
// birth. The nakshatra's ruler opens the sequence with only the
// unelapsed balance of its period; subsequent lords follow in fixed
// order with full durations until the horizon is covered.
func Calculate(moonLongitude float64, birth astro.Moment, opts Options) ([]Period, error) {
	if opts.Depth < 0 || opts.Depth > 2 {
		return nil, fmt.Errorf("dasha depth %d out of range [0, 2]", opts.Depth)
	}
	horizon := opts.HorizonYears
	if horizon <= 0 {
		horizon = CycleYears
	}

	lon := astro.Normalize(moonLongitude)
	nakshatra := int(lon / nakshatraWidth) % 27
	fractionElapsed := (lon - float64(nakshatra)*nakshatraWidth) / nakshatraWidth

	startIdx := nakshatra % 9
	firstLord := lords[startIdx]
	balance := years[firstLord] * (1 - fractionElapsed)

	var out []Period
	start := birth
	elapsed := 0.0
	for i := 0; elapsed < horizon; i++ {
		lord := lords[(startIdx+i)%9]
		span := years[lord]
		if i == 0 {
			span = balance
		}
		p := Period{
			Lord:  lord,
			Level: Mahadasha,
			Start: start,
			End:   start.AddYears(span),
			Years: span,
		}
		if opts.Depth > 0 {
			p.Children = subdivide(p, Antardasha, opts.Depth)
		}
		out = append(out, p)
		start = p.End
		elapsed += span
	}
	return out, nil
}

// subdivide splits a period among the nine lords starting from the
// period's own lord, each child proportional to its lord's share of the
// full cycle. Recurses at most once more (Pratyantardasha).
func subdivide(parent Period, level Level, depth int) []Period {
	start := parent.Start
	offset := lordIndex(parent.Lord)
	children := make([]Period, 0, 9)
	for i := 0; i < 9; i++ {
		lord := lords[(offset+i)%9]
		span := parent.Years * years[lord] / CycleYears
		child := Period{
			Lord:  lord,
			Level: level,
			Start: start,
			End:   start.AddYears(span),
			Years: span,
		}
		if level == Antardasha && depth > 1 {
			child.Children = subdivide(child, Pratyantardasha, depth)
		}
		children = append(children, child)
		start = child.End
	}
	// The last child ends exactly with the parent regardless of float
	// accumulation.
	children[8].End = parent.End
	return children
}

func lordIndex(b astro.Body) int {
	for i, l := range lords {
		if l == b {
			return i
		}
	}
	return 0
}

// Active returns the chain of periods (one per level) covering the
// given moment, outermost first. Empty when the moment falls outside
// the generated horizon.
func Active(tree []Period, at astro.Moment) []Period {
	for _, p := range tree {
		if at.JulianDay < p.Start.JulianDay || at.JulianDay >= p.End.JulianDay {
			continue
		}
		chain := []Period{p}
		chain = append(chain, Active(p.Children, at)...)
		return chain
	}
	return nil
}
