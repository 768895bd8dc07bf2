package yoga

import (
	"fmt"
	"sort"

	"stellium/internal/astro"
)

// Strength grades a detected yoga.
type Strength string

const (
	Strong   Strength = "strong"
	Moderate Strength = "moderate"
	Weak     Strength = "weak"
)

// Yoga is one detected combination. Derived value; never mutated after
// detection.
type Yoga struct {
	Name     string
	Category string
	Bodies   []astro.Body
	Houses   []int // whole-sign houses from the ascendant, where relevant
	Strength Strength
}

// Options controls detection.
type Options struct {
	// IncludeWeak keeps matches graded Weak; default drops them.
	IncludeWeak bool
}

// kendra houses are the four angles.
var kendraHouses = map[int]bool{1: true, 4: true, 7: true, 10: true}

// trikonaHouses are the trines from the ascendant.
var trikonaHouses = map[int]bool{1: true, 5: true, 9: true}

// chartCtx is the precomputed view every rule matches against.
type chartCtx struct {
	pos     map[astro.Body]astro.BodyPosition
	ascSign astro.Sign
}

// house is the whole-sign house of a body counted from the ascendant.
func (c chartCtx) house(b astro.Body) int {
	return (int(c.pos[b].Sign())-int(c.ascSign)+12)%12 + 1
}

// signHouse converts a sign to its whole-sign house number.
func (c chartCtx) signHouse(s astro.Sign) int {
	return (int(s)-int(c.ascSign)+12)%12 + 1
}

// conjunct: classical same-sign conjunction.
func (c chartCtx) conjunct(a, b astro.Body) bool {
	return c.pos[a].Sign() == c.pos[b].Sign()
}

// exchange: mutual reception, each planet in a sign the other rules.
func (c chartCtx) exchange(a, b astro.Body) bool {
	return signLord[c.pos[a].Sign()] == b && signLord[c.pos[b].Sign()] == a && a != b
}

// Detect scans the chart against the full rule catalog. All seven
// classical planets must be present; detection itself never fails on an
// unmatched rule, it simply emits nothing for it.
func Detect(positions map[astro.Body]astro.BodyPosition, ascendant float64, opts Options) ([]Yoga, error) {
	for _, p := range astro.ClassicalPlanets {
		if _, ok := positions[p]; !ok {
			return nil, fmt.Errorf("yoga detection requires %s: %w", p, astro.ErrIncompleteChartData)
		}
	}
	c := chartCtx{pos: positions, ascSign: astro.SignOf(ascendant)}

	var found []Yoga
	found = append(found, mahapurushaYogas(c)...)
	found = append(found, lunarSolarYogas(c)...)
	found = append(found, rajaYogas(c)...)
	found = append(found, dhanaYogas(c)...)
	found = append(found, negativeYogas(c)...)

	if !opts.IncludeWeak {
		kept := found[:0]
		for _, y := range found {
			if y.Strength != Weak {
				kept = append(kept, y)
			}
		}
		found = kept
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// -----------------------------------------------------------------------------
// Rules
// -----------------------------------------------------------------------------

// mahapurushaNames: the five great-person yogas, one per non-luminary
// classical planet.
var mahapurushaNames = map[astro.Body]string{
	astro.Mars:    "Ruchaka",
	astro.Mercury: "Bhadra",
	astro.Jupiter: "Hamsa",
	astro.Venus:   "Malavya",
	astro.Saturn:  "Sasa",
}

// mahapurushaYogas: planet exalted or in own sign while occupying a
// kendra. Strength follows how tightly the planet sits on its dignity
// degree.
func mahapurushaYogas(c chartCtx) []Yoga {
	var out []Yoga
	for _, planet := range []astro.Body{astro.Mars, astro.Mercury, astro.Jupiter, astro.Venus, astro.Saturn} {
		d := DignityOf(c.pos[planet])
		if d != Exalted && d != OwnSign {
			continue
		}
		h := c.house(planet)
		if !kendraHouses[h] {
			continue
		}
		out = append(out, Yoga{
			Name:     mahapurushaNames[planet],
			Category: "mahapurusha",
			Bodies:   []astro.Body{planet},
			Houses:   []int{h},
			Strength: strengthFromTightness(dignityTightness(c.pos[planet])),
		})
	}
	return out
}

// lunarSolarYogas covers the Moon- and Sun-attendant combinations plus
// the two luminary conjunctions.
func lunarSolarYogas(c chartCtx) []Yoga {
	var out []Yoga

	if c.conjunct(astro.Sun, astro.Mercury) {
		out = append(out, Yoga{
			Name:     "Budhaditya",
			Category: "surya",
			Bodies:   []astro.Body{astro.Sun, astro.Mercury},
			Houses:   []int{c.house(astro.Sun)},
			Strength: strengthFromOrb(astro.Separation(c.pos[astro.Sun].Longitude, c.pos[astro.Mercury].Longitude)),
		})
	}
	if c.conjunct(astro.Moon, astro.Mars) {
		out = append(out, Yoga{
			Name:     "Chandra-Mangala",
			Category: "chandra",
			Bodies:   []astro.Body{astro.Moon, astro.Mars},
			Houses:   []int{c.house(astro.Moon)},
			Strength: strengthFromOrb(astro.Separation(c.pos[astro.Moon].Longitude, c.pos[astro.Mars].Longitude)),
		})
	}

	// Gajakesari: Jupiter in a kendra counted from the Moon.
	fromMoon := (int(c.pos[astro.Jupiter].Sign())-int(c.pos[astro.Moon].Sign())+12)%12 + 1
	if kendraHouses[fromMoon] {
		s := Moderate
		if d := DignityOf(c.pos[astro.Jupiter]); d == Exalted || d == OwnSign {
			s = Strong
		} else if d == Debilitated {
			s = Weak
		}
		out = append(out, Yoga{
			Name:     "Gajakesari",
			Category: "chandra",
			Bodies:   []astro.Body{astro.Jupiter, astro.Moon},
			Houses:   []int{c.house(astro.Jupiter)},
			Strength: s,
		})
	}

	out = append(out, attendantYogas(c, astro.Moon, "chandra", "Sunapha", "Anapha", "Durudhara")...)
	out = append(out, attendantYogas(c, astro.Sun, "surya", "Vesi", "Vosi", "Ubhayachari")...)
	return out
}

// attendantYogas detects planets occupying the 2nd and 12th signs from
// an anchor luminary. The other luminary and the nodes never count as
// attendants.
func attendantYogas(c chartCtx, anchor astro.Body, category, second, twelfth, both string) []Yoga {
	var ahead, behind []astro.Body
	for _, p := range astro.ClassicalPlanets {
		if p == astro.Sun || p == astro.Moon {
			continue
		}
		rel := (int(c.pos[p].Sign()) - int(c.pos[anchor].Sign()) + 12) % 12
		switch rel {
		case 1:
			ahead = append(ahead, p)
		case 11:
			behind = append(behind, p)
		}
	}

	strength := func(n int) Strength {
		if n >= 2 {
			return Strong
		}
		return Moderate
	}
	switch {
	case len(ahead) > 0 && len(behind) > 0:
		bodies := append(append([]astro.Body{anchor}, ahead...), behind...)
		return []Yoga{{Name: both, Category: category, Bodies: bodies, Strength: Strong}}
	case len(ahead) > 0:
		return []Yoga{{Name: second, Category: category, Bodies: append([]astro.Body{anchor}, ahead...), Strength: strength(len(ahead))}}
	case len(behind) > 0:
		return []Yoga{{Name: twelfth, Category: category, Bodies: append([]astro.Body{anchor}, behind...), Strength: strength(len(behind))}}
	}
	return nil
}

// rajaYogas: the lord of a kendra joined with the lord of a trikona,
// by conjunction or by mutual exchange.
func rajaYogas(c chartCtx) []Yoga {
	return lordPairYogas(c, "Raja", "raja", kendraHouses, trikonaHouses)
}

// dhanaYogas: wealth combinations from the 2nd/11th and 5th/9th lords.
func dhanaYogas(c chartCtx) []Yoga {
	out := lordPairYogas(c, "Dhana", "dhana", map[int]bool{2: true}, map[int]bool{11: true})
	out = append(out, lordPairYogas(c, "Dhana", "dhana", map[int]bool{5: true}, map[int]bool{9: true})...)
	return out
}

// lordPairYogas emits one yoga per distinct lord pair where one planet
// rules a house in groupA, the other a house in groupB, and the two are
// conjunct or in exchange. Lords walk in the fixed ClassicalPlanets
// order and each pair is canonicalized (lower body first, houses the
// union of everything either lord rules across both groups), so a lord
// ruling houses in both groups still yields exactly one record.
func lordPairYogas(c chartCtx, name, category string, groupA, groupB map[int]bool) []Yoga {
	lordsOf := func(group map[int]bool) map[astro.Body][]int {
		m := make(map[astro.Body][]int)
		for h := range group {
			sign := astro.Sign((int(c.ascSign) + h - 1) % 12)
			m[signLord[sign]] = append(m[signLord[sign]], h)
		}
		return m
	}
	lordsA, lordsB := lordsOf(groupA), lordsOf(groupB)

	seen := make(map[[2]astro.Body]bool)
	var out []Yoga
	for _, a := range astro.ClassicalPlanets {
		housesA, ok := lordsA[a]
		if !ok {
			continue
		}
		for _, b := range astro.ClassicalPlanets {
			housesB, ok := lordsB[b]
			if !ok || a == b {
				continue
			}
			first, second := a, b
			if second < first {
				first, second = second, first
			}
			key := [2]astro.Body{first, second}
			if seen[key] {
				continue
			}
			var s Strength
			switch {
			case c.exchange(a, b):
				s = Strong
			case c.conjunct(a, b):
				s = strengthFromOrb(astro.Separation(c.pos[a].Longitude, c.pos[b].Longitude))
			default:
				continue
			}
			seen[key] = true
			houses := unionInts(housesA, housesB, lordsA[b], lordsB[a])
			out = append(out, Yoga{
				Name:     fmt.Sprintf("%s (%s-%s)", name, first, second),
				Category: category,
				Bodies:   []astro.Body{first, second},
				Houses:   houses,
				Strength: s,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// unionInts merges the slices into one sorted, deduplicated list.
func unionInts(lists ...[]int) []int {
	set := make(map[int]bool)
	for _, xs := range lists {
		for _, x := range xs {
			set[x] = true
		}
	}
	out := make([]int, 0, len(set))
	for x := range set {
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}

// negativeYogas: afflictive combinations.
func negativeYogas(c chartCtx) []Yoga {
	var out []Yoga

	// Kemadruma: no classical planet (other than the Sun) in the 2nd or
	// 12th from the Moon, and none conjunct it.
	lonely := true
	for _, p := range astro.ClassicalPlanets {
		if p == astro.Sun || p == astro.Moon {
			continue
		}
		rel := (int(c.pos[p].Sign()) - int(c.pos[astro.Moon].Sign()) + 12) % 12
		if rel == 0 || rel == 1 || rel == 11 {
			lonely = false
			break
		}
	}
	if lonely {
		out = append(out, Yoga{
			Name:     "Kemadruma",
			Category: "negative",
			Bodies:   []astro.Body{astro.Moon},
			Houses:   []int{c.house(astro.Moon)},
			Strength: Strong,
		})
	}

	// Shakata: Moon in the 6th, 8th, or 12th from Jupiter.
	rel := (int(c.pos[astro.Moon].Sign())-int(c.pos[astro.Jupiter].Sign())+12)%12 + 1
	if rel == 6 || rel == 8 || rel == 12 {
		out = append(out, Yoga{
			Name:     "Shakata",
			Category: "negative",
			Bodies:   []astro.Body{astro.Moon, astro.Jupiter},
			Houses:   []int{c.house(astro.Moon)},
			Strength: Moderate,
		})
	}
	return out
}

// -----------------------------------------------------------------------------
// Strength grading
// -----------------------------------------------------------------------------

// strengthFromOrb grades a conjunction by longitude separation.
func strengthFromOrb(orb float64) Strength {
	switch {
	case orb <= 3:
		return Strong
	case orb <= 8:
		return Moderate
	default:
		return Weak
	}
}

// strengthFromTightness grades a dignity placement by distance from the
// exact dignity degree.
func strengthFromTightness(d float64) Strength {
	switch {
	case d <= 3:
		return Strong
	case d <= 10:
		return Moderate
	default:
		return Weak
	}
}
