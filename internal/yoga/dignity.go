// Package yoga pattern-matches planetary sign, house, and dignity
// configurations against a catalog of named classical combinations.
package yoga

import (
	"math"

	"stellium/internal/astro"
)

// Dignity classifies a planet's essential strength in its sign.
type Dignity string

const (
	Exalted     Dignity = "exalted"
	OwnSign     Dignity = "own_sign"
	Debilitated Dignity = "debilitated"
	Neutral     Dignity = "neutral"
)

// exaltation holds each planet's exaltation sign and the degree of
// deepest exaltation within it. Debilitation is the opposite sign at
// the same degree.
var exaltation = map[astro.Body]struct {
	Sign   astro.Sign
	Degree float64
}{
	astro.Sun:     {astro.Aries, 10},
	astro.Moon:    {astro.Taurus, 3},
	astro.Mars:    {astro.Capricorn, 28},
	astro.Mercury: {astro.Virgo, 15},
	astro.Jupiter: {astro.Cancer, 5},
	astro.Venus:   {astro.Pisces, 27},
	astro.Saturn:  {astro.Libra, 20},
}

// ownSigns are the signs each planet rules.
var ownSigns = map[astro.Body][]astro.Sign{
	astro.Sun:     {astro.Leo},
	astro.Moon:    {astro.Cancer},
	astro.Mars:    {astro.Aries, astro.Scorpio},
	astro.Mercury: {astro.Gemini, astro.Virgo},
	astro.Jupiter: {astro.Sagittarius, astro.Pisces},
	astro.Venus:   {astro.Taurus, astro.Libra},
	astro.Saturn:  {astro.Capricorn, astro.Aquarius},
}

// signLord maps every sign to its ruling planet.
var signLord = [12]astro.Body{
	astro.Mars, astro.Venus, astro.Mercury, astro.Moon,
	astro.Sun, astro.Mercury, astro.Venus, astro.Mars,
	astro.Jupiter, astro.Saturn, astro.Saturn, astro.Jupiter,
}

// DignityOf classifies a planet's placement. Bodies without dignity
// tables (nodes, outer planets) are always Neutral.
func DignityOf(p astro.BodyPosition) Dignity {
	ex, ok := exaltation[p.Body]
	if !ok {
		return Neutral
	}
	sign := p.Sign()
	if sign == ex.Sign {
		return Exalted
	}
	if sign == astro.Sign((int(ex.Sign)+6)%12) {
		return Debilitated
	}
	for _, s := range ownSigns[p.Body] {
		if s == sign {
			return OwnSign
		}
	}
	return Neutral
}

// dignityTightness measures, in degrees, how close an exalted or
// debilitated planet stands to its exact degree; own-sign placements
// report the distance to the sign midpoint. Used for strength grading.
func dignityTightness(p astro.BodyPosition) float64 {
	ex, ok := exaltation[p.Body]
	if !ok {
		return 15
	}
	switch DignityOf(p) {
	case Exalted, Debilitated:
		return math.Abs(p.DegreeInSign() - ex.Degree)
	default:
		return math.Abs(p.DegreeInSign() - 15)
	}
}
