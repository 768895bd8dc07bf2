package ephemeris

import (
	"fmt"

	"stellium/internal/astro"
)

// Ayanamsa identifies a sidereal zodiac reference.
type Ayanamsa string

const (
	AyanamsaLahiri       Ayanamsa = "lahiri"
	AyanamsaRaman        Ayanamsa = "raman"
	AyanamsaKrishnamurti Ayanamsa = "krishnamurti"
)

// ayanamsaModel is an epoch value plus a linear drift at the general
// precession rate. The slow quadratic terms are below the provider's
// own accuracy and are omitted.
type ayanamsaModel struct {
	valueAtJ2000 float64 // degrees
	ratePerYear  float64 // degrees/Julian year
}

// precessionPerYear is the general precession in longitude, deg/year.
const precessionPerYear = 50.28796 / 3600

var ayanamsaModels = map[Ayanamsa]ayanamsaModel{
	AyanamsaLahiri:       {23.85408, precessionPerYear},
	AyanamsaRaman:        {22.46295, precessionPerYear},
	AyanamsaKrishnamurti: {23.75873, precessionPerYear},
}

// AyanamsaValue returns the tropical-minus-sidereal offset, in degrees,
// for the given moment. Unknown ids fail rather than defaulting.
func AyanamsaValue(id Ayanamsa, m astro.Moment) (float64, error) {
	model, ok := ayanamsaModels[id]
	if !ok {
		return 0, fmt.Errorf("unknown ayanamsa %q", id)
	}
	years := (m.JulianDay - astro.J2000) / astro.DaysPerYear
	return model.valueAtJ2000 + model.ratePerYear*years, nil
}
