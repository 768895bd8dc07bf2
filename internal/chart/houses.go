package chart

import (
	"fmt"
	"math"

	"stellium/internal/astro"
	"stellium/internal/ephemeris"
)

// HouseSystem tags a house-division algorithm.
type HouseSystem string

const (
	Placidus  HouseSystem = "placidus"
	Koch      HouseSystem = "koch"
	WholeSign HouseSystem = "whole_sign"
	Equal     HouseSystem = "equal"
)

// timeBasedLatitudeLimit: beyond this latitude the diurnal semi-arc
// division of Placidus and Koch has no solution (the ecliptic can stay
// entirely above or below the horizon).
const timeBasedLatitudeLimit = 66.0

// Houses is the result of a house calculation. Cusps[0] is the first
// house cusp; for quadrant systems it equals the Ascendant.
type Houses struct {
	System    HouseSystem
	Cusps     [12]float64
	Ascendant float64
	MC        float64
}

// HouseOptions configures the frame of the returned cusps.
type HouseOptions struct {
	Mode     ZodiacMode
	Ayanamsa ephemeris.Ayanamsa
}

// CalculateHouses computes the 12 cusps for a moment and place. Fails
// with astro.ErrHouseSystemUndefined when a time-based system is
// requested too close to the poles.
func CalculateHouses(m astro.Moment, loc astro.GeoLocation, system HouseSystem, opts HouseOptions) (Houses, error) {
	if err := loc.Validate(); err != nil {
		return Houses{}, fmt.Errorf("invalid location: %w", err)
	}

	ramc := localSiderealTime(m, loc.Longitude)
	eps := obliquity(m)
	asc := ascendantAt(ramc, loc.Latitude, eps)
	mc := midheavenAt(ramc, eps)

	h := Houses{System: system, Ascendant: asc, MC: mc}
	switch system {
	case Equal:
		for i := range h.Cusps {
			h.Cusps[i] = astro.Normalize(asc + 30*float64(i))
		}
	case WholeSign:
		start := float64(int(asc/30)) * 30
		for i := range h.Cusps {
			h.Cusps[i] = astro.Normalize(start + 30*float64(i))
		}
	case Placidus:
		if math.Abs(loc.Latitude) > timeBasedLatitudeLimit {
			return Houses{}, fmt.Errorf("placidus at latitude %.2f: %w", loc.Latitude, astro.ErrHouseSystemUndefined)
		}
		placidusCusps(&h, ramc, loc.Latitude, eps)
	case Koch:
		if math.Abs(loc.Latitude) > timeBasedLatitudeLimit {
			return Houses{}, fmt.Errorf("koch at latitude %.2f: %w", loc.Latitude, astro.ErrHouseSystemUndefined)
		}
		if err := kochCusps(&h, ramc, loc.Latitude, eps); err != nil {
			return Houses{}, err
		}
	default:
		return Houses{}, fmt.Errorf("unknown house system %q", system)
	}

	if opts.Mode == Sidereal {
		ay, err := ephemeris.AyanamsaValue(opts.Ayanamsa, m)
		if err != nil {
			return Houses{}, fmt.Errorf("resolving ayanamsa: %w", err)
		}
		for i := range h.Cusps {
			h.Cusps[i] = astro.Normalize(h.Cusps[i] - ay)
		}
		h.Ascendant = astro.Normalize(h.Ascendant - ay)
		h.MC = astro.Normalize(h.MC - ay)
	}
	return h, nil
}

// HouseOf returns the 1-based house containing the longitude: house k
// covers the half-open circular arc [cusp_k, cusp_{k+1}).
func (h Houses) HouseOf(longitude float64) int {
	for i := 0; i < 12; i++ {
		next := (i + 1) % 12
		span := astro.Forward(h.Cusps[i], h.Cusps[next])
		if span == 0 {
			continue
		}
		if astro.Forward(h.Cusps[i], longitude) < span {
			return i + 1
		}
	}
	// Unreachable for well-formed cusps; degenerate input lands in 1.
	return 1
}

// -----------------------------------------------------------------------------
// Spherical astronomy
// -----------------------------------------------------------------------------

// localSiderealTime returns the right ascension of the local meridian
// (RAMC) in degrees. eastLongitude follows the east-positive convention.
func localSiderealTime(m astro.Moment, eastLongitude float64) float64 {
	d := m.JulianDay - astro.J2000
	t := m.JulianCenturies()
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000
	return astro.Normalize(gmst + eastLongitude)
}

// obliquity of the ecliptic, degrees.
func obliquity(m astro.Moment) float64 {
	t := m.JulianCenturies()
	return 23.43929111 - 0.01300417*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// ascendantAt solves for the ecliptic longitude rising on the eastern
// horizon at the given sidereal time.
func ascendantAt(ramc, latitude, eps float64) float64 {
	ra := astro.Radians(ramc)
	er := astro.Radians(eps)
	fr := astro.Radians(latitude)
	asc := math.Atan2(math.Cos(ra), -(math.Sin(ra)*math.Cos(er) + math.Tan(fr)*math.Sin(er)))
	return astro.Normalize(astro.Degrees(asc))
}

// midheavenAt is the ecliptic longitude culminating at the given
// sidereal time.
func midheavenAt(ramc, eps float64) float64 {
	ra := astro.Radians(ramc)
	er := astro.Radians(eps)
	return astro.Normalize(astro.Degrees(math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(er))))
}

// eclipticFromRA converts the right ascension of a point on the
// ecliptic back to its ecliptic longitude.
func eclipticFromRA(raDeg, eps float64) float64 {
	ra := astro.Radians(raDeg)
	er := astro.Radians(eps)
	return astro.Normalize(astro.Degrees(math.Atan2(math.Sin(ra), math.Cos(ra)*math.Cos(er))))
}

// -----------------------------------------------------------------------------
// Placidus
// -----------------------------------------------------------------------------

// placidusCusps fills the intermediate cusps by iterating the classic
// semi-arc trisection. For each cusp the right ascension is refined
// until the point's hour angle equals the required fraction of its own
// diurnal (or nocturnal) semi-arc; the latitude guard above keeps the
// acos argument in range.
func placidusCusps(h *Houses, ramc, latitude, eps float64) {
	tanPhiTanEps := math.Tan(astro.Radians(latitude)) * math.Tan(astro.Radians(eps))

	solve := func(offset, f float64, nocturnal bool) float64 {
		ra := astro.Normalize(ramc + offset)
		for i := 0; i < 40; i++ {
			var next float64
			if nocturnal {
				next = ramc + 180 - f*astro.Degrees(math.Acos(clamp(math.Sin(astro.Radians(ra))*tanPhiTanEps)))
			} else {
				next = ramc + f*astro.Degrees(math.Acos(clamp(-math.Sin(astro.Radians(ra))*tanPhiTanEps)))
			}
			next = astro.Normalize(next)
			if math.Abs(astro.SignedDelta(ra, next)) < 1e-7 {
				ra = next
				break
			}
			ra = next
		}
		return eclipticFromRA(ra, eps)
	}

	h.Cusps[0] = h.Ascendant
	h.Cusps[9] = h.MC
	h.Cusps[10] = solve(30, 1.0/3, false)  // house 11
	h.Cusps[11] = solve(60, 2.0/3, false)  // house 12
	h.Cusps[1] = solve(120, 2.0/3, true)   // house 2
	h.Cusps[2] = solve(150, 1.0/3, true)   // house 3
	for i := 3; i < 9; i++ {
		h.Cusps[i] = astro.Normalize(h.Cusps[(i+6)%12] + 180)
	}
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// -----------------------------------------------------------------------------
// Koch
// -----------------------------------------------------------------------------

// kochCusps places the intermediate cusps at the ascendants of the
// sidereal times that trisect the MC degree's semi-arcs. The anchors
// fall out exactly: offset -90-AD reproduces the MC and offset 0 the
// Ascendant.
func kochCusps(h *Houses, ramc, latitude, eps float64) error {
	sinDec := math.Sin(astro.Radians(eps)) * math.Sin(astro.Radians(h.MC))
	dec := math.Asin(sinDec)
	x := math.Tan(astro.Radians(latitude)) * math.Tan(dec)
	if math.Abs(x) >= 1 {
		return fmt.Errorf("koch at latitude %.2f: %w", latitude, astro.ErrHouseSystemUndefined)
	}
	ad := astro.Degrees(math.Asin(x)) // ascensional difference of the MC degree

	h.Cusps[0] = h.Ascendant
	h.Cusps[9] = h.MC
	h.Cusps[10] = ascendantAt(ramc-60-2*ad/3, latitude, eps) // house 11
	h.Cusps[11] = ascendantAt(ramc-30-ad/3, latitude, eps)   // house 12
	h.Cusps[1] = ascendantAt(ramc+30+ad/3, latitude, eps)    // house 2
	h.Cusps[2] = ascendantAt(ramc+60+2*ad/3, latitude, eps)  // house 3

	for i := 3; i < 9; i++ {
		h.Cusps[i] = astro.Normalize(h.Cusps[(i+6)%12] + 180)
	}
	return nil
}
