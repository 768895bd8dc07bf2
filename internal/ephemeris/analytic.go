package ephemeris

import (
	"context"
	"fmt"
	"math"

	"stellium/internal/astro"
)

// Analytic is the bundled low-precision provider. It is stateless and
// safe for concurrent use.
type Analytic struct{}

// NewAnalytic returns the bundled provider.
func NewAnalytic() *Analytic { return &Analytic{} }

// speedStep is the half-interval, in days, of the central difference
// used to derive daily motion.
const speedStep = 0.5

// Position implements Provider.
func (a *Analytic) Position(ctx context.Context, m astro.Moment, body astro.Body) (RawPosition, error) {
	if err := ctx.Err(); err != nil {
		return RawPosition{}, err
	}
	if m.JulianDay < minJulianDay || m.JulianDay > maxJulianDay {
		return RawPosition{}, fmt.Errorf("%s at JD %.2f outside supported range: %w",
			body, m.JulianDay, astro.ErrEphemerisUnavailable)
	}

	lon, lat, dist, err := eclipticOfDate(m, body)
	if err != nil {
		return RawPosition{}, err
	}

	// Daily motion from a central difference, wrap-safe.
	before, _, _, err := eclipticOfDate(m.AddDays(-speedStep), body)
	if err != nil {
		return RawPosition{}, err
	}
	after, _, _, err := eclipticOfDate(m.AddDays(speedStep), body)
	if err != nil {
		return RawPosition{}, err
	}
	speed := astro.SignedDelta(before, after) / (2 * speedStep)

	return RawPosition{
		Longitude: astro.Normalize(lon),
		Latitude:  lat,
		Distance:  dist,
		Speed:     speed,
	}, nil
}

// eclipticOfDate dispatches to the per-body models and returns tropical
// geocentric longitude/latitude (degrees) and distance (AU).
func eclipticOfDate(m astro.Moment, body astro.Body) (lon, lat, dist float64, err error) {
	switch body {
	case astro.Sun:
		lon, lat, dist = sunPosition(m)
	case astro.Earth:
		slon, slat, sdist := sunPosition(m)
		lon, lat, dist = astro.Normalize(slon+180), -slat, sdist
	case astro.Moon:
		lon, lat, dist = moonPosition(m)
	case astro.Rahu:
		lon, lat, dist = meanNode(m), 0, moonMeanDistance
	case astro.Ketu:
		lon, lat, dist = astro.Normalize(meanNode(m)+180), 0, moonMeanDistance
	case astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter,
		astro.Saturn, astro.Uranus, astro.Neptune, astro.Pluto:
		lon, lat, dist = planetGeocentric(m, body)
	default:
		return 0, 0, 0, fmt.Errorf("no model for %s: %w", body, astro.ErrEphemerisUnavailable)
	}
	return lon, lat, dist, nil
}

// moonMeanDistance in AU, reported for the nodes.
const moonMeanDistance = 0.00257

// -----------------------------------------------------------------------------
// Sun (geocentric, from the Earth-Moon barycenter elements)
// -----------------------------------------------------------------------------

func sunPosition(m astro.Moment) (lon, lat, dist float64) {
	t := m.JulianCenturies()
	hl, hb, r := heliocentric(earthElements, t)
	return astro.Normalize(hl + 180 + precession(t)), -hb, r
}

// precession is the accumulated general precession in longitude since
// J2000, converting J2000-referred longitudes to longitudes of date.
func precession(t float64) float64 {
	return 1.3969713*t + 0.0003086*t*t
}

// -----------------------------------------------------------------------------
// Moon: truncated analytic series, ~0.3° accuracy
// -----------------------------------------------------------------------------

func moonPosition(m astro.Moment) (lon, lat, dist float64) {
	t := m.JulianCenturies()
	sin := func(deg float64) float64 { return math.Sin(astro.Radians(deg)) }
	cos := func(deg float64) float64 { return math.Cos(astro.Radians(deg)) }

	lon = 218.32 + 481267.8813*t +
		6.29*sin(134.9+477198.85*t) -
		1.27*sin(259.2-413335.38*t) +
		0.66*sin(235.7+890534.23*t) +
		0.21*sin(269.9+954397.70*t) -
		0.19*sin(357.5+35999.05*t) -
		0.11*sin(186.6+966404.05*t)

	lat = 5.13*sin(93.3+483202.03*t) +
		0.28*sin(228.2+960400.87*t) -
		0.28*sin(318.3+6003.18*t) -
		0.17*sin(217.6-407332.20*t)

	// Horizontal parallax series gives the distance.
	par := 0.9508 +
		0.0518*cos(134.9+477198.85*t) +
		0.0095*cos(259.2-413335.38*t) +
		0.0078*cos(235.7+890534.23*t) +
		0.0028*cos(269.9+954397.70*t)
	const earthRadiusAU = 4.2635e-5
	dist = earthRadiusAU / math.Sin(astro.Radians(par))

	return astro.Normalize(lon), lat, dist
}

// meanNode is the mean longitude of the Moon's ascending node.
func meanNode(m astro.Moment) float64 {
	t := m.JulianCenturies()
	return astro.Normalize(125.0445479 - 1934.1362891*t + 0.0020754*t*t)
}

// -----------------------------------------------------------------------------
// Planets: Keplerian mean elements (J2000 ecliptic), geocentric reduction
// -----------------------------------------------------------------------------

// elements holds mean orbital elements at J2000 and their per-century
// rates: semi-major axis (AU), eccentricity, inclination, mean
// longitude, longitude of perihelion, longitude of ascending node (deg).
type elements struct {
	a, e, i, l, lp, node     float64
	da, de, di, dl, dlp, dnd float64
}

var planetElements = map[astro.Body]elements{
	astro.Mercury: {0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081},
	astro.Venus: {0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418},
	astro.Mars: {1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343},
	astro.Jupiter: {5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106},
	astro.Saturn: {9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794},
	astro.Uranus: {19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589},
	astro.Neptune: {30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664},
	astro.Pluto: {39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482},
}

var earthElements = elements{
	1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0,
	0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0,
}

// heliocentric evaluates the elements at t Julian centuries since J2000
// and returns heliocentric ecliptic longitude/latitude (deg) and radius
// (AU), referred to the J2000 ecliptic.
func heliocentric(el elements, t float64) (lon, lat, r float64) {
	a := el.a + el.da*t
	e := el.e + el.de*t
	inc := astro.Radians(el.i + el.di*t)
	l := el.l + el.dl*t
	lp := el.lp + el.dlp*t
	node := astro.Radians(el.node + el.dnd*t)

	meanAnomaly := astro.Radians(astro.Normalize(l - lp))
	ea := solveKepler(meanAnomaly, e)

	// True anomaly and radius.
	nu := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(ea/2), math.Sqrt(1-e)*math.Cos(ea/2))
	r = a * (1 - e*math.Cos(ea))

	// Argument of latitude = argument of perihelion + true anomaly.
	argLat := astro.Radians(astro.Normalize(lp-el.node-el.dnd*t)) + nu

	sinLat := math.Sin(argLat) * math.Sin(inc)
	lat = astro.Degrees(math.Asin(sinLat))
	lon = astro.Degrees(node + math.Atan2(math.Sin(argLat)*math.Cos(inc), math.Cos(argLat)))
	return astro.Normalize(lon), lat, r
}

// solveKepler iterates Newton's method on Kepler's equation. Converges
// in a handful of steps for every planetary eccentricity; the iteration
// cap guards pathological inputs.
func solveKepler(meanAnomaly, e float64) float64 {
	ea := meanAnomaly
	if e > 0.8 {
		ea = math.Pi
	}
	for i := 0; i < 30; i++ {
		delta := (ea - e*math.Sin(ea) - meanAnomaly) / (1 - e*math.Cos(ea))
		ea -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ea
}

// planetGeocentric reduces a planet's heliocentric position to
// geocentric ecliptic coordinates of date.
func planetGeocentric(m astro.Moment, body astro.Body) (lon, lat, dist float64) {
	t := m.JulianCenturies()
	pl, pb, pr := heliocentric(planetElements[body], t)
	el, eb, er := heliocentric(earthElements, t)

	// Rectangular heliocentric coordinates.
	px, py, pz := rectangular(pl, pb, pr)
	ex, ey, ez := rectangular(el, eb, er)

	gx, gy, gz := px-ex, py-ey, pz-ez
	dist = math.Sqrt(gx*gx + gy*gy + gz*gz)
	lon = astro.Normalize(astro.Degrees(math.Atan2(gy, gx)) + precession(t))
	lat = astro.Degrees(math.Asin(gz / dist))
	return lon, lat, dist
}

func rectangular(lonDeg, latDeg, r float64) (x, y, z float64) {
	lon, lat := astro.Radians(lonDeg), astro.Radians(latDeg)
	x = r * math.Cos(lat) * math.Cos(lon)
	y = r * math.Cos(lat) * math.Sin(lon)
	z = r * math.Sin(lat)
	return
}
