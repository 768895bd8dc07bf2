package astro

import "math"

// Normalize wraps an angle into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Separation is the shortest angular distance between two longitudes,
// always in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedDelta is the signed shortest arc from a to b, in (-180, 180].
func SignedDelta(a, b float64) float64 {
	d := Normalize(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// Forward is the arc traversed moving zodiacally forward from a to b,
// in [0, 360).
func Forward(a, b float64) float64 {
	return Normalize(b - a)
}

// Radians and Degrees convert between the two angle units.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
