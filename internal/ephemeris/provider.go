// Package ephemeris resolves raw ecliptic positions of celestial bodies.
//
// The engine only depends on the Provider interface; the bundled
// analytic provider computes low-precision geocentric positions from
// mean orbital elements and truncated lunar series, which is sufficient
// for sign/degree-level work. A higher-precision backend can be swapped
// in without touching any downstream package.
package ephemeris

import (
	"context"

	"stellium/internal/astro"
)

// RawPosition is the provider's answer for a single body query: tropical
// geocentric ecliptic coordinates of date plus daily motion.
type RawPosition struct {
	Longitude float64 // degrees, [0, 360)
	Latitude  float64 // degrees
	Distance  float64 // AU
	Speed     float64 // degrees/day, negative when retrograde
}

// Provider resolves one body at one moment. Implementations must be
// safe for concurrent use; the position resolver fans out one query per
// body. A body or moment outside the supported range fails with an
// error wrapping astro.ErrEphemerisUnavailable.
type Provider interface {
	Position(ctx context.Context, m astro.Moment, body astro.Body) (RawPosition, error)
}

// supportedRange for the analytic provider. The orbital element fits are
// calibrated for 1800–2050; outside that window the error grows without
// bound, so queries are refused rather than silently degraded.
const (
	minJulianDay = 2378497.0 // 1800-01-01
	maxJulianDay = 2469808.0 // 2050-01-01
)
