// Package astro provides the shared foundational types used across stellium
// packages: moments on the astronomical timescale, geographic locations,
// celestial body identifiers and resolved body positions.
// This package exists to break import cycles between the ephemeris,
// chart, and derived-analysis packages. Types in this package are plain
// value types with no complex dependencies.
package astro

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// TIME
// =============================================================================

// Moment is an instant in time normalized to Julian Day in Universal Time.
// The civil UTC offset used at construction is retained for display only
// and never participates in computation. Moments are immutable.
type Moment struct {
	// JulianDay is the continuous astronomical day count in UT.
	JulianDay float64

	// UTCOffset is the originating civil timezone offset, display only.
	UTCOffset time.Duration
}

// J2000 is the standard reference epoch (2000 January 1.5 TT).
const J2000 = 2451545.0

// NewMoment builds a Moment from a civil date/time and its UTC offset.
// The civil time is converted to UT before the Julian Day conversion, so
// two Moments built from the same instant in different zones are equal.
func NewMoment(year, month, day, hour, min int, sec float64, offset time.Duration) Moment {
	dayFrac := (float64(hour) + float64(min)/60 + sec/3600 - offset.Hours()) / 24
	return Moment{
		JulianDay: julianDay(year, month, float64(day)+dayFrac),
		UTCOffset: offset,
	}
}

// MomentFromTime builds a Moment from a time.Time, preserving its zone
// offset for display.
func MomentFromTime(t time.Time) Moment {
	_, offsetSec := t.Zone()
	u := t.UTC()
	sec := float64(u.Second()) + float64(u.Nanosecond())/1e9
	return NewMoment(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), sec, time.Duration(offsetSec)*time.Second)
}

// julianDay implements the standard Gregorian calendar conversion.
// Valid for all dates after 1582-10-15; earlier dates are out of the
// supported ephemeris range anyway.
func julianDay(year, month int, day float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + day + float64(b) - 1524.5
}

// AddDays returns a Moment offset by the given (possibly fractional,
// possibly negative) number of days. The display offset is retained.
func (m Moment) AddDays(days float64) Moment {
	return Moment{JulianDay: m.JulianDay + days, UTCOffset: m.UTCOffset}
}

// AddYears offsets by fractional Julian years (365.25 days).
func (m Moment) AddYears(years float64) Moment {
	return m.AddDays(years * DaysPerYear)
}

// DaysPerYear is the Julian year length used for all period arithmetic.
const DaysPerYear = 365.25

// JulianCenturies returns centuries elapsed since J2000.0.
func (m Moment) JulianCenturies() float64 {
	return (m.JulianDay - J2000) / 36525.0
}

// Before reports whether m precedes other.
func (m Moment) Before(other Moment) bool { return m.JulianDay < other.JulianDay }

// Time converts back to civil time in the Moment's display zone.
func (m Moment) Time() time.Time {
	// Unix epoch is JD 2440587.5.
	sec := (m.JulianDay - 2440587.5) * 86400
	utc := time.Unix(0, int64(sec*1e9)).UTC()
	return utc.In(time.FixedZone("", int(m.UTCOffset.Seconds())))
}

func (m Moment) String() string {
	return m.Time().Format("2006-01-02 15:04:05 -07:00")
}

// =============================================================================
// LOCATION
// =============================================================================

// GeoLocation is a point on Earth. Required by house and Human Design
// calculations; position-only queries ignore it.
type GeoLocation struct {
	Latitude  float64 // degrees, north positive, [-90, 90]
	Longitude float64 // degrees, east positive, [-180, 180]
}

// Validate checks the coordinate ranges.
func (g GeoLocation) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", g.Longitude)
	}
	return nil
}

// =============================================================================
// BODIES AND SIGNS
// =============================================================================

// Body identifies a celestial body or computed point.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Rahu // mean ascending lunar node
	Ketu // mean descending lunar node, always Rahu + 180°
	Earth
	Ascendant
	numBodies
)

var bodyNames = [...]string{
	Sun: "Sun", Moon: "Moon", Mercury: "Mercury", Venus: "Venus",
	Mars: "Mars", Jupiter: "Jupiter", Saturn: "Saturn", Uranus: "Uranus",
	Neptune: "Neptune", Pluto: "Pluto", Rahu: "Rahu", Ketu: "Ketu",
	Earth: "Earth", Ascendant: "Ascendant",
}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Valid reports whether b names a known body.
func (b Body) Valid() bool { return b >= 0 && b < numBodies }

// ClassicalPlanets are the seven bodies of the traditional system, used
// by the Ashtakavarga and Yoga calculations.
var ClassicalPlanets = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

// ModernBodies are the bodies tracked for western charts and Human Design.
var ModernBodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn,
	Uranus, Neptune, Pluto, Rahu, Ketu,
}

// Sign is one of the twelve zodiac signs, Aries = 0.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// SignOf maps an ecliptic longitude to its zodiac sign.
func SignOf(longitude float64) Sign {
	return Sign(int(Normalize(longitude)/30) % 12)
}

// =============================================================================
// POSITIONS
// =============================================================================

// BodyPosition is a resolved position of a body at a single Moment.
// Longitude is always normalized into [0, 360).
type BodyPosition struct {
	Body      Body
	Longitude float64 // ecliptic longitude, degrees
	Latitude  float64 // ecliptic latitude, degrees
	Distance  float64 // AU
	Speed     float64 // degrees/day; negative means retrograde
}

// Sign is the zodiac sign containing the position.
func (p BodyPosition) Sign() Sign { return SignOf(p.Longitude) }

// DegreeInSign is the position's offset into its sign, [0, 30).
func (p BodyPosition) DegreeInSign() float64 {
	return math.Mod(Normalize(p.Longitude), 30)
}

// Retrograde reports apparent backward motion.
func (p BodyPosition) Retrograde() bool { return p.Speed < 0 }

func (p BodyPosition) String() string {
	return fmt.Sprintf("%s %.4f° (%s %.2f°)", p.Body, p.Longitude, p.Sign(), p.DegreeInSign())
}
