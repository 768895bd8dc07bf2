// Package humandesign maps two ephemeris snapshots (birth and the
// 88°-of-solar-arc design moment) onto the 64-gate wheel and derives
// channels, defined centers, type, authority, and profile.
package humandesign

import "stellium/internal/astro"

// Gate numbers 1..64. Line numbers 1..6 within a gate.
type Gate int
type Line int

// gateSpan is 360/64 degrees; lineSpan divides a gate into six.
const (
	gateSpan = 5.625
	lineSpan = gateSpan / 6
)

// wheelStart anchors the wheel: gate order position 0 begins at
// 2° Aquarius, not at 0° Aries.
const wheelStart = 302.0

// wheelOrder is the fixed zodiacal gate sequence starting from
// wheelStart. 64 entries covering the circle without gaps.
var wheelOrder = [64]Gate{
	41, 19, 13, 49, 30, 55, 37, 63,
	22, 36, 25, 17, 21, 51, 42, 3,
	27, 24, 2, 23, 8, 20, 16, 35,
	45, 12, 15, 52, 39, 53, 62, 56,
	31, 33, 7, 4, 29, 59, 40, 64,
	47, 6, 46, 18, 48, 57, 32, 50,
	28, 44, 1, 43, 14, 34, 9, 5,
	26, 11, 10, 58, 38, 54, 61, 60,
}

// GateOf maps an ecliptic longitude to its gate and line.
func GateOf(longitude float64) (Gate, Line) {
	offset := astro.Forward(wheelStart, longitude)
	idx := int(offset / gateSpan)
	if idx > 63 { // guard the 360° wrap at float edge
		idx = 63
	}
	line := Line(int((offset-float64(idx)*gateSpan)/lineSpan)) + 1
	if line > 6 {
		line = 6
	}
	return wheelOrder[idx], line
}

// Center is one of the nine energy centers.
type Center string

const (
	Head        Center = "head"
	Ajna        Center = "ajna"
	Throat      Center = "throat"
	G           Center = "g"
	Heart       Center = "heart"
	SolarPlexus Center = "solar_plexus"
	Sacral      Center = "sacral"
	Spleen      Center = "spleen"
	Root        Center = "root"
)

// centerGates partitions the 64 gates across the nine centers.
var centerGates = map[Center][]Gate{
	Head:        {61, 63, 64},
	Ajna:        {4, 11, 17, 24, 43, 47},
	Throat:      {8, 12, 16, 20, 23, 31, 33, 35, 45, 56, 62},
	G:           {1, 2, 7, 10, 13, 15, 25, 46},
	Heart:       {21, 26, 40, 51},
	SolarPlexus: {6, 22, 30, 36, 37, 49, 55},
	Sacral:      {3, 5, 9, 14, 27, 29, 34, 42, 59},
	Spleen:      {18, 28, 32, 44, 48, 50, 57},
	Root:        {19, 38, 39, 41, 52, 53, 54, 58, 60},
}

// gateCenter is the inverse lookup, built once at init.
var gateCenter = func() map[Gate]Center {
	m := make(map[Gate]Center, 64)
	for c, gates := range centerGates {
		for _, g := range gates {
			m[g] = c
		}
	}
	return m
}()

// motorCenters can power manifestation; type derivation asks whether a
// defined channel path connects any of them to the throat.
var motorCenters = map[Center]bool{
	Sacral: true, SolarPlexus: true, Heart: true, Root: true,
}

// Channel is a fixed pair of gates bridging two centers.
type Channel struct {
	A, B Gate
}

// channels is the fixed catalog of all 36 gate pairings.
var channels = [36]Channel{
	{1, 8}, {2, 14}, {3, 60}, {4, 63}, {5, 15}, {6, 59},
	{7, 31}, {9, 52}, {10, 20}, {10, 34}, {10, 57}, {11, 56},
	{12, 22}, {13, 33}, {16, 48}, {17, 62}, {18, 58}, {19, 49},
	{20, 34}, {20, 57}, {21, 45}, {23, 43}, {24, 61}, {25, 51},
	{26, 44}, {27, 50}, {28, 38}, {29, 46}, {30, 41}, {32, 54},
	{34, 57}, {35, 36}, {37, 40}, {39, 55}, {42, 53}, {47, 64},
}

// Centers returns the two centers a channel bridges.
func (c Channel) Centers() (Center, Center) {
	return gateCenter[c.A], gateCenter[c.B]
}
