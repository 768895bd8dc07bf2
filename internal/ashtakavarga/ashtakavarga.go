// Package ashtakavarga computes the classical eight-source benefic
// point tables: for each of the seven planets, every zodiac sign scores
// 0–8 bindus depending on how many of the eight contributors (the seven
// planets plus the ascendant) mark that sign as benefic relative to
// their own placement. Summing the per-planet tables sign-wise yields
// the Sarvashtakavarga.
package ashtakavarga

import (
	"fmt"
	"sort"

	"stellium/internal/astro"
)

// Contributors in fixed order: the seven classical planets and the
// ascendant.
var contributors = [8]astro.Body{
	astro.Sun, astro.Moon, astro.Mars, astro.Mercury,
	astro.Jupiter, astro.Venus, astro.Saturn, astro.Ascendant,
}

// beneficHouses[target][contributor] lists the houses, counted from the
// contributor's own sign, that are benefic for the target planet. These
// are the standard Parashari tables; the classical per-planet totals
// (Sun 48, Moon 49, Mars 39, Mercury 54, Jupiter 56, Venus 52,
// Saturn 39, in all 337) pin them down exactly.
var beneficHouses = map[astro.Body]map[astro.Body][]int{
	astro.Sun: {
		astro.Sun:       {1, 2, 4, 7, 8, 9, 10, 11},
		astro.Moon:      {3, 6, 10, 11},
		astro.Mars:      {1, 2, 4, 7, 8, 9, 10, 11},
		astro.Mercury:   {3, 5, 6, 9, 10, 11, 12},
		astro.Jupiter:   {5, 6, 9, 11},
		astro.Venus:     {6, 7, 12},
		astro.Saturn:    {1, 2, 4, 7, 8, 9, 10, 11},
		astro.Ascendant: {3, 4, 6, 10, 11, 12},
	},
	astro.Moon: {
		astro.Sun:       {3, 6, 7, 8, 10, 11},
		astro.Moon:      {1, 3, 6, 7, 10, 11},
		astro.Mars:      {2, 3, 5, 6, 9, 10, 11},
		astro.Mercury:   {1, 3, 4, 5, 7, 8, 10, 11},
		astro.Jupiter:   {1, 4, 7, 8, 10, 11, 12},
		astro.Venus:     {3, 4, 5, 7, 9, 10, 11},
		astro.Saturn:    {3, 5, 6, 11},
		astro.Ascendant: {3, 6, 10, 11},
	},
	astro.Mars: {
		astro.Sun:       {3, 5, 6, 10, 11},
		astro.Moon:      {3, 6, 11},
		astro.Mars:      {1, 2, 4, 7, 8, 10, 11},
		astro.Mercury:   {3, 5, 6, 11},
		astro.Jupiter:   {6, 10, 11, 12},
		astro.Venus:     {6, 8, 11, 12},
		astro.Saturn:    {1, 4, 7, 8, 9, 10, 11},
		astro.Ascendant: {1, 3, 6, 10, 11},
	},
	astro.Mercury: {
		astro.Sun:       {5, 6, 9, 11, 12},
		astro.Moon:      {2, 4, 6, 8, 10, 11},
		astro.Mars:      {1, 2, 4, 7, 8, 9, 10, 11},
		astro.Mercury:   {1, 3, 5, 6, 9, 10, 11, 12},
		astro.Jupiter:   {6, 8, 11, 12},
		astro.Venus:     {1, 2, 3, 4, 5, 8, 9, 11},
		astro.Saturn:    {1, 2, 4, 7, 8, 9, 10, 11},
		astro.Ascendant: {1, 2, 4, 6, 8, 10, 11},
	},
	astro.Jupiter: {
		astro.Sun:       {1, 2, 3, 4, 7, 8, 9, 10, 11},
		astro.Moon:      {2, 5, 7, 9, 11},
		astro.Mars:      {1, 2, 4, 7, 8, 10, 11},
		astro.Mercury:   {1, 2, 4, 5, 6, 9, 10, 11},
		astro.Jupiter:   {1, 2, 3, 4, 7, 8, 10, 11},
		astro.Venus:     {2, 5, 6, 9, 10, 11},
		astro.Saturn:    {3, 5, 6, 12},
		astro.Ascendant: {1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	astro.Venus: {
		astro.Sun:       {8, 11, 12},
		astro.Moon:      {1, 2, 3, 4, 5, 8, 9, 11, 12},
		astro.Mars:      {3, 5, 6, 9, 11, 12},
		astro.Mercury:   {3, 5, 6, 9, 11},
		astro.Jupiter:   {5, 8, 9, 10, 11},
		astro.Venus:     {1, 2, 3, 4, 5, 8, 9, 10, 11},
		astro.Saturn:    {3, 4, 5, 8, 9, 10, 11},
		astro.Ascendant: {1, 2, 3, 4, 5, 8, 9, 11},
	},
	astro.Saturn: {
		astro.Sun:       {1, 2, 4, 7, 8, 10, 11},
		astro.Moon:      {3, 6, 11},
		astro.Mars:      {3, 5, 6, 10, 11, 12},
		astro.Mercury:   {6, 8, 9, 10, 11, 12},
		astro.Jupiter:   {5, 6, 11, 12},
		astro.Venus:     {6, 11, 12},
		astro.Saturn:    {3, 5, 6, 11},
		astro.Ascendant: {1, 3, 4, 6, 10, 11},
	},
}

// BindusTable is one planet's bindu count per sign, Aries first. Every
// entry lies in [0, 8].
type BindusTable [12]int

// Total sums the table.
func (t BindusTable) Total() int {
	sum := 0
	for _, v := range t {
		sum += v
	}
	return sum
}

// Result holds the per-planet (Bhinnashtakavarga) tables and their
// sign-wise sum (Sarvashtakavarga).
type Result struct {
	Planets map[astro.Body]BindusTable
	Sarva   [12]int
}

// Calculate builds all tables from the seven classical planet
// placements plus the ascendant longitude. A missing planet fails with
// astro.ErrIncompleteChartData; no partial tables are produced.
func Calculate(positions map[astro.Body]astro.BodyPosition, ascendant float64) (Result, error) {
	signs := make(map[astro.Body]astro.Sign, 8)
	for _, p := range astro.ClassicalPlanets {
		pos, ok := positions[p]
		if !ok {
			return Result{}, fmt.Errorf("ashtakavarga requires %s: %w", p, astro.ErrIncompleteChartData)
		}
		signs[p] = pos.Sign()
	}
	signs[astro.Ascendant] = astro.SignOf(ascendant)

	res := Result{Planets: make(map[astro.Body]BindusTable, 7)}
	for _, target := range astro.ClassicalPlanets {
		var table BindusTable
		rules := beneficHouses[target]
		for sign := 0; sign < 12; sign++ {
			for _, c := range contributors {
				// House of this sign counted from the contributor's sign.
				house := (sign-int(signs[c])+12)%12 + 1
				if containsInt(rules[c], house) {
					table[sign]++
				}
			}
		}
		res.Planets[target] = table
		for sign := 0; sign < 12; sign++ {
			res.Sarva[sign] += table[sign]
		}
	}
	return res, nil
}

func containsInt(xs []int, x int) bool {
	i := sort.SearchInts(xs, x)
	return i < len(xs) && xs[i] == x
}

// TransitBand labels a combined bindu count.
type TransitBand string

const (
	BandStrong   TransitBand = "strong"
	BandModerate TransitBand = "moderate"
	BandWeak     TransitBand = "weak"
)

// Bands holds the configurable thresholds for transit scoring.
type Bands struct {
	Strong   int // score >= Strong is strong
	Moderate int // score >= Moderate is moderate, below is weak
}

// DefaultBands matches the conventional 30/20 split.
func DefaultBands() Bands { return Bands{Strong: 30, Moderate: 20} }

// TransitScore returns the combined bindu count of the transited sign
// and its quality band.
func (r Result) TransitScore(sign astro.Sign, bands Bands) (int, TransitBand) {
	score := r.Sarva[int(sign)]
	switch {
	case score >= bands.Strong:
		return score, BandStrong
	case score >= bands.Moderate:
		return score, BandModerate
	default:
		return score, BandWeak
	}
}
