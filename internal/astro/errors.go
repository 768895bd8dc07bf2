package astro

import "errors"

// Calculation failure taxonomy. Callers match with errors.Is; each site
// wraps these with the failing body or step for precise reporting. No
// step substitutes defaults for missing astronomical input and no step
// retries internally.
var (
	// ErrEphemerisUnavailable: the provider cannot resolve a body at the
	// requested moment. Fatal for the whole chart.
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

	// ErrHouseSystemUndefined: the chosen time-based house system has no
	// solution at this latitude. The caller must pick another system.
	ErrHouseSystemUndefined = errors.New("house system undefined at this latitude")

	// ErrIncompleteChartData: a derived calculation is missing a required
	// planet or the ascendant. Fatal for that step only.
	ErrIncompleteChartData = errors.New("incomplete chart data")

	// ErrInsufficientEphemerisRange: the Human Design backward solar-arc
	// search could not converge within the provider's supported range.
	ErrInsufficientEphemerisRange = errors.New("insufficient ephemeris range")
)
