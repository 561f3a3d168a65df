package domain

import "time"

// EarliestYear is when the oldest dated printed book appeared.
const EarliestYear = 868

// YearBounds is the inclusive range of acceptable publication years.
type YearBounds struct {
	Min int
	Max int
}

// BoundsFor uses maxYear as the upper bound, or the year of now when maxYear
// is not positive.
func BoundsFor(maxYear int, now time.Time) YearBounds {
	if maxYear <= 0 {
		maxYear = now.Year()
	}
	return YearBounds{Min: EarliestYear, Max: maxYear}
}

// ValidateYear fails with a *YearError wrapped in an OpError when year is
// outside b.
func ValidateYear(year int, b YearBounds) error {
	var reason YearReason
	switch {
	case year < b.Min:
		reason = YearTooEarly
	case year > b.Max:
		reason = YearTooLate
	default:
		return nil
	}

	return &OpError{
		Op:   "book.validate_year",
		Kind: KindInvalidYear,
		Err:  &YearError{Year: year, Min: b.Min, Max: b.Max, Reason: reason},
	}
}
