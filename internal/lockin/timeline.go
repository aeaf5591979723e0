package lockin

import (
	"fmt"
	"time"
)

// DefaultLockinOffsetYears is the fixed correction applied to the matched
// year: below the matched score we assume this many years remain, above it we
// assume it was passed this many years ago.
const DefaultLockinOffsetYears = 5

const (
	LockinUnknown = "Unknown"
	LockinPassed  = "Passed"
)

// YearFunc supplies the current calendar year
type YearFunc func() int

// SystemYear reads the wall clock
func SystemYear() int {
	return time.Now().Year()
}

// FixedYear returns a YearFunc pinned to year
func FixedYear(year int) YearFunc {
	return func() int { return year }
}

// EstimateTimeUntilLockin converts the matched historical year into a coarse
// "~N years" estimate relative to currentYear.
func EstimateTimeUntilLockin(match HistoricalMatch, score, currentYear, offsetYears int) string {
	p, ok := match.Point()
	if !ok || p.Year == 0 {
		return LockinUnknown
	}

	years := p.Year - currentYear
	if score < p.Score {
		years += offsetYears
	} else {
		years -= offsetYears
	}

	if years > 0 {
		return fmt.Sprintf("~%d years", years)
	}
	return LockinPassed
}
