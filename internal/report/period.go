package report

import (
	"time"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
)

// Period is an inclusive window of calendar days. End is the last instant of the last day.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// QuarterPeriod returns the window of quarter q of year, from the first day of its first
// month to the end of the last day of its third month.
func QuarterPeriod(year, quarter int, loc *time.Location) (Period, error) {
	if quarter < 1 || quarter > 4 {
		return Period{}, ierr.NewErrorf("invalid quarter %d", quarter).
			WithHint("Quarter must be between 1 and 4").
			WithReportableDetails(map[string]any{"quarter": quarter}).
			Mark(ierr.ErrValidation)
	}
	first := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, first, 1, 0, 0, 0, 0, locationOrUTC(loc))
	return Period{Start: start, End: start.AddDate(0, 3, 0).Add(-time.Nanosecond)}, nil
}

// MonthPeriod returns the window of one calendar month
func MonthPeriod(year int, month time.Month, loc *time.Location) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, locationOrUTC(loc))
	return Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// Contains reports whether the calendar date of t lies inside the window.
// The time of day of t is ignored.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := calendarDay(t, p.Start.Location())
	return !day.Before(p.Start) && !day.After(p.End)
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
