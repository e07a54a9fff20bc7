package arxivreport

import "time"

// dateFormat is the day key layout used in the report and count table.
const dateFormat = "2006-01-02"

// Window is a contiguous span of calendar days ending at its reference
// time.
type Window struct {
	// Start is midnight at the first day of the window, in the
	// service timezone.
	Start time.Time

	// Days is the number of calendar days covered.
	Days int
}

// NewWindow builds the window of days calendar days ending at now.
// The start is truncated to midnight in now's location.
func NewWindow(now time.Time, days int) Window {
	s := now.AddDate(0, 0, -days)
	start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, now.Location())
	return Window{Start: start, Days: days}
}

// DayKeys returns the window's day keys in chronological order.
func (w Window) DayKeys() []string {
	keys := make([]string, w.Days)
	for i := range keys {
		keys[i] = w.Start.AddDate(0, 0, i).Format(dateFormat)
	}
	return keys
}

// Contains reports whether t falls on or after the window start.
// The lower bound is inclusive: a paper stamped exactly at midnight on
// the start day belongs to the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start)
}

// DayCounts maps a day key (YYYY-MM-DD) to the number of papers
// retained for that day. Days with no papers have no entry; readers
// treat a missing key as zero.
type DayCounts map[string]int
