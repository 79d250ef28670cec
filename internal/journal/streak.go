package journal

import (
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

const dayLayout = "2006-01-02"

// Streak counts the consecutive calendar days, ending today, that have at
// least one timestamp. Days are taken in now's location. A day without an
// entry today yields 0.
func Streak(timestamps []time.Time, now time.Time) int {
	loc := now.Location()
	days := make(map[string]bool, len(timestamps))
	for _, ts := range timestamps {
		days[ts.In(loc).Format(dayLayout)] = true
	}

	// Noon keeps AddDate clear of DST transitions.
	d := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, loc)
	n := 0
	for days[d.Format(dayLayout)] {
		n++
		d = d.AddDate(0, 0, -1)
	}
	return n
}

// EntryStreak is Streak over the entries' creation times.
func EntryStreak(entries []store.Entry, now time.Time) int {
	ts := make([]time.Time, len(entries))
	for i, e := range entries {
		ts[i] = e.Timestamp
	}
	return Streak(ts, now)
}

// HasEntryOn reports whether any entry was created on day's calendar date.
func HasEntryOn(entries []store.Entry, day time.Time) bool {
	want := day.Format(dayLayout)
	for _, e := range entries {
		if e.Timestamp.In(day.Location()).Format(dayLayout) == want {
			return true
		}
	}
	return false
}

// SameDay reports whether a and b fall on the same date in a's location.
func SameDay(a, b time.Time) bool {
	return a.Format(dayLayout) == b.In(a.Location()).Format(dayLayout)
}
