package journal

import (
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

// DaySummary aggregates the entries of one calendar day.
type DaySummary struct {
	Day       time.Time // local midnight
	Entries   int
	Favorites int
	moodSum   int
	moodCount int
}

// AvgMood is the mean of the recorded moods, or 0 when none was recorded.
func (d DaySummary) AvgMood() float64 {
	if d.moodCount == 0 {
		return 0
	}
	return float64(d.moodSum) / float64(d.moodCount)
}

// Daily summarizes the days days ending with last, oldest first. Days
// without entries are included with zero counts.
func Daily(entries []store.Entry, last time.Time, days int) []DaySummary {
	loc := last.Location()
	end := time.Date(last.Year(), last.Month(), last.Day(), 12, 0, 0, 0, loc)

	out := make([]DaySummary, days)
	index := make(map[string]int, days)
	for i := range out {
		d := end.AddDate(0, 0, i-days+1)
		out[i].Day = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		index[d.Format(dayLayout)] = i
	}

	for _, e := range entries {
		i, ok := index[e.Timestamp.In(loc).Format(dayLayout)]
		if !ok {
			continue
		}
		out[i].Entries++
		if e.Favorite {
			out[i].Favorites++
		}
		if e.Mood >= store.MoodMin && e.Mood <= store.MoodMax {
			out[i].moodSum += e.Mood
			out[i].moodCount++
		}
	}
	return out
}
