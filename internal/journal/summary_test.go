package journal

import (
	"math"
	"testing"
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

func TestDailyCoversRange(t *testing.T) {
	last := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	days := Daily(nil, last, 7)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Day.Day() != 9 || days[6].Day.Day() != 15 {
		t.Fatalf("unexpected range %v .. %v", days[0].Day, days[6].Day)
	}
	for _, d := range days {
		if d.Entries != 0 || d.AvgMood() != 0 {
			t.Fatalf("expected empty day, got %+v", d)
		}
	}
}

func TestDailyAggregates(t *testing.T) {
	last := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)
	entries := []store.Entry{
		{Timestamp: last, Mood: 4, Favorite: true},
		{Timestamp: last.Add(-time.Hour), Mood: 1},
		{Timestamp: last.Add(-2 * time.Hour)}, // no mood
		{Timestamp: last.AddDate(0, 0, -1), Mood: 5},
		{Timestamp: last.AddDate(0, 0, -30), Mood: 2}, // out of range
	}

	days := Daily(entries, last, 7)
	today := days[6]
	if today.Entries != 3 || today.Favorites != 1 {
		t.Fatalf("unexpected today %+v", today)
	}
	if math.Abs(today.AvgMood()-2.5) > 1e-9 {
		t.Fatalf("expected avg 2.5, got %v", today.AvgMood())
	}
	if days[5].Entries != 1 || days[5].AvgMood() != 5 {
		t.Fatalf("unexpected yesterday %+v", days[5])
	}
}
