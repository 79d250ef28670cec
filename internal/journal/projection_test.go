package journal

import (
	"testing"
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

func TestProjectionResetIgnoresOlderVersion(t *testing.T) {
	var p Projection
	if !p.Reset(2, []store.Entry{{ID: "new"}}) {
		t.Fatal("first reset should apply")
	}
	if p.Reset(1, []store.Entry{{ID: "old"}}) {
		t.Fatal("older snapshot should be ignored")
	}
	if p.Version() != 2 || p.Entries()[0].ID != "new" {
		t.Fatalf("snapshot overwritten: v%d %v", p.Version(), ids(p.Entries()))
	}
	if !p.Reset(2, nil) {
		t.Fatal("same version should apply")
	}
	if p.Len() != 0 {
		t.Fatalf("expected empty snapshot, got %d", p.Len())
	}
}

func TestProjectionVisibleMemoized(t *testing.T) {
	var p Projection
	p.Reset(1, []store.Entry{entry("A", time.Hour, 2, "x"), entry("B", 2*time.Hour, 4, "y")})

	q := Query{Sort: SortMood}
	first := p.Visible(q)
	second := p.Visible(q)
	if len(first) != 2 || &first[0] != &second[0] {
		t.Fatal("expected the cached slice for an unchanged query")
	}

	filtered := p.Visible(Query{Tag: "x"})
	if !equal(ids(filtered), []string{"A"}) {
		t.Fatalf("expected [A], got %v", ids(filtered))
	}
}

func TestProjectionVisibleRecomputedOnNewVersion(t *testing.T) {
	var p Projection
	p.Reset(1, []store.Entry{entry("A", time.Hour, 0)})
	if got := p.Visible(Query{}); len(got) != 1 {
		t.Fatalf("expected 1, got %d", len(got))
	}
	p.Reset(2, []store.Entry{entry("B", 0, 0), entry("A", time.Hour, 0)})
	if got := ids(p.Visible(Query{})); !equal(got, []string{"B", "A"}) {
		t.Fatalf("stale view: %v", got)
	}
}

func TestProjectionAgainstStore(t *testing.T) {
	s := newTestStore(t)
	var p Projection
	reload := func() {
		entries, v, err := s.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		p.Reset(v, entries)
	}

	a, _ := s.CreateEntry(store.Fields{Text: "a", Tags: []string{"x"}})
	reload()
	s.CreateEntry(store.Fields{Text: "b", Tags: []string{"y"}})
	reload()

	if got := p.Tags(); !equal(got, []string{"y", "x"}) {
		t.Fatalf("unexpected tags %v", got)
	}
	s.ToggleFavorite(a.ID)
	reload()
	if p.Favorites() != 1 {
		t.Fatalf("expected 1 favorite, got %d", p.Favorites())
	}
	now := time.Now()
	if p.Streak(now) != 1 || !p.HasEntryOn(now) {
		t.Fatal("entries created today should count")
	}
}
