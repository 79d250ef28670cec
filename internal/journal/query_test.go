package journal

import (
	"testing"
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

var base = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func entry(id string, age time.Duration, mood int, tags ...string) store.Entry {
	return store.Entry{ID: id, Timestamp: base.Add(-age), Mood: mood, Tags: tags, Text: "text " + id}
}

func ids(entries []store.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFilterTag(t *testing.T) {
	entries := []store.Entry{
		entry("A", time.Hour, 2, "x"),
		entry("B", 2*time.Hour, 4, "y"),
	}
	got := ids(Apply(entries, Query{Tag: "x", Sort: SortDate}))
	if !equal(got, []string{"A"}) {
		t.Fatalf("expected [A], got %v", got)
	}
}

func TestApplySortByMood(t *testing.T) {
	entries := []store.Entry{
		entry("A", time.Hour, 2, "x"),
		entry("B", 2*time.Hour, 4, "y"),
	}
	got := ids(Apply(entries, Query{Sort: SortMood}))
	if !equal(got, []string{"B", "A"}) {
		t.Fatalf("expected [B A], got %v", got)
	}
}

func TestApplyMissingMoodSortsLast(t *testing.T) {
	entries := []store.Entry{
		entry("none", time.Minute, 0),
		entry("low", time.Hour, 1),
		entry("high", 2*time.Hour, 5),
	}
	got := ids(Apply(entries, Query{Sort: SortMood}))
	if !equal(got, []string{"high", "low", "none"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestApplySortByDateDescending(t *testing.T) {
	entries := []store.Entry{
		entry("old", 3*time.Hour, 0),
		entry("new", time.Minute, 0),
		entry("mid", time.Hour, 0),
	}
	got := ids(Apply(entries, Query{}))
	if !equal(got, []string{"new", "mid", "old"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestApplyDoesNotReorderInput(t *testing.T) {
	entries := []store.Entry{
		entry("A", time.Hour, 1),
		entry("B", 2*time.Hour, 5),
	}
	Apply(entries, Query{Sort: SortMood})
	if !equal(ids(entries), []string{"A", "B"}) {
		t.Fatalf("input was reordered: %v", ids(entries))
	}
}

func TestApplySearch(t *testing.T) {
	entries := []store.Entry{
		{ID: "text", Text: "Heute war ein GUTER Tag", Timestamp: base},
		{ID: "feel", Gefuehle: "Müde aber froh", Timestamp: base.Add(-time.Hour)},
		{ID: "tag", Tags: []string{"#Freude"}, Timestamp: base.Add(-2 * time.Hour)},
		{ID: "other", Gut: "guter Kaffee", Timestamp: base.Add(-3 * time.Hour)},
	}

	cases := []struct {
		search string
		want   []string
	}{
		{"guter", []string{"text"}},
		{"MÜDE", []string{"feel"}},
		{"freude", []string{"tag"}},
		{"", []string{"text", "feel", "tag", "other"}},
		{" ", []string{"text", "feel"}},
		{"nichts", nil},
	}
	for _, c := range cases {
		got := ids(Apply(entries, Query{Search: c.search}))
		if !equal(got, c.want) {
			t.Errorf("search %q: expected %v, got %v", c.search, c.want, got)
		}
	}
}

func TestApplySearchAndTagCombine(t *testing.T) {
	entries := []store.Entry{
		{ID: "a", Text: "ruhe", Tags: []string{"x"}, Timestamp: base},
		{ID: "b", Text: "ruhe", Tags: []string{"y"}, Timestamp: base.Add(-time.Hour)},
	}
	got := ids(Apply(entries, Query{Search: "ruhe", Tag: "y"}))
	if !equal(got, []string{"b"}) {
		t.Fatalf("expected [b], got %v", got)
	}
}

func TestApplyAllTagsDisablesFilter(t *testing.T) {
	entries := []store.Entry{entry("A", 0, 0, "x"), entry("B", time.Hour, 0)}
	if got := Apply(entries, Query{Tag: AllTags}); len(got) != 2 {
		t.Fatalf("expected both entries, got %v", ids(got))
	}
}

func TestQueryFiltered(t *testing.T) {
	if (Query{}).Filtered() || (Query{Tag: AllTags}).Filtered() {
		t.Fatal("empty query should not filter")
	}
	if !(Query{Tag: "x"}).Filtered() || !(Query{Search: "a"}).Filtered() || !(Query{Search: " "}).Filtered() {
		t.Fatal("tag or search should filter")
	}
}

func TestTagsFirstAppearanceOrder(t *testing.T) {
	entries := []store.Entry{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"c", "a"}},
	}
	got := Tags(entries)
	if !equal(got, []string{"b", "a", "c"}) {
		t.Fatalf("unexpected tags %v", got)
	}
}

func TestNextTag(t *testing.T) {
	tags := []string{"x", "y"}
	steps := []string{"x", "y", AllTags, "x"}
	cur := AllTags
	for _, want := range steps {
		cur = NextTag(cur, tags)
		if cur != want {
			t.Fatalf("expected %q, got %q", want, cur)
		}
	}
	if NextTag("", nil) != AllTags {
		t.Fatal("no tags should stay on all")
	}
	if NextTag("gone", tags) != AllTags {
		t.Fatal("unknown tag should reset to all")
	}
}
