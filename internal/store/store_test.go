package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *Store, f Fields) *Entry {
	t.Helper()
	e, err := s.CreateEntry(f)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if e == nil {
		t.Fatal("expected entry to be created")
	}
	return e
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := t.TempDir() + "/sub/journal.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestMemoryStoresAreIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	mustCreate(t, a, Fields{Text: "only in a"})

	n, err := b.CountEntries()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected empty store, got %d entries", n)
	}
}

// ============================================================
// Create
// ============================================================

func TestCreateBlankEntryIsNoop(t *testing.T) {
	s := newTestStore(t)
	e, err := s.CreateEntry(Fields{Gefuehle: "  ", Text: "\n\t", Tags: []string{"x"}, Mood: 4})
	if err != nil {
		t.Fatal(err)
	}
	if e != nil {
		t.Fatalf("blank entry should not be saved, got %+v", e)
	}
	n, _ := s.CountEntries()
	if n != 0 {
		t.Fatalf("expected 0 entries, got %d", n)
	}
	if s.Version() != 0 {
		t.Fatalf("blank save should not bump version, got %d", s.Version())
	}
}

func TestCreateEntry(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, Fields{
		Gefuehle: "ruhig",
		Gut:      "Spaziergang",
		Text:     "langer Tag",
		Tags:     []string{"arbeit", "natur"},
		Mood:     4,
	})

	if e.ID == "" {
		t.Fatal("expected id")
	}
	if e.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}
	if e.Gefuehle != "ruhig" || e.Gut != "Spaziergang" || e.Text != "langer Tag" {
		t.Fatalf("unexpected fields: %+v", e)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "arbeit" || e.Tags[1] != "natur" {
		t.Fatalf("unexpected tags: %v", e.Tags)
	}
	if e.Favorite {
		t.Fatal("new entry should not be a favorite")
	}
	if e.Mood != 4 {
		t.Fatalf("expected mood 4, got %d", e.Mood)
	}
}

func TestCreatePrependsEntry(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Fields{Text: "first"})
	mustCreate(t, s, Fields{Text: "second"})
	third := mustCreate(t, s, Fields{Lernen: "third"})

	entries, err := s.ListEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != third.ID {
		t.Fatalf("newest entry should be first, got %q", entries[0].Text)
	}
	if entries[2].Text != "first" {
		t.Fatalf("oldest entry should be last, got %q", entries[2].Text)
	}
}

func TestCreateIncreasesCountByOne(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Fields{Text: "a"})
	before, _ := s.CountEntries()
	mustCreate(t, s, Fields{Dankbarkeit: "b"})
	after, _ := s.CountEntries()
	if after != before+1 {
		t.Fatalf("expected %d entries, got %d", before+1, after)
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	s := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		e := mustCreate(t, s, Fields{Text: "x"})
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestCreateNormalizesTags(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, Fields{Text: "x", Tags: []string{" freude", "freude", "", "ruhe", "freude "}})
	if len(e.Tags) != 2 || e.Tags[0] != "freude" || e.Tags[1] != "ruhe" {
		t.Fatalf("expected [freude ruhe], got %v", e.Tags)
	}
}

func TestCreateOutOfRangeMoodIsUnset(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, Fields{Text: "x", Mood: 9})
	if e.Mood != 0 {
		t.Fatalf("expected unset mood, got %d", e.Mood)
	}
}

// ============================================================
// Update
// ============================================================

func TestUpdatePreservesIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }
	e := mustCreate(t, s, Fields{Text: "before", Tags: []string{"a"}, Mood: 2})

	s.now = func() time.Time { return created.Add(48 * time.Hour) }
	ok, err := s.UpdateEntry(e.ID, Fields{Gut: "after", Tags: []string{"b", "c"}, Mood: 5, Favorite: true})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected update to apply")
	}

	got, err := s.GetEntry(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != e.ID {
		t.Fatalf("id changed: %s -> %s", e.ID, got.ID)
	}
	if !got.Timestamp.Equal(created) {
		t.Fatalf("timestamp changed: %v -> %v", created, got.Timestamp)
	}
	if !got.UpdatedAt.Equal(created.Add(48 * time.Hour)) {
		t.Fatalf("updated_at not set: %v", got.UpdatedAt)
	}
	if got.Text != "" || got.Gut != "after" {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "b" || got.Tags[1] != "c" {
		t.Fatalf("tags not replaced: %v", got.Tags)
	}
	if got.Mood != 5 || !got.Favorite {
		t.Fatalf("mood/favorite not replaced: %+v", got)
	}
}

func TestUpdateKeepsPosition(t *testing.T) {
	s := newTestStore(t)
	old := mustCreate(t, s, Fields{Text: "old"})
	mustCreate(t, s, Fields{Text: "new"})

	s.UpdateEntry(old.ID, Fields{Text: "old, edited"})
	entries, _ := s.ListEntries()
	if entries[1].ID != old.ID {
		t.Fatal("editing should not move the entry")
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Fields{Text: "a"})
	v := s.Version()

	ok, err := s.UpdateEntry("missing", Fields{Text: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("update of missing id should report false")
	}
	if s.Version() != v {
		t.Fatal("no-op update should not bump version")
	}
}

func TestUpdateBlankIsNoop(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, Fields{Text: "keep me"})

	ok, _ := s.UpdateEntry(e.ID, Fields{Text: "   "})
	if ok {
		t.Fatal("blank update should report false")
	}
	got, _ := s.GetEntry(e.ID)
	if got.Text != "keep me" {
		t.Fatalf("entry changed by blank update: %q", got.Text)
	}
}

// ============================================================
// Delete / favorite
// ============================================================

func TestDeleteEntry(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, Fields{Text: "a", Tags: []string{"x"}})

	ok, err := s.DeleteEntry(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected delete to apply")
	}
	if _, err := s.GetEntry(e.ID); err == nil {
		t.Fatal("deleted entry should be gone")
	}

	var tags int
	s.db.QueryRow(`SELECT COUNT(*) FROM entry_tags`).Scan(&tags)
	if tags != 0 {
		t.Fatalf("tags should cascade, %d left", tags)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Fields{Text: "a"})

	ok, err := s.DeleteEntry("nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("delete of missing id should report false")
	}
	n, _ := s.CountEntries()
	if n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}
}

func TestToggleFavorite(t *testing.T) {
	s := newTestStore(t)
	e := mustCreate(t, s, Fields{Text: "a"})

	s.ToggleFavorite(e.ID)
	got, _ := s.GetEntry(e.ID)
	if !got.Favorite {
		t.Fatal("expected favorite after first toggle")
	}

	s.ToggleFavorite(e.ID)
	got, _ = s.GetEntry(e.ID)
	if got.Favorite {
		t.Fatal("expected no favorite after second toggle")
	}
}

func TestToggleFavoriteMissing(t *testing.T) {
	s := newTestStore(t)
	ok, err := s.ToggleFavorite("nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("toggle of missing id should report false")
	}
}

// ============================================================
// Version / snapshot
// ============================================================

func TestVersionBumpsOnMutation(t *testing.T) {
	s := newTestStore(t)
	if s.Version() != 0 {
		t.Fatalf("fresh store version should be 0, got %d", s.Version())
	}
	e := mustCreate(t, s, Fields{Text: "a"})
	s.UpdateEntry(e.ID, Fields{Text: "b"})
	s.ToggleFavorite(e.ID)
	s.DeleteEntry(e.ID)
	if s.Version() != 4 {
		t.Fatalf("expected version 4, got %d", s.Version())
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, Fields{Text: "a"})
	entries, v, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || v != 1 {
		t.Fatalf("unexpected snapshot: %d entries at version %d", len(entries), v)
	}
}

func TestListEntriesEmpty(t *testing.T) {
	s := newTestStore(t)
	entries, err := s.ListEntries()
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Fatalf("expected nil slice, got %d items", len(entries))
	}
}

// ============================================================
// Models
// ============================================================

func TestFieldsBlank(t *testing.T) {
	if !(Fields{}).Blank() {
		t.Fatal("zero fields should be blank")
	}
	if !(Fields{Tags: []string{"x"}, Mood: 3, Favorite: true}).Blank() {
		t.Fatal("tags, mood and favorite do not count as text")
	}
	if (Fields{Herausforderungen: "x"}).Blank() {
		t.Fatal("any text field makes the entry non-blank")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"b", "a", "b", " a "})
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected [b a], got %v", got)
	}
	if NormalizeTags(nil) != nil {
		t.Fatal("expected nil for no tags")
	}
}

func TestEntryHasTag(t *testing.T) {
	e := Entry{Tags: []string{"x", "y"}}
	if !e.HasTag("x") || e.HasTag("X") || e.HasTag("z") {
		t.Fatal("HasTag should be exact membership")
	}
}
