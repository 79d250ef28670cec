package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const entryColumns = `id, created_at, updated_at, gefuehle, gut, dankbarkeit, herausforderungen, lernen, body, favorite, mood`

// CreateEntry saves a new entry in front of all existing ones. A blank entry
// is not saved and (nil, nil) is returned.
func (s *Store) CreateEntry(f Fields) (*Entry, error) {
	if f.Blank() {
		return nil, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("new entry id: %w", err)
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create entry: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), now, now,
		f.Gefuehle, f.Gut, f.Dankbarkeit, f.Herausforderungen, f.Lernen, f.Text,
		boolToInt(f.Favorite), moodValue(f.Mood),
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	if err := writeTags(tx, id.String(), f.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create entry: %w", err)
	}

	s.bump()
	return s.GetEntry(id.String())
}

// UpdateEntry replaces every field of entry id except its id and timestamp.
// It reports false when the entry does not exist or f is blank.
func (s *Store) UpdateEntry(id string, f Fields) (bool, error) {
	if f.Blank() {
		return false, nil
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin update entry: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE entries SET updated_at = ?, gefuehle = ?, gut = ?, dankbarkeit = ?, herausforderungen = ?,
		 lernen = ?, body = ?, favorite = ?, mood = ? WHERE id = ?`,
		now, f.Gefuehle, f.Gut, f.Dankbarkeit, f.Herausforderungen, f.Lernen, f.Text,
		boolToInt(f.Favorite), moodValue(f.Mood), id,
	)
	if err != nil {
		return false, fmt.Errorf("update entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`DELETE FROM entry_tags WHERE entry_id = ?`, id); err != nil {
		return false, fmt.Errorf("clear tags of %s: %w", id, err)
	}
	if err := writeTags(tx, id, f.Tags); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update entry: %w", err)
	}

	s.bump()
	return true, nil
}

// DeleteEntry removes entry id. Deleting a missing id is not an error.
func (s *Store) DeleteEntry(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}
	s.bump()
	return true, nil
}

// ToggleFavorite flips the favorite flag of entry id.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	res, err := s.db.Exec(`UPDATE entries SET favorite = 1 - favorite WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle favorite %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}
	s.bump()
	return true, nil
}

func (s *Store) GetEntry(id string) (*Entry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", id, err)
	}

	tags, err := s.tagsByEntry(`WHERE entry_id = ?`, id)
	if err != nil {
		return nil, err
	}
	e.Tags = tags[id]
	return e, nil
}

// ListEntries returns all entries, most recently created first.
func (s *Store) ListEntries() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT ` + entryColumns + ` FROM entries ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := s.tagsByEntry("")
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Tags = tags[entries[i].ID]
	}
	return entries, nil
}

// Snapshot returns the entries together with the version they belong to.
func (s *Store) Snapshot() ([]Entry, uint64, error) {
	v := s.Version()
	entries, err := s.ListEntries()
	return entries, v, err
}

func (s *Store) CountEntries() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func (s *Store) tagsByEntry(where string, args ...any) (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT entry_id, tag FROM entry_tags `+where+` ORDER BY entry_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

func writeTags(tx *sql.Tx, id string, tags []string) error {
	for i, t := range NormalizeTags(tags) {
		if _, err := tx.Exec(
			`INSERT INTO entry_tags (entry_id, position, tag) VALUES (?, ?, ?)`, id, i, t,
		); err != nil {
			return fmt.Errorf("insert tag %q: %w", t, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (*Entry, error) {
	e := &Entry{}
	var createdAt, updatedAt string
	var favorite int
	var mood sql.NullInt64

	err := r.Scan(&e.ID, &createdAt, &updatedAt,
		&e.Gefuehle, &e.Gut, &e.Dankbarkeit, &e.Herausforderungen, &e.Lernen, &e.Text,
		&favorite, &mood)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	e.Favorite = favorite == 1
	if mood.Valid {
		e.Mood = int(mood.Int64)
	}
	e.Timestamp = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t.Local()
}

func moodValue(m int) any {
	if !validMood(m) {
		return nil
	}
	return m
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
