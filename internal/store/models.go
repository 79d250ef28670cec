package store

import (
	"strings"
	"time"
)

// Mood bounds. Zero means no mood was recorded.
const (
	MoodMin = 1
	MoodMax = 5
)

// Entry is one journal record.
type Entry struct {
	ID        string
	Timestamp time.Time // set once at creation
	UpdatedAt time.Time

	Gefuehle          string
	Gut               string
	Dankbarkeit       string
	Herausforderungen string
	Lernen            string
	Text              string

	Tags     []string
	Favorite bool
	Mood     int
}

// Fields holds everything about an entry that an edit may replace.
type Fields struct {
	Gefuehle          string
	Gut               string
	Dankbarkeit       string
	Herausforderungen string
	Lernen            string
	Text              string

	Tags     []string
	Favorite bool
	Mood     int
}

// Blank reports whether every free-text field is empty or whitespace.
func (f Fields) Blank() bool {
	for _, v := range []string{f.Gefuehle, f.Gut, f.Dankbarkeit, f.Herausforderungen, f.Lernen, f.Text} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Fields returns the replaceable part of e.
func (e Entry) Fields() Fields {
	return Fields{
		Gefuehle:          e.Gefuehle,
		Gut:               e.Gut,
		Dankbarkeit:       e.Dankbarkeit,
		Herausforderungen: e.Herausforderungen,
		Lernen:            e.Lernen,
		Text:              e.Text,
		Tags:              append([]string(nil), e.Tags...),
		Favorite:          e.Favorite,
		Mood:              e.Mood,
	}
}

// HasTag reports exact membership of tag in e.Tags.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags trims tags and drops blanks and duplicates, keeping the
// first occurrence of each.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func validMood(m int) bool {
	return m >= MoodMin && m <= MoodMax
}
