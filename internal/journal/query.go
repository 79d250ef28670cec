// Package journal derives what the journaling screen shows from the entry
// store: the filtered and sorted list, the tag choices, the day streak and
// the state of the entry form.
package journal

import (
	"sort"
	"strings"

	"github.com/sadopc/mentaljournal/internal/store"
	"golang.org/x/text/cases"
)

// SortKey selects the order of the query view.
type SortKey string

const (
	SortDate SortKey = "date"
	SortMood SortKey = "mood"
)

// AllTags disables the tag filter.
const AllTags = "all"

// Query holds the inputs of the list view.
type Query struct {
	Search string
	Tag    string
	Sort   SortKey
}

// Filtered reports whether q hides any entries.
func (q Query) Filtered() bool {
	return q.Search != "" || (q.Tag != "" && q.Tag != AllTags)
}

// Apply returns the entries matching q in q's order. The input slice is
// left untouched.
func Apply(entries []store.Entry, q Query) []store.Entry {
	fold := cases.Fold()
	needle := fold.String(q.Search)

	out := make([]store.Entry, 0, len(entries))
	for _, e := range entries {
		if needle != "" && !matches(e, needle, fold) {
			continue
		}
		if q.Tag != "" && q.Tag != AllTags && !e.HasTag(q.Tag) {
			continue
		}
		out = append(out, e)
	}

	switch q.Sort {
	case SortMood:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Mood > out[j].Mood })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	}
	return out
}

func matches(e store.Entry, needle string, fold cases.Caser) bool {
	if strings.Contains(fold.String(e.Text), needle) || strings.Contains(fold.String(e.Gefuehle), needle) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(fold.String(t), needle) {
			return true
		}
	}
	return false
}

// Tags lists every tag in use, in order of first appearance.
func Tags(entries []store.Entry) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, e := range entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// NextTag cycles the tag filter: all → first tag → … → last tag → all.
func NextTag(current string, tags []string) string {
	if current == "" || current == AllTags {
		if len(tags) == 0 {
			return AllTags
		}
		return tags[0]
	}
	for i, t := range tags {
		if t == current && i+1 < len(tags) {
			return tags[i+1]
		}
	}
	return AllTags
}
