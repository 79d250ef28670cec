package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/mentaljournal/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID                string   `json:"id"`
	Timestamp         string   `json:"timestamp"`
	UpdatedAt         string   `json:"updated_at"`
	Gefuehle          string   `json:"gefuehle,omitempty"`
	Gut               string   `json:"gut,omitempty"`
	Dankbarkeit       string   `json:"dankbarkeit,omitempty"`
	Herausforderungen string   `json:"herausforderungen,omitempty"`
	Lernen            string   `json:"lernen,omitempty"`
	Text              string   `json:"text,omitempty"`
	Tags              []string `json:"tags"`
	Mood              int      `json:"mood,omitempty"`
	Favorite          bool     `json:"favorite"`
}

// MarshalJSON renders entries as an indented export document.
func MarshalJSON(entries []store.Entry, exportedAt time.Time) ([]byte, error) {
	export := jsonExport{
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Count:      len(entries),
		Entries:    make([]jsonEntry, 0, len(entries)),
	}

	for _, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		export.Entries = append(export.Entries, jsonEntry{
			ID:                e.ID,
			Timestamp:         e.Timestamp.Local().Format(time.RFC3339),
			UpdatedAt:         e.UpdatedAt.Local().Format(time.RFC3339),
			Gefuehle:          e.Gefuehle,
			Gut:               e.Gut,
			Dankbarkeit:       e.Dankbarkeit,
			Herausforderungen: e.Herausforderungen,
			Lernen:            e.Lernen,
			Text:              e.Text,
			Tags:              tags,
			Mood:              e.Mood,
			Favorite:          e.Favorite,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

func ToJSON(entries []store.Entry, path string) error {
	data, err := MarshalJSON(entries, time.Now())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
