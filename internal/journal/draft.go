package journal

import (
	"strings"

	"github.com/sadopc/mentaljournal/internal/store"
)

// DefaultMood preselects the middle of the scale for new drafts.
const DefaultMood = 3

// Draft is the unsaved content of the entry form. Form widgets bind to its
// fields by pointer.
type Draft struct {
	Gefuehle          string
	Gut               string
	Dankbarkeit       string
	Herausforderungen string
	Lernen            string
	Text              string

	Tags     []string
	TagInput string
	Mood     int
	Favorite bool
}

func newDraft() Draft {
	return Draft{Mood: DefaultMood}
}

// AddTag appends tag unless it is blank or already present.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, t := range d.Tags {
		if t == tag {
			return false
		}
	}
	d.Tags = append(d.Tags, tag)
	return true
}

func (d *Draft) RemoveTag(tag string) {
	out := d.Tags[:0]
	for _, t := range d.Tags {
		if t != tag {
			out = append(out, t)
		}
	}
	d.Tags = out
}

// CommitTagInput adds every comma separated tag in TagInput and clears it.
func (d *Draft) CommitTagInput() {
	for _, t := range strings.Split(d.TagInput, ",") {
		d.AddTag(t)
	}
	d.TagInput = ""
}

func (d Draft) Fields() store.Fields {
	return store.Fields{
		Gefuehle:          d.Gefuehle,
		Gut:               d.Gut,
		Dankbarkeit:       d.Dankbarkeit,
		Herausforderungen: d.Herausforderungen,
		Lernen:            d.Lernen,
		Text:              d.Text,
		Tags:              append([]string(nil), d.Tags...),
		Mood:              d.Mood,
		Favorite:          d.Favorite,
	}
}

// Outcome tells what a save did.
type Outcome int

const (
	Unchanged Outcome = iota
	Created
	Updated
)

// EntryWriter is the part of the store the editor saves through.
type EntryWriter interface {
	CreateEntry(f store.Fields) (*store.Entry, error)
	UpdateEntry(id string, f store.Fields) (bool, error)
}

// Editor tracks the draft and which entry, if any, it is editing.
type Editor struct {
	Draft  *Draft
	editID string
}

func NewEditor() *Editor {
	d := newDraft()
	return &Editor{Draft: &d}
}

// Editing returns the id of the entry being edited.
func (e *Editor) Editing() (string, bool) {
	return e.editID, e.editID != ""
}

// Begin loads entry into the draft and makes it the edit target.
func (e *Editor) Begin(entry store.Entry) {
	*e.Draft = Draft{
		Gefuehle:          entry.Gefuehle,
		Gut:               entry.Gut,
		Dankbarkeit:       entry.Dankbarkeit,
		Herausforderungen: entry.Herausforderungen,
		Lernen:            entry.Lernen,
		Text:              entry.Text,
		Tags:              append([]string(nil), entry.Tags...),
		Mood:              entry.Mood,
		Favorite:          entry.Favorite,
	}
	e.editID = entry.ID
}

// Cancel drops the draft and the edit target.
func (e *Editor) Cancel() {
	*e.Draft = newDraft()
	e.editID = ""
}

// Forget cancels the edit if it targets id. Call it when id is deleted.
func (e *Editor) Forget(id string) bool {
	if e.editID == "" || e.editID != id {
		return false
	}
	e.Cancel()
	return true
}

// Save writes the draft: a new entry when nothing is being edited, an
// update of the edit target otherwise. A blank draft is left as is and
// nothing is written.
func (e *Editor) Save(w EntryWriter) (Outcome, error) {
	e.Draft.CommitTagInput()
	f := e.Draft.Fields()
	if f.Blank() {
		return Unchanged, nil
	}

	if id, editing := e.Editing(); editing {
		ok, err := w.UpdateEntry(id, f)
		if err != nil {
			return Unchanged, err
		}
		e.Cancel()
		if !ok {
			return Unchanged, nil
		}
		return Updated, nil
	}

	entry, err := w.CreateEntry(f)
	if err != nil {
		return Unchanged, err
	}
	e.Cancel()
	if entry == nil {
		return Unchanged, nil
	}
	return Created, nil
}
