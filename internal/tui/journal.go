package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mentaljournal/internal/journal"
	"github.com/sadopc/mentaljournal/internal/store"
)

const (
	toastCreated = "Eintrag erfolgreich gespeichert!"
	toastUpdated = "Eintrag erfolgreich aktualisiert!"
)

type journalModel struct {
	store  *store.Store
	proj   *journal.Projection
	editor *journal.Editor
	width  int
	height int

	query  journal.Query
	cursor int
	quote  string

	formActive bool
	form       *huh.Form
	keepTags   *[]string // tags of the draft still selected in the form

	searching bool
	search    textinput.Model
}

func newJournalModel(s *store.Store, proj *journal.Projection) journalModel {
	ti := textinput.New()
	ti.Placeholder = "Einträge durchsuchen…"
	ti.Prompt = "/ "
	ti.CharLimit = 120

	var keep []string
	return journalModel{
		store:    s,
		proj:     proj,
		editor:   journal.NewEditor(),
		query:    journal.Query{Tag: journal.AllTags, Sort: journal.SortDate},
		keepTags: &keep,
		search:   ti,
	}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
	j.search.Width = max(w/3, 10)
}

// capturing reports whether the view consumes every key.
func (j journalModel) capturing() bool {
	return j.formActive || j.searching
}

func (j journalModel) visible() []store.Entry {
	return j.proj.Visible(j.query)
}

func (j journalModel) selected() (store.Entry, bool) {
	v := j.visible()
	if j.cursor < 0 || j.cursor >= len(v) {
		return store.Entry{}, false
	}
	return v[j.cursor], true
}

func (j *journalModel) clampCursor() {
	n := len(j.visible())
	if j.cursor >= n {
		j.cursor = max(0, n-1)
	}
}

// reset drops everything tied to the logged in user's session.
func (j *journalModel) reset() {
	j.editor.Cancel()
	j.formActive = false
	j.form = nil
	j.searching = false
	j.search.Reset()
	j.search.Blur()
	j.query = journal.Query{Tag: journal.AllTags, Sort: journal.SortDate}
	j.cursor = 0
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}
	if j.searching {
		return j.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if j.cursor > 0 {
			j.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if j.cursor < len(j.visible())-1 {
			j.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		j.editor.Cancel()
		return j.showForm()
	case key.Matches(keyMsg, keys.Edit):
		if e, ok := j.selected(); ok {
			j.editor.Begin(e)
			return j.showForm()
		}
	case key.Matches(keyMsg, keys.Delete):
		if e, ok := j.selected(); ok {
			if _, err := j.store.DeleteEntry(e.ID); err != nil {
				return j, statusErr("Löschen fehlgeschlagen: %v", err)
			}
			j.editor.Forget(e.ID)
			return j, loadEntries(j.store)
		}
	case key.Matches(keyMsg, keys.Favorite):
		if e, ok := j.selected(); ok {
			if _, err := j.store.ToggleFavorite(e.ID); err != nil {
				return j, statusErr("Favorit fehlgeschlagen: %v", err)
			}
			return j, loadEntries(j.store)
		}
	case key.Matches(keyMsg, keys.Search):
		j.searching = true
		j.cursor = 0
		cmd := j.search.Focus()
		return j, cmd
	case key.Matches(keyMsg, keys.TagFilter):
		j.query.Tag = journal.NextTag(j.query.Tag, j.proj.Tags())
		j.cursor = 0
	case key.Matches(keyMsg, keys.Sort):
		if j.query.Sort == journal.SortMood {
			j.query.Sort = journal.SortDate
		} else {
			j.query.Sort = journal.SortMood
		}
		j.cursor = 0
	}
	return j, nil
}

func (j journalModel) updateSearch(msg tea.Msg) (journalModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			j.searching = false
			j.search.Reset()
			j.search.Blur()
			j.query.Search = ""
			return j, nil
		case "enter":
			j.searching = false
			j.search.Blur()
			return j, nil
		}
	}

	var cmd tea.Cmd
	j.search, cmd = j.search.Update(msg)
	j.query.Search = j.search.Value()
	j.cursor = 0
	return j, cmd
}

func (j journalModel) showForm() (journalModel, tea.Cmd) {
	d := j.editor.Draft
	*j.keepTags = append([]string(nil), d.Tags...)

	moodOptions := []huh.Option[int]{huh.NewOption("keine Angabe", 0)}
	for m := store.MoodMin; m <= store.MoodMax; m++ {
		moodOptions = append(moodOptions, huh.NewOption(fmt.Sprintf("%s %s", moodFace(m), moodName(m)), m))
	}

	tagFields := []huh.Field{
		huh.NewText().Title("Freier Text").Lines(5).Value(&d.Text),
	}
	if len(d.Tags) > 0 {
		tagOptions := make([]huh.Option[string], len(d.Tags))
		for i, t := range d.Tags {
			tagOptions[i] = huh.NewOption(t, t).Selected(true)
		}
		tagFields = append(tagFields,
			huh.NewMultiSelect[string]().Title("Tags behalten").Options(tagOptions...).Value(j.keepTags),
		)
	}
	tagFields = append(tagFields,
		huh.NewInput().Title("Neue Tags (kommagetrennt)").Placeholder("#dankbar, #arbeit").Value(&d.TagInput),
	)

	j.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Wie fühlst du dich heute?").Options(moodOptions...).Value(&d.Mood),
			huh.NewConfirm().Title("Als Favorit markieren?").Affirmative("Ja").Negative("Nein").Value(&d.Favorite),
		),
		huh.NewGroup(
			huh.NewInput().Title("Gefühle").Placeholder("Wie geht es dir gerade?").Value(&d.Gefuehle),
			huh.NewInput().Title("Was lief heute gut?").Value(&d.Gut),
			huh.NewInput().Title("Wofür bist du dankbar?").Value(&d.Dankbarkeit),
			huh.NewInput().Title("Was war herausfordernd?").Value(&d.Herausforderungen),
			huh.NewInput().Title("Was hast du gelernt?").Value(&d.Lernen),
		),
		huh.NewGroup(tagFields...),
	).WithShowHelp(true).WithShowErrors(true).WithWidth(max(j.width-10, 30))

	j.formActive = true
	return j, j.form.Init()
}

func (j journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			j.editor.Cancel()
			return j, nil
		}
	}

	form, cmd := j.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form = f
	}

	switch j.form.State {
	case huh.StateCompleted:
		j.formActive = false
		j.form = nil
		return j, j.save()
	case huh.StateAborted:
		j.formActive = false
		j.form = nil
		j.editor.Cancel()
		return j, nil
	}
	return j, cmd
}

func (j journalModel) save() tea.Cmd {
	d := j.editor.Draft
	keep := make(map[string]bool, len(*j.keepTags))
	for _, t := range *j.keepTags {
		keep[t] = true
	}
	for _, t := range append([]string(nil), d.Tags...) {
		if !keep[t] {
			d.RemoveTag(t)
		}
	}

	outcome, err := j.editor.Save(j.store)
	if err != nil {
		return statusErr("Speichern fehlgeschlagen: %v", err)
	}
	switch outcome {
	case journal.Created:
		return tea.Batch(loadEntries(j.store), status(toastCreated))
	case journal.Updated:
		return tea.Batch(loadEntries(j.store), status(toastUpdated))
	}
	return nil
}

func (j journalModel) view() string {
	w := j.width - 4

	if j.formActive && j.form != nil {
		title := "Neuer Eintrag"
		if _, editing := j.editor.Editing(); editing {
			title = "Eintrag bearbeiten"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", j.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	now := time.Now()
	if !j.proj.HasEntryOn(now) {
		rows = append(rows, bannerStyle.Render("Du hast heute noch keinen Eintrag geschrieben. Nimm dir 5 Minuten für dich! (n)"), "")
	}

	streak := j.proj.Streak(now)
	rows = append(rows,
		successStyle.Render(fmt.Sprintf("🔥 Streak: %d %s", streak, dayWord(streak)))+"   "+quoteStyle.Render(j.quote),
		"",
		j.renderToolbar(),
		"",
	)

	listW := max(w*11/20, 30)
	detailW := max(w-listW-8, 20)
	listH := max(j.height-lipgloss.Height(strings.Join(rows, "\n"))-6, 3)

	list := j.renderList(listW, listH)
	detail := j.renderDetail(detailW)
	rows = append(rows,
		lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail),
		"",
		mutedStyle.Render("  n: neu  e: bearbeiten  d: löschen  f: favorit  /: suchen  t: tag  o: sortierung  x: export"),
	)

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (j journalModel) renderToolbar() string {
	search := mutedStyle.Render("/ suchen")
	if j.searching || j.query.Search != "" {
		search = j.search.View()
	}

	tag := "alle"
	if j.query.Tag != "" && j.query.Tag != journal.AllTags {
		tag = j.query.Tag
	}
	sort := "Datum"
	if j.query.Sort == journal.SortMood {
		sort = "Stimmung"
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		search,
		"   ",
		mutedStyle.Render("Tag: ")+highlightStyle.Render(tag),
		"   ",
		mutedStyle.Render("Sortierung: ")+highlightStyle.Render(sort),
	)
}

func (j journalModel) renderList(w, h int) string {
	entries := j.visible()
	title := subtitleStyle.Render(fmt.Sprintf("Einträge (%d)", len(entries)))

	if len(entries) == 0 {
		msg := "Noch keine Einträge. Drücke n für deinen ersten Eintrag."
		if j.query.Filtered() {
			msg = "Keine Einträge passen zu Suche oder Filter."
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(wrap(msg, w)))
	}

	start := 0
	if j.cursor >= h {
		start = j.cursor - h + 1
	}
	end := min(start+h, len(entries))

	rows := []string{title, ""}
	previewW := max(w-len(dateLayout)-9, 8)
	for i := start; i < end; i++ {
		e := entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		fav := " "
		if e.Favorite {
			fav = "★"
		}
		line := fmt.Sprintf("%s%s %s %s  %s", cursor, fav, moodFace(e.Mood), formatDate(e.Timestamp), pad(preview(e), previewW))
		rows = append(rows, style.Render(line))
	}
	return strings.Join(rows, "\n")
}

func (j journalModel) renderDetail(w int) string {
	e, ok := j.selected()
	if !ok {
		return ""
	}

	fav := ""
	if e.Favorite {
		fav = warningStyle.Render(" ★ Favorit")
	}
	parts := []string{
		subtitleStyle.Render(formatDate(e.Timestamp)) + fav,
		mutedStyle.Render("Stimmung: " + moodFace(e.Mood) + " " + moodName(e.Mood)),
	}
	for _, f := range []struct{ label, value string }{
		{"Gefühle", e.Gefuehle},
		{"Gut", e.Gut},
		{"Dankbarkeit", e.Dankbarkeit},
		{"Herausforderungen", e.Herausforderungen},
		{"Lernen", e.Lernen},
		{"Text", e.Text},
	} {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		parts = append(parts, "", highlightStyle.Render(f.label), normalItemStyle.Render(wrap(f.value, w-4)))
	}
	if len(e.Tags) > 0 {
		parts = append(parts, "", accentStyle.Render(strings.Join(e.Tags, "  ")))
	}
	return panelStyle.Width(w).Render(strings.Join(parts, "\n"))
}

// preview is the first non-blank text of e.
func preview(e store.Entry) string {
	for _, s := range []string{e.Text, e.Gefuehle, e.Gut, e.Dankbarkeit, e.Herausforderungen, e.Lernen} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
