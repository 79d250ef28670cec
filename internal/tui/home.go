package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sadopc/mentaljournal/internal/catalog"
	"github.com/sadopc/mentaljournal/internal/journal"
)

const homeIntro = "Eine Selbstreflexions-App für junge Menschen, die emotionale Struktur, " +
	"Klarheit und mentale Stärke vermittelt: mit täglicher Reflexion, Tools und " +
	"datenschutzfreundlicher Speicherung."

type homeModel struct {
	width  int
	height int

	cat  *catalog.Catalog
	proj *journal.Projection

	username     string
	quote        string
	emergencyURL string
	cursor       int
}

func newHomeModel(cat *catalog.Catalog, proj *journal.Projection, emergencyURL string) homeModel {
	return homeModel{cat: cat, proj: proj, emergencyURL: emergencyURL}
}

func (h *homeModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if h.cursor < len(h.cat.Tools)-1 {
			h.cursor++
		}
	case key.Matches(keyMsg, keys.Enter):
		if h.cursor < len(h.cat.Tools) {
			k := h.cat.Tools[h.cursor].Key
			return h, func() tea.Msg { return openToolMsg{key: k} }
		}
	case key.Matches(keyMsg, keys.Continue):
		return h, func() tea.Msg { return continueMsg{} }
	}
	return h, nil
}

func (h homeModel) view() string {
	w := h.width - 4

	greeting := "Willkommen zurück!"
	if h.username != "" {
		greeting = fmt.Sprintf("Willkommen zurück, %s!", h.username)
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(greeting),
		mutedStyle.Render("Schön, dass du wieder da bist. Dein Wohlbefinden zählt!"),
	)

	half := max((w-6)/2, 20)
	todos := h.renderTodos(half)
	tools := h.renderTools(half)
	cards := lipgloss.JoinHorizontal(lipgloss.Top, todos, "  ", tools)

	streak := h.proj.Streak(time.Now())
	progress := fmt.Sprintf("🔥 %d %s in Folge", streak, dayWord(streak))

	link := termenv.Hyperlink(h.emergencyURL, "Notfall-Hilfe")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		cards,
		"",
		normalItemStyle.Render(wrap(homeIntro, w-6)),
		"",
		successStyle.Render(progress)+"   "+quoteStyle.Render(h.quote),
		"",
		accentStyle.Render("🆘 "+link)+mutedStyle.Render("  (!) Du bist nicht allein."),
		"",
		mutedStyle.Render("  ↑/↓: Tool wählen  enter: Tool öffnen  w: Weiter zum Journaling"),
	))
}

func (h homeModel) renderTodos(w int) string {
	rows := []string{subtitleStyle.Render("Deine Tagesziele"), ""}
	for _, t := range h.cat.Todos {
		if t.Done {
			rows = append(rows, successStyle.Render("✓ ")+mutedStyle.Strikethrough(true).Render(t.Text))
		} else {
			rows = append(rows, warningStyle.Render("□ ")+normalItemStyle.Render(t.Text))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (h homeModel) renderTools(w int) string {
	rows := []string{subtitleStyle.Render("Schnellzugriff: Tools"), ""}
	for i, t := range h.cat.Tools {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+t.Label))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func dayWord(n int) string {
	if n == 1 {
		return "Tag"
	}
	return "Tage"
}
