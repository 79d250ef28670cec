package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mentaljournal/internal/catalog"
)

type toolsModel struct {
	cat    *catalog.Catalog
	width  int
	height int
	dark   bool

	cursor int
	open   string // key of the tool being read, "" for the list
	vp     viewport.Model
}

func newToolsModel(cat *catalog.Catalog) toolsModel {
	return toolsModel{cat: cat, dark: true, vp: viewport.New(40, 10)}
}

func (t *toolsModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.vp.Width = max(w-8, 10)
	t.vp.Height = max(h-8, 3)
	t.render()
}

func (t *toolsModel) setDark(dark bool) {
	t.dark = dark
	t.render()
}

// show opens the tool with key k.
func (t toolsModel) show(k string) toolsModel {
	for i, tool := range t.cat.Tools {
		if tool.Key == k {
			t.cursor = i
			t.open = k
			t.render()
			t.vp.GotoTop()
			break
		}
	}
	return t
}

func (t toolsModel) close() toolsModel {
	t.open = ""
	return t
}

// render fills the viewport with the open tool's markdown.
func (t *toolsModel) render() {
	tool, ok := t.cat.Tool(t.open)
	if !ok {
		return
	}
	t.vp.SetContent(renderMarkdown(tool.Body, t.vp.Width, t.dark))
}

func renderMarkdown(md string, width int, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-2, 10)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (t toolsModel) update(msg tea.Msg) (toolsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	if t.open != "" {
		if key.Matches(keyMsg, keys.Back) || key.Matches(keyMsg, keys.Left) {
			return t.close(), nil
		}
		var cmd tea.Cmd
		t.vp, cmd = t.vp.Update(keyMsg)
		return t, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if t.cursor < len(t.cat.Tools)-1 {
			t.cursor++
		}
	case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.Right):
		if t.cursor < len(t.cat.Tools) {
			return t.show(t.cat.Tools[t.cursor].Key), nil
		}
	}
	return t, nil
}

func (t toolsModel) view() string {
	w := t.width - 4

	if tool, ok := t.cat.Tool(t.open); ok {
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("← Zurück (esc)"),
			subtitleStyle.Render(tool.Label),
			"",
			t.vp.View(),
		))
	}

	rows := []string{titleStyle.Render("Tools für deine Gefühle"), ""}
	for i, tool := range t.cat.Tools {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+tool.Label)+mutedStyle.Render("  "+tool.Summary))
	}
	rows = append(rows, "", mutedStyle.Render("  ↑/↓: auswählen  enter: öffnen"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
