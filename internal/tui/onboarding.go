package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mentaljournal/internal/catalog"
	"github.com/sadopc/mentaljournal/internal/session"
)

var highlightBadges = map[string]string{
	"journaling": "📓 Journaling",
	"chat":       "💬 Chat",
	"tools":      "🛠️ Tools",
}

type onboardingModel struct {
	width  int
	height int

	steps []catalog.Step
	tour  *session.Tour
}

func newOnboardingModel(steps []catalog.Step) onboardingModel {
	return onboardingModel{
		steps: steps,
		tour:  session.NewTour(len(steps)),
	}
}

func (o *onboardingModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

func (o onboardingModel) restart() {
	o.tour.Reset()
}

func (o onboardingModel) update(msg tea.Msg) (onboardingModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Skip):
		return o, func() tea.Msg { return tourDoneMsg{skipped: true} }
	case key.Matches(keyMsg, keys.Left):
		o.tour.Back()
	case key.Matches(keyMsg, keys.Right), key.Matches(keyMsg, keys.Enter):
		if !o.tour.Next() {
			return o, func() tea.Msg { return tourDoneMsg{} }
		}
	}
	return o, nil
}

func (o onboardingModel) view() string {
	step := o.steps[o.tour.Step()]

	var dots []string
	for i := range o.steps {
		if i == o.tour.Step() {
			dots = append(dots, highlightStyle.Render("●"))
		} else {
			dots = append(dots, mutedStyle.Render("○"))
		}
	}

	w := min(64, max(o.width-4, 24))
	rows := []string{
		mutedStyle.Render(fmt.Sprintf("Schritt %d von %d", o.tour.Step()+1, o.tour.Total())),
		"",
		subtitleStyle.Render(step.Title),
		"",
		normalItemStyle.Render(wrap(step.Text, w-6)),
	}
	if badge, ok := highlightBadges[step.Highlight]; ok {
		rows = append(rows, "", avatarStyle.Render(badge))
	}

	next := "→/enter: Weiter"
	if o.tour.Last() {
		next = "enter: Los geht's"
	}
	rows = append(rows,
		"",
		strings.Join(dots, " "),
		"",
		mutedStyle.Render("←: Zurück  "+next+"  s: Überspringen"),
	)

	box := activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, box)
}
