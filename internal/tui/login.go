package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// loginModel is the gate in front of the app. The password is collected but
// never checked.
type loginModel struct {
	width  int
	height int

	signUp bool
	form   *huh.Form

	// Form field pointers (survive value copies)
	username *string
	password *string
	remember *bool
}

func newLoginModel() loginModel {
	name, pw, remember := "", "", false
	l := loginModel{
		username: &name,
		password: &pw,
		remember: &remember,
	}
	l.form = l.buildForm()
	return l
}

func (l *loginModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l loginModel) buildForm() *huh.Form {
	submit := "Anmelden"
	if l.signUp {
		submit = "Registrieren"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Benutzername").Value(l.username),
			huh.NewInput().Title("Passwort").EchoMode(huh.EchoModePassword).Value(l.password),
			huh.NewConfirm().
				Title("Angemeldet bleiben").
				Affirmative(submit).
				Negative("Nein").
				Value(l.remember),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

// reset clears the fields and rebuilds the form.
func (l loginModel) reset() (loginModel, tea.Cmd) {
	*l.username = ""
	*l.password = ""
	*l.remember = false
	l.form = l.buildForm()
	return l, l.form.Init()
}

func (l loginModel) toggleMode() (loginModel, tea.Cmd) {
	l.signUp = !l.signUp
	l.form = l.buildForm()
	return l, l.form.Init()
}

func (l loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+r" {
		return l.toggleMode()
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	switch l.form.State {
	case huh.StateCompleted:
		name := strings.TrimSpace(*l.username)
		signUp := l.signUp
		*l.password = ""
		if name == "" {
			// Silently refused; start over.
			return l.reset()
		}
		return l, func() tea.Msg { return loginDoneMsg{username: name, signUp: signUp} }
	case huh.StateAborted:
		return l, tea.Quit
	}
	return l, cmd
}

func (l loginModel) view() string {
	title := "Willkommen bei Mental Journal"
	hint := "ctrl+r: Noch kein Konto? Registrieren"
	if l.signUp {
		title = "Konto erstellen"
		hint = "ctrl+r: Schon ein Konto? Anmelden"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		mutedStyle.Render("Dein sicherer Ort für Gedanken und Gefühle."),
		"",
		l.form.View(),
		"",
		mutedStyle.Render(hint),
	)

	w := min(60, max(l.width-4, 20))
	box := activePanelStyle.Width(w).Render(content)
	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
}
