package tui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mentaljournal/internal/catalog"
	"github.com/sadopc/mentaljournal/internal/chat"
	"github.com/sadopc/mentaljournal/internal/config"
	"github.com/sadopc/mentaljournal/internal/export"
	"github.com/sadopc/mentaljournal/internal/journal"
	"github.com/sadopc/mentaljournal/internal/session"
	"github.com/sadopc/mentaljournal/internal/store"
)

const toastExported = "Exportiert!"

var exportFormats = []string{"Text (.txt)", "JSON", "CSV", "Zwischenablage"}

// Options configures a new App.
type Options struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Dark    bool
	// User logs in directly and skips the login form.
	User string
}

// App is the root Bubble Tea model. It owns the store, the login gate, the
// conversation and every view.
type App struct {
	store *store.Store
	cfg   *config.Config
	cat   *catalog.Catalog
	gate  *session.Gate
	conv  *chat.Conversation
	proj  *journal.Projection

	width  int
	height int
	dark   bool

	// Each login gets a new session id and context; logout cancels it.
	sessionID int
	cancel    context.CancelFunc

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	login      loginModel
	onboarding onboardingModel
	home       homeModel
	journal    journalModel
	chat       chatModel
	tools      toolsModel
	stats      statsModel

	help     help.Model
	status   string
	isError  bool
	toastSeq int
}

func NewApp(s *store.Store, opts Options) App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Load(); err != nil {
			panic(fmt.Sprintf("built-in catalog: %v", err))
		}
	}

	applyTheme(opts.Dark)

	h := help.New()
	h.ShowAll = false

	conv := chat.NewConversation()
	proj := &journal.Projection{}
	responder := chat.Responder{Delay: cfg.ChatReplyDelay, Text: cfg.ChatReply}

	a := App{
		store:      s,
		cfg:        cfg,
		cat:        cat,
		gate:       &session.Gate{},
		conv:       conv,
		proj:       proj,
		dark:       opts.Dark,
		cancel:     func() {},
		activeView: viewHome,
		login:      newLoginModel(),
		onboarding: newOnboardingModel(cat.Tour),
		home:       newHomeModel(cat, proj, cfg.EmergencyURL),
		journal:    newJournalModel(s, proj),
		chat:       newChatModel(conv, responder),
		tools:      newToolsModel(cat),
		stats:      newStatsModel(proj),
		help:       h,
	}
	a.tools.setDark(opts.Dark)
	a.newQuote()

	if opts.User != "" && a.gate.Login(opts.User) {
		a.startSession()
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{loadEntries(a.store)}
	if !a.gate.LoggedIn() {
		cmds = append(cmds, a.login.form.Init())
	}
	return tea.Batch(cmds...)
}

// startSession binds the chat to a fresh context and shows the tour.
func (a *App) startSession() {
	a.cancel()
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.sessionID++
	a.chat.bind(ctx, a.sessionID)
	a.home.username = a.gate.Username()
	a.onboarding.restart()
	log.Printf("session %d: %s logged in", a.sessionID, a.gate.Username())
}

// logout ends the session. Entries stay in the store.
func (a *App) logout() tea.Cmd {
	log.Printf("session %d: %s logged out", a.sessionID, a.gate.Username())
	a.cancel()
	a.cancel = func() {}
	a.gate.Logout()
	a.conv.Reset()
	a.chat.bind(context.Background(), 0)
	a.chat.input.Blur()
	a.journal.reset()
	a.tools = a.tools.close()
	a.home.username = ""
	a.activeView = viewHome
	a.exportPicking = false
	a.showHelp = false
	a.help.ShowAll = false

	var cmd tea.Cmd
	a.login, cmd = a.login.reset()
	return cmd
}

func (a *App) newQuote() {
	q := a.cat.RandomQuote()
	a.home.quote = q
	a.journal.quote = q
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.newQuote()
	return a, loadEntries(a.store)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.login.setSize(a.width, a.height)
		a.onboarding.setSize(a.width, a.height)
		a.home.setSize(a.width, contentHeight)
		a.journal.setSize(a.width, contentHeight)
		a.chat.setSize(a.width, contentHeight)
		a.tools.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.cancel()
			return a, tea.Quit
		}

		switch a.gate.State() {
		case session.LoggedOut:
			var cmd tea.Cmd
			a.login, cmd = a.login.update(msg)
			return a, cmd
		case session.Onboarding:
			var cmd tea.Cmd
			a.onboarding, cmd = a.onboarding.update(msg)
			return a, cmd
		}

		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			a.cancel()
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Logout):
			cmd := a.logout()
			return a, cmd
		case key.Matches(msg, keys.Dark):
			a.dark = !a.dark
			applyTheme(a.dark)
			a.tools.setDark(a.dark)
			a.stats.rebuild()
			return a, nil
		case key.Matches(msg, keys.Emergency):
			return a, a.openEmergency()
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewHome)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewJournal)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewChat)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewTools)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewStats)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case entriesMsg:
		if msg.err != nil {
			log.Printf("load entries: %v", msg.err)
			return a, statusErr("Einträge konnten nicht geladen werden: %v", msg.err)
		}
		if a.proj.Reset(msg.version, msg.entries) {
			a.journal.clampCursor()
			a.stats.rebuild()
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		if msg.isError {
			log.Printf("status: %s", msg.text)
		}
		a.toastSeq++
		seq := a.toastSeq
		return a, tea.Tick(a.cfg.ToastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		})

	case toastExpiredMsg:
		// A newer toast keeps its own timer.
		if msg.seq == a.toastSeq {
			a.status = ""
			a.isError = false
		}
		return a, nil

	case chatReplyMsg:
		if msg.session != a.sessionID || !a.gate.LoggedIn() {
			return a, nil
		}
		a.chat = a.chat.receive(msg.msg)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.exportPicking = false
		text := toastExported
		if msg.path != "" {
			text += " " + msg.path
		}
		log.Printf("export: %s", text)
		return a, status(text)

	case loginDoneMsg:
		login := a.gate.Login
		if msg.signUp {
			login = a.gate.SignUp
		}
		if login(msg.username) {
			a.startSession()
		}
		return a, nil

	case tourDoneMsg:
		if msg.skipped {
			a.gate.SkipTour()
		} else {
			a.gate.FinishTour()
		}
		a.activeView = viewHome
		a.newQuote()
		return a, loadEntries(a.store)

	case openToolMsg:
		a.activeView = viewTools
		a.tools = a.tools.show(msg.key)
		return a, nil

	case continueMsg:
		return a.switchView(viewJournal)
	}

	if !a.gate.LoggedIn() {
		var cmd tea.Cmd
		a.login, cmd = a.login.update(msg)
		return a, cmd
	}
	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewHome:
		a.home, cmd = a.home.update(msg)
	case viewJournal:
		a.journal, cmd = a.journal.update(msg)
	case viewChat:
		a.chat, cmd = a.chat.update(msg)
	case viewTools:
		a.tools, cmd = a.tools.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewJournal:
		return a.journal.capturing()
	case viewChat:
		return a.chat.capturing()
	}
	return false
}

func (a App) openEmergency() tea.Cmd {
	url := a.cfg.EmergencyURL
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			return statusMsg{text: fmt.Sprintf("Link konnte nicht geöffnet werden: %s", url), isError: true}
		}
		return statusMsg{text: "Notfall-Hilfe geöffnet: " + url}
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.gate.State() {
	case session.LoggedOut:
		return a.login.view()
	case session.Onboarding:
		return a.onboarding.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewHome:
		content = a.home.view()
	case viewJournal:
		content = a.journal.view()
	case viewChat:
		content = a.chat.view()
	case viewTools:
		content = a.tools.view()
	case viewStats:
		content = a.stats.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("Mental Journal")
	user := avatarStyle.Render(a.gate.Initials()) + " " + mutedStyle.Render(a.gate.Username())
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - lipgloss.Width(user) - 6
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow, "  ", user),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isError {
			status = errorStyle.Render(" ✗ " + a.status)
		} else {
			status = successStyle.Render(" ✓ " + a.status)
		}
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker(_ int) string {
	title := titleStyle.Render("Export-Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Ziel: "+a.cfg.ExportDir))
	rows = append(rows, mutedStyle.Render("  enter: exportieren  esc: abbrechen"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport writes every entry, in store order, in the chosen format.
func (a App) doExport(format int) tea.Cmd {
	s, dir := a.store, a.cfg.ExportDir
	return func() tea.Msg {
		entries, err := s.ListEntries()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export-Fehler: %v", err), isError: true}
		}

		if format == 3 {
			if err := export.ToClipboard(entries); err != nil {
				return statusMsg{text: fmt.Sprintf("Zwischenablage-Fehler: %v", err), isError: true}
			}
			return exportDoneMsg{}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return statusMsg{text: fmt.Sprintf("Export-Fehler: %v", err), isError: true}
		}

		var path string
		switch format {
		case 0:
			path = filepath.Join(dir, export.TextFileName)
			err = export.ToText(entries, path)
		case 1:
			path = filepath.Join(dir, export.JSONFileName)
			err = export.ToJSON(entries, path)
		default:
			path = filepath.Join(dir, export.CSVFileName)
			err = export.ToCSV(entries, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export-Fehler: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
