package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sadopc/mentaljournal/internal/chat"
	"github.com/sadopc/mentaljournal/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewJournal
	viewChat
	viewTools
	viewStats
)

var viewNames = []string{"Start", "Journaling", "Chat", "Tools", "Statistik"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type toastExpiredMsg struct {
	seq int
}

type entriesMsg struct {
	entries []store.Entry
	version uint64
	err     error
}

type exportDoneMsg struct {
	path string
}

type chatReplyMsg struct {
	session int
	msg     chat.Message
}

type loginDoneMsg struct {
	username string
	signUp   bool
}

type tourDoneMsg struct {
	skipped bool
}

type openToolMsg struct {
	key string
}

type continueMsg struct{}

// --- Commands ---

func loadEntries(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		entries, v, err := s.Snapshot()
		return entriesMsg{entries: entries, version: v, err: err}
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func statusErr(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// openURL hands url to the platform's default handler.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// --- Helpers ---

const dateLayout = "02.01.2006 15:04"

var moodFaces = []string{"", "😞", "🙁", "😐", "🙂", "😄"}

var moodNames = []string{"", "Sehr schlecht", "Schlecht", "Neutral", "Gut", "Sehr gut"}

func moodFace(m int) string {
	if m < store.MoodMin || m > store.MoodMax {
		return "·"
	}
	return moodFaces[m]
}

func moodName(m int) string {
	if m < store.MoodMin || m > store.MoodMax {
		return "keine Angabe"
	}
	return moodNames[m]
}

// truncate cuts s to w terminal cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	s = strings.Join(strings.Fields(s), " ")
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// pad fills s with spaces to w terminal cells.
func pad(s string, w int) string {
	return runewidth.FillRight(truncate(s, w), w)
}

func wrap(s string, w int) string {
	if w < 10 {
		w = 10
	}
	return wordwrap.String(s, w)
}

func formatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}
