package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/mentaljournal/internal/chat"
)

const toastSent = "Nachricht gesendet!"

type chatModel struct {
	conv      *chat.Conversation
	responder chat.Responder
	width     int
	height    int

	// ctx and session belong to the logged in user; replies for an older
	// session are dropped.
	ctx     context.Context
	session int

	vp    viewport.Model
	input textarea.Model
	spin  spinner.Model
}

func newChatModel(conv *chat.Conversation, r chat.Responder) chatModel {
	ta := textarea.New()
	ta.Placeholder = "Schreib eine Nachricht…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		conv:      conv,
		responder: r,
		ctx:       context.Background(),
		vp:        viewport.New(40, 10),
		input:     ta,
		spin:      sp,
	}
}

func (c *chatModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.input.SetWidth(max(w-8, 10))
	c.vp.Width = max(w-8, 10)
	c.vp.Height = max(h-12, 3)
	c.refresh()
}

// bind attaches the chat to a login session.
func (c *chatModel) bind(ctx context.Context, session int) {
	c.ctx = ctx
	c.session = session
	c.input.Reset()
	c.refresh()
}

func (c chatModel) capturing() bool {
	return c.input.Focused()
}

func (c chatModel) focus() (chatModel, tea.Cmd) {
	cmd := c.input.Focus()
	return c, cmd
}

func (c *chatModel) refresh() {
	c.vp.SetContent(c.renderMessages())
	c.vp.GotoBottom()
}

func (c chatModel) receive(m chat.Message) chatModel {
	c.conv.Receive(m)
	c.refresh()
	return c
}

func (c chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.conv.Pending() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if !c.input.Focused() {
			switch {
			case key.Matches(msg, keys.Enter):
				return c.focus()
			case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
				var cmd tea.Cmd
				c.vp, cmd = c.vp.Update(msg)
				return c, cmd
			}
			return c, nil
		}

		switch msg.String() {
		case "esc":
			c.input.Blur()
			return c, nil
		case "enter":
			return c.send()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c chatModel) send() (chatModel, tea.Cmd) {
	if _, ok := c.conv.Send(c.input.Value()); !ok {
		return c, nil
	}
	c.input.Reset()
	c.refresh()

	ctx, session, r := c.ctx, c.session, c.responder
	await := func() tea.Msg {
		reply, err := r.Await(ctx)
		if err != nil {
			return nil
		}
		return chatReplyMsg{session: session, msg: reply}
	}
	return c, tea.Batch(status(toastSent), c.spin.Tick, await)
}

func (c chatModel) renderMessages() string {
	msgs := c.conv.Messages()
	if len(msgs) == 0 {
		return mutedStyle.Render("Noch keine Nachrichten. Wie geht es dir heute?")
	}

	w := c.vp.Width
	bubbleW := max(w*2/3, 10)
	var rows []string
	for _, m := range msgs {
		stamp := mutedStyle.Render(m.Time.Local().Format("15:04"))
		if m.Sender == chat.User {
			bubble := userBubbleStyle.Render(wrap(m.Text, bubbleW-4))
			rows = append(rows, lipgloss.PlaceHorizontal(w, lipgloss.Right, lipgloss.JoinVertical(lipgloss.Right, bubble, stamp)))
		} else {
			bubble := botBubbleStyle.Render(wrap(m.Text, bubbleW-4))
			rows = append(rows, lipgloss.JoinVertical(lipgloss.Left, bubble, stamp))
		}
	}
	return strings.Join(rows, "\n")
}

func (c chatModel) view() string {
	w := c.width - 4

	typing := ""
	if c.conv.Pending() {
		typing = c.spin.View() + mutedStyle.Render(" schreibt…")
	}

	hint := "enter: senden  esc: Eingabe verlassen"
	if !c.input.Focused() {
		hint = "enter: schreiben  ↑/↓: blättern"
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Chat"),
		"",
		c.vp.View(),
		typing,
		"",
		c.input.View(),
		mutedStyle.Render("  "+hint),
	))
}
