// Package chat holds the mock conversation. Replies come from a Responder
// that answers every message with the same canned text.
package chat

import (
	"context"
	"strings"
	"time"
)

type Sender string

const (
	User Sender = "user"
	Bot  Sender = "bot"
)

type Message struct {
	Text   string
	Sender Sender
	Time   time.Time
}

// Conversation is the message history. At most one reply is pending.
type Conversation struct {
	messages []Message
	pending  bool
	now      func() time.Time
}

func NewConversation() *Conversation {
	return &Conversation{now: time.Now}
}

// Send appends a user message and marks a reply as pending. Blank text and
// sends while a reply is pending are ignored.
func (c *Conversation) Send(text string) (Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" || c.pending {
		return Message{}, false
	}
	m := Message{Text: text, Sender: User, Time: c.now()}
	c.messages = append(c.messages, m)
	c.pending = true
	return m, true
}

// Receive appends a bot reply and clears the pending flag.
func (c *Conversation) Receive(m Message) {
	c.messages = append(c.messages, m)
	c.pending = false
}

func (c *Conversation) Pending() bool { return c.pending }

// Messages returns a copy of the history in send order.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

func (c *Conversation) Len() int { return len(c.messages) }

// Reset clears the history and any pending reply.
func (c *Conversation) Reset() {
	c.messages = nil
	c.pending = false
}

// Responder produces the automatic reply after Delay.
type Responder struct {
	Delay time.Duration
	Text  string
}

// Await blocks for r.Delay and returns the reply, or ctx.Err() if ctx is
// done first.
func (r Responder) Await(ctx context.Context) (Message, error) {
	t := time.NewTimer(r.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case now := <-t.C:
		return Message{Text: r.Text, Sender: Bot, Time: now}, nil
	}
}
