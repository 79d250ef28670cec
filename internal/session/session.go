// Package session implements the login gate in front of the journal.
// Credentials are never checked; any non-blank username gets in.
package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// State is a position in the gate's lifecycle.
type State int

const (
	LoggedOut State = iota
	Onboarding
	Active
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case Onboarding:
		return "onboarding"
	case Active:
		return "active"
	}
	return "unknown"
}

// Gate moves a user from LoggedOut through the onboarding tour to Active.
type Gate struct {
	state    State
	username string
}

func (g *Gate) State() State       { return g.state }
func (g *Gate) Username() string   { return g.username }
func (g *Gate) LoggedIn() bool     { return g.state != LoggedOut }
func (g *Gate) InOnboarding() bool { return g.state == Onboarding }

// Login starts the tour for username. It does nothing unless the gate is
// logged out and username is non-blank.
func (g *Gate) Login(username string) bool {
	username = strings.TrimSpace(username)
	if g.state != LoggedOut || username == "" {
		return false
	}
	g.username = username
	g.state = Onboarding
	return true
}

// SignUp behaves exactly like Login.
func (g *Gate) SignUp(username string) bool {
	return g.Login(username)
}

// FinishTour completes onboarding.
func (g *Gate) FinishTour() bool {
	if g.state != Onboarding {
		return false
	}
	g.state = Active
	return true
}

// SkipTour leaves onboarding early. The result is the same as finishing it.
func (g *Gate) SkipTour() bool {
	return g.FinishTour()
}

// Logout returns to LoggedOut from any state.
func (g *Gate) Logout() {
	g.state = LoggedOut
	g.username = ""
}

// Initials returns up to two upper-case initials of the username, or "U".
func (g *Gate) Initials() string {
	return Initials(g.username)
}

func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "U"
	}
	return string(out)
}
