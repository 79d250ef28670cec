package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginStartsOnboarding(t *testing.T) {
	var g Gate
	require.Equal(t, LoggedOut, g.State())

	require.True(t, g.Login("  anna "))
	require.Equal(t, Onboarding, g.State())
	require.Equal(t, "anna", g.Username())
	require.True(t, g.LoggedIn())
}

func TestLoginBlankUsernameRefused(t *testing.T) {
	var g Gate
	require.False(t, g.Login(""))
	require.False(t, g.Login("   "))
	require.Equal(t, LoggedOut, g.State(), "blank username must not log in")
}

func TestSignUpBehavesLikeLogin(t *testing.T) {
	var g Gate
	require.True(t, g.SignUp("ben"))
	require.Equal(t, Onboarding, g.State())
}

func TestLoginOnlyFromLoggedOut(t *testing.T) {
	var g Gate
	require.True(t, g.Login("a"))
	require.False(t, g.Login("b"))
	require.Equal(t, "a", g.Username())
}

func TestFinishAndSkipTour(t *testing.T) {
	var g Gate
	require.False(t, g.FinishTour(), "no tour while logged out")

	g.Login("a")
	require.True(t, g.FinishTour())
	require.Equal(t, Active, g.State())
	require.False(t, g.SkipTour(), "already active")

	g.Logout()
	g.Login("a")
	require.True(t, g.SkipTour())
	require.Equal(t, Active, g.State())
}

func TestLogoutFromAnyState(t *testing.T) {
	var g Gate
	g.Logout()
	require.Equal(t, LoggedOut, g.State())

	g.Login("a")
	g.Logout()
	require.Equal(t, LoggedOut, g.State())
	require.Empty(t, g.Username())

	g.Login("a")
	g.FinishTour()
	g.Logout()
	require.Equal(t, LoggedOut, g.State())

	// Every login shows the tour again.
	g.Login("a")
	require.Equal(t, Onboarding, g.State())
}

func TestInitials(t *testing.T) {
	require.Equal(t, "U", Initials(""))
	require.Equal(t, "A", Initials("anna"))
	require.Equal(t, "AM", Initials("anna maria schmidt"))
	require.Equal(t, "ÖÜ", Initials("özil übel"))

	var g Gate
	require.Equal(t, "U", g.Initials())
	g.Login("max mustermann")
	require.Equal(t, "MM", g.Initials())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "logged out", LoggedOut.String())
	require.Equal(t, "onboarding", Onboarding.String())
	require.Equal(t, "active", Active.String())
}

func TestTourSteps(t *testing.T) {
	tour := NewTour(3)
	require.Equal(t, 0, tour.Step())
	require.False(t, tour.Back())

	require.True(t, tour.Next())
	require.True(t, tour.Next())
	require.True(t, tour.Last())
	require.False(t, tour.Next(), "cannot move past the last step")
	require.Equal(t, 2, tour.Step())

	require.True(t, tour.Back())
	require.Equal(t, 1, tour.Step())

	tour.Reset()
	require.Equal(t, 0, tour.Step())
}

func TestTourSingleStep(t *testing.T) {
	tour := NewTour(1)
	require.True(t, tour.Last())
	require.False(t, tour.Next())
}
