package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillfort/trak/internal/taskfile"
	"github.com/quillfort/trak/pkg/types"
)

// newTestStore returns a taskfile store seeded with the default admin
// account in a temp directory.
func newTestStore(t *testing.T) *taskfile.Store {
	t.Helper()
	store := taskfile.NewStore(t.TempDir())
	require.NoError(t, store.Ensure())
	return store
}

func TestLogin_Succeeds(t *testing.T) {
	store := newTestStore(t)

	s, out := newScriptedSession("admin", "admin")
	require.NoError(t, Login(s, store))
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, types.RoleAdmin, s.Role)
	assert.Contains(t, out.String(), "Access Granted!")
}

func TestLogin_UsernameIsCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddUser(types.User{Username: "Bob", Password: "hunter2"}))

	s, _ := newScriptedSession("BOB", "hunter2")
	require.NoError(t, Login(s, store))
	assert.Equal(t, "bob", s.Username)
	assert.Equal(t, types.RoleUser, s.Role)
}

func TestLogin_RetriesThenSucceeds(t *testing.T) {
	store := newTestStore(t)

	s, out := newScriptedSession("admin", "wrong", "nobody", "nope", "admin", "admin")
	require.NoError(t, Login(s, store))
	assert.Contains(t, out.String(), "Access Denied! 2 attempts remaining.")
	assert.Contains(t, out.String(), "Access Denied! 1 attempts remaining.")
}

func TestLogin_ExhaustsAttempts(t *testing.T) {
	store := newTestStore(t)

	s, out := newScriptedSession("admin", "a", "admin", "b", "admin", "c")
	err := Login(s, store)
	assert.ErrorIs(t, err, types.ErrLoginAttemptsExhausted)
	assert.Contains(t, out.String(), "Too many failed attempts. Exiting.")
	assert.Empty(t, s.Username)
}

func TestLogin_TracksRemainingAttemptsOnSession(t *testing.T) {
	store := newTestStore(t)

	s, _ := newScriptedSession("admin", "a", "admin", "b", "admin", "c")
	assert.Equal(t, 3, s.LoginAttempts)
	require.ErrorIs(t, Login(s, store), types.ErrLoginAttemptsExhausted)
	assert.Equal(t, 0, s.LoginAttempts)

	// A second authentication starts from a fresh budget.
	s2, _ := newScriptedSession("admin", "wrong", "admin", "admin")
	s2.LoginAttempts = 0
	require.NoError(t, Login(s2, store))
	assert.Equal(t, 2, s2.LoginAttempts)
}

func TestLogin_EndOfInputAborts(t *testing.T) {
	store := newTestStore(t)

	s, _ := newScriptedSession("admin")
	err := Login(s, store)
	assert.ErrorIs(t, err, types.ErrAborted)
}
