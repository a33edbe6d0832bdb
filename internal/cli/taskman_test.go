package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillfort/trak/internal/taskfile"
	"github.com/quillfort/trak/pkg/types"
)

// runTaskman drives the task manager with scripted input and returns the
// captured output.
func runTaskman(t *testing.T, store *taskfile.Store, lines ...string) (string, error) {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	s := NewSession(in, &out, nil)
	err := RunTaskman(s, store)
	return out.String(), err
}

func TestRunTaskman_AdminSession(t *testing.T) {
	store := newTestStore(t)

	out, err := runTaskman(t, store,
		"admin", "admin",
		"r",
		"bob", "bob",
		"hunter2", "hunter2",
		"a",
		"bob",
		"Write report",
		"Quarterly numbers",
		"12 October 2026",
		"vu",
		"bob",
		"s",
		"e",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Registered New User")
	assert.Contains(t, out, "New Task Assigned.")
	assert.Contains(t, out, "Task:               Write report")
	assert.Contains(t, out, "Assigned To:        bob")
	assert.Contains(t, out, "Due Date:           12 October 2026")
	assert.Contains(t, out, "Task Complete?:     No")
	assert.Contains(t, out, "Total Users: 2")
	assert.Contains(t, out, "Total Tasks: 1")
	assert.Contains(t, out, "Goodbye!")

	// The new credential pair actually works.
	u, lookupErr := store.Lookup("bob")
	require.NoError(t, lookupErr)
	assert.Equal(t, "hunter2", u.Password)
}

func TestRunTaskman_RegisterDuplicateUser(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddUser(types.User{Username: "bob", Password: "pw"}))

	out, err := runTaskman(t, store,
		"admin", "admin",
		"r",
		"bob", "bob",
		"other", "other",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "User Already Registered")
}

func TestRunTaskman_RegisterConfirmationMismatch(t *testing.T) {
	store := newTestStore(t)

	out, err := runTaskman(t, store,
		"admin", "admin",
		"r",
		"carol", "karol",
		"carol", "carol",
		"pw", "pw",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Username does not match, please try again.")
	assert.Contains(t, out, "Registered New User")
}

func TestRunTaskman_NonAdminMenuIsRestricted(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddUser(types.User{Username: "bob", Password: "pw"}))

	out, err := runTaskman(t, store,
		"bob", "pw",
		"s",
		"vu",
		"r",
		"e",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Admin Login Required."))
	assert.NotContains(t, out, "Total Users:")
}

func TestRunTaskman_ViewMyTasks(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddUser(types.User{Username: "bob", Password: "pw"}))
	require.NoError(t, store.AddTask(types.Task{
		Username:    "bob",
		Title:       "Water plants",
		Description: "The ones in the hallway",
		DueDate:     "1 November 2026",
	}))

	out, err := runTaskman(t, store,
		"bob", "pw",
		"vm",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Task:               Water plants")

	out, err = runTaskman(t, store,
		"admin", "admin",
		"vm",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks assigned to user.")
}

func TestRunTaskman_AddTaskUnknownAssignee(t *testing.T) {
	store := newTestStore(t)

	out, err := runTaskman(t, store,
		"admin", "admin",
		"a",
		"ghost",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `Invalid Username: "ghost".`)
}

func TestRunTaskman_LoginExhaustionExits(t *testing.T) {
	store := newTestStore(t)

	_, err := runTaskman(t, store,
		"admin", "x",
		"admin", "y",
		"admin", "z",
	)
	assert.ErrorIs(t, err, types.ErrLoginAttemptsExhausted)
}

func TestRunTaskman_ChangeUserSwitchesRole(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddUser(types.User{Username: "bob", Password: "pw"}))

	out, err := runTaskman(t, store,
		"bob", "pw",
		"cu",
		"admin", "admin",
		"s",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Users: 2")
}

func TestRunTaskman_InvalidMenuInput(t *testing.T) {
	store := newTestStore(t)

	out, err := runTaskman(t, store,
		"admin", "admin",
		"zz",
		"e",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid input. Please try again.")
}
