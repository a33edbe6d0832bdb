package taskfile

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillfort/trak/pkg/types"
)

// newTestStore ensures a store in a temp dir with the default admin user.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	require.NoError(t, s.Ensure())
	return s
}

func TestStore_EnsureSeedsAdmin(t *testing.T) {
	s := newTestStore(t)

	users, err := s.Users()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users["admin"].Username)
	assert.Equal(t, "admin", users["admin"].Password)

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestStore_EnsureKeepsExistingFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(types.User{Username: "maria", Password: "pw"}))

	require.NoError(t, s.Ensure())

	users, err := s.Users()
	require.NoError(t, err)
	assert.Len(t, users, 2, "a second ensure never reseeds")
}

func TestStore_AddUser(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddUser(types.User{Username: "Maria", Password: "pw"}))

	u, err := s.Lookup("MARIA")
	require.NoError(t, err, "lookup is case-insensitive")
	assert.Equal(t, "maria", u.Username, "usernames are stored lowercased")

	tests := []struct {
		name    string
		user    types.User
		wantErr error
	}{
		{name: "duplicate", user: types.User{Username: "maria", Password: "x"}, wantErr: types.ErrUserExists},
		{name: "duplicate other casing", user: types.User{Username: "Maria", Password: "x"}, wantErr: types.ErrUserExists},
		{name: "blank username", user: types.User{Username: " ", Password: "x"}, wantErr: types.ErrBlankField},
		{name: "blank password", user: types.User{Username: "nils", Password: ""}, wantErr: types.ErrBlankField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.AddUser(tt.user), tt.wantErr)
		})
	}
}

func TestStore_Lookup(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Lookup("nobody")
	assert.ErrorIs(t, err, types.ErrUnknownUser)
}

func TestStore_AddTask(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(types.User{Username: "maria", Password: "pw"}))

	task := types.Task{
		Username:    "Maria",
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     "12 October 2026",
	}
	require.NoError(t, s.AddTask(task))

	tasks, err := s.Tasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "maria", tasks[0].Username)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, time.Now().Format(dateLayout), tasks[0].AssignedDate)
	assert.False(t, tasks[0].Completed, "new tasks start incomplete")

	err = s.AddTask(types.Task{Username: "ghost", Title: "X", DueDate: "today"})
	assert.ErrorIs(t, err, types.ErrUnknownUser)

	err = s.AddTask(types.Task{Username: "maria", Title: " ", DueDate: "today"})
	assert.ErrorIs(t, err, types.ErrBlankField)
}

func TestStore_TasksFor(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(types.User{Username: "maria", Password: "pw"}))
	require.NoError(t, s.AddUser(types.User{Username: "nils", Password: "pw"}))

	require.NoError(t, s.AddTask(types.Task{Username: "maria", Title: "One", DueDate: "soon"}))
	require.NoError(t, s.AddTask(types.Task{Username: "nils", Title: "Two", DueDate: "soon"}))
	require.NoError(t, s.AddTask(types.Task{Username: "maria", Title: "Three", DueDate: "soon"}))

	mine, err := s.TasksFor("MARIA")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "One", mine[0].Title)
	assert.Equal(t, "Three", mine[1].Title)

	none, err := s.TasksFor("admin")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Counts(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(types.User{Username: "maria", Password: "pw"}))
	require.NoError(t, s.AddTask(types.Task{Username: "maria", Title: "One", DueDate: "soon"}))

	users, tasks, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, users)
	assert.Equal(t, 1, tasks)
}

func TestStore_RoundTripFormat(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(types.User{Username: "maria", Password: "pw"}))
	require.NoError(t, s.AddTask(types.Task{
		Username:    "maria",
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     "12 October 2026",
	}))

	raw, err := os.ReadFile(s.TaskPath())
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))
	fields := strings.Split(line, ", ")
	require.Len(t, fields, taskFieldCount)
	assert.Equal(t, "maria", fields[0])
	assert.Equal(t, "No", fields[5])
}

func TestStore_SkipsBlankLines(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.TaskPath(),
		[]byte("\nmaria, One, , soon, 01 January 2026, No\n\n"), 0o644))

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestStore_RejectsMalformedLines(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.TaskPath(), []byte("only, three, fields\n"), 0o644))

	_, err := s.Tasks()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tasks.txt line 1")
}
