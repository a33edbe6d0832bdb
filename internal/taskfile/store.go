// Package taskfile implements the flat-file user and task store behind
// the task manager. Records are comma-space separated lines in user.txt
// and tasks.txt under the data directory; both files are append-only and
// read by full scan.
package taskfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quillfort/trak/pkg/types"
)

const (
	userFileName = "user.txt"
	taskFileName = "tasks.txt"

	// dateLayout formats assigned dates, e.g. "02 January 2026".
	dateLayout = "02 January 2006"

	taskFieldCount = 6
)

// defaultAdmin is written to a fresh user.txt so the first login works.
var defaultAdmin = types.User{Username: "admin", Password: "admin"}

// Store reads and appends the flat files in one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. No files are touched until
// Ensure or an operation runs.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// UserPath returns the location of user.txt.
func (s *Store) UserPath() string { return filepath.Join(s.dir, userFileName) }

// TaskPath returns the location of tasks.txt.
func (s *Store) TaskPath() string { return filepath.Join(s.dir, taskFileName) }

// Ensure creates the data directory and both files if absent. A fresh
// user.txt is seeded with the default admin credential; tasks.txt starts
// empty. Existing files are never touched.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create task data dir: %w", err)
	}

	if _, err := os.Stat(s.UserPath()); os.IsNotExist(err) {
		line := formatUser(defaultAdmin)
		if err := os.WriteFile(s.UserPath(), []byte(line+"\n"), 0o644); err != nil {
			return fmt.Errorf("create %s: %w", userFileName, err)
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", userFileName, err)
	}

	if _, err := os.Stat(s.TaskPath()); os.IsNotExist(err) {
		if err := os.WriteFile(s.TaskPath(), nil, 0o644); err != nil {
			return fmt.Errorf("create %s: %w", taskFileName, err)
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", taskFileName, err)
	}
	return nil
}

// Users loads every credential line keyed by the lowercased username.
func (s *Store) Users() (map[string]types.User, error) {
	users := map[string]types.User{}
	err := scanLines(s.UserPath(), func(lineNo int, line string) error {
		fields := strings.Split(line, ", ")
		if len(fields) != 2 {
			return fmt.Errorf("%s line %d: want 2 fields, got %d",
				userFileName, lineNo, len(fields))
		}
		u := types.User{
			Username: strings.TrimSpace(fields[0]),
			Password: strings.TrimSpace(fields[1]),
		}
		users[u.Key()] = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Lookup returns the user stored under the given name, case-insensitively.
// Returns ErrUnknownUser if absent.
func (s *Store) Lookup(username string) (types.User, error) {
	users, err := s.Users()
	if err != nil {
		return types.User{}, err
	}
	u, ok := users[types.User{Username: username}.Key()]
	if !ok {
		return types.User{}, types.ErrUnknownUser
	}
	return u, nil
}

// AddUser appends a new credential line. Returns ErrUserExists when the
// username is already registered under any casing.
func (s *Store) AddUser(u types.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	users, err := s.Users()
	if err != nil {
		return err
	}
	if _, ok := users[u.Key()]; ok {
		return types.ErrUserExists
	}

	return appendLine(s.UserPath(), formatUser(u))
}

// Tasks loads every task line in file order.
func (s *Store) Tasks() ([]types.Task, error) {
	tasks := []types.Task{}
	err := scanLines(s.TaskPath(), func(lineNo int, line string) error {
		fields := strings.Split(line, ", ")
		if len(fields) != taskFieldCount {
			return fmt.Errorf("%s line %d: want %d fields, got %d",
				taskFileName, lineNo, taskFieldCount, len(fields))
		}
		tasks = append(tasks, types.Task{
			Username:     strings.TrimSpace(fields[0]),
			Title:        fields[1],
			Description:  fields[2],
			DueDate:      fields[3],
			AssignedDate: fields[4],
			Completed:    strings.EqualFold(strings.TrimSpace(fields[5]), "yes"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksFor returns the tasks assigned to one user, case-insensitively.
func (s *Store) TasksFor(username string) ([]types.Task, error) {
	all, err := s.Tasks()
	if err != nil {
		return nil, err
	}
	key := types.User{Username: username}.Key()

	mine := []types.Task{}
	for _, t := range all {
		if (types.User{Username: t.Username}).Key() == key {
			mine = append(mine, t)
		}
	}
	return mine, nil
}

// AddTask appends a task for an existing user, stamping the assigned date
// with today. New tasks always start incomplete. Returns ErrUnknownUser
// when the assignee is not registered.
func (s *Store) AddTask(t types.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.Lookup(t.Username); err != nil {
		return err
	}

	t.Username = types.User{Username: t.Username}.Key()
	t.AssignedDate = time.Now().Format(dateLayout)
	t.Completed = false
	return appendLine(s.TaskPath(), formatTask(t))
}

// Counts returns the number of registered users and recorded tasks.
func (s *Store) Counts() (users int, tasks int, err error) {
	err = scanLines(s.UserPath(), func(int, string) error {
		users++
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	err = scanLines(s.TaskPath(), func(int, string) error {
		tasks++
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return users, tasks, nil
}

func formatUser(u types.User) string {
	return u.Key() + ", " + strings.TrimSpace(u.Password)
}

func formatTask(t types.Task) string {
	completed := "No"
	if t.Completed {
		completed = "Yes"
	}
	return strings.Join([]string{
		t.Username, t.Title, t.Description, t.DueDate, t.AssignedDate, completed,
	}, ", ")
}

// scanLines calls fn for every non-blank line of the named file.
func scanLines(path string, fn func(lineNo int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return nil
}

// appendLine writes one record with a trailing newline so the file stays
// line-oriented across appends.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
