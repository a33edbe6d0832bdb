package types

import "strings"

// Session roles for the flat-file task manager.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is one credential line in user.txt. Usernames are case-insensitive;
// the lowercased form is the key.
type User struct {
	Username string
	Password string
}

// Key returns the canonical lookup form of the username.
func (u User) Key() string {
	return strings.ToLower(strings.TrimSpace(u.Username))
}

// Role returns the access level the user holds after login. Only the
// literal "admin" account unlocks the admin menu.
func (u User) Role() string {
	if u.Key() == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Validate checks the user fields before persistence.
func (u User) Validate() error {
	if u.Key() == "" || strings.TrimSpace(u.Password) == "" {
		return ErrBlankField
	}
	return nil
}

// Task is one line in tasks.txt. Tasks have no ids; the file is an
// append-only log read by full scan.
type Task struct {
	Username     string // Lowercased assignee.
	Title        string
	Description  string
	DueDate      string // Free-form date text, e.g. "12 October 2026".
	AssignedDate string
	Completed    bool
}

// Validate checks the task fields before persistence.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Username) == "" ||
		strings.TrimSpace(t.Title) == "" ||
		strings.TrimSpace(t.DueDate) == "" {
		return ErrBlankField
	}
	return nil
}
