package cli

import (
	"errors"
	"strings"

	"github.com/quillfort/trak/internal/taskfile"
	"github.com/quillfort/trak/pkg/types"
)

// adminMenu and userMenu are the option blocks shown per role.
const adminMenu = `Select one of the following options:
r  - register a user
a  - add task
va - view all tasks
vm - view my tasks
vu - view a user's tasks
s  - statistics
cu - change user
e  - exit
: `

const userMenu = `Select one of the following options:
a  - add task
va - view all tasks
vm - view my tasks
cu - change user
e  - exit
: `

// taskman binds the task manager handlers to a session and the flat-file
// store.
type taskman struct {
	s     *Session
	store *taskfile.Store
}

// RunTaskman authenticates and drives the task manager program. It returns
// ErrLoginAttemptsExhausted when the attempt budget is spent, at login or
// on a later change-user.
func RunTaskman(s *Session, store *taskfile.Store) error {
	if err := store.Ensure(); err != nil {
		return err
	}
	if err := Login(s, store); err != nil {
		return err
	}

	tm := &taskman{s: s, store: store}
	for {
		menu := userMenu
		if s.Role == types.RoleAdmin {
			menu = adminMenu
		}
		choice, err := s.ReadLine("\n" + menu)
		if err != nil {
			if errors.Is(err, types.ErrAborted) {
				return nil
			}
			return err
		}

		s.Log.Debug("taskman selection", "user", s.Username, "choice", choice)
		var handlerErr error
		switch strings.ToLower(choice) {
		case "r":
			handlerErr = tm.adminOnly(tm.registerUser)
		case "a":
			handlerErr = tm.addTask()
		case "va":
			handlerErr = tm.viewAllTasks()
		case "vm":
			handlerErr = tm.viewMyTasks()
		case "vu":
			handlerErr = tm.adminOnly(tm.viewUserTasks)
		case "s":
			handlerErr = tm.adminOnly(tm.statistics)
		case "cu":
			s.Println()
			if err := Login(s, store); err != nil {
				return err
			}
			continue
		case "e":
			s.Println("\nGoodbye!")
			return nil
		default:
			s.Failure("Invalid input. Please try again.")
			continue
		}

		if handlerErr != nil {
			if errors.Is(handlerErr, types.ErrAborted) {
				continue
			}
			msg, ok := userMessage(handlerErr)
			if !ok {
				return handlerErr
			}
			s.Failure(msg)
		}
	}
}

// adminOnly gates a handler behind the admin role.
func (tm *taskman) adminOnly(run func() error) error {
	if tm.s.Role != types.RoleAdmin {
		tm.s.Failure("Access Denied.\nAdmin Login Required.")
		return nil
	}
	return run()
}

// registerUser collects a new credential pair, confirming each entry, and
// appends it to user.txt.
func (tm *taskman) registerUser() error {
	username, err := tm.confirmedInput("Input New Username: ", "Please Confirm Username: ", "Username does not match, please try again.")
	if err != nil {
		return err
	}
	password, err := tm.confirmedInput("Input New Password: ", "Please Confirm Password: ", "Password does not match, please try again.")
	if err != nil {
		return err
	}

	if err := tm.store.AddUser(types.User{Username: username, Password: password}); err != nil {
		return err
	}
	tm.s.Success("Registered New User")
	return nil
}

// confirmedInput reads the same value twice until both entries match.
// "e" aborts.
func (tm *taskman) confirmedInput(label, confirmLabel, mismatch string) (string, error) {
	for {
		first, err := tm.s.ReadLine("\n" + label)
		if err != nil {
			return "", err
		}
		if strings.ToLower(first) == "e" {
			return "", types.ErrAborted
		}
		second, err := tm.s.ReadLine(confirmLabel)
		if err != nil {
			return "", err
		}
		if first == second {
			return first, nil
		}
		tm.s.Failure(mismatch)
	}
}

func (tm *taskman) addTask() error {
	assignee, err := tm.s.ReadLine("\nUsername: ")
	if err != nil {
		return err
	}
	if strings.ToLower(assignee) == "e" {
		return types.ErrAborted
	}
	if _, err := tm.store.Lookup(assignee); err != nil {
		if errors.Is(err, types.ErrUnknownUser) {
			tm.s.Failure("Invalid Username: \"" + assignee + "\". Please register the user first.")
			return nil
		}
		return err
	}

	title, err := tm.s.ReadLine("Task Title: ")
	if err != nil {
		return err
	}
	description, err := tm.s.ReadLine("Task Description: ")
	if err != nil {
		return err
	}
	due, err := tm.s.ReadLine("Task Due Date (Eg. 12 October 2022): ")
	if err != nil {
		return err
	}

	task := types.Task{Username: assignee, Title: title, Description: description, DueDate: due}
	if err := tm.store.AddTask(task); err != nil {
		return err
	}
	tm.s.Success("\nNew Task Assigned.")
	return nil
}

func (tm *taskman) viewAllTasks() error {
	tasks, err := tm.store.Tasks()
	if err != nil {
		return err
	}
	tm.printTasks(tasks)
	return nil
}

func (tm *taskman) viewMyTasks() error {
	tasks, err := tm.store.TasksFor(tm.s.Username)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		tm.s.Println("\nNo tasks assigned to user.")
		return nil
	}
	tm.printTasks(tasks)
	return nil
}

func (tm *taskman) viewUserTasks() error {
	username, err := tm.s.ReadLine("\nUsername: ")
	if err != nil {
		return err
	}
	if strings.ToLower(username) == "e" {
		return types.ErrAborted
	}

	tasks, err := tm.store.TasksFor(username)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		tm.s.Println("\nNo tasks assigned to user.")
		return nil
	}
	tm.printTasks(tasks)
	return nil
}

func (tm *taskman) statistics() error {
	users, tasks, err := tm.store.Counts()
	if err != nil {
		return err
	}
	tm.s.Printf("\nTotal Users: %d\n", users)
	tm.s.Printf("Total Tasks: %d\n", tasks)
	return nil
}

func (tm *taskman) printTasks(tasks []types.Task) {
	for _, t := range tasks {
		completed := "No"
		if t.Completed {
			completed = "Yes"
		}
		tm.s.Printf("\nTask:               %s\n", t.Title)
		tm.s.Printf("Assigned To:        %s\n", t.Username)
		tm.s.Printf("Date Assigned:      %s\n", t.AssignedDate)
		tm.s.Printf("Due Date:           %s\n", t.DueDate)
		tm.s.Printf("Task Complete?:     %s\n", completed)
		tm.s.Printf("Task Description:\n\n%s\n", t.Description)
	}
}
