package cli

import (
	"errors"
	"fmt"

	"github.com/quillfort/trak/internal/taskfile"
	"github.com/quillfort/trak/pkg/types"
)

// loginBudget is the number of consecutive credential attempts allowed
// before the program exits.
const loginBudget = 3

// Login authenticates against user.txt and stores the username and role on
// the session. Each call grants a fresh budget of loginBudget attempts,
// tracked on s.LoginAttempts; once it hits zero Login returns
// ErrLoginAttemptsExhausted.
func Login(s *Session, store *taskfile.Store) error {
	s.LoginAttempts = loginBudget
	for s.LoginAttempts > 0 {
		username, err := s.ReadLine("Please enter your username: ")
		if err != nil {
			return err
		}
		password, err := s.ReadLine("Please enter your password: ")
		if err != nil {
			return err
		}

		u, lookupErr := store.Lookup(username)
		if lookupErr == nil && u.Password == password {
			s.Username = u.Key()
			s.Role = u.Role()
			s.Success("Access Granted!")
			s.Log.Info("login", "user", s.Username, "role", s.Role,
				"attempt", loginBudget-s.LoginAttempts+1)
			return nil
		}
		if lookupErr != nil && !errors.Is(lookupErr, types.ErrUnknownUser) {
			return lookupErr
		}

		s.LoginAttempts--
		if s.LoginAttempts > 0 {
			s.Failure(fmt.Sprintf("Access Denied! %d attempts remaining.", s.LoginAttempts))
		}
	}

	s.Failure("Too many failed attempts. Exiting.")
	s.Log.Warn("login attempts exhausted")
	return types.ErrLoginAttemptsExhausted
}
