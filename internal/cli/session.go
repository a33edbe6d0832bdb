// Package cli implements the interactive menu programs: the fitness
// tracker, the bookstore, and the flat-file task manager. Each program is
// a loop of numbered (or lettered) options driven through a Session, which
// carries the input reader, output writer, and login state so the flows
// are testable with scripted input.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/quillfort/trak/internal/logging"
	"github.com/quillfort/trak/pkg/types"
)

// Terminal emphasis used across all programs.
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// Session is the interactive context passed to every menu handler. It holds
// no global state: reader, writer, role, and the per-run log correlation id
// all travel with it.
type Session struct {
	ID       uuid.UUID
	Log      *slog.Logger
	Role     string
	Username string

	// LoginAttempts is the credential budget left for the current
	// authentication. Login resets it to loginBudget and decrements it
	// on each rejected attempt.
	LoginAttempts int

	in  *bufio.Reader
	out io.Writer
}

// NewSession wraps the reader and writer for one program run. A nil logger
// falls back to a discard logger.
func NewSession(in io.Reader, out io.Writer, log *slog.Logger) *Session {
	id := uuid.New()
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		ID:            id,
		Log:           log.With("session", id.String()),
		LoginAttempts: loginBudget,
		in:            bufio.NewReader(in),
		out:           out,
	}
}

// Printf writes formatted output to the session writer.
func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Println writes a line to the session writer.
func (s *Session) Println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// Title prints a section heading.
func (s *Session) Title(text string) {
	titleColor.Fprintf(s.out, "\n%s\n", text)
}

// Failure prints a user-facing error line.
func (s *Session) Failure(msg string) {
	errorColor.Fprintf(s.out, "%s\n", msg)
}

// Success prints a confirmation line.
func (s *Session) Success(format string, args ...any) {
	successColor.Fprintf(s.out, format+"\n", args...)
}

// ReadLine prints the label and returns the next input line, trimmed.
// End of input returns ErrAborted.
func (s *Session) ReadLine(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", types.ErrAborted
	}
	return strings.TrimSpace(line), nil
}

// abortInput reports whether the input is one of the abort markers used to
// back out of a nested prompt.
func abortInput(v string) bool {
	return v == "0" || strings.EqualFold(v, "e")
}

// PromptID reads a positive record id, re-prompting on non-numeric input.
// "0" or "e" aborts.
func (s *Session) PromptID(label string) (int64, error) {
	for {
		line, err := s.ReadLine(label)
		if err != nil {
			return 0, err
		}
		if abortInput(line) {
			return 0, types.ErrAborted
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			s.Failure("Invalid input. Please enter a number.")
			continue
		}
		return id, nil
	}
}

// PromptInt reads an integer value, re-prompting on non-numeric input.
func (s *Session) PromptInt(label string) (int, error) {
	for {
		line, err := s.ReadLine(label)
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(line, "e") {
			return 0, types.ErrAborted
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			s.Failure("Invalid input. Please enter a number.")
			continue
		}
		return n, nil
	}
}

// PromptFloat reads a numeric value such as a goal target.
func (s *Session) PromptFloat(label string) (float64, error) {
	for {
		line, err := s.ReadLine(label)
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(line, "e") {
			return 0, types.ErrAborted
		}
		f, err := strconv.ParseFloat(line, 64)
		if err != nil {
			s.Failure("Invalid input. Please enter a number.")
			continue
		}
		return f, nil
	}
}

// Confirm asks for explicit confirmation. Only the literal "yes" in any
// case counts; everything else declines.
func (s *Session) Confirm(label string) (bool, error) {
	line, err := s.ReadLine(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "yes"), nil
}

// MenuItem is one numbered action in a Menu.
type MenuItem struct {
	Label string
	Run   func() error
}

// Menu is a numbered option loop. Items are offered 1..n; 0 carries the
// ExitLabel and leaves the loop. Out-of-range selections re-prompt.
type Menu struct {
	Title     string
	ExitLabel string
	Items     []MenuItem
}

// Run drives the menu until the user selects 0 or input ends. Handler
// errors that map to a user-facing message are printed and the loop
// continues; anything else stops the program.
func (m Menu) Run(s *Session) error {
	for {
		s.Title(m.Title)
		for i, item := range m.Items {
			s.Printf("%d. %s\n", i+1, item.Label)
		}
		s.Printf("0. %s\n\n", m.ExitLabel)

		line, err := s.ReadLine("Select an option: ")
		if err != nil {
			if errors.Is(err, types.ErrAborted) {
				return nil
			}
			return err
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			s.Failure("Invalid input. Please enter a number.")
			continue
		}
		if choice < 0 || choice > len(m.Items) {
			s.Failure("Invalid option. Please try again.")
			continue
		}
		if choice == 0 {
			return nil
		}

		item := m.Items[choice-1]
		s.Log.Debug("menu selection", "menu", m.Title, "choice", choice, "label", item.Label)
		if err := item.Run(); err != nil {
			if errors.Is(err, types.ErrAborted) {
				continue
			}
			msg, ok := userMessage(err)
			if !ok {
				return err
			}
			s.Failure(msg)
		}
	}
}

// parseID parses a record id from already-read input.
func parseID(v string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
}

// parseCount parses a non-id integer from already-read input.
func parseCount(v string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(v))
}

// parseFloat parses a numeric value from already-read input.
func parseFloat(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

// userMessage maps domain sentinels to the line shown to the user. Storage
// and system failures are not mapped; they abort the program.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return "No record found with that ID.", true
	case errors.Is(err, types.ErrBlankField):
		return "This field cannot be blank.", true
	case errors.Is(err, types.ErrInvalidNumber):
		return "Invalid input. Please enter a valid number.", true
	case errors.Is(err, types.ErrDuplicateName):
		return "That name is already in use.", true
	case errors.Is(err, types.ErrMissingReference):
		return "The referenced record does not exist.", true
	case errors.Is(err, types.ErrDuplicateAssignment):
		return "That exercise has already been added to the routine.", true
	case errors.Is(err, types.ErrUnknownUser):
		return "That user is not registered.", true
	case errors.Is(err, types.ErrUserExists):
		return "User Already Registered", true
	}
	return "", false
}
