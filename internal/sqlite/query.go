package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/quillfort/trak/pkg/types"
)

// timeLayout matches the strftime default used by the workout_logs table.
const timeLayout = "2006-01-02 15:04:05"

// updateBuilder assembles a sparse-patch UPDATE statement. Only columns
// explicitly added with Set appear in the statement; every value stays
// bound as a parameter.
type updateBuilder struct {
	table   string
	clauses []string
	args    []any
}

// newUpdate starts a builder for the named table.
func newUpdate(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set adds one column assignment.
func (u *updateBuilder) Set(column string, value any) *updateBuilder {
	u.clauses = append(u.clauses, column+" = ?")
	u.args = append(u.args, value)
	return u
}

// Empty reports whether no assignments were added.
func (u *updateBuilder) Empty() bool {
	return len(u.clauses) == 0
}

// Build returns the statement and its bound arguments, keyed on idColumn.
func (u *updateBuilder) Build(idColumn string, id any) (string, []any) {
	stmt := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ?",
		u.table, strings.Join(u.clauses, ", "), idColumn,
	)
	return stmt, append(u.args, id)
}

// notIn produces a parameterized exclusion clause for the given column.
// Returns an empty clause when ids is empty; values are always bound,
// never interpolated.
func notIn(column string, ids []int64) (string, []any) {
	if len(ids) == 0 {
		return "", nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf("%s NOT IN (%s)", column, placeholders), args
}

// mapConstraintErr translates engine constraint violations into the
// sentinel errors repositories promise. Anything unrecognized is wrapped
// as a StorageError for the named operation.
func mapConstraintErr(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return types.ErrDuplicateName
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return types.ErrMissingReference
	default:
		return types.NewStorageError(op, err)
	}
}

// parseTimestamp converts a stored completed_at string to time.Time.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
