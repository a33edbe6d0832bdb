package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/quillfort/trak/pkg/types"
)

// This file is the referential-integrity coordinator: a single existence
// probe used before any foreign-key-carrying insert or update, and the
// child-first cascade used by delete operations. Cascades run inside the
// caller's transaction so the whole delete is atomic.

// probeTables whitelists the id-keyed tables Exists may touch. The table
// name is interpolated into the probe, so it is never caller-controlled
// beyond this set.
var probeTables = map[string]bool{
	types.TableCategories:     true,
	types.TableExercises:      true,
	types.TableRoutines:       true,
	types.TableGoalCategories: true,
	types.TableGoals:          true,
	types.TableWorkoutLogs:    true,
	types.TableBooks:          true,
}

// execer covers both *sql.DB and *sql.Tx for queries inside and outside
// transactions.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// errUnknownTable reports a table name outside the probe whitelist.
func errUnknownTable(table string) error {
	return fmt.Errorf("unknown table %q", table)
}

// Exists reports whether the given table holds a row with the given id.
// Used before inserts/updates carrying foreign keys and before delete
// confirmation is requested.
func (b *Backend) Exists(table string, id int64) (bool, error) {
	db, err := b.handle()
	if err != nil {
		return false, err
	}
	return rowExists(db, table, id)
}

// rowExists runs the single-row existence probe against db or an open tx.
func rowExists(q execer, table string, id int64) (bool, error) {
	if !probeTables[table] {
		return false, errUnknownTable(table)
	}

	var one int
	err := q.QueryRow("SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, types.NewStorageError("existence probe", err)
	}
	return true, nil
}

// cascadeDelete removes the row with the given id from table, deleting
// dependents first, deepest dependents first. Workout logs are history
// and survive routine deletion with the routine reference cleared.
// Returns ErrNotFound when the target row is absent.
func cascadeDelete(tx *sql.Tx, table string, id int64) error {
	switch table {
	case types.TableCategories:
		// categories -> exercises -> routine_exercises
		_, err := tx.Exec(
			`DELETE FROM routine_exercises
			 WHERE exercise_id IN (SELECT id FROM exercises WHERE category_id = ?)`,
			id,
		)
		if err != nil {
			return types.NewStorageError("cascade routine_exercises", err)
		}
		if _, err := tx.Exec("DELETE FROM exercises WHERE category_id = ?", id); err != nil {
			return types.NewStorageError("cascade exercises", err)
		}

	case types.TableExercises:
		if _, err := tx.Exec("DELETE FROM routine_exercises WHERE exercise_id = ?", id); err != nil {
			return types.NewStorageError("cascade routine_exercises", err)
		}

	case types.TableRoutines:
		if _, err := tx.Exec("DELETE FROM routine_exercises WHERE routine_id = ?", id); err != nil {
			return types.NewStorageError("cascade routine_exercises", err)
		}
		if _, err := tx.Exec("UPDATE workout_logs SET routine_id = NULL WHERE routine_id = ?", id); err != nil {
			return types.NewStorageError("orphan workout_logs", err)
		}

	case types.TableGoalCategories:
		if _, err := tx.Exec("DELETE FROM goals WHERE goal_category_id = ?", id); err != nil {
			return types.NewStorageError("cascade goals", err)
		}

	case types.TableGoals, types.TableBooks, types.TableWorkoutLogs:
		// No dependents.

	default:
		return errUnknownTable(table)
	}

	res, err := tx.Exec("DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return types.NewStorageError("delete "+table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.NewStorageError("delete "+table, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// deleteWithCascade wraps cascadeDelete in its own transaction after an
// existence pre-check, the shared shape of every repository Delete.
func (b *Backend) deleteWithCascade(table string, id int64) error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	exists, err := rowExists(db, table, id)
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrNotFound
	}

	tx, err := db.Begin()
	if err != nil {
		return types.NewStorageError("begin delete", err)
	}
	defer tx.Rollback()

	if err := cascadeDelete(tx, table, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return types.NewStorageError("commit delete", err)
	}
	return nil
}
