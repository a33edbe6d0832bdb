// This file implements the workout_logs table accessor.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// LogsTable provides append and read operations over workout logs. Logs
// are never updated; a completed workout is a historical fact.
type LogsTable struct {
	backend *Backend
}

// Append records the completion of a routine now and returns the new log
// id. The routine must exist at the time of logging; the row survives a
// later deletion of the routine with its reference cleared.
func (t *LogsTable) Append(routineID int64, durationMinutes int, notes string) (int64, error) {
	if durationMinutes < 0 {
		return 0, types.ErrInvalidNumber
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableRoutines, routineID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrMissingReference
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin log insert", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO workout_logs (routine_id, duration_minutes, notes) VALUES (?, ?, ?)",
		routineID, durationMinutes, strings.TrimSpace(notes),
	)
	if err != nil {
		return 0, mapConstraintErr("insert log", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.NewStorageError("insert log", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit log insert", err)
	}
	return id, nil
}

// All returns every workout log, most recent first. The routine name is
// joined in where the routine still exists; logs for deleted routines
// carry an empty name.
func (t *LogsTable) All() ([]types.WorkoutLog, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT l.id, l.routine_id, l.completed_at, l.duration_minutes, l.notes, COALESCE(r.name, '')
FROM workout_logs l
LEFT JOIN routines r ON r.id = l.routine_id
ORDER BY l.completed_at DESC, l.id DESC`)
	if err != nil {
		return nil, types.NewStorageError("list logs", err)
	}
	defer rows.Close()

	logs := []types.WorkoutLog{}
	for rows.Next() {
		var (
			l         types.WorkoutLog
			routineID sql.NullInt64
			completed string
		)
		err := rows.Scan(&l.ID, &routineID, &completed, &l.DurationMinutes, &l.Notes, &l.RoutineName)
		if err != nil {
			return nil, types.NewStorageError("scan log", err)
		}
		if routineID.Valid {
			l.RoutineID = routineID.Int64
		}
		l.CompletedAt, err = parseTimestamp(completed)
		if err != nil {
			return nil, types.NewStorageError("parse log timestamp", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate logs", err)
	}
	return logs, nil
}

// CountForRoutine returns how many logs reference a routine. Shown before
// a routine is deleted so the user knows how much history keeps only an
// unlinked record.
func (t *LogsTable) CountForRoutine(routineID int64) (int, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	var n int
	err = db.QueryRow(
		"SELECT COUNT(*) FROM workout_logs WHERE routine_id = ?", routineID,
	).Scan(&n)
	if err != nil {
		return 0, types.NewStorageError("count logs", err)
	}
	return n, nil
}
