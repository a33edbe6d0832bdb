// This file implements the routines and routine_exercises table accessors.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// RoutinesTable provides CRUD operations over workout routines and their
// exercise assignments.
type RoutinesTable struct {
	backend *Backend
}

// Add inserts a new routine and returns its generated id.
func (t *RoutinesTable) Add(r *types.Routine) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	name := strings.TrimSpace(r.Name)
	if err := checkNameFree(db, types.TableRoutines, name, 0); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin routine insert", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO routines (name, description) VALUES (?, ?)",
		name, strings.TrimSpace(r.Description),
	)
	if err != nil {
		return 0, mapConstraintErr("insert routine", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.NewStorageError("insert routine", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit routine insert", err)
	}

	r.ID = id
	r.Name = name
	return id, nil
}

// Get retrieves a routine by id, including its assigned exercises in
// assignment order. Returns ErrNotFound if absent.
func (t *RoutinesTable) Get(id int64) (*types.Routine, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var r types.Routine
	err = db.QueryRow(
		"SELECT id, name, description FROM routines WHERE id = ?", id,
	).Scan(&r.ID, &r.Name, &r.Description)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get routine", err)
	}

	r.Exercises, err = t.assignments(db, id)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// All returns every routine ordered by id, each with its assigned
// exercises.
func (t *RoutinesTable) All() ([]types.Routine, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, name, description FROM routines ORDER BY id")
	if err != nil {
		return nil, types.NewStorageError("list routines", err)
	}
	defer rows.Close()

	routines := []types.Routine{}
	for rows.Next() {
		var r types.Routine
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, types.NewStorageError("scan routine", err)
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate routines", err)
	}

	for i := range routines {
		routines[i].Exercises, err = t.assignments(db, routines[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return routines, nil
}

// Update applies a sparse patch to a routine. An empty patch is a no-op
// reporting zero rows changed.
func (t *RoutinesTable) Update(id int64, patch types.RoutinePatch) (int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableRoutines, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrNotFound
	}
	if patch.Empty() {
		return 0, nil
	}

	upd := newUpdate(types.TableRoutines)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return 0, types.ErrBlankField
		}
		if err := checkNameFree(db, types.TableRoutines, name, id); err != nil {
			return 0, err
		}
		upd.Set("name", name)
	}
	if patch.Description != nil {
		upd.Set("description", strings.TrimSpace(*patch.Description))
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin routine update", err)
	}
	defer tx.Rollback()

	stmt, args := upd.Build("id", id)
	res, err := tx.Exec(stmt, args...)
	if err != nil {
		return 0, mapConstraintErr("update routine", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("update routine", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit routine update", err)
	}
	return n, nil
}

// Delete removes a routine, its exercise assignments, and detaches its
// workout logs, all within one transaction. Logs are kept with their
// routine reference cleared rather than deleted.
func (t *RoutinesTable) Delete(id int64) error {
	return t.backend.deleteWithCascade(types.TableRoutines, id)
}

// AddExercise assigns an exercise to a routine with a sets and reps
// prescription. Both sides must exist; assigning the same exercise twice
// returns ErrDuplicateAssignment.
func (t *RoutinesTable) AddExercise(a types.RoutineExercise) error {
	if err := a.Validate(); err != nil {
		return err
	}

	db, err := t.backend.handle()
	if err != nil {
		return err
	}

	for _, probe := range []struct {
		table string
		id    int64
	}{
		{types.TableRoutines, a.RoutineID},
		{types.TableExercises, a.ExerciseID},
	} {
		exists, err := rowExists(db, probe.table, probe.id)
		if err != nil {
			return err
		}
		if !exists {
			return types.ErrMissingReference
		}
	}

	var one int64
	err = db.QueryRow(
		"SELECT 1 FROM routine_exercises WHERE routine_id = ? AND exercise_id = ?",
		a.RoutineID, a.ExerciseID,
	).Scan(&one)
	if err == nil {
		return types.ErrDuplicateAssignment
	}
	if err != sql.ErrNoRows {
		return types.NewStorageError("assignment probe", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return types.NewStorageError("begin assignment insert", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO routine_exercises (routine_id, exercise_id, sets, reps, position)
VALUES (?, ?, ?, ?,
    (SELECT COUNT(*) + 1 FROM routine_exercises WHERE routine_id = ?))`,
		a.RoutineID, a.ExerciseID, a.Sets, a.Reps, a.RoutineID,
	)
	if err != nil {
		return mapConstraintErr("insert assignment", err)
	}

	if err := tx.Commit(); err != nil {
		return types.NewStorageError("commit assignment insert", err)
	}
	return nil
}

// ExerciseIDs returns the ids of the exercises assigned to a routine.
// Used as the exclusion list when offering further assignments.
func (t *RoutinesTable) ExerciseIDs(routineID int64) ([]int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT exercise_id FROM routine_exercises WHERE routine_id = ?", routineID)
	if err != nil {
		return nil, types.NewStorageError("list assignment ids", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, types.NewStorageError("scan assignment id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate assignment ids", err)
	}
	return ids, nil
}

// LogCompletion records that a routine was completed now. The routine
// must exist. Returns the new log id.
func (t *RoutinesTable) LogCompletion(routineID int64, durationMinutes int, notes string) (int64, error) {
	return t.backend.Logs().Append(routineID, durationMinutes, notes)
}

func (t *RoutinesTable) assignments(db *sql.DB, routineID int64) ([]types.RoutineExercise, error) {
	rows, err := db.Query(`SELECT re.routine_id, re.exercise_id, re.sets, re.reps, e.name
FROM routine_exercises re
JOIN exercises e ON e.id = re.exercise_id
WHERE re.routine_id = ?
ORDER BY re.position`, routineID)
	if err != nil {
		return nil, types.NewStorageError("list assignments", err)
	}
	defer rows.Close()

	assignments := []types.RoutineExercise{}
	for rows.Next() {
		var a types.RoutineExercise
		err := rows.Scan(&a.RoutineID, &a.ExerciseID, &a.Sets, &a.Reps, &a.ExerciseName)
		if err != nil {
			return nil, types.NewStorageError("scan assignment", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate assignments", err)
	}
	return assignments, nil
}
