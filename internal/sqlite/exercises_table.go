// This file implements the exercises table accessor.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// ExercisesTable provides CRUD operations over exercises. Read paths
// denormalize the owning category name so callers can render listings
// without a second lookup.
type ExercisesTable struct {
	backend *Backend
}

const exerciseSelect = `SELECT e.id, e.name, e.muscle_group, e.category_id, c.name
FROM exercises e
JOIN categories c ON c.id = e.category_id`

// Add inserts a new exercise and returns its generated id. The owning
// category must exist; a dangling category id returns ErrMissingReference
// before any write happens.
func (t *ExercisesTable) Add(e *types.Exercise) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableCategories, e.CategoryID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrMissingReference
	}

	name := strings.TrimSpace(e.Name)
	if err := checkNameFree(db, types.TableExercises, name, 0); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin exercise insert", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO exercises (name, muscle_group, category_id) VALUES (?, ?, ?)",
		name, strings.TrimSpace(e.MuscleGroup), e.CategoryID,
	)
	if err != nil {
		return 0, mapConstraintErr("insert exercise", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.NewStorageError("insert exercise", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit exercise insert", err)
	}

	e.ID = id
	e.Name = name
	return id, nil
}

// Get retrieves an exercise by id. Returns ErrNotFound if absent.
func (t *ExercisesTable) Get(id int64) (*types.Exercise, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var e types.Exercise
	err = db.QueryRow(exerciseSelect+" WHERE e.id = ?", id).
		Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.CategoryID, &e.CategoryName)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get exercise", err)
	}
	return &e, nil
}

// All returns every exercise with its category name, ordered by id.
func (t *ExercisesTable) All() ([]types.Exercise, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	return t.scanList(db, exerciseSelect+" ORDER BY e.id")
}

// ByCategory returns the exercises owned by one category, ordered by
// name. A category with no exercises yields an empty slice, not an error.
func (t *ExercisesTable) ByCategory(categoryID int64) ([]types.Exercise, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	return t.scanList(db,
		exerciseSelect+" WHERE e.category_id = ? ORDER BY e.name", categoryID)
}

// Available returns exercises whose ids are not in excludeIDs, ordered by
// name. An empty exclusion list returns everything. Used when assigning
// exercises to a routine so already-assigned ones are not offered again.
func (t *ExercisesTable) Available(excludeIDs []int64) ([]types.Exercise, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	query := exerciseSelect
	clause, args := notIn("e.id", excludeIDs)
	if clause != "" {
		query += " WHERE " + clause
	}
	return t.scanList(db, query+" ORDER BY e.name", args...)
}

// Update applies a sparse patch to an exercise. Only fields set on the
// patch change; an empty patch is a no-op reporting zero rows changed.
// Returns ErrNotFound for an absent id, ErrBlankField for a blank new
// name, ErrDuplicateName when the new name is taken, and
// ErrMissingReference for a dangling new category id.
func (t *ExercisesTable) Update(id int64, patch types.ExercisePatch) (int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableExercises, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrNotFound
	}
	if patch.Empty() {
		return 0, nil
	}

	upd := newUpdate(types.TableExercises)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return 0, types.ErrBlankField
		}
		if err := checkNameFree(db, types.TableExercises, name, id); err != nil {
			return 0, err
		}
		upd.Set("name", name)
	}
	if patch.MuscleGroup != nil {
		group := strings.TrimSpace(*patch.MuscleGroup)
		if group == "" {
			return 0, types.ErrBlankField
		}
		upd.Set("muscle_group", group)
	}
	if patch.CategoryID != nil {
		ok, err := rowExists(db, types.TableCategories, *patch.CategoryID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, types.ErrMissingReference
		}
		upd.Set("category_id", *patch.CategoryID)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin exercise update", err)
	}
	defer tx.Rollback()

	stmt, args := upd.Build("id", id)
	res, err := tx.Exec(stmt, args...)
	if err != nil {
		return 0, mapConstraintErr("update exercise", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("update exercise", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit exercise update", err)
	}
	return n, nil
}

// Delete removes an exercise and its routine assignments in one
// transaction.
func (t *ExercisesTable) Delete(id int64) error {
	return t.backend.deleteWithCascade(types.TableExercises, id)
}

func (t *ExercisesTable) scanList(db *sql.DB, query string, args ...any) ([]types.Exercise, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, types.NewStorageError("list exercises", err)
	}
	defer rows.Close()

	exercises := []types.Exercise{}
	for rows.Next() {
		var e types.Exercise
		err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.CategoryID, &e.CategoryName)
		if err != nil {
			return nil, types.NewStorageError("scan exercise", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate exercises", err)
	}
	return exercises, nil
}
