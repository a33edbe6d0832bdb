// This file implements the goals table accessor.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// GoalsTable provides CRUD operations over fitness goals.
type GoalsTable struct {
	backend *Backend
}

const goalSelect = `SELECT g.id, g.name, g.target_value, g.goal_category_id, g.is_achieved, c.name
FROM goals g
JOIN goal_categories c ON c.id = g.goal_category_id`

// Add inserts a new goal and returns its generated id. The owning goal
// category must exist. New goals always start unachieved.
func (t *GoalsTable) Add(g *types.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableGoalCategories, g.GoalCategoryID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrMissingReference
	}

	name := strings.TrimSpace(g.Name)
	if err := checkNameFree(db, types.TableGoals, name, 0); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin goal insert", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO goals (name, target_value, goal_category_id, is_achieved) VALUES (?, ?, ?, 0)",
		name, g.TargetValue, g.GoalCategoryID,
	)
	if err != nil {
		return 0, mapConstraintErr("insert goal", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.NewStorageError("insert goal", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit goal insert", err)
	}

	g.ID = id
	g.Name = name
	g.Achieved = false
	return id, nil
}

// Get retrieves a goal by id. Returns ErrNotFound if absent.
func (t *GoalsTable) Get(id int64) (*types.Goal, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var g types.Goal
	err = db.QueryRow(goalSelect+" WHERE g.id = ?", id).
		Scan(&g.ID, &g.Name, &g.TargetValue, &g.GoalCategoryID, &g.Achieved, &g.CategoryName)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get goal", err)
	}
	return &g, nil
}

// All returns every goal with its category name, ordered by id.
func (t *GoalsTable) All() ([]types.Goal, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(goalSelect + " ORDER BY g.id")
	if err != nil {
		return nil, types.NewStorageError("list goals", err)
	}
	defer rows.Close()

	goals := []types.Goal{}
	for rows.Next() {
		var g types.Goal
		err := rows.Scan(&g.ID, &g.Name, &g.TargetValue, &g.GoalCategoryID, &g.Achieved, &g.CategoryName)
		if err != nil {
			return nil, types.NewStorageError("scan goal", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate goals", err)
	}
	return goals, nil
}

// Update applies a sparse patch to a goal. The achieved flag is never
// patched here; it only flips through progress evaluation.
func (t *GoalsTable) Update(id int64, patch types.GoalPatch) (int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableGoals, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrNotFound
	}
	if patch.Empty() {
		return 0, nil
	}

	upd := newUpdate(types.TableGoals)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return 0, types.ErrBlankField
		}
		if err := checkNameFree(db, types.TableGoals, name, id); err != nil {
			return 0, err
		}
		upd.Set("name", name)
	}
	if patch.TargetValue != nil {
		if *patch.TargetValue <= 0 {
			return 0, types.ErrInvalidNumber
		}
		upd.Set("target_value", *patch.TargetValue)
	}
	if patch.GoalCategoryID != nil {
		ok, err := rowExists(db, types.TableGoalCategories, *patch.GoalCategoryID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, types.ErrMissingReference
		}
		upd.Set("goal_category_id", *patch.GoalCategoryID)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin goal update", err)
	}
	defer tx.Rollback()

	stmt, args := upd.Build("id", id)
	res, err := tx.Exec(stmt, args...)
	if err != nil {
		return 0, mapConstraintErr("update goal", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("update goal", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit goal update", err)
	}
	return n, nil
}

// Delete removes a goal. Returns ErrNotFound if absent.
func (t *GoalsTable) Delete(id int64) error {
	return t.backend.deleteWithCascade(types.TableGoals, id)
}
