// This file implements the goal-categories table accessor.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// GoalCategoriesTable provides CRUD operations over goal categories.
// Goal categories are kept separate from workout categories because a
// goal grouping (strength, endurance, consistency) is not an exercise
// grouping.
type GoalCategoriesTable struct {
	backend *Backend
}

// Add inserts a new goal category and returns its generated id.
func (t *GoalCategoriesTable) Add(c *types.GoalCategory) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	name := strings.TrimSpace(c.Name)
	if err := checkNameFree(db, types.TableGoalCategories, name, 0); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin goal category insert", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO goal_categories (name) VALUES (?)", name)
	if err != nil {
		return 0, mapConstraintErr("insert goal category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.NewStorageError("insert goal category", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit goal category insert", err)
	}

	c.ID = id
	c.Name = name
	return id, nil
}

// Get retrieves a goal category by id. Returns ErrNotFound if absent.
func (t *GoalCategoriesTable) Get(id int64) (*types.GoalCategory, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var c types.GoalCategory
	err = db.QueryRow("SELECT id, name FROM goal_categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get goal category", err)
	}
	return &c, nil
}

// All returns every goal category ordered by id.
func (t *GoalCategoriesTable) All() ([]types.GoalCategory, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, name FROM goal_categories ORDER BY id")
	if err != nil {
		return nil, types.NewStorageError("list goal categories", err)
	}
	defer rows.Close()

	categories := []types.GoalCategory{}
	for rows.Next() {
		var c types.GoalCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, types.NewStorageError("scan goal category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate goal categories", err)
	}
	return categories, nil
}

// Rename changes a goal category's name and reports rows changed.
func (t *GoalCategoriesTable) Rename(id int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, types.ErrBlankField
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableGoalCategories, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrNotFound
	}

	if err := checkNameFree(db, types.TableGoalCategories, name, id); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin goal category update", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE goal_categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return 0, mapConstraintErr("update goal category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("update goal category", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit goal category update", err)
	}
	return n, nil
}

// Delete removes a goal category and every goal under it in one
// transaction.
func (t *GoalCategoriesTable) Delete(id int64) error {
	return t.backend.deleteWithCascade(types.TableGoalCategories, id)
}
