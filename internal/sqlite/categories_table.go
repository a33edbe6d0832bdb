// This file implements the workout-categories table accessor.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// CategoriesTable provides CRUD operations over workout categories.
type CategoriesTable struct {
	backend *Backend
}

// Add inserts a new category and returns its generated id.
// Returns ErrBlankField for a blank name and ErrDuplicateName when a
// category with the same name already exists.
func (t *CategoriesTable) Add(c *types.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	name := strings.TrimSpace(c.Name)
	if err := checkNameFree(db, types.TableCategories, name, 0); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin category insert", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return 0, mapConstraintErr("insert category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.NewStorageError("insert category", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit category insert", err)
	}

	c.ID = id
	c.Name = name
	return id, nil
}

// Get retrieves a category by id. Returns ErrNotFound if absent.
func (t *CategoriesTable) Get(id int64) (*types.Category, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var c types.Category
	err = db.QueryRow("SELECT id, name FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get category", err)
	}
	return &c, nil
}

// All returns every category ordered by id ascending. An empty result is
// not an error.
func (t *CategoriesTable) All() ([]types.Category, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, types.NewStorageError("list categories", err)
	}
	defer rows.Close()

	categories := []types.Category{}
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, types.NewStorageError("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate categories", err)
	}
	return categories, nil
}

// Rename changes a category's name. Returns the number of rows changed;
// zero rows changed is reported, not an error. Returns ErrNotFound if the
// id is absent and ErrDuplicateName when the new name is taken.
func (t *CategoriesTable) Rename(id int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, types.ErrBlankField
	}

	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableCategories, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrNotFound
	}

	if err := checkNameFree(db, types.TableCategories, name, id); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin category update", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("UPDATE categories SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return 0, mapConstraintErr("update category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("update category", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit category update", err)
	}
	return n, nil
}

// Delete removes a category and cascades to its exercises and their
// routine assignments, all within one transaction. The caller is expected
// to have obtained confirmation; none is requested here.
func (t *CategoriesTable) Delete(id int64) error {
	return t.backend.deleteWithCascade(types.TableCategories, id)
}

// checkNameFree returns ErrDuplicateName when the table already holds the
// name under a different id. Name uniqueness checks share this probe so
// violations are reported before the engine rejects the write.
func checkNameFree(q execer, table, name string, selfID int64) error {
	if !probeTables[table] {
		return types.NewStorageError("uniqueness probe", errUnknownTable(table))
	}

	var dupID int64
	err := q.QueryRow(
		"SELECT id FROM "+table+" WHERE name = ? AND id != ?",
		name, selfID,
	).Scan(&dupID)
	if err == nil {
		return types.ErrDuplicateName
	}
	if err != sql.ErrNoRows {
		return types.NewStorageError("uniqueness probe", err)
	}
	return nil
}
