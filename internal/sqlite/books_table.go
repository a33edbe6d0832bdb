// This file implements the books table accessor.
package sqlite

import (
	"database/sql"
	"strings"

	"github.com/quillfort/trak/pkg/types"
)

// BooksTable provides CRUD and search operations over the book
// inventory. Book ids are caller-supplied catalog numbers, not generated.
type BooksTable struct {
	backend *Backend
}

// Add inserts a new book under its caller-supplied id. Returns
// ErrDuplicateName when the id is already taken.
func (t *BooksTable) Add(b *types.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}

	db, err := t.backend.handle()
	if err != nil {
		return err
	}

	exists, err := rowExists(db, types.TableBooks, b.ID)
	if err != nil {
		return err
	}
	if exists {
		return types.ErrDuplicateName
	}
	if err := t.checkTitleFree(db, strings.TrimSpace(b.Title), 0); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return types.NewStorageError("begin book insert", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO books (id, title, author, quantity) VALUES (?, ?, ?, ?)",
		b.ID, strings.TrimSpace(b.Title), strings.TrimSpace(b.Author), b.Quantity,
	)
	if err != nil {
		return mapConstraintErr("insert book", err)
	}

	if err := tx.Commit(); err != nil {
		return types.NewStorageError("commit book insert", err)
	}
	return nil
}

// Get retrieves a book by id. Returns ErrNotFound if absent.
func (t *BooksTable) Get(id int64) (*types.Book, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	var b types.Book
	err = db.QueryRow(
		"SELECT id, title, author, quantity FROM books WHERE id = ?", id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Quantity)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, types.NewStorageError("get book", err)
	}
	return &b, nil
}

// All returns every book ordered by id.
func (t *BooksTable) All() ([]types.Book, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	return t.scanList(db, "SELECT id, title, author, quantity FROM books ORDER BY id")
}

// SearchTitle returns books whose title contains the term,
// case-insensitively, ordered by id.
func (t *BooksTable) SearchTitle(term string) ([]types.Book, error) {
	return t.search("title", term)
}

// SearchAuthor returns books whose author contains the term,
// case-insensitively, ordered by id.
func (t *BooksTable) SearchAuthor(term string) ([]types.Book, error) {
	return t.search("author", term)
}

func (t *BooksTable) search(column, term string) ([]types.Book, error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}
	return t.scanList(db,
		"SELECT id, title, author, quantity FROM books WHERE "+column+" LIKE ? ORDER BY id",
		"%"+strings.TrimSpace(term)+"%")
}

// Update applies a sparse patch to a book. Changing the id moves the row
// to a new catalog number, which must be free. An empty patch is a no-op
// reporting zero rows changed.
func (t *BooksTable) Update(id int64, patch types.BookPatch) (int64, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}

	exists, err := rowExists(db, types.TableBooks, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, types.ErrNotFound
	}
	if patch.Empty() {
		return 0, nil
	}

	upd := newUpdate(types.TableBooks)
	if patch.ID != nil && *patch.ID != id {
		if *patch.ID <= 0 {
			return 0, types.ErrInvalidNumber
		}
		taken, err := rowExists(db, types.TableBooks, *patch.ID)
		if err != nil {
			return 0, err
		}
		if taken {
			return 0, types.ErrDuplicateName
		}
		upd.Set("id", *patch.ID)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return 0, types.ErrBlankField
		}
		if err := t.checkTitleFree(db, title, id); err != nil {
			return 0, err
		}
		upd.Set("title", title)
	}
	if patch.Author != nil {
		author := strings.TrimSpace(*patch.Author)
		if author == "" {
			return 0, types.ErrBlankField
		}
		upd.Set("author", author)
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return 0, types.ErrInvalidNumber
		}
		upd.Set("quantity", *patch.Quantity)
	}
	if upd.Empty() {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.NewStorageError("begin book update", err)
	}
	defer tx.Rollback()

	stmt, args := upd.Build("id", id)
	res, err := tx.Exec(stmt, args...)
	if err != nil {
		return 0, mapConstraintErr("update book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.NewStorageError("update book", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, types.NewStorageError("commit book update", err)
	}
	return n, nil
}

// Delete removes a book. Returns ErrNotFound if absent.
func (t *BooksTable) Delete(id int64) error {
	return t.backend.deleteWithCascade(types.TableBooks, id)
}

// checkTitleFree returns ErrDuplicateName when another book already
// carries the title.
func (t *BooksTable) checkTitleFree(db *sql.DB, title string, selfID int64) error {
	var dupID int64
	err := db.QueryRow(
		"SELECT id FROM books WHERE title = ? AND id != ?", title, selfID,
	).Scan(&dupID)
	if err == nil {
		return types.ErrDuplicateName
	}
	if err != sql.ErrNoRows {
		return types.NewStorageError("title probe", err)
	}
	return nil
}

func (t *BooksTable) scanList(db *sql.DB, query string, args ...any) ([]types.Book, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, types.NewStorageError("list books", err)
	}
	defer rows.Close()

	books := []types.Book{}
	for rows.Next() {
		var b types.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Quantity); err != nil {
			return nil, types.NewStorageError("scan book", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate books", err)
	}
	return books, nil
}
