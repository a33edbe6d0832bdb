// This file seeds the book inventory on first attach.
package sqlite

import (
	"database/sql"

	"github.com/quillfort/trak/pkg/types"
)

// starterBooks is inserted into an empty books table so a fresh store
// has an inventory to browse.
var starterBooks = []types.Book{
	{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Quantity: 30},
	{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Quantity: 30},
	{ID: 3003, Title: "The Lion, the Witch and the Wardrobe", Author: "C.S. Lewis", Quantity: 25},
	{ID: 3004, Title: "The Lord of the Rings", Author: "J.R.R Tolkien", Quantity: 37},
	{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carol", Quantity: 12},
}

// seedBooks inserts the starter inventory when the table is empty. A
// non-empty table is left untouched so reseeding never clobbers edits.
func seedBooks(db *sql.DB) error {
	var n int64
	if err := db.QueryRow("SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return types.NewStorageError("count books", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return types.NewStorageError("begin book seed", err)
	}
	defer tx.Rollback()

	for _, b := range starterBooks {
		_, err := tx.Exec(
			"INSERT INTO books (id, title, author, quantity) VALUES (?, ?, ?, ?)",
			b.ID, b.Title, b.Author, b.Quantity,
		)
		if err != nil {
			return types.NewStorageError("seed book", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.NewStorageError("commit book seed", err)
	}
	return nil
}
