package types

import "strings"

// Book is a bookstore inventory row. Unlike the tracker entities the ID is
// caller-supplied rather than generated.
type Book struct {
	ID       int64  // Required, caller-supplied primary key.
	Title    string // Required, unique.
	Author   string // Required.
	Quantity int    // Non-negative stock count.
}

// Validate checks the book fields before persistence.
func (b *Book) Validate() error {
	if b.ID <= 0 {
		return ErrInvalidNumber
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrBlankField
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrBlankField
	}
	if b.Quantity < 0 {
		return ErrInvalidNumber
	}
	return nil
}

// BookPatch is a sparse update for a book: only non-nil fields are changed.
type BookPatch struct {
	ID       *int64
	Title    *string
	Author   *string
	Quantity *int
}

// Empty reports whether the patch changes nothing.
func (p BookPatch) Empty() bool {
	return p.ID == nil && p.Title == nil && p.Author == nil && p.Quantity == nil
}
