package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillfort/trak/pkg/types"
)

func TestBooksTable_Add(t *testing.T) {
	b := newTestBackend(t)

	err := b.Books().Add(&types.Book{
		ID:       4001,
		Title:    "The Go Programming Language",
		Author:   "Donovan and Kernighan",
		Quantity: 2,
	})
	require.NoError(t, err)

	got, err := b.Books().Get(4001)
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", got.Title)
	assert.Equal(t, 2, got.Quantity)

	tests := []struct {
		name    string
		book    types.Book
		wantErr error
	}{
		{
			name:    "taken id",
			book:    types.Book{ID: 3001, Title: "Anything", Author: "Anyone", Quantity: 1},
			wantErr: types.ErrDuplicateName,
		},
		{
			name:    "taken title",
			book:    types.Book{ID: 4002, Title: "Alice in Wonderland", Author: "Anyone", Quantity: 1},
			wantErr: types.ErrDuplicateName,
		},
		{
			name:    "non-positive id",
			book:    types.Book{ID: 0, Title: "Anything", Author: "Anyone", Quantity: 1},
			wantErr: types.ErrInvalidNumber,
		},
		{
			name:    "blank title",
			book:    types.Book{ID: 4002, Title: " ", Author: "Anyone", Quantity: 1},
			wantErr: types.ErrBlankField,
		},
		{
			name:    "negative quantity",
			book:    types.Book{ID: 4002, Title: "Anything", Author: "Anyone", Quantity: -1},
			wantErr: types.ErrInvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Books().Add(&tt.book)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBooksTable_Search(t *testing.T) {
	b := newTestBackend(t)

	byTitle, err := b.Books().SearchTitle("wardrobe")
	require.NoError(t, err)
	require.Len(t, byTitle, 1, "title match is case-insensitive")
	assert.Equal(t, int64(3003), byTitle[0].ID)

	byAuthor, err := b.Books().SearchAuthor("rowling")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Harry Potter and the Philosopher's Stone", byAuthor[0].Title)

	none, err := b.Books().SearchTitle("no such book")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestBooksTable_Update(t *testing.T) {
	b := newTestBackend(t)

	tests := []struct {
		name    string
		id      int64
		patch   types.BookPatch
		wantErr error
		wantN   int64
		check   func(t *testing.T)
	}{
		{
			name:  "patch quantity and author",
			id:    3001,
			patch: types.BookPatch{Quantity: intPtr(9), Author: strPtr("C. Dickens")},
			wantN: 1,
			check: func(t *testing.T) {
				got, err := b.Books().Get(3001)
				require.NoError(t, err)
				assert.Equal(t, 9, got.Quantity)
				assert.Equal(t, "C. Dickens", got.Author)
				assert.Equal(t, "A Tale of Two Cities", got.Title)
			},
		},
		{
			name:  "move to a free id",
			id:    3002,
			patch: types.BookPatch{ID: int64Ptr(4100)},
			wantN: 1,
			check: func(t *testing.T) {
				_, err := b.Books().Get(3002)
				assert.ErrorIs(t, err, types.ErrNotFound)
				got, err := b.Books().Get(4100)
				require.NoError(t, err)
				assert.Equal(t, "Harry Potter and the Philosopher's Stone", got.Title)
			},
		},
		{
			name:    "move to a taken id",
			id:      3003,
			patch:   types.BookPatch{ID: int64Ptr(3004)},
			wantErr: types.ErrDuplicateName,
		},
		{
			name:  "empty patch",
			id:    3003,
			patch: types.BookPatch{},
			wantN: 0,
		},
		{
			name:    "missing book",
			id:      9999,
			patch:   types.BookPatch{Quantity: intPtr(1)},
			wantErr: types.ErrNotFound,
		},
		{
			name:    "duplicate title",
			id:      3003,
			patch:   types.BookPatch{Title: strPtr("The Lord of the Rings")},
			wantErr: types.ErrDuplicateName,
		},
		{
			name:    "blank title",
			id:      3003,
			patch:   types.BookPatch{Title: strPtr("  ")},
			wantErr: types.ErrBlankField,
		},
		{
			name:    "negative quantity",
			id:      3003,
			patch:   types.BookPatch{Quantity: intPtr(-2)},
			wantErr: types.ErrInvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := b.Books().Update(tt.id, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, n)
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestBooksTable_Delete(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.Books().Delete(3005))

	_, err := b.Books().Get(3005)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, b.Books().Delete(3005), types.ErrNotFound)

	books, err := b.Books().All()
	require.NoError(t, err)
	assert.Len(t, books, 4)
}
