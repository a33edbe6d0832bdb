package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillfort/trak/pkg/types"
)

func TestUpdateBuilder(t *testing.T) {
	u := newUpdate("exercises")
	assert.True(t, u.Empty())

	u.Set("name", "Squat").Set("category_id", int64(3))
	assert.False(t, u.Empty())

	stmt, args := u.Build("id", int64(7))
	assert.Equal(t, "UPDATE exercises SET name = ?, category_id = ? WHERE id = ?", stmt)
	assert.Equal(t, []any{"Squat", int64(3), int64(7)}, args)
}

func TestNotIn(t *testing.T) {
	tests := []struct {
		name       string
		ids        []int64
		wantClause string
		wantArgs   []any
	}{
		{name: "empty", ids: nil, wantClause: "", wantArgs: nil},
		{name: "one id", ids: []int64{4}, wantClause: "e.id NOT IN (?)", wantArgs: []any{int64(4)}},
		{name: "three ids", ids: []int64{1, 2, 3}, wantClause: "e.id NOT IN (?, ?, ?)", wantArgs: []any{int64(1), int64(2), int64(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := notIn("e.id", tt.ids)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMapConstraintErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique violation",
			err:  errors.New("constraint failed: UNIQUE constraint failed: exercises.name (2067)"),
			want: types.ErrDuplicateName,
		},
		{
			name: "foreign key violation",
			err:  errors.New("constraint failed: FOREIGN KEY constraint failed (787)"),
			want: types.ErrMissingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapConstraintErr("insert", tt.err), tt.want)
		})
	}

	t.Run("other errors become storage errors", func(t *testing.T) {
		mapped := mapConstraintErr("insert", errors.New("disk I/O error"))
		assert.True(t, types.IsStorageError(mapped))
	})
}
