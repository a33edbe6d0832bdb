package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillfort/trak/pkg/types"
)

// seedCategory inserts a category and returns its id.
func seedCategory(t *testing.T, b *Backend, name string) int64 {
	t.Helper()
	id, err := b.Categories().Add(&types.Category{Name: name})
	require.NoError(t, err)
	return id
}

// seedExercise inserts an exercise under the given category.
func seedExercise(t *testing.T, b *Backend, name string, categoryID int64) int64 {
	t.Helper()
	id, err := b.Exercises().Add(&types.Exercise{
		Name:        name,
		MuscleGroup: "general",
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return id
}

func TestCategoriesTable_Add(t *testing.T) {
	b := newTestBackend(t)

	id, err := b.Categories().Add(&types.Category{Name: "  Strength  "})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := b.Categories().Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Strength", got.Name, "name is stored trimmed")

	tests := []struct {
		name     string
		category types.Category
		wantErr  error
	}{
		{name: "blank name", category: types.Category{Name: "   "}, wantErr: types.ErrBlankField},
		{name: "duplicate name", category: types.Category{Name: "Strength"}, wantErr: types.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Categories().Add(&tt.category)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCategoriesTable_GetMissing(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.Categories().Get(42)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCategoriesTable_All(t *testing.T) {
	b := newTestBackend(t)

	all, err := b.Categories().All()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)

	seedCategory(t, b, "Cardio")
	seedCategory(t, b, "Strength")

	all, err = b.Categories().All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Cardio", all[0].Name)
	assert.Equal(t, "Strength", all[1].Name)
}

func TestCategoriesTable_Rename(t *testing.T) {
	b := newTestBackend(t)
	id := seedCategory(t, b, "Cardio")
	seedCategory(t, b, "Strength")

	n, err := b.Categories().Rename(id, "Conditioning")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := b.Categories().Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Conditioning", got.Name)

	_, err = b.Categories().Rename(id, "Strength")
	assert.ErrorIs(t, err, types.ErrDuplicateName)

	n, err = b.Categories().Rename(id, "Conditioning")
	require.NoError(t, err, "renaming to the current name is allowed")
	assert.Equal(t, int64(1), n)

	_, err = b.Categories().Rename(999, "Anything")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.Categories().Rename(id, "   ")
	assert.ErrorIs(t, err, types.ErrBlankField)
}

func TestCategoriesTable_DeleteCascades(t *testing.T) {
	b := newTestBackend(t)

	catID := seedCategory(t, b, "Strength")
	exID := seedExercise(t, b, "Squat", catID)

	routineID, err := b.Routines().Add(&types.Routine{Name: "Leg Day"})
	require.NoError(t, err)
	require.NoError(t, b.Routines().AddExercise(types.RoutineExercise{
		RoutineID:  routineID,
		ExerciseID: exID,
		Sets:       3,
		Reps:       5,
	}))

	require.NoError(t, b.Categories().Delete(catID))

	_, err = b.Categories().Get(catID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.Exercises().Get(exID)
	assert.ErrorIs(t, err, types.ErrNotFound, "exercises under the category are removed")

	routine, err := b.Routines().Get(routineID)
	require.NoError(t, err, "the routine itself survives")
	assert.Empty(t, routine.Exercises, "assignments of removed exercises are gone")
}

func TestCategoriesTable_DeleteRollsBackMidCascade(t *testing.T) {
	b := newTestBackend(t)

	catID := seedCategory(t, b, "Strength")
	exID := seedExercise(t, b, "Squat", catID)

	routineID, err := b.Routines().Add(&types.Routine{Name: "Leg Day"})
	require.NoError(t, err)
	require.NoError(t, b.Routines().AddExercise(types.RoutineExercise{
		RoutineID:  routineID,
		ExerciseID: exID,
		Sets:       3,
		Reps:       5,
	}))

	// Fail the cascade at its second step, after the assignment rows have
	// already been deleted inside the transaction.
	_, err = b.db.Exec(`CREATE TRIGGER block_exercise_delete
		BEFORE DELETE ON exercises
		BEGIN SELECT RAISE(ABORT, 'exercise delete blocked'); END`)
	require.NoError(t, err)

	err = b.Categories().Delete(catID)
	require.Error(t, err)
	assert.True(t, types.IsStorageError(err))

	_, err = b.Categories().Get(catID)
	assert.NoError(t, err, "category survives the failed delete")
	_, err = b.Exercises().Get(exID)
	assert.NoError(t, err, "exercise survives the failed delete")

	routine, err := b.Routines().Get(routineID)
	require.NoError(t, err)
	assert.Len(t, routine.Exercises, 1, "assignment survives the failed delete")
}

func TestCategoriesTable_DeleteMissing(t *testing.T) {
	b := newTestBackend(t)

	err := b.Categories().Delete(7)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
