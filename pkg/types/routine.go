package types

import "strings"

// Routine is a named set of exercise assignments.
type Routine struct {
	ID          int64
	Name        string // Required, unique.
	Description string // Optional.

	// Exercises carries the routine's assignments on reads. Ignored on
	// writes; assignments are managed through AddExercise.
	Exercises []RoutineExercise
}

// RoutineExercise assigns one exercise to one routine with a set/rep scheme.
// An exercise appears at most once per routine.
type RoutineExercise struct {
	RoutineID  int64
	ExerciseID int64
	Sets       int // Positive.
	Reps       int // Positive.

	// ExerciseName is denormalized on reads.
	ExerciseName string
}

// RoutinePatch is a sparse update: only non-nil fields are changed.
type RoutinePatch struct {
	Name        *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p RoutinePatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}

// Validate checks the routine fields before persistence.
func (r *Routine) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrBlankField
	}
	return nil
}

// Validate checks the assignment fields before persistence.
func (re *RoutineExercise) Validate() error {
	if re.RoutineID <= 0 || re.ExerciseID <= 0 {
		return ErrInvalidNumber
	}
	if re.Sets <= 0 || re.Reps <= 0 {
		return ErrInvalidNumber
	}
	return nil
}
