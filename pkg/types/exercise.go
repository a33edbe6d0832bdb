package types

import "strings"

// Exercise is a single movement assigned to a category.
type Exercise struct {
	ID          int64
	Name        string // Required, unique across all exercises.
	MuscleGroup string // Required, free text (e.g. "Chest", "Legs").
	CategoryID  int64  // References Category.ID.

	// CategoryName carries the denormalized parent name on reads that join
	// to categories. It is ignored on writes.
	CategoryName string
}

// ExercisePatch is a sparse update: only non-nil fields are changed.
type ExercisePatch struct {
	Name        *string
	MuscleGroup *string
	CategoryID  *int64
}

// Empty reports whether the patch changes nothing.
func (p ExercisePatch) Empty() bool {
	return p.Name == nil && p.MuscleGroup == nil && p.CategoryID == nil
}

// Validate checks the exercise fields before persistence.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrBlankField
	}
	if strings.TrimSpace(e.MuscleGroup) == "" {
		return ErrBlankField
	}
	if e.CategoryID <= 0 {
		return ErrInvalidNumber
	}
	return nil
}
