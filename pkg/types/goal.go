package types

import "strings"

// GoalCategory groups fitness goals. The name is globally unique.
type GoalCategory struct {
	ID   int64
	Name string
}

// Validate checks the goal category fields before persistence.
func (gc *GoalCategory) Validate() error {
	if strings.TrimSpace(gc.Name) == "" {
		return ErrBlankField
	}
	return nil
}

// Goal is a fitness target tracked against completed routines.
type Goal struct {
	ID             int64
	Name           string  // Required.
	TargetValue    float64 // Required, the completion count to reach.
	GoalCategoryID int64   // References GoalCategory.ID.
	Achieved       bool    // Transitions false -> true only.

	// CategoryName is denormalized on reads that join to goal categories.
	CategoryName string
}

// GoalPatch is a sparse update: only non-nil fields are changed.
type GoalPatch struct {
	Name           *string
	TargetValue    *float64
	GoalCategoryID *int64
}

// Empty reports whether the patch changes nothing.
func (p GoalPatch) Empty() bool {
	return p.Name == nil && p.TargetValue == nil && p.GoalCategoryID == nil
}

// Validate checks the goal fields before persistence.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrBlankField
	}
	if g.TargetValue <= 0 {
		return ErrInvalidNumber
	}
	if g.GoalCategoryID <= 0 {
		return ErrInvalidNumber
	}
	return nil
}

// MarkAchieved flips the achieved flag when progress reaches the target.
// The transition is monotonic: once achieved, a goal never reverts.
// Returns true if the flag changed.
func (g *Goal) MarkAchieved(progress float64) bool {
	if g.Achieved || progress < g.TargetValue {
		return false
	}
	g.Achieved = true
	return true
}
