package types

import "time"

// WorkoutLog records one completed routine. Logs are append-only history:
// they are never updated, and deleting a routine leaves its logs in place
// with the routine reference cleared.
type WorkoutLog struct {
	ID              int64
	RoutineID       int64 // Zero after the referenced routine is deleted.
	CompletedAt     time.Time
	DurationMinutes int    // Optional; zero means not recorded.
	Notes           string // Optional.

	// RoutineName is denormalized on reads; empty for orphaned logs.
	RoutineName string
}

// ProgressEntry is one logged occurrence of an exercise: the completion
// time of a routine containing it, with the assigned set/rep scheme.
type ProgressEntry struct {
	CompletedAt time.Time
	Sets        int
	Reps        int
}

// GoalProgress reports how far a goal is from its target. Completed
// counts logged workouts once per routine exercise whose workout
// category name matches the goal's category name.
type GoalProgress struct {
	GoalID       int64
	GoalName     string
	CategoryName string
	TargetValue  float64
	Completed    int
	Achieved     bool
	Remaining    float64 // Zero once achieved.
}
