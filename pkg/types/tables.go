package types

// Table names for existence probes and cascade routing.
const (
	TableCategories       = "categories"
	TableExercises        = "exercises"
	TableRoutines         = "routines"
	TableRoutineExercises = "routine_exercises"
	TableGoalCategories   = "goal_categories"
	TableGoals            = "goals"
	TableWorkoutLogs      = "workout_logs"
	TableBooks            = "books"
)

// StandardTableNames lists all table names for enumeration.
var StandardTableNames = []string{
	TableCategories,
	TableExercises,
	TableRoutines,
	TableRoutineExercises,
	TableGoalCategories,
	TableGoals,
	TableWorkoutLogs,
	TableBooks,
}
