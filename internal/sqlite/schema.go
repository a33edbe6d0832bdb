// Package sqlite implements the SQLite storage backend for trak.
package sqlite

// Schema DDL. Creation is idempotent so Attach can run against an existing
// database without disturbing data. Foreign keys are declared with explicit
// ON DELETE behavior, and PRAGMA foreign_keys is enabled on every
// connection; application code still pre-checks references to produce
// friendly errors before the engine would reject a write.
const (
	createCategories = `CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);`

	createExercises = `CREATE TABLE IF NOT EXISTS exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    muscle_group TEXT NOT NULL,
    category_id INTEGER NOT NULL,
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
);`

	createRoutines = `CREATE TABLE IF NOT EXISTS routines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);`

	createRoutineExercises = `CREATE TABLE IF NOT EXISTS routine_exercises (
    routine_id INTEGER NOT NULL,
    exercise_id INTEGER NOT NULL,
    sets INTEGER NOT NULL,
    reps INTEGER NOT NULL,
    position INTEGER,
    PRIMARY KEY (routine_id, exercise_id),
    FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE,
    FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
);`

	createGoalCategories = `CREATE TABLE IF NOT EXISTS goal_categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);`

	createGoals = `CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    target_value REAL NOT NULL,
    goal_category_id INTEGER NOT NULL,
    is_achieved INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (goal_category_id) REFERENCES goal_categories(id) ON DELETE CASCADE
);`

	// Workout logs are history: the routine reference is nulled rather than
	// the row removed when a routine is deleted.
	createWorkoutLogs = `CREATE TABLE IF NOT EXISTS workout_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    routine_id INTEGER,
    completed_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%S', 'now')),
    duration_minutes INTEGER,
    notes TEXT,
    FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE SET NULL
);`

	// Book ids are caller-supplied, so no AUTOINCREMENT.
	createBooks = `CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL UNIQUE,
    author TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 0
);`
)

// Index DDL for common lookups.
const (
	idxExercisesCategory     = `CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category_id);`
	idxRoutineExercisesEx    = `CREATE INDEX IF NOT EXISTS idx_routine_exercises_exercise ON routine_exercises(exercise_id);`
	idxGoalsCategory         = `CREATE INDEX IF NOT EXISTS idx_goals_category ON goals(goal_category_id);`
	idxWorkoutLogsRoutine    = `CREATE INDEX IF NOT EXISTS idx_workout_logs_routine ON workout_logs(routine_id);`
	idxWorkoutLogsCompleted  = `CREATE INDEX IF NOT EXISTS idx_workout_logs_completed ON workout_logs(completed_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createExercises,
	createRoutines,
	createRoutineExercises,
	createGoalCategories,
	createGoals,
	createWorkoutLogs,
	createBooks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxExercisesCategory,
	idxRoutineExercisesEx,
	idxGoalsCategory,
	idxWorkoutLogsRoutine,
	idxWorkoutLogsCompleted,
}
