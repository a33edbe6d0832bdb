// This file implements the progress reporting queries.
package sqlite

import (
	"github.com/quillfort/trak/pkg/types"
)

// Reports runs the read-mostly progress queries. Goal evaluation is the
// one place outside deletion where a write happens, because the achieved
// flag flips as a side effect of reading progress.
type Reports struct {
	backend *Backend
}

// ExerciseProgress returns the workout history for one exercise: one
// entry per completed workout of a routine that includes it, carrying
// the prescribed sets and reps, oldest first. Returns ErrNotFound for an
// unknown exercise.
func (r *Reports) ExerciseProgress(exerciseID int64) ([]types.ProgressEntry, error) {
	db, err := r.backend.handle()
	if err != nil {
		return nil, err
	}

	exists, err := rowExists(db, types.TableExercises, exerciseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, types.ErrNotFound
	}

	rows, err := db.Query(`SELECT l.completed_at, re.sets, re.reps
FROM workout_logs l
JOIN routine_exercises re ON re.routine_id = l.routine_id
WHERE re.exercise_id = ?
ORDER BY l.completed_at, l.id`, exerciseID)
	if err != nil {
		return nil, types.NewStorageError("query exercise progress", err)
	}
	defer rows.Close()

	entries := []types.ProgressEntry{}
	for rows.Next() {
		var (
			e         types.ProgressEntry
			completed string
		)
		if err := rows.Scan(&completed, &e.Sets, &e.Reps); err != nil {
			return nil, types.NewStorageError("scan progress entry", err)
		}
		e.CompletedAt, err = parseTimestamp(completed)
		if err != nil {
			return nil, types.NewStorageError("parse progress timestamp", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewStorageError("iterate progress entries", err)
	}
	return entries, nil
}

// GoalProgress evaluates one goal against the workout history. A log
// counts once per exercise in its routine whose workout category carries
// the same name as the goal's category, so a routine with three matching
// exercises advances the count by three per completion. A goal whose
// count meets the target is marked achieved in the store; the flag never
// flips back, even if logs are later removed.
func (r *Reports) GoalProgress(goalID int64) (*types.GoalProgress, error) {
	db, err := r.backend.handle()
	if err != nil {
		return nil, err
	}

	goal, err := r.backend.Goals().Get(goalID)
	if err != nil {
		return nil, err
	}

	var completed int
	err = db.QueryRow(`SELECT COUNT(l.id)
FROM workout_logs l
JOIN routines r ON r.id = l.routine_id
JOIN routine_exercises re ON re.routine_id = r.id
JOIN exercises e ON e.id = re.exercise_id
JOIN categories c ON c.id = e.category_id
WHERE c.name = ?`, goal.CategoryName).Scan(&completed)
	if err != nil {
		return nil, types.NewStorageError("count goal progress", err)
	}

	if goal.MarkAchieved(float64(completed)) {
		tx, err := db.Begin()
		if err != nil {
			return nil, types.NewStorageError("begin goal evaluation", err)
		}
		defer tx.Rollback()

		_, err = tx.Exec("UPDATE goals SET is_achieved = 1 WHERE id = ?", goal.ID)
		if err != nil {
			return nil, types.NewStorageError("mark goal achieved", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, types.NewStorageError("commit goal evaluation", err)
		}
	}

	remaining := goal.TargetValue - float64(completed)
	if goal.Achieved || remaining < 0 {
		remaining = 0
	}
	return &types.GoalProgress{
		GoalID:       goal.ID,
		GoalName:     goal.Name,
		CategoryName: goal.CategoryName,
		TargetValue:  goal.TargetValue,
		Completed:    completed,
		Achieved:     goal.Achieved,
		Remaining:    remaining,
	}, nil
}
