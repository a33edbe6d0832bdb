package cli

import (
	"github.com/quillfort/trak/internal/sqlite"
	"github.com/quillfort/trak/pkg/types"
)

// tracker binds the fitness tracker menu handlers to a session and an
// attached backend.
type tracker struct {
	s     *Session
	store *sqlite.Backend
}

// RunTracker drives the fitness tracker program until the user quits.
func RunTracker(s *Session, store *sqlite.Backend) error {
	t := &tracker{s: s, store: store}

	main := Menu{
		Title:     "--- Menu ---",
		ExitLabel: "Quit",
		Items: []MenuItem{
			{Label: "Workout category options", Run: t.categoryMenu},
			{Label: "Exercise options", Run: t.exerciseMenu},
			{Label: "Workout routine options", Run: t.routineMenu},
			{Label: "Goals options", Run: t.goalMenu},
			{Label: "View exercise progress", Run: t.viewExerciseProgress},
			{Label: "View progress towards fitness goals", Run: t.viewGoalProgress},
		},
	}
	if err := main.Run(s); err != nil {
		return err
	}
	s.Println("Exiting.")
	return nil
}

func (t *tracker) categoryMenu() error {
	return Menu{
		Title:     "--- Workout Category Menu ---",
		ExitLabel: "Back to main menu",
		Items: []MenuItem{
			{Label: "Add a new workout category", Run: t.addCategory},
			{Label: "Update a workout category", Run: t.updateCategory},
			{Label: "Delete a workout category", Run: t.deleteCategory},
			{Label: "View all workout categories", Run: t.viewCategories},
		},
	}.Run(t.s)
}

func (t *tracker) exerciseMenu() error {
	return Menu{
		Title:     "--- Exercise Menu ---",
		ExitLabel: "Back to main menu",
		Items: []MenuItem{
			{Label: "Add a new exercise", Run: t.addExercise},
			{Label: "Delete an exercise by category", Run: t.deleteExerciseByCategory},
			{Label: "View exercises", Run: t.viewExercises},
			{Label: "View exercises by category", Run: t.viewExercisesByCategory},
		},
	}.Run(t.s)
}

func (t *tracker) routineMenu() error {
	return Menu{
		Title:     "--- Workout Routine Menu ---",
		ExitLabel: "Back to main menu",
		Items: []MenuItem{
			{Label: "Add a new workout routine", Run: t.addRoutine},
			{Label: "Log a completed workout routine", Run: t.logRoutine},
			{Label: "Delete a workout routine", Run: t.deleteRoutine},
			{Label: "View workout routines", Run: t.viewRoutines},
		},
	}.Run(t.s)
}

func (t *tracker) goalMenu() error {
	return Menu{
		Title:     "--- Fitness Goals Menu ---",
		ExitLabel: "Back to main menu",
		Items: []MenuItem{
			{Label: "Add a new goal", Run: t.addGoal},
			{Label: "Update an existing goal", Run: t.updateGoal},
			{Label: "Delete a goal", Run: t.deleteGoal},
			{Label: "Add a goal category", Run: t.addGoalCategory},
			{Label: "View all goals", Run: t.viewGoals},
		},
	}.Run(t.s)
}

// Workout categories.

func (t *tracker) addCategory() error {
	t.s.Title("--- Add Workout Category ---")
	name, err := t.s.ReadLine("Enter new workout category name: ")
	if err != nil {
		return err
	}

	c := types.Category{Name: name}
	id, err := t.store.Categories().Add(&c)
	if err != nil {
		return err
	}
	t.s.Success("Category '%s' added with ID %d.", c.Name, id)
	return nil
}

func (t *tracker) viewCategories() error {
	t.s.Title("--- Workout Categories ---")
	categories, err := t.store.Categories().All()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		t.s.Println("No workout categories found.")
		return nil
	}

	t.s.Println("ID | Category Name")
	t.s.Println("------------------")
	for _, c := range categories {
		t.s.Printf("%-2d | %s\n", c.ID, c.Name)
	}
	return nil
}

func (t *tracker) updateCategory() error {
	t.s.Title("--- Update Workout Category ---")
	if err := t.viewCategories(); err != nil {
		return err
	}

	id, err := t.s.PromptID("Enter category ID to update: ")
	if err != nil {
		return err
	}
	name, err := t.s.ReadLine("Enter a new category name: ")
	if err != nil {
		return err
	}

	if _, err := t.store.Categories().Rename(id, name); err != nil {
		return err
	}
	t.s.Success("Category ID %d updated to '%s'.", id, name)
	return nil
}

func (t *tracker) deleteCategory() error {
	t.s.Title("--- Delete Workout Category ---")
	if err := t.viewCategories(); err != nil {
		return err
	}

	id, err := t.s.PromptID("Enter category ID to delete: ")
	if err != nil {
		return err
	}
	if _, err := t.store.Categories().Get(id); err != nil {
		return err
	}

	ok, err := t.s.Confirm("Deleting this category removes all its exercises and their routine assignments. Type yes to proceed: ")
	if err != nil {
		return err
	}
	if !ok {
		t.s.Println("Deletion cancelled.")
		return nil
	}

	if err := t.store.Categories().Delete(id); err != nil {
		return err
	}
	t.s.Success("Category ID %d has been deleted.", id)
	return nil
}

// Exercises.

func (t *tracker) addExercise() error {
	t.s.Title("--- Add Workout Exercise ---")
	categories, err := t.store.Categories().All()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		t.s.Println("Please add a workout category first before adding an exercise.")
		return nil
	}

	name, err := t.s.ReadLine("Enter exercise name: ")
	if err != nil {
		return err
	}
	muscleGroup, err := t.s.ReadLine("Enter targeted muscle group (eg. Chest, Legs): ")
	if err != nil {
		return err
	}
	categoryID, err := t.s.PromptID("Enter the category ID for this exercise: ")
	if err != nil {
		return err
	}

	e := types.Exercise{Name: name, MuscleGroup: muscleGroup, CategoryID: categoryID}
	if _, err := t.store.Exercises().Add(&e); err != nil {
		return err
	}
	t.s.Success("Exercise '%s' successfully added.", e.Name)
	return nil
}

func (t *tracker) viewExercises() error {
	t.s.Title("--- View All Workout Exercises ---")
	exercises, err := t.store.Exercises().All()
	if err != nil {
		return err
	}
	t.printExerciseTable(exercises)
	return nil
}

func (t *tracker) viewExercisesByCategory() error {
	t.s.Title("--- View Workout Exercises by Category ---")
	if err := t.viewCategories(); err != nil {
		return err
	}

	categoryID, err := t.s.PromptID("Enter the category ID to view exercises for: ")
	if err != nil {
		return err
	}
	if _, err := t.store.Categories().Get(categoryID); err != nil {
		return err
	}

	exercises, err := t.store.Exercises().ByCategory(categoryID)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		t.s.Printf("No exercises found for category ID %d.\n", categoryID)
		return nil
	}
	for _, e := range exercises {
		t.s.Printf("- %s (Muscle Group: %s)\n", e.Name, e.MuscleGroup)
	}
	return nil
}

func (t *tracker) deleteExerciseByCategory() error {
	t.s.Title("--- Delete Workout Exercise by Category ---")
	if err := t.viewCategories(); err != nil {
		return err
	}

	categoryID, err := t.s.PromptID("Enter the category ID to delete an exercise from: ")
	if err != nil {
		return err
	}
	if _, err := t.store.Categories().Get(categoryID); err != nil {
		return err
	}

	exercises, err := t.store.Exercises().ByCategory(categoryID)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		t.s.Printf("No exercises found in category ID %d.\n", categoryID)
		return nil
	}
	for _, e := range exercises {
		t.s.Printf("ID: %d | Name: %s\n", e.ID, e.Name)
	}

	exerciseID, err := t.s.PromptID("Enter the exercise ID to delete: ")
	if err != nil {
		return err
	}
	if !containsExercise(exercises, exerciseID) {
		t.s.Printf("No exercise with ID %d found in that category.\n", exerciseID)
		return nil
	}

	ok, err := t.s.Confirm("Deleting this exercise removes it from all routines. Type yes to proceed: ")
	if err != nil {
		return err
	}
	if !ok {
		t.s.Println("Deletion cancelled.")
		return nil
	}

	if err := t.store.Exercises().Delete(exerciseID); err != nil {
		return err
	}
	t.s.Success("Exercise ID %d has been deleted.", exerciseID)
	return nil
}

func (t *tracker) printExerciseTable(exercises []types.Exercise) {
	if len(exercises) == 0 {
		t.s.Println("No workout exercises found.")
		return
	}
	t.s.Printf("| %-2s | %-20s | %-15s | %-20s |\n", "ID", "Name", "Muscle Group", "Category")
	t.s.Println("--------------------------------------------------------------------")
	for _, e := range exercises {
		t.s.Printf("| %-2d | %-20s | %-15s | %-20s |\n", e.ID, e.Name, e.MuscleGroup, e.CategoryName)
	}
}

// Routines.

func (t *tracker) addRoutine() error {
	t.s.Title("--- Workout Routine ---")
	name, err := t.s.ReadLine("Enter a name for the new workout routine: ")
	if err != nil {
		return err
	}
	description, err := t.s.ReadLine("Optional: Enter workout routine description: ")
	if err != nil {
		return err
	}

	r := types.Routine{Name: name, Description: description}
	routineID, err := t.store.Routines().Add(&r)
	if err != nil {
		return err
	}
	t.s.Success("Workout routine '%s' has been created with ID %d.", r.Name, routineID)

	for {
		assigned, err := t.store.Routines().ExerciseIDs(routineID)
		if err != nil {
			return err
		}
		available, err := t.store.Exercises().Available(assigned)
		if err != nil {
			return err
		}
		if len(available) == 0 {
			if len(assigned) > 0 {
				t.s.Println("All available exercises have been added to the routine.")
			} else {
				t.s.Println("No exercises found. Please add exercises before building routines.")
			}
			break
		}

		t.s.Title("--- Available Workout Exercises ---")
		t.printExerciseTable(available)

		line, err := t.s.ReadLine("Enter the ID of an exercise to add (blank to finish): ")
		if err != nil {
			return err
		}
		if line == "" {
			break
		}

		exerciseID, parseErr := parseID(line)
		if parseErr != nil {
			t.s.Failure("Invalid input. Please enter a number.")
			continue
		}
		sets, err := t.s.PromptInt("Enter number of sets: ")
		if err != nil {
			return err
		}
		reps, err := t.s.PromptInt("Enter number of reps: ")
		if err != nil {
			return err
		}

		assignment := types.RoutineExercise{
			RoutineID:  routineID,
			ExerciseID: exerciseID,
			Sets:       sets,
			Reps:       reps,
		}
		if err := t.store.Routines().AddExercise(assignment); err != nil {
			msg, ok := userMessage(err)
			if !ok {
				return err
			}
			t.s.Failure(msg)
			continue
		}
		t.s.Println("Exercise added to routine.")
	}

	t.s.Success("Workout routine '%s' has been successfully saved.", r.Name)
	return nil
}

func (t *tracker) logRoutine() error {
	t.s.Title("--- Log a Completed Workout Routine ---")
	routines, err := t.store.Routines().All()
	if err != nil {
		return err
	}
	if len(routines) == 0 {
		t.s.Println("No workout routines found. Please add a routine before logging.")
		return nil
	}
	for _, r := range routines {
		t.s.Printf("ID: %d | Name: %s\n", r.ID, r.Name)
	}

	routineID, err := t.s.PromptID("Enter the ID of the routine you just completed: ")
	if err != nil {
		return err
	}

	duration := 0
	if line, err := t.s.ReadLine("Enter workout duration in minutes (blank to skip): "); err != nil {
		return err
	} else if line != "" {
		duration, err = parseCount(line)
		if err != nil {
			return types.ErrInvalidNumber
		}
	}
	notes, err := t.s.ReadLine("Optional notes (blank to skip): ")
	if err != nil {
		return err
	}

	if _, err := t.store.Routines().LogCompletion(routineID, duration, notes); err != nil {
		return err
	}
	t.s.Success("Workout routine ID %d successfully logged as completed.", routineID)
	return nil
}

func (t *tracker) deleteRoutine() error {
	t.s.Title("--- Delete Workout Routine ---")
	routines, err := t.store.Routines().All()
	if err != nil {
		return err
	}
	if len(routines) == 0 {
		t.s.Println("No workout routines found to delete.")
		return nil
	}
	for _, r := range routines {
		t.s.Printf("ID: %d | Name: %s\n", r.ID, r.Name)
	}

	routineID, err := t.s.PromptID("Enter the ID of the workout routine to delete: ")
	if err != nil {
		return err
	}
	routine, err := t.store.Routines().Get(routineID)
	if err != nil {
		return err
	}
	logged, err := t.store.Logs().CountForRoutine(routineID)
	if err != nil {
		return err
	}

	t.s.Printf("This routine has %d logged workout(s).\n", logged)
	ok, err := t.s.Confirm("Deleting this routine keeps its workout history but clears the link. Type yes to proceed: ")
	if err != nil {
		return err
	}
	if !ok {
		t.s.Println("Deletion cancelled.")
		return nil
	}

	if err := t.store.Routines().Delete(routineID); err != nil {
		return err
	}
	t.s.Success("Workout routine '%s' (ID %d) has been deleted.", routine.Name, routineID)
	return nil
}

func (t *tracker) viewRoutines() error {
	t.s.Title("--- View Workout Routines ---")
	routines, err := t.store.Routines().All()
	if err != nil {
		return err
	}
	if len(routines) == 0 {
		t.s.Println("No workout routines found.")
		return nil
	}

	for _, r := range routines {
		t.s.Printf("\nRoutine ID: %d | Name: %s\n", r.ID, r.Name)
		t.s.Printf("Description: %s\n", r.Description)
		if len(r.Exercises) == 0 {
			t.s.Println(" - No exercises found for this routine.")
			continue
		}
		t.s.Println(" - Exercises:")
		for _, a := range r.Exercises {
			t.s.Printf("   - %s: %d sets of %d reps.\n", a.ExerciseName, a.Sets, a.Reps)
		}
	}
	return nil
}

// Goals.

func (t *tracker) addGoalCategory() error {
	t.s.Title("--- Add Goal Category ---")
	name, err := t.s.ReadLine("Enter new goal category name: ")
	if err != nil {
		return err
	}

	gc := types.GoalCategory{Name: name}
	id, err := t.store.GoalCategories().Add(&gc)
	if err != nil {
		return err
	}
	t.s.Success("Goal category '%s' added with ID %d.", gc.Name, id)
	return nil
}

func (t *tracker) viewGoalCategories() error {
	t.s.Title("--- Goal Categories ---")
	categories, err := t.store.GoalCategories().All()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		t.s.Println("No goal categories found.")
		return nil
	}

	t.s.Println("ID | Category Name")
	t.s.Println("------------------")
	for _, c := range categories {
		t.s.Printf("%-2d | %s\n", c.ID, c.Name)
	}
	return nil
}

func (t *tracker) addGoal() error {
	t.s.Title("--- Add Workout Goal ---")
	categories, err := t.store.GoalCategories().All()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		t.s.Println("Please add a goal category first before attempting to add a goal.")
		return nil
	}
	if err := t.viewGoalCategories(); err != nil {
		return err
	}

	name, err := t.s.ReadLine("Enter goal name: ")
	if err != nil {
		return err
	}
	target, err := t.s.PromptFloat("Enter target value (e.g 150 or 75.2): ")
	if err != nil {
		return err
	}
	categoryID, err := t.s.PromptID("Enter the goal category ID to assign: ")
	if err != nil {
		return err
	}

	g := types.Goal{Name: name, TargetValue: target, GoalCategoryID: categoryID}
	if _, err := t.store.Goals().Add(&g); err != nil {
		return err
	}
	t.s.Success("Goal '%s' with a target of %g has been added.", g.Name, g.TargetValue)
	return nil
}

func (t *tracker) viewGoals() error {
	t.s.Title("--- View Workout Goals ---")
	goals, err := t.store.Goals().All()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		t.s.Println("No workout goals found.")
		return nil
	}

	t.s.Printf("| %-2s | %-23s | %-13s | %-20s |\n", "ID", "Goal", "Target", "Category")
	t.s.Println("------------------------------------------------------------------------")
	for _, g := range goals {
		t.s.Printf("| %-2d | %-23s | %-13.2f | %-20s |\n", g.ID, g.Name, g.TargetValue, g.CategoryName)
	}
	return nil
}

func (t *tracker) updateGoal() error {
	t.s.Title("--- Update Workout Goal ---")
	if err := t.viewGoals(); err != nil {
		return err
	}

	goalID, err := t.s.PromptID("Enter goal ID to update: ")
	if err != nil {
		return err
	}
	if _, err := t.store.Goals().Get(goalID); err != nil {
		return err
	}

	t.s.Println("Please enter new goal values, or leave blank to skip.")
	name, err := t.s.ReadLine("Enter new goal name: ")
	if err != nil {
		return err
	}
	targetLine, err := t.s.ReadLine("Enter new target value: ")
	if err != nil {
		return err
	}
	categoryLine, err := t.s.ReadLine("Enter new category ID: ")
	if err != nil {
		return err
	}

	var patch types.GoalPatch
	if name != "" {
		patch.Name = &name
	}
	if targetLine != "" {
		target, err := parseFloat(targetLine)
		if err != nil {
			return types.ErrInvalidNumber
		}
		patch.TargetValue = &target
	}
	if categoryLine != "" {
		categoryID, err := parseID(categoryLine)
		if err != nil {
			return types.ErrInvalidNumber
		}
		patch.GoalCategoryID = &categoryID
	}
	if patch.Empty() {
		t.s.Println("No changes were made.")
		return nil
	}

	changed, err := t.store.Goals().Update(goalID, patch)
	if err != nil {
		return err
	}
	if changed == 0 {
		t.s.Printf("No changes made to goal ID %d.\n", goalID)
		return nil
	}
	t.s.Success("Goal ID %d has been updated successfully.", goalID)
	return nil
}

func (t *tracker) deleteGoal() error {
	t.s.Title("--- Delete Workout Goal ---")
	if err := t.viewGoals(); err != nil {
		return err
	}

	goalID, err := t.s.PromptID("Enter workout goal ID to delete: ")
	if err != nil {
		return err
	}
	if _, err := t.store.Goals().Get(goalID); err != nil {
		return err
	}

	ok, err := t.s.Confirm("Confirmation required. Type yes to delete this goal: ")
	if err != nil {
		return err
	}
	if !ok {
		t.s.Println("Deletion cancelled.")
		return nil
	}

	if err := t.store.Goals().Delete(goalID); err != nil {
		return err
	}
	t.s.Success("Workout goal ID %d has been deleted.", goalID)
	return nil
}

// Progress views.

func (t *tracker) viewExerciseProgress() error {
	t.s.Title("--- View Exercise Progress ---")
	exercises, err := t.store.Exercises().All()
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		t.s.Println("No exercises found to view progress. Please add an exercise first.")
		return nil
	}
	t.printExerciseTable(exercises)

	exerciseID, err := t.s.PromptID("Enter the ID of the exercise you want to view: ")
	if err != nil {
		return err
	}
	exercise, err := t.store.Exercises().Get(exerciseID)
	if err != nil {
		return err
	}

	entries, err := t.store.Reports().ExerciseProgress(exerciseID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		t.s.Printf("No progress found for '%s'.\n", exercise.Name)
		return nil
	}

	t.s.Title("--- Progress for '" + exercise.Name + "' ---")
	for _, entry := range entries {
		t.s.Printf("Date: %s\n", entry.CompletedAt.Format("2006-01-02"))
		t.s.Printf(" - %d sets of %d reps\n", entry.Sets, entry.Reps)
	}
	return nil
}

func (t *tracker) viewGoalProgress() error {
	t.s.Title("--- View Progress Towards Fitness Goals ---")
	goals, err := t.store.Goals().All()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		t.s.Println("No goals found. Please add a goal first.")
		return nil
	}
	if err := t.viewGoals(); err != nil {
		return err
	}

	goalID, err := t.s.PromptID("Enter the ID of the goal you want to view: ")
	if err != nil {
		return err
	}

	progress, err := t.store.Reports().GoalProgress(goalID)
	if err != nil {
		return err
	}

	t.s.Title("--- Progress for Goal: '" + progress.GoalName + "' ---")
	t.s.Printf("Goal Category: %s\n", progress.CategoryName)
	t.s.Printf("Target Value: %g\n", progress.TargetValue)
	t.s.Printf("Progress: %d completed routine(s)\n", progress.Completed)
	if progress.Achieved {
		t.s.Success("You have completed this goal.")
		return nil
	}
	t.s.Printf("You are %.0f routines away from your goal.\n", progress.Remaining)
	return nil
}

func containsExercise(exercises []types.Exercise, id int64) bool {
	for _, e := range exercises {
		if e.ID == id {
			return true
		}
	}
	return false
}
