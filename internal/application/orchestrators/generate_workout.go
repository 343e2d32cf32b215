package orchestrators

import (
	"errors"

	"plusultra/internal/application/ui"
	"plusultra/internal/domain/workout"
)

// GenerateWorkoutDeps holds dependencies for GenerateWorkout.
type GenerateWorkoutDeps struct {
	Generator *workout.Generator
}

// ExecuteGenerateWorkout shows a new plan, or the locked plan once the free generations are used.
// PRE: deps.Generator is non-nil
// POST: the four plan slots are written; the button label flips when the last free plan is shown
func ExecuteGenerateWorkout(s ui.Surface, deps GenerateWorkoutDeps) error {
	if deps.Generator == nil {
		return errors.New("workout generator is required")
	}

	res := deps.Generator.Generate()
	s.SetText(FocusOutID, res.Plan.Focus)
	s.SetText(WarmupOutID, res.Plan.Warmup)
	s.SetText(MainOutID, res.Plan.Main)
	s.SetText(FinisherOutID, res.Plan.Finisher)

	if res.NowLocked {
		s.SetText(GenerateBtnID, workout.UnlockLabel)
	}
	return nil
}
