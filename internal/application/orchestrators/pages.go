package orchestrators

import (
	"time"

	"plusultra/internal/application/ui"
	"plusultra/internal/domain/workout"
)

// Event names, as carried by the submit button of each page form.
const (
	EventMeet           = "meet"
	EventGenerate       = "generate"
	EventUpdateProgress = "update-progress"
	EventSubmit         = "submit"
	EventReset          = "reset"
)

// MeetMsgID is the roster output element on the about page.
const MeetMsgID = "meetMsg"

// Element ids on the creativity page.
const (
	FocusOutID    = "focusOut"
	WarmupOutID   = "warmupOut"
	MainOutID     = "mainOut"
	FinisherOutID = "finisherOut"
	GenerateBtnID = "generateBtn"
	CompletedID   = "completed"
	BarID         = "bar"
	ProgressMsgID = "progressMsg"
)

// Element ids on the registration page.
const (
	ResultBoxID   = "resultBox"
	ResultStateID = "resultState"
)

// Result box states.
const (
	ResultSuccess = "success"
	ResultFailure = "error"
)

// BindAboutPage wires the about page controls.
func BindAboutPage(d *ui.Dispatcher) {
	d.On(EventMeet, ExecuteShowRoster)
}

// BindCreativityPage wires the creativity page controls to gen.
// PRE: gen is owned by exactly one page view
func BindCreativityPage(d *ui.Dispatcher, gen *workout.Generator) {
	deps := GenerateWorkoutDeps{Generator: gen}
	d.On(EventGenerate, func(s ui.Surface) error {
		return ExecuteGenerateWorkout(s, deps)
	})
	d.On(EventUpdateProgress, ExecuteUpdateProgress)
}

// InitCreativityPage shows a default plan and the current progress.
// The default plan counts toward the free generations.
// PRE: d was bound with BindCreativityPage
// POST: one generation consumed; progress bar reflects the completed field
func InitCreativityPage(d *ui.Dispatcher, s ui.Surface) error {
	s.SetText(GenerateBtnID, workout.GenerateLabel)
	if err := d.Fire(EventGenerate, s); err != nil {
		return err
	}
	return d.Fire(EventUpdateProgress, s)
}

// BindRegistrationPage wires the registration form; now supplies today's date.
func BindRegistrationPage(d *ui.Dispatcher, now func() time.Time) {
	deps := SubmitRegistrationDeps{Now: now}
	d.On(EventSubmit, func(s ui.Surface) error {
		_, err := ExecuteSubmitRegistration(s, deps)
		return err
	})
	d.On(EventReset, ExecuteResetRegistration)
}
