package orchestrators

import (
	"time"

	"plusultra/internal/application/ui"
	"plusultra/internal/domain/registration"
)

// SubmitRegistrationDeps holds dependencies for SubmitRegistration.
type SubmitRegistrationDeps struct {
	// Now supplies the current local time; defaults to time.Now.
	Now func() time.Time
}

// ExecuteSubmitRegistration validates the sign-up form and shows the outcome.
// PRE: none
// POST: previous errors are cleared; each failing field shows its message;
// the result box is visible with a success or failure message
// INVARIANT: nothing beyond the page state is touched
func ExecuteSubmitRegistration(s ui.Surface, deps SubmitRegistrationDeps) (registration.Result, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	clearRegistrationErrors(s)

	res := registration.Validate(registration.FieldsFrom(s.Field), now())
	for f, msg := range res.Errors {
		s.SetText(f.ErrorSlot(), msg)
	}

	s.SetVisible(ResultBoxID, true)
	s.SetText(ResultBoxID, res.Message())
	if res.Valid {
		s.SetText(ResultStateID, ResultSuccess)
	} else {
		s.SetText(ResultStateID, ResultFailure)
	}
	return res, nil
}

// ExecuteResetRegistration empties the form, clears errors and hides the result box.
// PRE: none
// POST: every field is empty, no error text remains, result box hidden
func ExecuteResetRegistration(s ui.Surface) error {
	for _, f := range registration.AllFields {
		s.SetField(string(f), "")
	}
	clearRegistrationErrors(s)
	s.SetVisible(ResultBoxID, false)
	s.SetText(ResultBoxID, "")
	s.SetText(ResultStateID, "")
	return nil
}

func clearRegistrationErrors(s ui.Surface) {
	for _, f := range registration.AllFields {
		s.SetText(f.ErrorSlot(), "")
	}
}
