package orchestrators

import (
	"plusultra/internal/application/ui"
	"plusultra/internal/domain/progress"
)

// ExecuteUpdateProgress reads the completed-sessions input and updates the bar and message.
// PRE: none
// POST: invalid input leaves the field untouched and empties the bar;
// valid input is written back clamped
func ExecuteUpdateProgress(s ui.Surface) error {
	res := progress.Update(s.Field(CompletedID))
	s.SetText(ProgressMsgID, res.Message)
	s.SetWidth(BarID, res.Percent)
	if res.Valid {
		s.SetField(CompletedID, res.Display())
	}
	return nil
}
