package orchestrators

import (
	"plusultra/internal/application/ui"
	"plusultra/internal/domain/roster"
)

// ExecuteShowRoster writes the coach roster into the about page.
// PRE: none
// POST: meetMsg holds the rendered roster
func ExecuteShowRoster(s ui.Surface) error {
	s.SetText(MeetMsgID, roster.Show())
	return nil
}
