package progress

import (
	"fmt"
	"math"

	"plusultra/internal/domain/numeric"
)

// Goal is the weekly session target.
const Goal = 4

// InvalidMessage is shown when the input is not a number.
const InvalidMessage = "Enter a number from 0 to 4."

// Message tails by tier.
const (
	startTier    = "start with a quick 20-minute session."
	completeTier = "Let’s go! You did great, crushing your goal. Keep the streak going!"
	middleTier   = "nice work, keep going."
)

// Result is the outcome of one progress update.
type Result struct {
	// Valid is false when the input did not parse; Percent is then 0.
	Valid   bool
	Value   float64
	Percent int
	Message string
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Update evaluates raw input against the goal.
// PRE: none
// POST: Valid results have 0 <= Value <= Goal and 0 <= Percent <= 100
func Update(raw string) Result {
	v, ok := numeric.Parse(raw)
	if !ok {
		return Result{Message: InvalidMessage}
	}

	completed := Clamp(v, 0, Goal)
	percent := int(math.Floor(completed/Goal*100 + 0.5))

	return Result{
		Valid:   true,
		Value:   completed,
		Percent: percent,
		Message: fmt.Sprintf("%d%% complete — %s", percent, tier(completed)),
	}
}

// Display returns the clamped value as it is written back into the input.
func (r Result) Display() string {
	return numeric.Format(r.Value)
}

func tier(completed float64) string {
	switch completed {
	case 0:
		return startTier
	case Goal:
		return completeTier
	default:
		return middleTier
	}
}
