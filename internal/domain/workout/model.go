package workout

import "math/rand/v2"

// DefaultFreeGenerations is how many plans a visitor gets before the generator locks.
const DefaultFreeGenerations = 2

// Display strings for the locked state and the trigger control.
const (
	LockedText     = "Locked"
	LockedMainText = "Sign up for our membership to unlock unlimited workout generation"
	GenerateLabel  = "Generate Workout"
	UnlockLabel    = "Unlock Unlimited Workouts"
)

// Category lists. Each must stay non-empty.
var (
	Focuses = []string{
		"Full Body",
		"Upper Body",
		"Lower Body",
		"Core + Cardio",
		"Mobility",
	}
	Warmups = []string{
		"5 min incline walk + dynamic stretching",
		"Jump rope 3 min + hip openers",
		"Row 500m + shoulder circles",
		"Bike 5 min + bodyweight squats",
	}
	Mains = []string{
		"3x8 Squat + 3x10 Push-ups + 3x12 Rows",
		"4x6 Deadlift + 3x10 Lunges + 3x30s Plank",
		"3 rounds: 12 KB swings, 10 DB press, 12 goblet squats",
		"EMOM 12 min: 10 burpees (modify as needed)",
	}
	Finishers = []string{
		"8 min treadmill intervals (30s fast / 60s easy)",
		"3 rounds: 20 mountain climbers + 10 sit-ups",
		"Farmer carries: 6 x 30 seconds",
		"Stretch + breathing: 6 minutes",
	}
)

// Plan is one suggested session.
type Plan struct {
	Focus    string
	Warmup   string
	Main     string
	Finisher string
}

// LockedPlan is shown once the free generations are used up.
var LockedPlan = Plan{
	Focus:    LockedText,
	Warmup:   LockedText,
	Main:     LockedMainText,
	Finisher: LockedText,
}

// Result is the outcome of one Generate call.
type Result struct {
	Plan Plan
	// Locked is true when the call was rejected and Plan is LockedPlan.
	Locked bool
	// NowLocked is true when this call used the last free generation.
	NowLocked bool
}

// Generator hands out random plans until its limit is reached.
// It is not safe for concurrent use; callers serialize events per page view.
type Generator struct {
	count int
	limit int
	intN  func(n int) int
}

// NewGenerator returns a generator allowing limit generations.
// PRE: limit >= 0
// POST: count is 0; intN defaults to math/rand/v2 when nil
func NewGenerator(limit int, intN func(n int) int) *Generator {
	if limit < 0 {
		limit = 0
	}
	if intN == nil {
		intN = rand.IntN
	}
	return &Generator{limit: limit, intN: intN}
}

// Count returns how many plans have been generated.
func (g *Generator) Count() int {
	return g.count
}

// Limit returns the number of free generations.
func (g *Generator) Limit() int {
	return g.limit
}

// IsLocked reports whether further calls will be rejected.
func (g *Generator) IsLocked() bool {
	return g.count >= g.limit
}

// Generate picks one entry per category, or returns the locked plan.
// PRE: none
// POST: count is incremented by 1 unless the result is Locked
// INVARIANT: count never exceeds limit
func (g *Generator) Generate() Result {
	if g.IsLocked() {
		return Result{Plan: LockedPlan, Locked: true}
	}

	plan := Plan{
		Focus:    g.pick(Focuses),
		Warmup:   g.pick(Warmups),
		Main:     g.pick(Mains),
		Finisher: g.pick(Finishers),
	}
	g.count++

	return Result{Plan: plan, NowLocked: g.IsLocked()}
}

func (g *Generator) pick(options []string) string {
	return options[g.intN(len(options))]
}
