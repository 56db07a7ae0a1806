// Package onboarding holds the pure pieces of the profile onboarding
// flow: the step sequencer, the per-step validation rules, the profile
// completion evaluator and the post-login route resolution. Nothing in
// this package touches the database or the request context.
package onboarding

// Wizard is a fixed-length step sequencer. The current step is always
// within [1, total]; moving past either edge clamps instead of wrapping
// or failing.
type Wizard struct {
	step  int
	total int
}

// NewWizard creates a sequencer over total steps, positioned at step 1.
// A total below 1 is treated as 1.
func NewWizard(total int) *Wizard {
	if total < 1 {
		total = 1
	}
	return &Wizard{step: 1, total: total}
}

// Step returns the current step number.
func (w *Wizard) Step() int { return w.step }

// Total returns the number of steps.
func (w *Wizard) Total() int { return w.total }

// Next advances one step and returns the new position.
func (w *Wizard) Next() int {
	return w.Goto(w.step + 1)
}

// Previous moves back one step and returns the new position.
func (w *Wizard) Previous() int {
	return w.Goto(w.step - 1)
}

// Goto jumps to the given step, clamping into [1, total].
func (w *Wizard) Goto(step int) int {
	if step < 1 {
		step = 1
	}
	if step > w.total {
		step = w.total
	}
	w.step = step
	return w.step
}

// IsFirst reports whether the sequencer sits on the first step.
func (w *Wizard) IsFirst() bool { return w.step == 1 }

// IsLast reports whether the sequencer sits on the last step.
func (w *Wizard) IsLast() bool { return w.step == w.total }

// Progress returns the completed share of the wizard as a percentage.
func (w *Wizard) Progress() int {
	return w.step * 100 / w.total
}
