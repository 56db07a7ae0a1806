package onboarding

import "testing"

func TestWizardClamping(t *testing.T) {
	tests := []struct {
		name  string
		total int
		moves []int
		want  int
	}{
		{"stays on first when moving back", 4, []int{-1, -1}, 1},
		{"stops at last step", 3, []int{1, 1, 1, 1, 1}, 3},
		{"normal forward walk", 4, []int{1, 1}, 3},
		{"back after forward", 4, []int{1, 1, -1}, 2},
		{"single step wizard", 1, []int{1, -1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWizard(tt.total)
			for _, m := range tt.moves {
				if m > 0 {
					w.Next()
				} else {
					w.Previous()
				}
			}
			if got := w.Step(); got != tt.want {
				t.Errorf("Step() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWizardGoto(t *testing.T) {
	w := NewWizard(4)

	if got := w.Goto(99); got != 4 {
		t.Errorf("Goto(99) = %d, want 4", got)
	}
	if got := w.Goto(-5); got != 1 {
		t.Errorf("Goto(-5) = %d, want 1", got)
	}
	if got := w.Goto(0); got != 1 {
		t.Errorf("Goto(0) = %d, want 1", got)
	}
	if got := w.Goto(3); got != 3 {
		t.Errorf("Goto(3) = %d, want 3", got)
	}
}

func TestWizardBounds(t *testing.T) {
	w := NewWizard(3)
	if !w.IsFirst() || w.IsLast() {
		t.Errorf("fresh wizard: IsFirst() = %v, IsLast() = %v", w.IsFirst(), w.IsLast())
	}
	w.Goto(3)
	if w.IsFirst() || !w.IsLast() {
		t.Errorf("at last step: IsFirst() = %v, IsLast() = %v", w.IsFirst(), w.IsLast())
	}
}

func TestWizardProgress(t *testing.T) {
	w := NewWizard(4)
	if got := w.Progress(); got != 25 {
		t.Errorf("Progress() at step 1 = %d, want 25", got)
	}
	w.Goto(4)
	if got := w.Progress(); got != 100 {
		t.Errorf("Progress() at step 4 = %d, want 100", got)
	}
}

func TestNewWizardInvalidTotal(t *testing.T) {
	w := NewWizard(0)
	if w.Total() != 1 || w.Step() != 1 {
		t.Errorf("NewWizard(0): Total() = %d, Step() = %d, want 1, 1", w.Total(), w.Step())
	}
}
