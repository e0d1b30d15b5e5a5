package policy

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewEGreedyValidatesArguments(t *testing.T) {
	if _, err := NewEGreedy(-0.1, 2, 1); err == nil {
		t.Error("expected negative epsilon to be rejected")
	}
	if _, err := NewEGreedy(1.1, 2, 1); err == nil {
		t.Error("expected epsilon > 1 to be rejected")
	}
	if _, err := NewEGreedy(0.5, 0, 1); err == nil {
		t.Error("expected zero actions to be rejected")
	}
}

func TestGreedySelectsAmongMaximizers(t *testing.T) {
	// With ε = 0 every selection must attain the row maximum, and
	// fair tie-breaking should eventually visit every maximizer
	actionValues := mat.NewDense(1, 4, []float64{1, 3, 3, 0})

	greedy, err := NewGreedy(4, 42)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	seen := make(map[int]int)
	for i := 0; i < 1000; i++ {
		action := greedy.SelectAction(actionValues, 0)
		if action != 1 && action != 2 {
			t.Fatalf("greedy selection chose non-maximizing action %d",
				action)
		}
		seen[action]++
	}

	if seen[1] == 0 || seen[2] == 0 {
		t.Errorf("tie-breaking never visited one maximizer: %v", seen)
	}
}

func TestFullyRandomIgnoresActionValues(t *testing.T) {
	// With ε = 1 every action should be selected regardless of its
	// value
	actionValues := mat.NewDense(1, 4, []float64{100, 0, 0, 0})

	random, err := NewEGreedy(1.0, 4, 42)
	if err != nil {
		t.Fatalf("could not create policy: %v", err)
	}

	seen := make(map[int]int)
	for i := 0; i < 2000; i++ {
		seen[random.SelectAction(actionValues, 0)]++
	}

	for a := 0; a < 4; a++ {
		if seen[a] == 0 {
			t.Errorf("action %d was never selected: %v", a, seen)
		}
	}
}
