package policy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestEquiprobable(t *testing.T) {
	const states, actions = 3, 4

	p := Equiprobable(states, actions)
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			if p.At(s, a) != 1.0/actions {
				t.Errorf("expected π[%d,%d] = %v, got %v", s, a,
					1.0/actions, p.At(s, a))
			}
		}
	}
}

func TestFromActionValues(t *testing.T) {
	actionValues := mat.NewDense(3, 3, []float64{
		1, 2, 0, // single maximizer
		3, 3, 1, // two-way tie
		-1, -1, -1, // all tied
	})

	want := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		0.5, 0.5, 0,
		1.0 / 3, 1.0 / 3, 1.0 / 3,
	})

	got := FromActionValues(actionValues)
	for s := 0; s < 3; s++ {
		row := got.RawRowView(s)
		if sum := floats.Sum(row); math.Abs(sum-1) > 1e-12 {
			t.Errorf("row %d sums to %v, want 1", s, sum)
		}
		for a := 0; a < 3; a++ {
			if math.Abs(got.At(s, a)-want.At(s, a)) > 1e-12 {
				t.Errorf("expected π[%d,%d] = %v, got %v", s, a,
					want.At(s, a), got.At(s, a))
			}
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(mat.NewDense(2, 3, nil), 2, 3); err != nil {
		t.Errorf("expected matching policy to validate, got %v", err)
	}
	if err := Validate(mat.NewDense(2, 3, nil), 3, 2); err == nil {
		t.Error("expected mismatched policy to be rejected")
	}
}
