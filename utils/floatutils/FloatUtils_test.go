package floatutils

import "testing"

func TestMaxSlice(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		max     float64
		indices []int
	}{
		{"single maximizer", []float64{1, 3, 2}, 3, []int{1}},
		{"ties", []float64{2, 1, 2, 2}, 2, []int{0, 2, 3}},
		{"all negative", []float64{-3, -1, -2}, -1, []int{1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			max, indices := MaxSlice(test.values)
			if max != test.max {
				t.Errorf("expected max %v, got %v", test.max, max)
			}
			if len(indices) != len(test.indices) {
				t.Fatalf("expected indices %v, got %v", test.indices,
					indices)
			}
			for i := range indices {
				if indices[i] != test.indices[i] {
					t.Errorf("expected indices %v, got %v", test.indices,
						indices)
					break
				}
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if got := Max(1, -2, 3, 0); got != 3 {
		t.Errorf("expected max 3, got %v", got)
	}
	if got := Min(1, -2, 3, 0); got != -2 {
		t.Errorf("expected min -2, got %v", got)
	}
}
