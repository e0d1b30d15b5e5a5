package experiment

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"github.com/aldebaro/tabular-rl/environment/tabular"
)

func newEnv(t *testing.T, states, actions int, probs, rewards []float64,
	opts ...tabular.Option) *tabular.Env {
	t.Helper()

	p := tensor.New(tensor.WithShape(states, actions, states),
		tensor.WithBacking(probs))
	r := tensor.New(tensor.WithShape(states, actions, states),
		tensor.WithBacking(rewards))

	env, err := tabular.New(p, r, 7, opts...)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	return env
}

// cycleEnv is a deterministic two-state cycle with reward 1 on every
// transition
func cycleEnv(t *testing.T, opts ...tabular.Option) *tabular.Env {
	t.Helper()
	return newEnv(t, 2, 2,
		[]float64{
			0, 1, 0, 1, // state 0: both actions lead to 1
			1, 0, 1, 0, // state 1: both actions lead to 0
		},
		[]float64{
			0, 1, 0, 1,
			1, 0, 1, 0,
		}, opts...)
}

func TestNewRolloutValidatesArguments(t *testing.T) {
	env := cycleEnv(t)

	if _, err := NewRollout(env, mat.NewDense(3, 3, nil), 10, 1); err == nil {
		t.Error("expected a mismatched policy to be rejected")
	}
	if _, err := NewRollout(env, mat.NewDense(2, 2, nil), 0, 1); err == nil {
		t.Error("expected a non-positive step bound to be rejected")
	}
}

func TestRunStopsAtStepBound(t *testing.T) {
	// The environment never signals termination, so the step bound is
	// the only thing ending the episode. Policy rows are degenerate
	// on purpose: one all-zero, one with negative weights.
	env := cycleEnv(t)
	policy := mat.NewDense(2, 2, []float64{
		0, 0,
		-1, -2,
	})

	steps := 0
	rollout, err := NewRollout(env, policy, 25, 42,
		func(state, action int, reward float64,
			info map[string]interface{}) {
			steps++
		})
	if err != nil {
		t.Fatalf("could not create rollout: %v", err)
	}

	total := rollout.Run()
	if steps != 25 {
		t.Errorf("expected exactly 25 steps, observed %d", steps)
	}
	if total != 25 {
		t.Errorf("expected total reward 25, got %v", total)
	}
}

func TestRunStopsOnTermination(t *testing.T) {
	env := cycleEnv(t, tabular.WithTerminals(1))

	steps := 0
	rollout, err := NewRollout(env, mat.NewDense(2, 2, []float64{
		1, 0,
		1, 0,
	}), 100, 42, func(state, action int, reward float64,
		info map[string]interface{}) {
		steps++
	})
	if err != nil {
		t.Fatalf("could not create rollout: %v", err)
	}

	rollout.Run()
	if steps != 1 {
		t.Errorf("expected the episode to end on the first transition, "+
			"observed %d steps", steps)
	}
}

func TestRunTotalMatchesObservedRewards(t *testing.T) {
	env := cycleEnv(t)

	observed := 0.0
	rollout, err := NewRollout(env, mat.NewDense(2, 2, []float64{
		0.5, 0.5,
		0.5, 0.5,
	}), 50, 42, func(state, action int, reward float64,
		info map[string]interface{}) {
		observed += reward
	})
	if err != nil {
		t.Fatalf("could not create rollout: %v", err)
	}

	total := rollout.Run()
	if math.Abs(total-observed) > 1e-12 {
		t.Errorf("driver total %v disagrees with observed total %v",
			total, observed)
	}
}

func TestSamplingWeights(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
		want []float64
	}{
		{"all zero becomes uniform", []float64{0, 0, 0}, []float64{1, 1, 1}},
		{"canceling row becomes uniform", []float64{1, -1}, []float64{1, 1}},
		{"non-negative row unchanged", []float64{0.2, 0.8},
			[]float64{0.2, 0.8}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := samplingWeights(test.row)
			for i := range test.want {
				if math.Abs(got[i]-test.want[i]) > 1e-12 {
					t.Errorf("expected weights %v, got %v", test.want, got)
					break
				}
			}
		})
	}
}

func TestSamplingWeightsShiftsNegatives(t *testing.T) {
	got := samplingWeights([]float64{-2, 1})
	for i, w := range got {
		if w < 0 {
			t.Errorf("weight %d is negative after conditioning: %v", i, w)
		}
	}
	if got[1] <= got[0] {
		t.Errorf("conditioning should preserve ordering, got %v", got)
	}
}
