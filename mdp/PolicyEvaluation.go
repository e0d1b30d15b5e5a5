package mdp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aldebaro/tabular-rl/policy"
)

// UpdateMode selects the source buffer of a policy-evaluation sweep
type UpdateMode int

const (
	// Synchronous updates compute every new state value from the
	// previous sweep's complete value vector (Jacobi iteration)
	Synchronous UpdateMode = iota

	// InPlace updates read values already written during the current
	// sweep (Gauss-Seidel iteration), which typically converges in
	// fewer sweeps
	InPlace
)

func (u UpdateMode) String() string {
	switch u {
	case InPlace:
		return "InPlace"
	default:
		return "Synchronous"
	}
}

// EvaluatePolicy computes the state-value function of a fixed policy
// by iterative policy evaluation:
//
//	V[s] = Σ_a π[s,a] Σ_s' P[s,a,s'] (R[s,a,s'] + γV[s'])
//
// The policy is an S×A matrix whose rows are probability distributions
// over actions; rows summing to 1 is a precondition, not checked.
// Actions with zero probability are skipped.
//
// EvaluatePolicy returns the converged value vector and the number of
// sweeps performed. If the sweep cap is reached before convergence,
// the last iterate is returned along with a non-nil error.
func (s *Solver) EvaluatePolicy(pol *mat.Dense,
	mode UpdateMode) (*mat.VecDense, int, error) {
	if err := policy.Validate(pol, s.states, s.actions); err != nil {
		return nil, 0, fmt.Errorf("evaluatePolicy: %v", err)
	}

	values := make([]float64, s.states)
	updated := make([]float64, s.states)

	for sweep := 1; ; sweep++ {
		src := values
		if mode == InPlace {
			src = updated
		}

		for state := 0; state < s.states; state++ {
			value := 0.0
			for action := 0; action < s.actions; action++ {
				prob := pol.At(state, action)
				if prob == 0 {
					continue // save computation
				}
				for next := 0; next < s.states; next++ {
					value += prob * s.probs[state][action][next] *
						(s.rewards[state][action][next] + s.gamma*src[next])
				}
			}
			updated[state] = value
		}

		delta := floats.Distance(updated, values, 1)
		copy(values, updated)

		if delta < s.tolerance {
			return mat.NewVecDense(s.states, values), sweep, nil
		}
		if sweep >= s.maxSweeps {
			return mat.NewVecDense(s.states, values), sweep,
				fmt.Errorf("evaluatePolicy: no convergence after %d "+
					"sweeps, last delta %v", sweep, delta)
		}
	}
}
