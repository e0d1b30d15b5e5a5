package mdp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// StateValues computes the optimal state-value function V* by value
// iteration on the Bellman optimality recursion:
//
//	V[s] = max_a Σ_s' P[s,a,s'] (R[s,a,s'] + γV[s'])
//
// Sweeps are always synchronous: every new value is computed from the
// previous sweep's complete vector. Only the value of the maximizing
// action matters here, so ties in the max need no breaking.
//
// StateValues returns V* and the number of sweeps performed. If the
// sweep cap is reached before convergence, the last iterate is
// returned along with a non-nil error.
func (s *Solver) StateValues() (*mat.VecDense, int, error) {
	values := make([]float64, s.states)
	updated := make([]float64, s.states)

	for sweep := 1; ; sweep++ {
		for state := 0; state < s.states; state++ {
			best := math.Inf(-1)
			for action := 0; action < s.actions; action++ {
				value := 0.0
				for next := 0; next < s.states; next++ {
					value += s.probs[state][action][next] *
						(s.rewards[state][action][next] +
							s.gamma*values[next])
				}
				if value > best {
					best = value
				}
			}
			updated[state] = best
		}

		delta := floats.Distance(updated, values, 1)
		copy(values, updated)

		if delta < s.tolerance {
			return mat.NewVecDense(s.states, values), sweep, nil
		}
		if sweep >= s.maxSweeps {
			return mat.NewVecDense(s.states, values), sweep,
				fmt.Errorf("stateValues: no convergence after %d sweeps, "+
					"last delta %v", sweep, delta)
		}
	}
}
