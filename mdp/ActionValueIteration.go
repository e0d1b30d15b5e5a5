package mdp

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/aldebaro/tabular-rl/utils/floatutils"
)

// ActionValues computes the optimal action-value function Q* by value
// iteration lifted to state-action space:
//
//	Q[s,a] = Σ_s' P[s,a,s'] (R[s,a,s'] + γ max_a' Q[s',a'])
//
// The max term always reads the previous sweep's complete table, so
// the iteration is synchronous. Under identical dynamics and discount,
// the row-wise max of the converged Q* equals the V* computed by
// StateValues up to the convergence tolerance.
//
// ActionValues returns Q* and the number of sweeps performed. If the
// sweep cap is reached before convergence, the last iterate is
// returned along with a non-nil error.
func (s *Solver) ActionValues() (*mat.Dense, int, error) {
	values := mat.NewDense(s.states, s.actions, nil)
	updated := mat.NewDense(s.states, s.actions, nil)

	for sweep := 1; ; sweep++ {
		for state := 0; state < s.states; state++ {
			for action := 0; action < s.actions; action++ {
				value := 0.0
				for next := 0; next < s.states; next++ {
					best := floatutils.Max(values.RawRowView(next)...)
					value += s.probs[state][action][next] *
						(s.rewards[state][action][next] + s.gamma*best)
				}
				updated.Set(state, action, value)
			}
		}

		delta := floats.Distance(updated.RawMatrix().Data,
			values.RawMatrix().Data, 1)
		values.Copy(updated)

		if delta < s.tolerance {
			return values, sweep, nil
		}
		if sweep >= s.maxSweeps {
			return values, sweep, fmt.Errorf("actionValues: no "+
				"convergence after %d sweeps, last delta %v", sweep, delta)
		}
	}
}
