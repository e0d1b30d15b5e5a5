// Package policy implements tabular policies over discrete state and
// action spaces. A policy is an S×A matrix whose row s is a
// probability distribution over the actions available in state s.
package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aldebaro/tabular-rl/utils/floatutils"
)

// Equiprobable returns the uniform policy that selects every action
// with probability 1/A in every state. It is the usual starting point
// for policy evaluation.
func Equiprobable(states, actions int) *mat.Dense {
	policy := mat.NewDense(states, actions, nil)
	prob := 1.0 / float64(actions)
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			policy.Set(s, a, prob)
		}
	}
	return policy
}

// FromActionValues converts an action-value table into the greedy
// policy with respect to it. In each state, probability mass is split
// uniformly over all actions attaining the row maximum and every other
// action gets zero mass; a single maximizer yields a one-hot row.
func FromActionValues(actionValues *mat.Dense) *mat.Dense {
	states, actions := actionValues.Dims()
	policy := mat.NewDense(states, actions, nil)

	for s := 0; s < states; s++ {
		_, maximizers := floatutils.MaxSlice(actionValues.RawRowView(s))
		prob := 1.0 / float64(len(maximizers))
		for _, a := range maximizers {
			policy.Set(s, a, prob)
		}
	}
	return policy
}

// Validate checks that a policy matches an environment with the
// argument state and action space sizes
func Validate(policy *mat.Dense, states, actions int) error {
	rows, cols := policy.Dims()
	if rows != states || cols != actions {
		return fmt.Errorf("policy is %d×%d but environment has %d states "+
			"and %d actions", rows, cols, states, actions)
	}
	return nil
}
