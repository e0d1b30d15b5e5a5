// Package environment outlines the interfaces needed to implement
// concrete environments with discrete state and action spaces
package environment

import (
	"gorgonia.org/tensor"

	"github.com/aldebaro/tabular-rl/timestep"
)

// Environment implements a simulated environment with discrete,
// enumerable state and action spaces. States and actions are plain
// integers in [0, NumStates()) and [0, NumActions()); any mapping to
// domain labels ("left", "right", ...) is the concern of the concrete
// environment, never of the solution methods.
type Environment interface {
	// Reset returns the environment to its initial state between
	// episodes
	Reset()

	// State returns the index of the state the environment is
	// currently in
	State() int

	// Step applies an action, advancing the environment by one
	// transition. The second return value indicates whether the
	// episode ended on this transition.
	Step(action int) (timestep.TimeStep, bool)

	NumStates() int
	NumActions() int
}

// Model exposes the full dynamics of an environment as S×A×S tensors.
// Dynamic-programming methods require a Model; Q-learning only needs
// the reward tensor, sampling transitions through Step.
//
// Both tensors are read-only from the caller's perspective.
type Model interface {
	Environment

	// TransitionProbabilities returns the S×A×S tensor P where
	// P[s,a,s'] is the probability of landing in s' after taking a
	// in s. Rows P[s,a,:] are assumed to sum to 1; this is the
	// environment's responsibility and is not enforced here.
	TransitionProbabilities() *tensor.Dense

	// Rewards returns the S×A×S tensor R where R[s,a,s'] is the
	// reward for the transition (s, a, s'). Entries may be negative.
	Rewards() *tensor.Dense
}
