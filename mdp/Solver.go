// Package mdp implements tabular dynamic-programming solution methods
// for finite Markov Decision Processes: iterative policy evaluation,
// value iteration, and action-value iteration.
//
// All methods iterate full synchronous sweeps over the state (or
// state-action) space until the sum of absolute differences between
// successive iterates falls below a tolerance. There is no divergence
// detection; a discount factor of 1 or unbounded rewards can prevent
// convergence, which surfaces as a sweep-cap error rather than an
// infinite loop.
package mdp

import (
	"fmt"

	"gorgonia.org/tensor/native"

	"github.com/aldebaro/tabular-rl/environment"
)

const (
	// DefaultTolerance is the convergence threshold used when a
	// Config leaves Tolerance unset
	DefaultTolerance = 1e-4

	// DefaultMaxSweeps is the sweep cap used when a Config leaves
	// MaxSweeps unset
	DefaultMaxSweeps = 100_000
)

// Config describes the numerical parameters of a Solver.
//
// Tolerance is compared against the unscaled sum of absolute
// differences between successive sweeps, so appropriate values grow
// with the size of the state space. Zero values for Tolerance and
// MaxSweeps select the package defaults.
type Config struct {
	Gamma     float64
	Tolerance float64
	MaxSweeps int
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("discount factor must be in [0, 1), got %v",
			c.Gamma)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %v",
			c.Tolerance)
	}
	if c.MaxSweeps < 0 {
		return fmt.Errorf("sweep cap cannot be negative, got %v",
			c.MaxSweeps)
	}
	return nil
}

// Solver computes value functions for the finite MDP described by an
// environment's dynamics tensors. The tensors are read once at
// construction and treated as immutable afterwards.
//
// A Solver is owned by a single goroutine; its methods must not be
// called concurrently.
type Solver struct {
	probs     [][][]float64
	rewards   [][][]float64
	states    int
	actions   int
	gamma     float64
	tolerance float64
	maxSweeps int
}

// New creates a Solver for the argument environment, failing fast if
// the environment's dynamics tensors do not agree with its declared
// state and action space sizes.
func New(env environment.Model, c Config) (*Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	states, actions := env.NumStates(), env.NumActions()

	p := env.TransitionProbabilities()
	if s := p.Shape(); len(s) != 3 || s[0] != states || s[1] != actions ||
		s[2] != states {
		return nil, fmt.Errorf("new: transition tensor shape %v does not "+
			"match %d states and %d actions", s, states, actions)
	}
	r := env.Rewards()
	if s := r.Shape(); len(s) != 3 || s[0] != states || s[1] != actions ||
		s[2] != states {
		return nil, fmt.Errorf("new: reward tensor shape %v does not "+
			"match %d states and %d actions", s, states, actions)
	}

	probs, err := native.Tensor3F64(p)
	if err != nil {
		return nil, fmt.Errorf("new: could not view transition tensor: %v",
			err)
	}
	rewards, err := native.Tensor3F64(r)
	if err != nil {
		return nil, fmt.Errorf("new: could not view reward tensor: %v", err)
	}

	tolerance := c.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	maxSweeps := c.MaxSweeps
	if maxSweeps == 0 {
		maxSweeps = DefaultMaxSweeps
	}

	return &Solver{
		probs:     probs,
		rewards:   rewards,
		states:    states,
		actions:   actions,
		gamma:     c.Gamma,
		tolerance: tolerance,
		maxSweeps: maxSweeps,
	}, nil
}
