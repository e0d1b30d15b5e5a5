// Package tabular implements an environment whose dynamics are given
// explicitly by transition-probability and reward tensors.
//
// A tabular environment is the most general finite MDP: anything with
// S enumerable states and A enumerable actions can be described by an
// S×A×S transition tensor and an S×A×S reward tensor. Concrete
// domains (gridworlds, channel allocation, ...) only need to build the
// two tensors and, if desired, keep their own mapping from state and
// action indices to domain labels.
package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"

	"github.com/aldebaro/tabular-rl/timestep"
)

// Env is a finite MDP environment driven by explicit dynamics tensors.
// The next state of each transition is sampled from the categorical
// distribution P[s,a,:], and the reward is looked up as R[s,a,s'].
type Env struct {
	p, r     *tensor.Dense
	probs    [][][]float64 // native view of p
	rewards  [][][]float64 // native view of r
	states   int
	actions  int
	state    int
	step     int
	terminal map[int]bool
	source   rand.Source
}

// Option modifies an Env under construction
type Option func(*Env)

// WithTerminals marks the argument states as terminal. Entering a
// terminal state ends the episode.
func WithTerminals(states ...int) Option {
	return func(e *Env) {
		for _, s := range states {
			e.terminal[s] = true
		}
	}
}

// New creates a tabular environment from a transition-probability
// tensor p and a reward tensor r, both of shape S×A×S. The environment
// starts, and resets to, state 0.
func New(p, r *tensor.Dense, seed uint64, opts ...Option) (*Env, error) {
	states, actions, err := checkShape(p)
	if err != nil {
		return nil, fmt.Errorf("new: transition tensor: %v", err)
	}

	rStates, rActions, err := checkShape(r)
	if err != nil {
		return nil, fmt.Errorf("new: reward tensor: %v", err)
	}
	if rStates != states || rActions != actions {
		return nil, fmt.Errorf("new: reward tensor shape %v does not "+
			"match transition tensor shape %v", r.Shape(), p.Shape())
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

	env := &Env{
		p:        p,
		r:        r,
		probs:    probs,
		rewards:  rewards,
		states:   states,
		actions:  actions,
		terminal: make(map[int]bool),
		source:   rand.NewSource(seed),
	}
	for _, opt := range opts {
		opt(env)
	}
	return env, nil
}

// checkShape validates that a dynamics tensor has shape S×A×S and
// returns S and A
func checkShape(t *tensor.Dense) (states, actions int, err error) {
	shape := t.Shape()
	if len(shape) != 3 {
		return 0, 0, fmt.Errorf("expected 3 dimensions, got shape %v", shape)
	}
	if shape[0] != shape[2] {
		return 0, 0, fmt.Errorf("first and last dimensions must both "+
			"index states, got shape %v", shape)
	}
	if shape[0] < 1 || shape[1] < 1 {
		return 0, 0, fmt.Errorf("degenerate shape %v", shape)
	}
	return shape[0], shape[1], nil
}

// Reset returns the environment to its starting state
func (e *Env) Reset() {
	e.state = 0
	e.step = 0
}

// State returns the index of the current state
func (e *Env) State() int {
	return e.state
}

// NumStates returns the size of the state space
func (e *Env) NumStates() int {
	return e.states
}

// NumActions returns the size of the action space
func (e *Env) NumActions() int {
	return e.actions
}

// TransitionProbabilities returns the S×A×S transition tensor
func (e *Env) TransitionProbabilities() *tensor.Dense {
	return e.p
}

// Rewards returns the S×A×S reward tensor
func (e *Env) Rewards() *tensor.Dense {
	return e.r
}

// Step takes an action in the environment, sampling the next state
// from P[s,a,:] and reporting the reward R[s,a,s']. The Info payload
// of the returned TimeStep records the realized transition.
func (e *Env) Step(action int) (timestep.TimeStep, bool) {
	if action < 0 || action >= e.actions {
		panic(fmt.Sprintf("step: action %d out of range [0, %d)", action,
			e.actions))
	}

	dist := distuv.NewCategorical(e.probs[e.state][action], e.source)
	next := int(dist.Rand())
	reward := e.rewards[e.state][action][next]

	info := map[string]interface{}{
		"state":  e.state,
		"action": action,
		"next":   next,
		"reward": reward,
	}

	e.state = next
	e.step++

	stepType := timestep.Mid
	if e.terminal[next] {
		stepType = timestep.Last
	}

	step := timestep.New(stepType, reward, next, info, e.step)
	return step, stepType == timestep.Last
}
