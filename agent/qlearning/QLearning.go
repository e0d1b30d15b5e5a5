// Package qlearning implements episodic, tabular Q-Learning.
//
// Q-Learning is an off-policy temporal-difference control algorithm:
// actions are selected ε-greedily from the learned action values while
// the update target bootstraps from the greedy action in the next
// state. Unlike the dynamic-programming methods, it never reads the
// transition-probability tensor, only sampled transitions.
package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor/native"

	"github.com/aldebaro/tabular-rl/environment"
	"github.com/aldebaro/tabular-rl/policy"
	"github.com/aldebaro/tabular-rl/utils/floatutils"
)

// QLearning learns an action-value table from episodes of interaction
// with an environment. The table is updated in place across episodes;
// Reset zeroes it for an independent learning run.
type QLearning struct {
	env          environment.Model
	config       Config
	behaviour    *policy.EGreedy
	actionValues *mat.Dense
	rewards      [][][]float64
	steps        int
}

// New creates a new QLearning agent acting in the argument environment
func New(env environment.Model, c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	states, actions := env.NumStates(), env.NumActions()

	r := env.Rewards()
	if s := r.Shape(); len(s) != 3 || s[0] != states || s[1] != actions ||
		s[2] != states {
		return nil, fmt.Errorf("new: reward tensor shape %v does not "+
			"match %d states and %d actions", s, states, actions)
	}
	rewards, err := native.Tensor3F64(r)
	if err != nil {
		return nil, fmt.Errorf("new: could not view reward tensor: %v", err)
	}

	behaviour, err := policy.NewEGreedy(c.Epsilon, actions, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	steps := c.StepsPerEpisode
	if steps == 0 {
		steps = DefaultStepsPerEpisode
	}

	return &QLearning{
		env:          env,
		config:       c,
		behaviour:    behaviour,
		actionValues: mat.NewDense(states, actions, nil),
		rewards:      rewards,
		steps:        steps,
	}, nil
}

// ActionValues returns the agent's action-value table. The table is
// shared with the agent, not copied; it reflects all updates made so
// far and any updates made later.
func (q *QLearning) ActionValues() *mat.Dense {
	return q.actionValues
}

// GreedyPolicy returns the greedy policy with respect to the current
// action-value table
func (q *QLearning) GreedyPolicy() *mat.Dense {
	return policy.FromActionValues(q.actionValues)
}

// Reset zeroes the action-value table so a fresh learning run can be
// started
func (q *QLearning) Reset() {
	q.actionValues.Zero()
}

// RunEpisode runs one bounded episode from the environment's current
// state, updating the action-value table in place on every transition:
//
//	Q[s,a] += α (r + γ max_a' Q[s',a'] − Q[s,a])
//
// The reward r is read from the environment's reward tensor for the
// realized (s, a, s') transition, keeping the update consistent with
// the tabulated dynamics even when Step reports a shaped or noisy
// reward. The environment is not reset and episode termination inside
// the step bound is not handled specially, so successive calls
// continue from wherever the environment was left.
//
// RunEpisode returns the mean per-step reward of the episode, which
// keeps learning curves comparable across step budgets.
func (q *QLearning) RunEpisode() float64 {
	state := q.env.State()
	total := 0.0

	for i := 0; i < q.steps; i++ {
		action := q.behaviour.SelectAction(q.actionValues, state)
		q.env.Step(action)
		next := q.env.State()

		reward := q.rewards[state][action][next]
		total += reward

		best := floatutils.Max(q.actionValues.RawRowView(next)...)
		current := q.actionValues.At(state, action)
		q.actionValues.Set(state, action, current+
			q.config.LearningRate*(reward+q.config.Gamma*best-current))

		state = next
	}

	return total / float64(q.steps)
}
