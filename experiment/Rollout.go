// Package experiment implements drivers that execute policies and
// learning agents against environments and collect their results.
package experiment

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aldebaro/tabular-rl/environment"
	"github.com/aldebaro/tabular-rl/policy"
	"github.com/aldebaro/tabular-rl/utils/floatutils"
)

// Observer is a per-step hook invoked by a Rollout after every
// environment transition. Observers can record or post-process step
// output but cannot alter the control flow of the rollout.
type Observer func(state, action int, reward float64,
	info map[string]interface{})

// Rollout executes episodes in an environment under a fixed policy,
// accumulating the reward reported by the environment.
//
// Policy rows are treated as sampling weights rather than strict
// probability distributions: an all-zero row selects uniformly over
// actions, and a row containing negative entries is shifted so that
// all weights are non-negative before sampling. This lets raw
// action-value tables be rolled out directly.
type Rollout struct {
	env       environment.Environment
	policy    *mat.Dense
	maxSteps  int
	observers []Observer
	source    rand.Source
}

// NewRollout creates a driver that runs the argument policy in the
// argument environment for at most maxSteps steps per episode
func NewRollout(env environment.Environment, pol *mat.Dense,
	maxSteps int, seed uint64, observers ...Observer) (*Rollout, error) {
	if err := policy.Validate(pol, env.NumStates(),
		env.NumActions()); err != nil {
		return nil, fmt.Errorf("newRollout: %v", err)
	}
	if maxSteps < 1 {
		return nil, fmt.Errorf("newRollout: need a positive step bound, "+
			"got %d", maxSteps)
	}

	return &Rollout{
		env:       env,
		policy:    pol,
		maxSteps:  maxSteps,
		observers: observers,
		source:    rand.NewSource(seed),
	}, nil
}

// Run resets the environment and executes one episode, sampling each
// action from the current state's policy row. The episode ends after
// maxSteps steps or as soon as the environment signals termination,
// whichever comes first.
//
// Run returns the total reward accumulated over the episode.
func (r *Rollout) Run() float64 {
	r.env.Reset()
	state := r.env.State()
	total := 0.0

	for i := 0; i < r.maxSteps; i++ {
		weights := samplingWeights(r.policy.RawRowView(state))
		dist := distuv.NewCategorical(weights, r.source)
		action := int(dist.Rand())

		step, last := r.env.Step(action)
		total += step.Reward

		for _, observe := range r.observers {
			observe(state, action, step.Reward, step.Info)
		}

		state = r.env.State()
		if last {
			break
		}
	}
	return total
}

// samplingWeights conditions a policy row into non-negative sampling
// weights. A row summing to zero becomes uniform; a row with negative
// entries is shifted by the most negative entry plus a tiny epsilon so
// every weight stays positive. Normalization is left to the sampler.
func samplingWeights(row []float64) []float64 {
	weights := make([]float64, len(row))
	copy(weights, row)

	if floats.Sum(weights) == 0 {
		for i := range weights {
			weights[i] = 1.0
		}
		return weights
	}

	if min := floatutils.Min(weights...); min < 0 {
		shift := -min + 1e-30
		for i := range weights {
			weights[i] += shift
		}
	}
	return weights
}
