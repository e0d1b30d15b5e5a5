package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aldebaro/tabular-rl/utils/floatutils"
)

// EGreedy implements ε-greedy action selection over a tabular
// action-value function. With probability ε an action is chosen
// uniformly at random; otherwise the choice is uniform over all
// actions attaining the row maximum, so ties are broken fairly rather
// than always selecting the first maximizer.
type EGreedy struct {
	epsilon float64
	actions int
	source  rand.Source
}

// NewEGreedy constructs a new EGreedy policy, where epsilon is the
// probability with which a random action is selected and actions is
// the number of actions in the environment
func NewEGreedy(epsilon float64, actions int, seed uint64) (*EGreedy, error) {
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"got %v", epsilon)
	}
	if actions < 1 {
		return nil, fmt.Errorf("newEGreedy: need at least one action, "+
			"got %d", actions)
	}

	return &EGreedy{epsilon, actions, rand.NewSource(seed)}, nil
}

// NewGreedy creates a fully greedy policy, equivalent to ε-greedy with
// ε = 0
func NewGreedy(actions int, seed uint64) (*EGreedy, error) {
	return NewEGreedy(0.0, actions, seed)
}

// Epsilon returns the exploration probability of the policy
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SelectAction selects an action for the argument state from the
// ε-greedy distribution induced by the action-value table
func (p *EGreedy) SelectAction(actionValues *mat.Dense, state int) int {
	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(p.actions)
	actionProbabilities := make([]float64, p.actions)
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}

	// Split the greedy probability mass evenly over the maximizers
	_, maximizers := floatutils.MaxSlice(actionValues.RawRowView(state))
	greedyProb := (1.0 - p.epsilon) / float64(len(maximizers))
	for _, a := range maximizers {
		actionProbabilities[a] += greedyProb
	}

	// Construct a categorical distribution over actions using the
	// action probabilities and sample from it
	dist := distuv.NewCategorical(actionProbabilities, p.source)
	return int(dist.Rand())
}
