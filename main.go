package main

import (
	"fmt"
	"log"

	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"

	"github.com/aldebaro/tabular-rl/agent/qlearning"
	"github.com/aldebaro/tabular-rl/environment/tabular"
	"github.com/aldebaro/tabular-rl/experiment"
	"github.com/aldebaro/tabular-rl/experiment/trackers"
	"github.com/aldebaro/tabular-rl/mdp"
	"github.com/aldebaro/tabular-rl/policy"
	"github.com/aldebaro/tabular-rl/utils/matutils"
)

func main() {
	var seed uint64 = 192382
	const states, actions = 3, 2
	const gamma = 0.9

	// Build a random finite MDP: normalized transition rows and
	// normally distributed rewards
	rng := rand.New(rand.NewSource(seed))

	probs := make([]float64, states*actions*states)
	for row := 0; row < states*actions; row++ {
		sum := 0.0
		for next := 0; next < states; next++ {
			v := rng.Float64()
			probs[row*states+next] = v
			sum += v
		}
		for next := 0; next < states; next++ {
			probs[row*states+next] /= sum
		}
	}

	rewards := make([]float64, states*actions*states)
	for i := range rewards {
		rewards[i] = rng.NormFloat64()
	}

	p := tensor.New(tensor.WithShape(states, actions, states),
		tensor.WithBacking(probs))
	r := tensor.New(tensor.WithShape(states, actions, states),
		tensor.WithBacking(rewards))

	env, err := tabular.New(p, r, seed)
	if err != nil {
		log.Fatalf("could not create environment: %v", err)
	}

	// Solve the MDP exactly by dynamic programming
	solver, err := mdp.New(env, mdp.Config{Gamma: gamma})
	if err != nil {
		log.Fatalf("could not create solver: %v", err)
	}

	optimal, sweeps, err := solver.StateValues()
	if err != nil {
		log.Fatalf("value iteration did not converge: %v", err)
	}
	fmt.Printf("V* after %d sweeps:\n%v\n\n", sweeps,
		matutils.Format(optimal.T()))

	actionValues, _, err := solver.ActionValues()
	if err != nil {
		log.Fatalf("action-value iteration did not converge: %v", err)
	}
	greedy := policy.FromActionValues(actionValues)
	fmt.Printf("greedy policy:\n%v\n\n", matutils.Format(greedy))

	evaluated, sweeps, err := solver.EvaluatePolicy(greedy, mdp.InPlace)
	if err != nil {
		log.Fatalf("policy evaluation did not converge: %v", err)
	}
	fmt.Printf("greedy policy evaluated after %d sweeps:\n%v\n\n", sweeps,
		matutils.Format(evaluated.T()))

	// Roll out the greedy policy, tracking the episodic return
	tracker := trackers.NewReturn("./returns.bin")
	rollout, err := experiment.NewRollout(env, greedy, 100, seed,
		tracker.Observe)
	if err != nil {
		log.Fatalf("could not create rollout: %v", err)
	}
	total := rollout.Run()
	tracker.EndEpisode()
	tracker.Save()
	fmt.Printf("rollout return: %.4f (saved: %v)\n\n", total,
		trackers.LoadReturns("./returns.bin"))

	// Learn action values from interaction alone and compare
	config := qlearning.Config{
		Epsilon:         0.01,
		LearningRate:    0.1,
		Gamma:           gamma,
		StepsPerEpisode: 1000,
	}
	runs, err := experiment.NewQLearningRuns(env, config, 100, 5, seed,
		experiment.WithProgressBar(50))
	if err != nil {
		log.Fatalf("could not create Q-learning runs: %v", err)
	}
	learned, curve, err := runs.Run()
	if err != nil {
		log.Fatalf("Q-learning failed: %v", err)
	}
	fmt.Printf("\nlearned action values:\n%v\n\n",
		matutils.Format(learned))
	fmt.Printf("averaged reward curve (last 10):\n%v\n",
		matutils.Format(curve.SliceVec(curve.Len()-10, curve.Len()).T()))
}
