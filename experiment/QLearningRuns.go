package experiment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aldebaro/tabular-rl/agent/qlearning"
	"github.com/aldebaro/tabular-rl/environment"
	"github.com/aldebaro/tabular-rl/utils/matutils"
	"github.com/aldebaro/tabular-rl/utils/progressbar"
)

// QLearningRuns executes independent repetitions of episodic
// Q-learning and averages their reward curves. Each run starts from a
// freshly zeroed action-value table and its own random seed, so a
// single noisy run does not dominate the learning curve.
type QLearningRuns struct {
	env        environment.Model
	config     qlearning.Config
	iterations int
	runs       int
	seed       uint64
	progress   *progressbar.ProgressBar
}

// RunsOption modifies a QLearningRuns under construction
type RunsOption func(*QLearningRuns)

// WithProgressBar displays a progress bar of the argument width while
// the runs execute, advancing once per completed run
func WithProgressBar(width int) RunsOption {
	return func(e *QLearningRuns) {
		e.progress = progressbar.New(width, e.runs)
	}
}

// NewQLearningRuns creates a driver that performs runs independent
// repetitions of iterations Q-learning episodes each. Run seeds are
// derived from the argument seed so repetitions differ but the whole
// experiment stays reproducible.
func NewQLearningRuns(env environment.Model, config qlearning.Config,
	iterations, runs int, seed uint64,
	opts ...RunsOption) (*QLearningRuns, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newQLearningRuns: %v", err)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("newQLearningRuns: need a positive number "+
			"of iterations, got %d", iterations)
	}
	if runs < 1 {
		return nil, fmt.Errorf("newQLearningRuns: need a positive number "+
			"of runs, got %d", runs)
	}

	e := &QLearningRuns{
		env:        env,
		config:     config,
		iterations: iterations,
		runs:       runs,
		seed:       seed,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes all repetitions. It returns the action-value table of
// the last run together with the per-iteration reward curve averaged
// across runs; the curve has one entry per episode iteration.
func (e *QLearningRuns) Run() (*mat.Dense, *mat.VecDense, error) {
	returns := mat.NewDense(e.iterations, e.runs, nil)
	var actionValues *mat.Dense

	for run := 0; run < e.runs; run++ {
		agent, err := qlearning.New(e.env, e.config, e.seed+uint64(run))
		if err != nil {
			return nil, nil, fmt.Errorf("run: could not create agent: %v",
				err)
		}

		for i := 0; i < e.iterations; i++ {
			returns.Set(i, run, agent.RunEpisode())
		}
		actionValues = agent.ActionValues()

		if e.progress != nil {
			e.progress.Increment()
			e.progress.Display()
		}
	}

	return actionValues, matutils.RowMean(returns), nil
}
