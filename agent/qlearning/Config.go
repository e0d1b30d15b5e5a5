package qlearning

import "fmt"

const (
	// DefaultStepsPerEpisode bounds an episode when a Config leaves
	// StepsPerEpisode unset
	DefaultStepsPerEpisode = 100
)

// Config represents a configuration for the QLearning agent
type Config struct {
	// Epsilon is the exploration probability of the behaviour policy
	Epsilon float64

	// LearningRate is the step size α of the Q-learning update
	LearningRate float64

	// Gamma is the discount factor
	Gamma float64

	// StepsPerEpisode bounds the number of environment interactions
	// per episode. Zero selects DefaultStepsPerEpisode.
	StepsPerEpisode int
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v",
			c.LearningRate)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("discount factor must be in [0, 1), got %v",
			c.Gamma)
	}
	if c.StepsPerEpisode < 0 {
		return fmt.Errorf("steps per episode cannot be negative, got %d",
			c.StepsPerEpisode)
	}
	return nil
}
