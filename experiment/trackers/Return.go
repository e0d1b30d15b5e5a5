// Package trackers implements observers that record data generated
// while driving an environment
package trackers

import (
	"encoding/gob"
	"log"
	"os"
)

// Return tracks episodic returns. Registered as a rollout observer, it
// accumulates the reward of every step; EndEpisode closes off the
// current episode and starts a new one. Save persists all recorded
// episode returns to disk.
type Return struct {
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return tracker that saves to
// the argument file
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Observe accumulates the reward of a single step. Its signature
// matches the rollout driver's per-step observer hook; the transition
// info payload is ignored.
func (r *Return) Observe(state, action int, reward float64,
	info map[string]interface{}) {
	r.currentReturn += reward
}

// EndEpisode records the return accumulated since the last episode
// boundary and starts accumulating a new episode
func (r *Return) EndEpisode() {
	r.episodeReturns = append(r.episodeReturns, r.currentReturn)
	r.currentReturn = 0.0
}

// Returns reports all episode returns recorded so far
func (r *Return) Returns() []float64 {
	return r.episodeReturns
}

// Save saves the data tracked by the Return tracker to disk
func (r *Return) Save() {
	file, err := os.Create(r.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(r.episodeReturns); err != nil {
		log.Fatalf("could not encode return data: %v", err)
	}
}

// LoadReturns loads episode returns previously persisted by Save
func LoadReturns(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var returns []float64
	de := gob.NewDecoder(file)
	if err = de.Decode(&returns); err != nil {
		log.Fatalf("could not decode return data: %v", err)
	}
	return returns
}
