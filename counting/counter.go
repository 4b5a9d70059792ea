// Package counting maintains the running count under a fixed card-tag system
// and derives the true count, with configurable human-estimation quantization.
package counting

import (
	"math"

	"github.com/ridgeline-analytics/countsim/cards"
)

// System is a fixed rank -> integer tag map. HiLo is the default; a request's
// counting_system replaces it with a custom map (see config.FromRequest).
type System map[cards.Rank]int

// HiLo is the standard counting system: {2..6: +1, 7..9: 0, T,A: -1}.
var HiLo = System{
	cards.Ace:   -1,
	cards.Two:   1,
	cards.Three: 1,
	cards.Four:  1,
	cards.Five:  1,
	cards.Six:   1,
	cards.Seven: 0,
	cards.Eight: 0,
	cards.Nine:  0,
	cards.Ten:   -1,
}

// Rounding controls how a quantized true count is derived from the exact
// value.
type Rounding uint8

const (
	Nearest Rounding = iota
	Floor
	Ceil
)

// TCConfig is the TCEstimation record from the data model.
type TCConfig struct {
	Step              float64 // 0, 0.5 or 1.0
	Rounding          Rounding
	UseForBet         bool
	UseForDeviations  bool
}

// Quantize applies the configured step/rounding to an exact true count.
// step=0 means exact (no quantization), matching the data model's rule that
// step=0 forces both use_for_* flags to behave as if false (deviations/bets
// fall back to the exact TC since there is nothing to quantize).
func (c TCConfig) Quantize(exact float64) float64 {
	if c.Step <= 0 {
		return exact
	}
	scaled := exact / c.Step
	var rounded float64
	switch c.Rounding {
	case Floor:
		rounded = math.Floor(scaled)
	case Ceil:
		rounded = math.Ceil(scaled)
	default:
		rounded = math.Round(scaled)
	}
	return rounded * c.Step
}

// Counter tracks the running count since the last reshuffle.
type Counter struct {
	system       System
	runningCount int
}

// New builds a Counter under the given tag system.
func New(system System) *Counter {
	return &Counter{system: system}
}

// Update adds the tag for a drawn card to the running count.
func (c *Counter) Update(r cards.Rank) {
	c.runningCount += c.system[r]
}

// Reset zeroes the running count; called on reshuffle.
func (c *Counter) Reset() {
	c.runningCount = 0
}

// RunningCount returns the sum of tags drawn since the last reshuffle.
func (c *Counter) RunningCount() int {
	return c.runningCount
}

// ExactTrueCount divides the running count by decks remaining. When the shoe
// is fully drained (decksRemaining == 0) it returns the running count itself,
// matching the limiting behavior as decks remaining -> 0 from above.
func (c *Counter) ExactTrueCount(decksRemaining float64) float64 {
	if decksRemaining <= 0 {
		return float64(c.runningCount)
	}
	return float64(c.runningCount) / decksRemaining
}

// EstimatedTrueCount applies the configured quantization to the exact TC.
func (c *Counter) EstimatedTrueCount(decksRemaining float64, cfg TCConfig) float64 {
	return cfg.Quantize(c.ExactTrueCount(decksRemaining))
}
