// Package betting implements the bet ramp and Wong-out policy that choose
// the initial wager for a round from the true count at bet time.
package betting

import (
	"fmt"
	"sort"

	"github.com/ridgeline-analytics/countsim/errs"
)

// WongOutPolicy controls when a player below the Wong-out threshold is
// allowed to leave the current round (bet zero units).
type WongOutPolicy uint8

const (
	// Anytime: leave whenever TC is below threshold, including mid-shoe.
	Anytime WongOutPolicy = iota
	// AfterHandOnly: leave only when the previous round has completed (see
	// LastRoundOutcome.Completed); unlike Anytime, the first round of a chunk
	// and the first round after a reshuffle never qualify.
	AfterHandOnly
	// AfterLossOnly: leave only if the previous round's profit was negative.
	AfterLossOnly
)

// Step is one ramp entry: at tc_floor and above, bet Units.
type Step struct {
	TCFloor int
	Units   int
}

// Ramp is the ordered bet ramp plus Wong-out configuration.
type Ramp struct {
	Steps            []Step
	WongOutBelowTC   *int // nil means Wong-out is disabled
	WongOutPolicy    WongOutPolicy
}

// Normalize sorts steps by tc_floor ascending; Valid should be called after.
func (r *Ramp) Normalize() {
	sort.Slice(r.Steps, func(i, j int) bool { return r.Steps[i].TCFloor < r.Steps[j].TCFloor })
}

// Valid checks the data model invariants: non-empty, units >= 0, and
// strictly increasing tc_floor after normalization.
func (r Ramp) Valid() error {
	if len(r.Steps) == 0 {
		return errs.NewWarn("bet ramp must have at least one step")
	}
	for i, s := range r.Steps {
		if s.Units < 0 {
			return errs.NewWarn(fmt.Sprintf("ramp step %d has negative units", i))
		}
		if i > 0 && s.TCFloor <= r.Steps[i-1].TCFloor {
			return errs.NewWarn("ramp steps must have strictly increasing tc_floor after normalization")
		}
	}
	return nil
}

// LastRoundOutcome is the minimal state the Wong-out policy needs about the
// previous round.
type LastRoundOutcome struct {
	Completed bool // false before the first round of the chunk and after each reshuffle
	Profit    int  // in units; meaningful only when Completed
}

// SelectBet implements select_bet: consult the Wong-out policy first, then
// find the largest step whose tc_floor <= tcForBet (falling back to the
// lowest step below the lowest tc_floor).
func SelectBet(r Ramp, tcForBet int, last LastRoundOutcome) int {
	if r.WongOutBelowTC != nil && tcForBet < *r.WongOutBelowTC {
		leaveAllowed := false
		switch r.WongOutPolicy {
		case Anytime:
			leaveAllowed = true
		case AfterHandOnly:
			leaveAllowed = last.Completed
		case AfterLossOnly:
			leaveAllowed = last.Completed && last.Profit < 0
		}
		if leaveAllowed {
			return 0
		}
	}

	best := r.Steps[0].Units
	for _, s := range r.Steps {
		if s.TCFloor <= tcForBet {
			best = s.Units
		} else {
			break
		}
	}
	return best
}
