// Package rules defines the immutable table-rule record consumed by the
// round engine.
package rules

import (
	"fmt"

	"github.com/ridgeline-analytics/countsim/errs"
)

// Rules is a value type; once constructed (e.g. via Default) it is never mutated.
type Rules struct {
	Decks            int     `json:"decks" yaml:"decks"`
	Penetration      float64 `json:"penetration" yaml:"penetration"`
	HitSoft17        bool    `json:"hit_soft_17" yaml:"hit_soft_17"`
	DealerPeeks      bool    `json:"dealer_peeks" yaml:"dealer_peeks"`
	BlackjackPayout  float64 `json:"blackjack_payout" yaml:"blackjack_payout"`
	DoubleAnyTwo     bool    `json:"double_any_two" yaml:"double_any_two"`
	DoubleAfterSplit bool    `json:"double_after_split" yaml:"double_after_split"`
	Surrender        bool    `json:"surrender" yaml:"surrender"`
	ResplitAces      bool    `json:"resplit_aces" yaml:"resplit_aces"`
	HitSplitAces     bool    `json:"hit_split_aces" yaml:"hit_split_aces"`
	MaxSplits        int     `json:"max_splits" yaml:"max_splits"`
}

// Default returns a common 6-deck H17 DAS ruleset, useful for tests and CLI defaults.
func Default() Rules {
	return Rules{
		Decks:            6,
		Penetration:      0.75,
		HitSoft17:        true,
		DealerPeeks:      true,
		BlackjackPayout:  1.5,
		DoubleAnyTwo:     true,
		DoubleAfterSplit: true,
		Surrender:        false,
		ResplitAces:      false,
		HitSplitAces:     false,
		MaxSplits:        3,
	}
}

// Valid checks the invariants from the data model: decks in 1..8, penetration
// in (0.5, 0.95], a sane blackjack payout, and a max_splits depth of 0..4.
func (r Rules) Valid() error {
	if r.Decks < 1 || r.Decks > 8 {
		return errs.NewWarn(fmt.Sprintf("decks must be in 1..8, got %d", r.Decks))
	}
	if r.Penetration <= 0.5 || r.Penetration > 0.95 {
		return errs.NewWarn(fmt.Sprintf("penetration must be in (0.5, 0.95], got %v", r.Penetration))
	}
	if r.BlackjackPayout < 1 {
		return errs.NewWarn(fmt.Sprintf("blackjack_payout must be >= 1, got %v", r.BlackjackPayout))
	}
	if r.MaxSplits < 0 || r.MaxSplits > 4 {
		return errs.NewWarn(fmt.Sprintf("max_splits must be in 0..4, got %d", r.MaxSplits))
	}
	return nil
}

// CutIndex returns the card index at which a reshuffle is triggered at the
// next round boundary.
func (r Rules) CutIndex() int {
	total := r.Decks * 52
	return int(float64(total)*r.Penetration + 0.5)
}
