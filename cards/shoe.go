// Package cards implements the dealt, ordered multi-deck card source (Shoe)
// that the round engine draws from.
package cards

import (
	"github.com/ridgeline-analytics/countsim/errs"
	"github.com/ridgeline-analytics/countsim/rules"
	"github.com/ridgeline-analytics/countsim/sdk/core"
)

// Rank is a collapsed card rank: tens, jacks, queens and kings all count as
// Ten, since suits and face identity are irrelevant to blackjack value.
type Rank int8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	numRanks
)

// Value is the blackjack point value of a rank (Ace counted low; the round
// engine promotes an ace to 11 when it does not bust the hand).
func (r Rank) Value() int {
	if r == Ace {
		return 1
	}
	return int(r) + 1
}

// safetyMargin is the minimum number of cards a shoe must retain mid-round;
// the data model treats exhaustion below this as impossible in practice.
const safetyMargin = 20

// Shoe is an ordered sequence of decks*52 cards plus a cut index. Reshuffles
// only ever happen between rounds.
type Shoe struct {
	decks    int
	cutIndex int
	cards    []Rank
	pointer  int
	core     *core.Core
}

// New builds exactly 4*decks of each rank (tens carry multiplicity 16*decks)
// and shuffles it uniformly using a Fisher-Yates pass over the worker's RNG.
func New(r rules.Rules, rng core.PRNG) *Shoe {
	s := &Shoe{
		decks:    r.Decks,
		cutIndex: r.CutIndex(),
		core:     core.New(rng),
	}
	s.fill()
	s.shuffle()
	return s
}

func (s *Shoe) fill() {
	n := s.decks * 52
	s.cards = make([]Rank, 0, n)
	for d := 0; d < s.decks; d++ {
		for rk := Rank(0); rk < numRanks; rk++ {
			mult := 4
			if rk == Ten {
				mult = 16
			}
			for i := 0; i < mult; i++ {
				s.cards = append(s.cards, rk)
			}
		}
	}
}

func (s *Shoe) shuffle() {
	idx := make([]int, len(s.cards))
	for i := range idx {
		idx[i] = i
	}
	s.core.ShuffleInts(idx)
	shuffled := make([]Rank, len(s.cards))
	for i, j := range idx {
		shuffled[i] = s.cards[j]
	}
	s.cards = shuffled
	s.pointer = 0
}

// Draw deals the next card from the shoe. Drawing past the physical end of
// the shoe is an engine invariant violation: the safety margin makes it
// unreachable in practice, so reaching it means a caller forgot to reshuffle
// at a round boundary.
func (s *Shoe) Draw() Rank {
	if s.pointer >= len(s.cards) {
		panic(errs.NewFatal("shoe exhausted: invariant violation"))
	}
	c := s.cards[s.pointer]
	s.pointer++
	return c
}

// CardsRemaining reports how many cards are left to draw.
func (s *Shoe) CardsRemaining() int {
	return len(s.cards) - s.pointer
}

// DecksRemaining approximates remaining deck count for true-count division.
func (s *Shoe) DecksRemaining() float64 {
	return float64(s.CardsRemaining()) / 52.0
}

// MustReshuffle reports whether the pointer has crossed the cut card. Safe to
// call only at round boundaries, per the data model invariant that reshuffles
// never happen mid-round.
func (s *Shoe) MustReshuffle() bool {
	return s.pointer >= s.cutIndex
}

// LowOnCards reports whether fewer than the safety margin remain; the round
// engine may keep dealing from the same shoe past this point without
// triggering an out-of-cards condition, per §4.1's dealing guarantee.
func (s *Shoe) LowOnCards() bool {
	return s.CardsRemaining() < safetyMargin
}

// Reshuffle rebuilds and reshuffles the shoe, resetting the pointer to zero.
func (s *Shoe) Reshuffle() {
	s.fill()
	s.shuffle()
}
