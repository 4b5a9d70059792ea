// Package strategy implements the pure basic-strategy decision function and
// the index-deviation overlay consulted at decision time.
package strategy

import (
	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/rules"
)

// Action is one of the six decisions a hand or the insurance prompt can
// resolve to.
type Action uint8

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
	Insurance
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case Split:
		return "P"
	case Surrender:
		return "R"
	case Insurance:
		return "I"
	default:
		return "?"
	}
}

// HandKind distinguishes the three descriptor shapes basic strategy keys on.
type HandKind uint8

const (
	Hard HandKind = iota
	Soft
	Pair
)

// HandDescriptor is the (player hand, dealer up-card) key basic_action and
// deviation_override both consult.
type HandDescriptor struct {
	Kind     HandKind
	Total    int        // hard or soft total (soft total counts the ace as 11)
	PairRank cards.Rank // valid only when Kind == Pair
	DealerUp cards.Rank
	// FirstDecision is true only while the hand holds its first two cards
	// (the original deal, or a hand just formed by a split), not after a hit;
	// double/split are legal only then, surrender only when SplitDepth is 0.
	FirstDecision bool
	// SplitDepth is the number of splits already performed in the round.
	SplitDepth int
}

// dealerIdx maps a dealer up-card to a 0..9 column (2..9, T, A).
func dealerIdx(up cards.Rank) int {
	if up == cards.Ace {
		return 9
	}
	if up == cards.Ten {
		return 8
	}
	return int(up) - 1 // Two=1 -> col0 ... Nine=8 -> col7
}

// conditional holds a "primary-else-fallback" pair, e.g. "double else hit".
type conditional struct {
	primary  Action
	fallback Action
}

func s() conditional { return conditional{Stand, Stand} }
func h() conditional { return conditional{Hit, Hit} }
func d() conditional { return conditional{Double, Hit} }  // D-else-H
func ds() conditional { return conditional{Double, Stand} } // Ds-else-S
func p() conditional { return conditional{Split, Hit} }
func r() conditional { return conditional{Surrender, Stand} } // R-else-S (hard 15/16 fallback is stand)

// hardTable[total][dealerCol] for hard 9..16; 8 or less always hits, 17+ always stands.
var hardTable = map[int][10]conditional{
	9:  {h(), d(), d(), d(), d(), d(), h(), h(), h(), h()},
	10: {d(), d(), d(), d(), d(), d(), d(), d(), h(), h()},
	11: {d(), d(), d(), d(), d(), d(), d(), d(), d(), h()},
	12: {h(), h(), s(), s(), s(), h(), h(), h(), h(), h()},
	13: {s(), s(), s(), s(), s(), h(), h(), h(), h(), h()},
	14: {s(), s(), s(), s(), s(), h(), h(), h(), h(), h()},
	15: {s(), s(), s(), s(), s(), h(), h(), h(), r(), r()},
	16: {s(), s(), s(), s(), s(), h(), h(), r(), r(), r()},
}

// softTable[total][dealerCol] for soft 13..19 (A,2 .. A,8); soft 20+ stands.
var softTable = map[int][10]conditional{
	13: {h(), h(), h(), d(), d(), h(), h(), h(), h(), h()}, // A,2
	14: {h(), h(), h(), d(), d(), h(), h(), h(), h(), h()}, // A,3
	15: {h(), h(), d(), d(), d(), h(), h(), h(), h(), h()}, // A,4
	16: {h(), h(), d(), d(), d(), h(), h(), h(), h(), h()}, // A,5
	17: {h(), d(), d(), d(), d(), h(), h(), h(), h(), h()}, // A,6
	18: {s(), ds(), ds(), ds(), ds(), s(), s(), h(), h(), h()}, // A,7
	19: {s(), s(), s(), s(), ds(), s(), s(), s(), s(), s()},    // A,8
}

// pairTable[pairValue][dealerCol]; pairValue is the rank's blackjack value
// (A=1 for keying purposes, 10 for T/J/Q/K).
var pairTable = map[int][10]conditional{
	1:  {p(), p(), p(), p(), p(), p(), p(), p(), p(), p()}, // A,A
	2:  {p(), p(), p(), p(), p(), p(), h(), h(), h(), h()},
	3:  {p(), p(), p(), p(), p(), p(), h(), h(), h(), h()},
	4:  {h(), h(), h(), p(), p(), h(), h(), h(), h(), h()},
	5:  {d(), d(), d(), d(), d(), d(), d(), d(), h(), h()}, // treated as hard 10
	6:  {p(), p(), p(), p(), p(), h(), h(), h(), h(), h()},
	7:  {p(), p(), p(), p(), p(), p(), h(), h(), h(), h()},
	8:  {p(), p(), p(), p(), p(), p(), p(), p(), p(), p()},
	9:  {p(), p(), p(), p(), p(), s(), p(), p(), s(), s()},
	10: {s(), s(), s(), s(), s(), s(), s(), s(), s(), s()},
}

func pairKey(r cards.Rank) int {
	if r == cards.Ace {
		return 1
	}
	if r == cards.Ten {
		return 10
	}
	return int(r) + 1
}

// Basic implements basic_action: a pure function of (hand, up, rules). It
// returns the legal primary action, collapsing D-else-H / Ds-else-S /
// R-else-S to their fallback when the primary is not permitted in context,
// and never emits Surrender unless rules.Surrender is set.
func Basic(hd HandDescriptor, rls rules.Rules) Action {
	col := dealerIdx(hd.DealerUp)

	if hd.Kind == Pair && hd.FirstDecision && hd.SplitDepth < rls.MaxSplits {
		row, ok := pairTable[pairKey(hd.PairRank)]
		if ok {
			c := row[col]
			if c.primary == Split {
				// Aces: resplitting aces gated by rules.ResplitAces once a
				// split already happened.
				if hd.PairRank == cards.Ace && hd.SplitDepth > 0 && !rls.ResplitAces {
					return resolveHardOrSoft(hd, rls, col)
				}
				return Split
			}
			return resolveConditional(c, hd, rls)
		}
	}

	return resolveHardOrSoft(hd, rls, col)
}

func resolveHardOrSoft(hd HandDescriptor, rls rules.Rules, col int) Action {
	if hd.Kind == Soft {
		if hd.Total >= 20 {
			return Stand
		}
		if c, ok := softTable[hd.Total]; ok {
			return resolveConditional(c[col], hd, rls)
		}
		return Hit
	}

	if hd.Total >= 17 {
		return Stand
	}
	if hd.Total <= 8 {
		return Hit
	}
	c, ok := hardTable[hd.Total]
	if !ok {
		return Hit
	}
	return resolveConditional(c[col], hd, rls)
}

func resolveConditional(c conditional, hd HandDescriptor, rls rules.Rules) Action {
	switch c.primary {
	case Double:
		if doubleLegal(hd, rls) {
			return Double
		}
		return c.fallback
	case Surrender:
		if rls.Surrender && hd.FirstDecision && hd.SplitDepth == 0 {
			return Surrender
		}
		return c.fallback
	default:
		return c.primary
	}
}

func doubleLegal(hd HandDescriptor, rls rules.Rules) bool {
	if !hd.FirstDecision {
		return false
	}
	if hd.SplitDepth > 0 && !rls.DoubleAfterSplit {
		return false
	}
	if rls.DoubleAnyTwo {
		return true
	}
	return hd.Total == 9 || hd.Total == 10 || hd.Total == 11
}
