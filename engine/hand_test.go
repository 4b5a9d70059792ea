package engine

import (
	"testing"

	"github.com/ridgeline-analytics/countsim/cards"
)

func TestTotalPromotesOneAceWhenItDoesNotBust(t *testing.T) {
	v, soft := total([]cards.Rank{cards.Ace, cards.Eight})
	if v != 19 || !soft {
		t.Fatalf("total(A,8) = (%d, %v), want (19, true)", v, soft)
	}
}

func TestTotalDemotesAceWhenElevenWouldBust(t *testing.T) {
	v, soft := total([]cards.Rank{cards.Ace, cards.Eight, cards.Five})
	if v != 14 || soft {
		t.Fatalf("total(A,8,5) = (%d, %v), want (14, false)", v, soft)
	}
}

func TestTotalCountsOnlyOneAceAsEleven(t *testing.T) {
	v, soft := total([]cards.Rank{cards.Ace, cards.Ace, cards.Nine})
	if v != 21 || !soft {
		t.Fatalf("total(A,A,9) = (%d, %v), want (21, true)", v, soft)
	}
}

func TestIsBlackjackRequiresTwoCardTwentyOne(t *testing.T) {
	h := &hand{cards: []cards.Rank{cards.Ace, cards.Ten}}
	if !h.isBlackjack() {
		t.Fatal("isBlackjack() should be true for A,T")
	}
	h3 := &hand{cards: []cards.Rank{cards.Seven, cards.Seven, cards.Seven}}
	if h3.isBlackjack() {
		t.Fatal("isBlackjack() should be false for a three-card 21")
	}
}

func TestIsBlackjackFalseAfterSplit(t *testing.T) {
	h := &hand{cards: []cards.Rank{cards.Ace, cards.Ten}, split: true}
	if h.isBlackjack() {
		t.Fatal("isBlackjack() should be false for a post-split hand, even at 21")
	}
}

func TestIsPairComparesValueNotRank(t *testing.T) {
	h := &hand{cards: []cards.Rank{cards.Ten, cards.Ten}}
	if !h.isPair() {
		t.Fatal("isPair() should be true for T,T")
	}
	h2 := &hand{cards: []cards.Rank{cards.Two, cards.Three}}
	if h2.isPair() {
		t.Fatal("isPair() should be false for 2,3")
	}
}
