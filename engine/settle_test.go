package engine

import (
	"testing"

	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/rules"
)

func TestSettleHandSurrenderLosesHalfBet(t *testing.T) {
	h := &hand{bet: 10, surrendered: true}
	if got := settleHand(h, false, false, 0, rules.Default()); got != -5 {
		t.Fatalf("settleHand(surrender) = %d, want -5", got)
	}
}

func TestSettleHandBothNaturalPushes(t *testing.T) {
	h := &hand{bet: 10, cards: []cards.Rank{cards.Ace, cards.Ten}}
	if got := settleHand(h, true, false, 21, rules.Default()); got != 0 {
		t.Fatalf("settleHand(both natural) = %d, want 0", got)
	}
}

func TestSettleHandPlayerNaturalPaysBlackjackPayout(t *testing.T) {
	rls := rules.Default()
	rls.BlackjackPayout = 1.5
	h := &hand{bet: 10, cards: []cards.Rank{cards.Ace, cards.Ten}}
	if got := settleHand(h, false, false, 18, rls); got != 15 {
		t.Fatalf("settleHand(player natural) = %d, want 15", got)
	}
}

func TestSettleHandDealerNaturalLosesFullBet(t *testing.T) {
	h := &hand{bet: 10, cards: []cards.Rank{cards.Nine, cards.Nine}}
	if got := settleHand(h, true, false, 21, rules.Default()); got != -10 {
		t.Fatalf("settleHand(dealer natural) = %d, want -10", got)
	}
}

func TestSettleHandPlayerBustLosesRegardlessOfDealer(t *testing.T) {
	h := &hand{bet: 10, busted: true, cards: []cards.Rank{cards.Ten, cards.Ten, cards.Five}}
	if got := settleHand(h, false, true, 0, rules.Default()); got != -10 {
		t.Fatalf("settleHand(player busted) = %d, want -10", got)
	}
}

func TestSettleHandDealerBustPaysEvenMoney(t *testing.T) {
	h := &hand{bet: 10, cards: []cards.Rank{cards.Ten, cards.Eight}}
	if got := settleHand(h, false, true, 0, rules.Default()); got != 10 {
		t.Fatalf("settleHand(dealer busted) = %d, want 10", got)
	}
}

func TestSettleHandSplitTwentyOneIsNotBlackjack(t *testing.T) {
	rls := rules.Default()
	rls.BlackjackPayout = 1.5
	h := &hand{bet: 10, split: true, cards: []cards.Rank{cards.Ace, cards.Ten}}
	if got := settleHand(h, false, false, 18, rls); got != 10 {
		t.Fatalf("settleHand(split 21 vs 18) = %d, want 10 (even money, not blackjack payout)", got)
	}
}

func TestSettleHandSplitTwentyOneLosesToDealerNatural(t *testing.T) {
	h := &hand{bet: 10, split: true, cards: []cards.Rank{cards.Ace, cards.Ten}}
	if got := settleHand(h, true, false, 21, rules.Default()); got != -10 {
		t.Fatalf("settleHand(split 21 vs dealer natural) = %d, want -10, not a push", got)
	}
}

func TestSettleHandCompareTotals(t *testing.T) {
	win := &hand{bet: 10, cards: []cards.Rank{cards.Ten, cards.Nine}}  // 19
	if got := settleHand(win, false, false, 18, rules.Default()); got != 10 {
		t.Fatalf("settleHand(19 vs 18) = %d, want 10", got)
	}
	lose := &hand{bet: 10, cards: []cards.Rank{cards.Ten, cards.Seven}} // 17
	if got := settleHand(lose, false, false, 18, rules.Default()); got != -10 {
		t.Fatalf("settleHand(17 vs 18) = %d, want -10", got)
	}
	push := &hand{bet: 10, cards: []cards.Rank{cards.Ten, cards.Eight}} // 18
	if got := settleHand(push, false, false, 18, rules.Default()); got != 0 {
		t.Fatalf("settleHand(18 vs 18) = %d, want 0", got)
	}
}
