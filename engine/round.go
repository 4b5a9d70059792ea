// Package engine executes one round: initial deal, dealer-peek handling,
// insurance offer, player play (including splits), dealer play and
// settlement.
package engine

import (
	"math"

	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/counting"
	"github.com/ridgeline-analytics/countsim/rules"
	"github.com/ridgeline-analytics/countsim/strategy"
)

// RoundObservation is the per-round emission the data model names: initial
// bet, total profit across every hand plus insurance, the count at bet time,
// and the TC bucket for this round's edge attribution.
type RoundObservation struct {
	InitialBetUnits   int
	TotalProfitUnits  int
	RunningCountAtBet int
	TrueCountAtBet    float64
	Bucket            int
	WasIBA            bool
}

// Engine ties rules, the deviation list and the TC estimation config to a
// round's execution. It holds no per-round mutable state; a round draws its
// state from the shoe and counter passed to Play.
type Engine struct {
	Rules      rules.Rules
	Deviations []strategy.Deviation
	TCConfig   counting.TCConfig
}

// Play executes exactly one round. bet is the initial wager already chosen
// by the bet selector (zero for a Wong-out sit-out, in which case Play
// consumes no cards and returns a zero-profit, non-IBA observation).
func (e *Engine) Play(shoe *cards.Shoe, counter *counting.Counter, bet int) RoundObservation {
	runningAtBet := counter.RunningCount()
	tcAtBet := counter.ExactTrueCount(shoe.DecksRemaining())

	obs := RoundObservation{
		InitialBetUnits:   bet,
		RunningCountAtBet: runningAtBet,
		TrueCountAtBet:    tcAtBet,
		Bucket:            counting.Bucket(tcAtBet),
		WasIBA:            bet > 0,
	}
	if bet == 0 {
		return obs
	}

	draw := func() cards.Rank {
		c := shoe.Draw()
		counter.Update(c)
		return c
	}

	player := &hand{cards: []cards.Rank{draw(), draw()}, bet: bet}
	dealer := &hand{cards: []cards.Rank{draw(), draw()}}
	dealerUp := dealer.cards[0]

	profit := 0

	if dealerUp == cards.Ace {
		floorTC := e.floorTC(counter, shoe)
		if strategy.InsuranceOverride(floorTC, e.Deviations) {
			insBet := bet / 2
			if isNatural(dealer) {
				profit += insBet * 2
			} else {
				profit -= insBet
			}
		}
	}

	peekedNatural := e.Rules.DealerPeeks && (dealerUp == cards.Ten || dealerUp == cards.Ace) && isNatural(dealer)

	var hands []*hand
	if peekedNatural || player.isBlackjack() {
		hands = []*hand{player}
	} else {
		hands = e.playHands(shoe, counter, dealerUp, player)
	}

	anyLive := false
	for _, h := range hands {
		if !h.busted {
			anyLive = true
			break
		}
	}
	if !peekedNatural && anyLive && !player.isBlackjack() {
		e.playDealer(dealer, draw)
	}

	dealerNaturalFinal := len(dealer.cards) == 2 && isNatural(dealer)
	dTotal, dBusted := e.dealerFinal(dealer)

	for _, h := range hands {
		profit += settleHand(h, dealerNaturalFinal, dBusted, dTotal, e.Rules)
	}

	obs.TotalProfitUnits = profit
	return obs
}

// floorTC computes floor(TC) using the configured exact/estimated choice for
// deviation lookups, from the counter and shoe's current state.
func (e *Engine) floorTC(counter *counting.Counter, shoe *cards.Shoe) int {
	tc := counter.ExactTrueCount(shoe.DecksRemaining())
	if e.TCConfig.UseForDeviations {
		tc = e.TCConfig.Quantize(tc)
	}
	return int(math.Floor(tc))
}

func isNatural(h *hand) bool {
	if len(h.cards) != 2 {
		return false
	}
	v, _ := total(h.cards)
	return v == 21
}

func (e *Engine) dealerFinal(dealer *hand) (total int, busted bool) {
	v, _ := dealer.total()
	return v, v > 21
}

// playDealer draws while the dealer total is below 17, or exactly a soft 17
// when the rules hit soft 17. A dealer natural never enters this loop since
// its caller skips the call when peekedNatural is true and the total check
// below is false whenever total == 21.
func (e *Engine) playDealer(dealer *hand, draw func() cards.Rank) {
	for {
		v, soft := dealer.total()
		if v > 21 {
			return
		}
		if v < 17 || (v == 17 && soft && e.Rules.HitSoft17) {
			dealer.cards = append(dealer.cards, draw())
			continue
		}
		return
	}
}

// playHands runs the decision loop over an ever-growing queue of hands
// (splits append new hands to the queue) until every hand is terminal.
func (e *Engine) playHands(shoe *cards.Shoe, counter *counting.Counter, dealerUp cards.Rank, first *hand) []*hand {
	draw := func() cards.Rank {
		c := shoe.Draw()
		counter.Update(c)
		return c
	}

	queue := []*hand{first}
	all := make([]*hand, 0, 2)
	for i := 0; i < len(queue); i++ {
		h := queue[i]
		all = append(all, h)
		e.playOneHand(h, dealerUp, draw, counter, shoe, &queue)
	}
	return all
}

func (e *Engine) playOneHand(h *hand, dealerUp cards.Rank, draw func() cards.Rank, counter *counting.Counter, shoe *cards.Shoe, queue *[]*hand) {
	firstDecision := true
	for {
		if h.busted || h.standing {
			return
		}
		v, soft := h.total()
		if v >= 21 {
			if v > 21 {
				h.busted = true
			} else {
				h.standing = true
			}
			return
		}

		hd := e.descriptorFor(h, v, soft, firstDecision, dealerUp, len(*queue)-1)
		action := e.decide(hd, counter, shoe)

		if !actionLegal(action, hd, e.Rules) {
			action = strategy.Basic(hd, e.Rules)
		}

		switch action {
		case strategy.Stand, strategy.Surrender:
			if action == strategy.Surrender {
				h.surrendered = true
			}
			h.standing = true
			return
		case strategy.Hit:
			h.cards = append(h.cards, draw())
			firstDecision = false
			continue
		case strategy.Double:
			h.doubled = true
			h.bet *= 2
			h.cards = append(h.cards, draw())
			nv, _ := h.total()
			if nv > 21 {
				h.busted = true
			} else {
				h.standing = true
			}
			return
		case strategy.Split:
			second := &hand{
				cards:    []cards.Rank{h.cards[1], draw()},
				bet:      h.bet,
				split:    true,
				splitAce: h.cards[0] == cards.Ace,
				depth:    h.depth + 1,
			}
			h.cards = []cards.Rank{h.cards[0], draw()}
			h.split = true
			h.splitAce = second.splitAce
			h.depth = second.depth

			if h.splitAce && !e.Rules.HitSplitAces {
				h.standing = true
				second.standing = true
			}
			*queue = append(*queue, second)
			if h.standing {
				return
			}
			firstDecision = true
			continue
		default:
			h.standing = true
			return
		}
	}
}

func (e *Engine) descriptorFor(h *hand, v int, soft bool, firstDecision bool, dealerUp cards.Rank, splitsDone int) strategy.HandDescriptor {
	hd := strategy.HandDescriptor{
		Total:         v,
		DealerUp:      dealerUp,
		FirstDecision: firstDecision,
		SplitDepth:    splitsDone,
	}
	if firstDecision && h.isPair() && splitsDone < e.Rules.MaxSplits {
		hd.Kind = strategy.Pair
		hd.PairRank = h.cards[0]
	} else if soft {
		hd.Kind = strategy.Soft
	} else {
		hd.Kind = strategy.Hard
	}
	return hd
}

// decide consults the deviation table first, falling back to basic strategy
// when no deviation matches or the deviation's action is illegal here.
func (e *Engine) decide(hd strategy.HandDescriptor, counter *counting.Counter, shoe *cards.Shoe) strategy.Action {
	if len(e.Deviations) > 0 {
		floorTC := e.floorTC(counter, shoe)
		key := strategy.HandKey(hd)
		if action, ok := strategy.Override(key, floorTC, e.Deviations); ok {
			return action
		}
	}
	return strategy.Basic(hd, e.Rules)
}

func actionLegal(a strategy.Action, hd strategy.HandDescriptor, rls rules.Rules) bool {
	switch a {
	case strategy.Double:
		if !hd.FirstDecision {
			return false
		}
		return hd.SplitDepth == 0 || rls.DoubleAfterSplit
	case strategy.Split:
		if !hd.FirstDecision || hd.Kind != strategy.Pair || hd.SplitDepth >= rls.MaxSplits {
			return false
		}
		if hd.PairRank == cards.Ace && hd.SplitDepth > 0 && !rls.ResplitAces {
			return false
		}
		return true
	case strategy.Surrender:
		return rls.Surrender && hd.FirstDecision && hd.SplitDepth == 0
	default:
		return true
	}
}
