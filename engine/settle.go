package engine

import "github.com/ridgeline-analytics/countsim/rules"

// settleHand resolves one finished hand's profit in units. dealerTotal and
// dealerBusted reflect the dealer's final hand; dealerNatural is evaluated
// separately because a dealer natural settles every non-natural hand even
// when the game does not peek and the player was allowed to act (and
// possibly double or split) before the hole card is revealed.
func settleHand(h *hand, dealerNatural, dealerBusted bool, dealerTotal int, rls rules.Rules) int {
	if h.surrendered {
		return -(h.bet / 2)
	}

	playerNatural := h.isBlackjack()

	if playerNatural && dealerNatural {
		return 0
	}
	if playerNatural {
		return int(float64(h.bet) * rls.BlackjackPayout)
	}
	if dealerNatural {
		return -h.bet
	}
	if h.busted {
		return -h.bet
	}
	if dealerBusted {
		return h.bet
	}

	playerTotal, _ := h.total()
	switch {
	case playerTotal > dealerTotal:
		return h.bet
	case playerTotal < dealerTotal:
		return -h.bet
	default:
		return 0
	}
}
