package engine

import "github.com/ridgeline-analytics/countsim/cards"

// hand is a transient per-round player or dealer hand.
type hand struct {
	cards    []cards.Rank
	bet      int
	doubled  bool
	split    bool // true if this hand originated from a split
	splitAce bool // true if this hand originated from splitting aces
	depth    int  // number of splits already applied to this lineage
	busted      bool
	standing    bool
	surrendered bool
}

// total returns the best (highest, non-busting when possible) total and
// whether that total is soft (an ace still counted as 11).
func total(cs []cards.Rank) (value int, soft bool) {
	sum := 0
	aces := 0
	for _, c := range cs {
		v := c.Value()
		sum += v
		if c == cards.Ace {
			aces++
		}
	}
	// Count one ace as 11 if it does not bust the hand.
	if aces > 0 && sum+10 <= 21 {
		return sum + 10, true
	}
	return sum, false
}

func (h *hand) total() (int, bool) {
	return total(h.cards)
}

func (h *hand) isBlackjack() bool {
	if h.split || len(h.cards) != 2 {
		return false
	}
	v, _ := h.total()
	return v == 21
}

func (h *hand) isPair() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}
