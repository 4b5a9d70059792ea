package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/errs"
)

// Deviation is one index-play entry: at or above tc_floor, Action replaces
// whatever basic strategy would otherwise choose for HandKey.
type Deviation struct {
	HandKey string
	TCFloor int
	Action  Action
}

// HandKey renders the canonical key for a descriptor: "H<total>" for hard,
// "S<total>" for soft (total counts the ace as 11, e.g. soft 18 is "S18"),
// "P<rank>" for a pair ("PA" for aces, "PT" for tens), and "insurance" for
// the insurance prompt (not derived from a HandDescriptor).
func HandKey(hd HandDescriptor) string {
	switch hd.Kind {
	case Soft:
		return fmt.Sprintf("S%d", hd.Total)
	case Pair:
		return "P" + rankLetter(hd.PairRank)
	default:
		return fmt.Sprintf("H%d", hd.Total)
	}
}

func rankLetter(r cards.Rank) string {
	switch r {
	case cards.Ace:
		return "A"
	case cards.Ten:
		return "T"
	default:
		return strconv.Itoa(int(r) + 1)
	}
}

// ParseHandKey validates a hand_key string at the request boundary, per the
// design notes' "parse deviation keys at request boundary and reject
// malformed keys synchronously" guidance. It does not need to resolve to a
// HandDescriptor; it only needs to reject garbage before a run starts.
func ParseHandKey(key string) error {
	if key == "insurance" {
		return nil
	}
	if len(key) < 2 {
		return errs.NewWarn("deviation hand_key too short: " + key)
	}
	switch key[0] {
	case 'H', 'S':
		if _, err := strconv.Atoi(key[1:]); err != nil {
			return errs.NewWarn("deviation hand_key has non-numeric total: " + key)
		}
		return nil
	case 'P':
		rest := key[1:]
		if rest == "A" || rest == "T" {
			return nil
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 2 && n <= 9 {
			return nil
		}
		return errs.NewWarn("deviation hand_key has invalid pair rank: " + key)
	default:
		return errs.NewWarn("deviation hand_key has unknown prefix: " + key)
	}
}

// actionRank implements the tie-break hierarchy R > S > D > P > H > I (lower
// rank wins a tie at the same tc_floor).
func actionRank(a Action) int {
	switch a {
	case Surrender:
		return 0
	case Stand:
		return 1
	case Double:
		return 2
	case Split:
		return 3
	case Hit:
		return 4
	case Insurance:
		return 5
	default:
		return 6
	}
}

// Override implements deviation_override: it returns the action of the
// matching deviation with the greatest tc_floor <= floorTC, breaking ties
// among equal tc_floor entries by the action hierarchy. ok is false when no
// deviation matches.
func Override(handKey string, floorTC int, deviations []Deviation) (action Action, ok bool) {
	bestFloor := 0
	found := false
	for _, dv := range deviations {
		if dv.HandKey != handKey {
			continue
		}
		if floorTC < dv.TCFloor {
			continue
		}
		if !found || dv.TCFloor > bestFloor ||
			(dv.TCFloor == bestFloor && actionRank(dv.Action) < actionRank(action)) {
			bestFloor = dv.TCFloor
			action = dv.Action
			found = true
		}
	}
	return action, found
}

// InsuranceOverride consults only the "insurance" hand_key, per the
// restriction that the insurance deviation is never read during play.
func InsuranceOverride(floorTC int, deviations []Deviation) bool {
	action, ok := Override("insurance", floorTC, deviations)
	return ok && action == Insurance
}

// NormalizeHandKey trims surrounding whitespace and lowercases the
// "insurance" sentinel so config files that write "Insurance" still match.
func NormalizeHandKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.EqualFold(key, "insurance") {
		return "insurance"
	}
	return key
}
