package strategy

import (
	"testing"

	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/rules"
)

func TestBasicHard16VsTenSurrendersWhenAllowed(t *testing.T) {
	rls := rules.Default()
	rls.Surrender = true
	hd := HandDescriptor{Kind: Hard, Total: 16, DealerUp: cards.Ten, FirstDecision: true}
	if got := Basic(hd, rls); got != Surrender {
		t.Fatalf("Basic(hard 16 vs T) = %v, want Surrender", got)
	}
}

func TestBasicHard16VsTenFallsBackToStandWithoutSurrender(t *testing.T) {
	rls := rules.Default()
	rls.Surrender = false
	hd := HandDescriptor{Kind: Hard, Total: 16, DealerUp: cards.Ten, FirstDecision: true}
	if got := Basic(hd, rls); got != Stand {
		t.Fatalf("Basic(hard 16 vs T, no surrender) = %v, want Stand", got)
	}
}

func TestBasicHard11VsDealerDoubleLegalOnFirstDecision(t *testing.T) {
	rls := rules.Default()
	hd := HandDescriptor{Kind: Hard, Total: 11, DealerUp: cards.Six, FirstDecision: true}
	if got := Basic(hd, rls); got != Double {
		t.Fatalf("Basic(hard 11 vs 6) = %v, want Double", got)
	}
}

func TestBasicHard11FallsBackToHitWhenNotFirstDecision(t *testing.T) {
	rls := rules.Default()
	hd := HandDescriptor{Kind: Hard, Total: 11, DealerUp: cards.Six, FirstDecision: false}
	if got := Basic(hd, rls); got != Hit {
		t.Fatalf("Basic(hard 11 vs 6, not first decision) = %v, want Hit", got)
	}
}

func TestBasicPairAcesAlwaysSplitsWithinMaxSplits(t *testing.T) {
	rls := rules.Default()
	rls.MaxSplits = 3
	hd := HandDescriptor{Kind: Pair, PairRank: cards.Ace, DealerUp: cards.Five, FirstDecision: true, SplitDepth: 0}
	if got := Basic(hd, rls); got != Split {
		t.Fatalf("Basic(AA vs 5) = %v, want Split", got)
	}
}

func TestBasicPairAcesNoResplitFallsBackToHardStrategy(t *testing.T) {
	rls := rules.Default()
	rls.ResplitAces = false
	hd := HandDescriptor{Kind: Pair, PairRank: cards.Ace, Total: 12, DealerUp: cards.Five, FirstDecision: true, SplitDepth: 1}
	// Falls back to the descriptor's hard/soft total (here hard 12 vs 5 is Stand).
	if got := Basic(hd, rls); got != Stand {
		t.Fatalf("Basic(AA resplit vs 5, ResplitAces=false) = %v, want Stand", got)
	}
}

func TestBasicSoft18VsThreeFallsBackToStandWhenNotFirstDecision(t *testing.T) {
	rls := rules.Default()
	hd := HandDescriptor{Kind: Soft, Total: 18, DealerUp: cards.Three, FirstDecision: false}
	if got := Basic(hd, rls); got != Stand {
		t.Fatalf("Basic(soft 18 vs 3, not first) = %v, want Stand", got)
	}
}

func TestBasicStandsOnHardSeventeenOrMore(t *testing.T) {
	rls := rules.Default()
	hd := HandDescriptor{Kind: Hard, Total: 17, DealerUp: cards.Ace, FirstDecision: true}
	if got := Basic(hd, rls); got != Stand {
		t.Fatalf("Basic(hard 17 vs A) = %v, want Stand", got)
	}
}
