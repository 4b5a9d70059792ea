package cards

import (
	"testing"

	"github.com/ridgeline-analytics/countsim/rules"
	"github.com/ridgeline-analytics/countsim/sdk/core"
)

func newTestShoe(decks int, seed int64) *Shoe {
	r := rules.Default()
	r.Decks = decks
	return New(r, core.Default().New(seed))
}

func TestNewShoeHasFullCardCount(t *testing.T) {
	s := newTestShoe(6, 1)
	if got, want := s.CardsRemaining(), 6*52; got != want {
		t.Fatalf("CardsRemaining() = %d, want %d", got, want)
	}
}

func TestRankMultiplicityRespectsTenCollapse(t *testing.T) {
	s := newTestShoe(1, 2)
	counts := make(map[Rank]int)
	for s.CardsRemaining() > 0 {
		counts[s.Draw()]++
	}
	for rk := Ace; rk < Ten; rk++ {
		if counts[rk] != 4 {
			t.Errorf("rank %d count = %d, want 4", rk, counts[rk])
		}
	}
	if counts[Ten] != 16 {
		t.Errorf("Ten count = %d, want 16", counts[Ten])
	}
}

func TestDrawDecrementsRemaining(t *testing.T) {
	s := newTestShoe(1, 3)
	before := s.CardsRemaining()
	s.Draw()
	if s.CardsRemaining() != before-1 {
		t.Fatalf("CardsRemaining() after draw = %d, want %d", s.CardsRemaining(), before-1)
	}
}

func TestMustReshuffleAtCutIndex(t *testing.T) {
	r := rules.Rules{Decks: 1, Penetration: 0.6}
	s := New(r, core.Default().New(4))
	cut := r.CutIndex()
	for i := 0; i < cut; i++ {
		if s.MustReshuffle() {
			t.Fatalf("MustReshuffle() true before cut index, at draw %d of %d", i, cut)
		}
		s.Draw()
	}
	if !s.MustReshuffle() {
		t.Fatal("MustReshuffle() false at cut index")
	}
}

func TestReshuffleResetsPointerAndCount(t *testing.T) {
	s := newTestShoe(2, 5)
	for i := 0; i < 30; i++ {
		s.Draw()
	}
	s.Reshuffle()
	if got, want := s.CardsRemaining(), 2*52; got != want {
		t.Fatalf("CardsRemaining() after reshuffle = %d, want %d", got, want)
	}
}

func TestDrawPastEndPanics(t *testing.T) {
	s := newTestShoe(1, 6)
	for s.CardsRemaining() > 0 {
		s.Draw()
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic drawing past shoe end")
		}
	}()
	s.Draw()
}

func TestValueCountsAceLowAndTenCardsAsTen(t *testing.T) {
	if Ace.Value() != 1 {
		t.Fatalf("Ace.Value() = %d, want 1", Ace.Value())
	}
	if Ten.Value() != 10 {
		t.Fatalf("Ten.Value() = %d, want 10", Ten.Value())
	}
	if Nine.Value() != 9 {
		t.Fatalf("Nine.Value() = %d, want 9", Nine.Value())
	}
}
