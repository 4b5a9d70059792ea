package countsim

import (
	"testing"
	"time"

	"github.com/ridgeline-analytics/countsim/dto"
)

func validRequest(hands int64) dto.SimulationRequest {
	return dto.SimulationRequest{
		Rules: dto.RulesDTO{
			Decks: 6, Penetration: 0.75, HitSoft17: true, DealerPeeks: true,
			BlackjackPayout: 1.5, DoubleAnyTwo: true, DoubleAfterSplit: true, MaxSplits: 3,
		},
		BetRamp: dto.BetRampDTO{Steps: []dto.RampStepDTO{{TCFloor: -99, Units: 1}, {TCFloor: 2, Units: 4}}},
		Settings: dto.SettingsDTO{
			Hands: hands, Seed: 1,
		},
	}
}

func TestStartRejectsAnInvalidRequest(t *testing.T) {
	e := NewEngine()
	req := validRequest(0)
	if _, err := e.Start(req); err == nil {
		t.Fatal("Start should reject a request that fails validation")
	}
}

func TestStartThenGetReturnsADoneResult(t *testing.T) {
	e := NewEngine()
	id, err := e.Start(validRequest(5000))
	if err != nil {
		t.Fatalf("Start() = %v, want nil error", err)
	}

	result, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get() = %v, want nil error", err)
	}
	if result.RoundsPlayed != 5000 {
		t.Fatalf("RoundsPlayed = %d, want 5000", result.RoundsPlayed)
	}

	status, err := e.Status(id)
	if err != nil {
		t.Fatalf("Status() = %v, want nil error", err)
	}
	if status.Status != string(StatusDone) {
		t.Fatalf("Status = %q, want %q", status.Status, StatusDone)
	}
	if status.Progress != 1 {
		t.Fatalf("Progress = %v, want 1 for a finished run", status.Progress)
	}
}

func TestUnknownRunIDReturnsErrorFromEveryAccessor(t *testing.T) {
	e := NewEngine()
	if _, err := e.Status("nope"); err == nil {
		t.Fatal("Status(unknown) should error")
	}
	if _, err := e.Get("nope"); err == nil {
		t.Fatal("Get(unknown) should error")
	}
	if _, err := e.Stop("nope"); err == nil {
		t.Fatal("Stop(unknown) should error")
	}
}

func TestStopCancelsALongRunningRun(t *testing.T) {
	e := NewEngine()
	id, err := e.Start(validRequest(50_000_000))
	if err != nil {
		t.Fatalf("Start() = %v, want nil error", err)
	}

	time.Sleep(10 * time.Millisecond)
	stopped, err := e.Stop(id)
	if err != nil || !stopped {
		t.Fatalf("Stop() = (%v, %v), want (true, nil)", stopped, err)
	}

	result, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get() after stop = %v, want nil error", err)
	}
	if !result.Meta.WasCancelled {
		t.Fatal("result.Meta.WasCancelled should be true after Stop")
	}

	status, err := e.Status(id)
	if err != nil {
		t.Fatalf("Status() after stop = %v, want nil error", err)
	}
	if status.Status != string(StatusStopped) {
		t.Fatalf("Status = %q, want %q", status.Status, StatusStopped)
	}
}

func TestGetBlocksUntilTheRunFinishes(t *testing.T) {
	e := NewEngine()
	id, err := e.Start(validRequest(20_000))
	if err != nil {
		t.Fatalf("Start() = %v, want nil error", err)
	}

	done := make(chan struct{})
	go func() {
		e.Get(id)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Get() did not return after the run finished")
	}
}

func TestRoRIsOmittedWithoutABankroll(t *testing.T) {
	e := NewEngine()
	id, err := e.Start(validRequest(2000))
	if err != nil {
		t.Fatalf("Start() = %v, want nil error", err)
	}
	result, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get() = %v, want nil error", err)
	}
	if result.RoR != nil {
		t.Fatal("RoR should be nil when no bankroll was configured")
	}
}

func TestRoRIsPopulatedWithABankroll(t *testing.T) {
	e := NewEngine()
	req := validRequest(2000)
	req.Settings.Bankroll = 1000
	req.Settings.UnitSize = 10
	id, err := e.Start(req)
	if err != nil {
		t.Fatalf("Start() = %v, want nil error", err)
	}
	result, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get() = %v, want nil error", err)
	}
	if result.RoR == nil {
		t.Fatal("RoR should be populated when a bankroll was configured")
	}
}

func TestFiniteTripRoRIsPopulatedWithoutHandsPerHour(t *testing.T) {
	e := NewEngine()
	req := validRequest(2000)
	req.Settings.Bankroll = 1000
	req.Settings.UnitSize = 10
	// Deliberately omit HandsPerHour: it is display-only and must not gate
	// the finite-trip RoR calculation, which is keyed on rounds played.
	id, err := e.Start(req)
	if err != nil {
		t.Fatalf("Start() = %v, want nil error", err)
	}
	result, err := e.Get(id)
	if err != nil {
		t.Fatalf("Get() = %v, want nil error", err)
	}
	if result.RoR == nil {
		t.Fatal("RoR should be populated when a bankroll was configured")
	}
	if result.RoR.FiniteTrip == nil {
		t.Fatal("RoR.FiniteTrip should be populated even when hands_per_hour is unset")
	}
}
