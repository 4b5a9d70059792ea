package config

import (
	"testing"

	"github.com/ridgeline-analytics/countsim/betting"
	"github.com/ridgeline-analytics/countsim/dto"
)

func validRequest() dto.SimulationRequest {
	return dto.SimulationRequest{
		Rules: dto.RulesDTO{
			Decks: 6, Penetration: 0.75, HitSoft17: true, DealerPeeks: true,
			BlackjackPayout: 1.5, DoubleAnyTwo: true, DoubleAfterSplit: true, MaxSplits: 3,
		},
		BetRamp: dto.BetRampDTO{Steps: []dto.RampStepDTO{{TCFloor: -99, Units: 1}, {TCFloor: 2, Units: 4}}},
		Settings: dto.SettingsDTO{
			Hands: 100_000, Seed: 1,
		},
	}
}

func TestFromRequestAcceptsAWellFormedRequest(t *testing.T) {
	run, err := FromRequest(validRequest())
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.TargetRounds != 100_000 {
		t.Fatalf("TargetRounds = %d, want 100000", run.TargetRounds)
	}
	if run.Workers != 1 {
		t.Fatalf("Workers default = %d, want 1", run.Workers)
	}
	if run.System == nil {
		t.Fatal("System should default to Hi-Lo when counting_system is omitted")
	}
}

func TestFromRequestRejectsInvalidRules(t *testing.T) {
	req := validRequest()
	req.Rules.Decks = 0
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject an out-of-range deck count")
	}
}

func TestFromRequestRejectsNonPositiveHands(t *testing.T) {
	req := validRequest()
	req.Settings.Hands = 0
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject settings.hands <= 0")
	}
}

func TestFromRequestRejectsBadDeckEstimationStep(t *testing.T) {
	req := validRequest()
	req.Settings.DeckEstimationStep = 0.3
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject a deck_estimation_step other than 0, 0.5, 1.0")
	}
}

func TestFromRequestRejectsEmptyBetRamp(t *testing.T) {
	req := validRequest()
	req.BetRamp = dto.BetRampDTO{}
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject an empty bet ramp")
	}
}

func TestFromRequestRejectsUnknownWongOutPolicy(t *testing.T) {
	req := validRequest()
	req.BetRamp.WongOutPolicy = "sometimes"
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject an unknown wong_out_policy")
	}
}

func TestFromRequestRejectsUnknownDeviationAction(t *testing.T) {
	req := validRequest()
	req.Deviations = []dto.DeviationDTO{{HandKey: "H16", TCFloor: 0, Action: "Z"}}
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject an unknown deviation action letter")
	}
}

func TestFromRequestRejectsMalformedDeviationHandKey(t *testing.T) {
	req := validRequest()
	req.Deviations = []dto.DeviationDTO{{HandKey: "X99", TCFloor: 0, Action: "H"}}
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject a malformed deviation hand_key")
	}
}

func TestFromRequestRejectsIncompleteCountingSystem(t *testing.T) {
	req := validRequest()
	req.CountingSystem = dto.CountingSystemDTO{"2": 1, "3": 1}
	if _, err := FromRequest(req); err == nil {
		t.Fatal("FromRequest should reject a counting_system missing ranks")
	}
}

func TestFromRequestDefaultsWorkersToOneWhenNonPositive(t *testing.T) {
	req := validRequest()
	req.Settings.Workers = -5
	run, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.Workers != 1 {
		t.Fatalf("Workers = %d, want 1", run.Workers)
	}
}

func TestFromRequestDerivesBankrollUnitsFromUnitSize(t *testing.T) {
	req := validRequest()
	req.Settings.Bankroll = 5000
	req.Settings.UnitSize = 25
	run, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.BankrollUnits != 200 {
		t.Fatalf("BankrollUnits = %v, want 200", run.BankrollUnits)
	}
}

func TestFromRequestZeroUnitSizeLeavesBankrollUnitsZero(t *testing.T) {
	req := validRequest()
	req.Settings.Bankroll = 5000
	run, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.BankrollUnits != 0 {
		t.Fatalf("BankrollUnits = %v, want 0 when unit_size is unset", run.BankrollUnits)
	}
}

func TestFromRequestDefaultsTargetRoRWhenOutOfRange(t *testing.T) {
	req := validRequest()
	run, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.TargetRoR != 0.05 {
		t.Fatalf("TargetRoR default = %v, want 0.05", run.TargetRoR)
	}

	req.Settings.TargetRoR = 0.1
	run, err = FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.TargetRoR != 0.1 {
		t.Fatalf("TargetRoR = %v, want 0.1", run.TargetRoR)
	}
}

func TestFromRequestRampNormalizesStepOrder(t *testing.T) {
	req := validRequest()
	req.BetRamp = dto.BetRampDTO{Steps: []dto.RampStepDTO{{TCFloor: 2, Units: 4}, {TCFloor: -99, Units: 1}}}
	run, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if len(run.Ramp.Steps) != 2 || run.Ramp.Steps[0].TCFloor != -99 {
		t.Fatalf("Ramp steps not normalized ascending: %+v", run.Ramp.Steps)
	}
}

func TestFromRequestWongOutPolicyDefaultsToAnytime(t *testing.T) {
	req := validRequest()
	run, err := FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() = %v, want nil error", err)
	}
	if run.Ramp.WongOutPolicy != betting.Anytime {
		t.Fatalf("WongOutPolicy default = %v, want Anytime", run.Ramp.WongOutPolicy)
	}
}
