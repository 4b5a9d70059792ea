// Package config translates the wire-level SimulationRequest into the
// domain types the engine and simulation driver consume, validating every
// field synchronously so an invalid request is rejected from start()
// before any run is created.
package config

import (
	"fmt"

	"github.com/ridgeline-analytics/countsim/betting"
	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/counting"
	"github.com/ridgeline-analytics/countsim/dto"
	"github.com/ridgeline-analytics/countsim/errs"
	"github.com/ridgeline-analytics/countsim/rules"
	"github.com/ridgeline-analytics/countsim/strategy"
)

// Run is the fully validated, domain-typed configuration one simulation run
// executes against.
type Run struct {
	Rules              rules.Rules
	System             counting.System
	Deviations         []strategy.Deviation
	Ramp               betting.Ramp
	TargetRounds       int64
	Seed               int64
	TCConfig           counting.TCConfig
	HandsPerHour       float64
	Workers            int
	UseMultiprocessing bool
	BankrollUnits      float64
	TargetRoR          float64
}

var rankByLetter = map[string]cards.Rank{
	"A": cards.Ace, "2": cards.Two, "3": cards.Three, "4": cards.Four,
	"5": cards.Five, "6": cards.Six, "7": cards.Seven, "8": cards.Eight,
	"9": cards.Nine, "T": cards.Ten,
}

var actionByLetter = map[string]strategy.Action{
	"H": strategy.Hit, "S": strategy.Stand, "D": strategy.Double,
	"P": strategy.Split, "R": strategy.Surrender, "I": strategy.Insurance,
}

// FromRequest validates and converts a wire SimulationRequest into a Run.
func FromRequest(req dto.SimulationRequest) (Run, error) {
	r := rulesFromDTO(req.Rules)
	if err := r.Valid(); err != nil {
		return Run{}, err
	}

	system, err := systemFromDTO(req.CountingSystem)
	if err != nil {
		return Run{}, err
	}

	deviations, err := deviationsFromDTO(req.Deviations)
	if err != nil {
		return Run{}, err
	}

	ramp, err := rampFromDTO(req.BetRamp)
	if err != nil {
		return Run{}, err
	}

	if req.Settings.Hands <= 0 {
		return Run{}, errs.NewWarn("settings.hands must be positive")
	}
	rounding, err := roundingFromDTO(req.Settings.DeckEstimationRounding)
	if err != nil {
		return Run{}, err
	}
	step := req.Settings.DeckEstimationStep
	if step != 0 && step != 0.5 && step != 1.0 {
		return Run{}, errs.NewWarn(fmt.Sprintf("deck_estimation_step must be 0, 0.5 or 1.0, got %v", step))
	}

	workers := req.Settings.Workers
	if workers <= 0 {
		workers = 1
	}

	var bankrollUnits float64
	if req.Settings.UnitSize > 0 {
		bankrollUnits = req.Settings.Bankroll / req.Settings.UnitSize
	}
	targetRoR := req.Settings.TargetRoR
	if targetRoR <= 0 || targetRoR >= 1 {
		targetRoR = 0.05
	}

	return Run{
		Rules:      r,
		System:     system,
		Deviations: deviations,
		Ramp:       ramp,
		TargetRounds: req.Settings.Hands,
		Seed:       req.Settings.Seed,
		TCConfig: counting.TCConfig{
			Step:             step,
			Rounding:         rounding,
			UseForBet:        req.Settings.UseEstimatedTCForBet,
			UseForDeviations: req.Settings.UseEstimatedTCForDeviations,
		},
		HandsPerHour:       req.Settings.HandsPerHour,
		Workers:            workers,
		UseMultiprocessing: req.Settings.UseMultiprocessing,
		BankrollUnits:      bankrollUnits,
		TargetRoR:          targetRoR,
	}, nil
}

func rulesFromDTO(d dto.RulesDTO) rules.Rules {
	return rules.Rules{
		Decks:            d.Decks,
		Penetration:      d.Penetration,
		HitSoft17:        d.HitSoft17,
		DealerPeeks:      d.DealerPeeks,
		BlackjackPayout:  d.BlackjackPayout,
		DoubleAnyTwo:     d.DoubleAnyTwo,
		DoubleAfterSplit: d.DoubleAfterSplit,
		Surrender:        d.Surrender,
		ResplitAces:      d.ResplitAces,
		HitSplitAces:     d.HitSplitAces,
		MaxSplits:        d.MaxSplits,
	}
}

func systemFromDTO(d dto.CountingSystemDTO) (counting.System, error) {
	if len(d) == 0 {
		return counting.HiLo, nil
	}
	sys := make(counting.System, len(d))
	for letter, tag := range d {
		rk, ok := rankByLetter[letter]
		if !ok {
			return nil, errs.NewWarn("counting_system has unknown rank letter: " + letter)
		}
		sys[rk] = tag
	}
	for _, rk := range []cards.Rank{cards.Ace, cards.Two, cards.Three, cards.Four, cards.Five, cards.Six, cards.Seven, cards.Eight, cards.Nine, cards.Ten} {
		if _, ok := sys[rk]; !ok {
			return nil, errs.NewWarn("counting_system is missing a tag for one or more ranks")
		}
	}
	return sys, nil
}

func deviationsFromDTO(ds []dto.DeviationDTO) ([]strategy.Deviation, error) {
	out := make([]strategy.Deviation, 0, len(ds))
	for _, d := range ds {
		key := strategy.NormalizeHandKey(d.HandKey)
		if err := strategy.ParseHandKey(key); err != nil {
			return nil, err
		}
		action, ok := actionByLetter[d.Action]
		if !ok {
			return nil, errs.NewWarn("deviation has unknown action letter: " + d.Action)
		}
		out = append(out, strategy.Deviation{HandKey: key, TCFloor: d.TCFloor, Action: action})
	}
	return out, nil
}

func rampFromDTO(d dto.BetRampDTO) (betting.Ramp, error) {
	if len(d.Steps) == 0 {
		return betting.Ramp{}, errs.NewWarn("bet_ramp.steps must not be empty")
	}
	steps := make([]betting.Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, betting.Step{TCFloor: s.TCFloor, Units: s.Units})
	}
	policy, err := wongOutPolicyFromDTO(d.WongOutPolicy)
	if err != nil {
		return betting.Ramp{}, err
	}
	ramp := betting.Ramp{Steps: steps, WongOutBelowTC: d.WongOutBelowTC, WongOutPolicy: policy}
	ramp.Normalize()
	if err := ramp.Valid(); err != nil {
		return betting.Ramp{}, err
	}
	return ramp, nil
}

func wongOutPolicyFromDTO(s string) (betting.WongOutPolicy, error) {
	switch s {
	case "", "anytime":
		return betting.Anytime, nil
	case "after_hand_only", "after_hand":
		return betting.AfterHandOnly, nil
	case "after_loss_only", "after_loss":
		return betting.AfterLossOnly, nil
	default:
		return 0, errs.NewWarn("unknown wong_out_policy: " + s)
	}
}

func roundingFromDTO(s string) (counting.Rounding, error) {
	switch s {
	case "", "nearest":
		return counting.Nearest, nil
	case "floor":
		return counting.Floor, nil
	case "ceil":
		return counting.Ceil, nil
	default:
		return 0, errs.NewWarn("unknown deck_estimation_rounding: " + s)
	}
}
