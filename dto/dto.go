// Package dto defines the wire types the run-control surface accepts and
// returns: SimulationRequest in, SimulationResult (or a status snapshot)
// out.
package dto

// RulesDTO mirrors rules.Rules with JSON tags for the wire.
type RulesDTO struct {
	Decks            int     `json:"decks"`
	Penetration      float64 `json:"penetration"`
	HitSoft17        bool    `json:"hit_soft_17"`
	DealerPeeks      bool    `json:"dealer_peeks"`
	BlackjackPayout  float64 `json:"blackjack_payout"`
	DoubleAnyTwo     bool    `json:"double_any_two"`
	DoubleAfterSplit bool    `json:"double_after_split"`
	Surrender        bool    `json:"surrender"`
	ResplitAces      bool    `json:"resplit_aces"`
	HitSplitAces     bool    `json:"hit_split_aces"`
	MaxSplits        int     `json:"max_splits"`
}

// RampStepDTO is one bet-ramp entry on the wire.
type RampStepDTO struct {
	TCFloor int `json:"tc_floor"`
	Units   int `json:"units"`
}

// BetRampDTO mirrors betting.Ramp.
type BetRampDTO struct {
	Steps          []RampStepDTO `json:"steps"`
	WongOutBelowTC *int          `json:"wong_out_below_tc"`
	WongOutPolicy  string        `json:"wong_out_policy"` // "anytime" | "after_hand_only" | "after_loss_only" ("after_hand" / "after_loss" also accepted)
}

// DeviationDTO is one index-play entry on the wire.
type DeviationDTO struct {
	HandKey string `json:"hand_key"`
	TCFloor int    `json:"tc_floor"`
	Action  string `json:"action"` // "H","S","D","P","R","I"
}

// SettingsDTO is the request's non-rules, non-strategy configuration block.
type SettingsDTO struct {
	Hands                        int64   `json:"hands"`
	Seed                         int64   `json:"seed"`
	UnitSize                     float64 `json:"unit_size"`
	Bankroll                     float64 `json:"bankroll"`
	TargetRoR                    float64 `json:"target_ror"`
	HandsPerHour                 float64 `json:"hands_per_hour"`
	DeckEstimationStep           float64 `json:"deck_estimation_step"`
	DeckEstimationRounding       string  `json:"deck_estimation_rounding"` // "nearest" | "floor" | "ceil"
	UseEstimatedTCForBet         bool    `json:"use_estimated_tc_for_bet"`
	UseEstimatedTCForDeviations  bool    `json:"use_estimated_tc_for_deviations"`
	UseMultiprocessing           bool    `json:"use_multiprocessing"`
	Workers                      int     `json:"workers"`
}

// CountingSystemDTO maps a rank letter ("A".."9","T") to its Hi-Lo-style tag.
type CountingSystemDTO map[string]int

// SimulationRequest is the run-control surface's start() input.
type SimulationRequest struct {
	Rules          RulesDTO          `json:"rules"`
	CountingSystem CountingSystemDTO `json:"counting_system,omitempty"`
	Deviations     []DeviationDTO    `json:"deviations,omitempty"`
	BetRamp        BetRampDTO        `json:"bet_ramp"`
	Settings       SettingsDTO       `json:"settings"`
}

// BucketRowDTO is one tc_table row on the wire.
type BucketRowDTO struct {
	TC       int     `json:"tc"`
	N        int64   `json:"n"`
	NIba     int64   `json:"n_iba"`
	NZero    int64   `json:"n_zero"`
	Freq     float64 `json:"freq"`
	EVPct    float64 `json:"ev_pct"`
	EVSEPct  float64 `json:"ev_se_pct"`
	Variance float64 `json:"variance"`
}

// CIDTO is a confidence interval on the wire.
type CIDTO struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// RoRDTO is the risk-of-ruin block; nil on the SimulationResult when no
// bankroll was supplied.
type RoRDTO struct {
	Lifetime          float64  `json:"lifetime"`
	FiniteTrip        *float64 `json:"finite_trip,omitempty"`
	RequiredBankroll  *float64 `json:"required_bankroll,omitempty"`
}

// MetaDTO carries run bookkeeping that is not itself a statistical result.
type MetaDTO struct {
	RoundsPlayed int64 `json:"rounds_played"`
	WasCancelled bool  `json:"was_cancelled"`
}

// SimulationResult is the run-control surface's get() output.
type SimulationResult struct {
	RoundsPlayed    int64          `json:"rounds_played"`
	EVPer100        float64        `json:"ev_per_100"`
	EVPer100CI      CIDTO          `json:"ev_per_100_ci"`
	StdevPer100     float64        `json:"stdev_per_100"`
	StdevPer100CI   CIDTO          `json:"stdev_per_100_ci"`
	VariancePerHand float64        `json:"variance_per_hand"`
	AvgInitialBet   float64        `json:"avg_initial_bet"`
	DI              float64        `json:"di"`
	Score           float64        `json:"score"`
	N0Hands         *float64       `json:"n0_hands"`
	HoursPlayed     *float64       `json:"hours_played,omitempty"`
	RoR             *RoRDTO        `json:"ror"`
	TCHistogram     []int64        `json:"tc_histogram"`
	TCHistogramEst  []int64        `json:"tc_histogram_est"`
	TCTable         []BucketRowDTO `json:"tc_table"`
	Meta            MetaDTO        `json:"meta"`
}

// RunStatus is the run-control surface's status() output.
type RunStatus struct {
	Status          string  `json:"status"` // "running" | "done" | "stopped" | "error"
	Progress        float64 `json:"progress"`
	HandsDone       int64   `json:"hands_done"`
	HandsTotal      int64   `json:"hands_total"`
	EVPer100Est     float64 `json:"ev_per_100_est"`
	StdevPer100Est  float64 `json:"stdev_per_100_est"`
	AvgInitialBetEst float64 `json:"avg_initial_bet_est"`
}
