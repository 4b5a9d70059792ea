package simulate

import (
	"math"
	"sync/atomic"

	"github.com/ridgeline-analytics/countsim/betting"
	"github.com/ridgeline-analytics/countsim/cards"
	"github.com/ridgeline-analytics/countsim/counting"
	"github.com/ridgeline-analytics/countsim/engine"
	"github.com/ridgeline-analytics/countsim/rules"
	"github.com/ridgeline-analytics/countsim/sdk/core"
	"github.com/ridgeline-analytics/countsim/strategy"
)

// Progress is a coarse, snapshot-replace view of a chunk's advancement, sent
// to the sink no more than once per publish interval. Mean and Variance are
// kept unscaled (not per-100 yet) so the coordinator can combine several
// workers' snapshots with the same parallel-variance identity the final
// aggregation uses, instead of averaging already-derived display units.
type Progress struct {
	RoundsDone int64
	Mean       float64
	Variance   float64
	AvgBet     float64
}

// EVPer100 scales the snapshot mean to the display convention.
func (p Progress) EVPer100() float64 { return 100 * p.Mean }

// SDPer100 scales the snapshot standard deviation to the display convention.
func (p Progress) SDPer100() float64 { return 10 * math.Sqrt(p.Variance) }

// Config bundles everything a chunk needs to run in isolation: the table
// rules, the strategy overlay, the bet ramp, the TC estimation policy and
// the counting system. The chunk's round count is passed to RunChunk.
type Config struct {
	Rules      rules.Rules
	Deviations []strategy.Deviation
	Ramp       betting.Ramp
	TCConfig   counting.TCConfig
	System     counting.System
}

// publishEvery bounds per-worker progress overhead: check the cancel flag
// and publish a snapshot every max(target/100, 1000) rounds, per the driver
// contract.
func publishEvery(target int64) int64 {
	n := target / 100
	if n < 1000 {
		n = 1000
	}
	return n
}

// RunChunk executes target rounds of one worker's share of a run. It
// returns a well-formed ChunkStats even when cancel fires mid-chunk: the
// in-progress round always finishes before the loop checks cancel again.
func RunChunk(cfg Config, target int64, seed int64, cancel *atomic.Bool, sink func(Progress)) *ChunkStats {
	rng := core.Default().New(seed)
	shoe := cards.New(cfg.Rules, rng)
	counter := counting.New(cfg.System)
	eng := &engine.Engine{Rules: cfg.Rules, Deviations: cfg.Deviations, TCConfig: cfg.TCConfig}

	stats := &ChunkStats{}
	checkEvery := publishEvery(target)
	last := betting.LastRoundOutcome{}

	var i int64
	for i = 0; i < target; i++ {
		if shoe.MustReshuffle() {
			shoe.Reshuffle()
			counter.Reset()
			last = betting.LastRoundOutcome{}
		}

		exactTC := counter.ExactTrueCount(shoe.DecksRemaining())
		betTC := exactTC
		if cfg.TCConfig.UseForBet {
			betTC = cfg.TCConfig.Quantize(exactTC)
		}
		bet := betting.SelectBet(cfg.Ramp, int(floorTC(betTC)), last)
		estTC := counter.EstimatedTrueCount(shoe.DecksRemaining(), cfg.TCConfig)

		obs := eng.Play(shoe, counter, bet)

		stats.Record(obs, counting.Bucket(estTC))

		last = betting.LastRoundOutcome{Completed: true, Profit: obs.TotalProfitUnits}

		if (i+1)%checkEvery == 0 {
			if sink != nil {
				sink(snapshot(stats))
			}
			if cancel != nil && cancel.Load() {
				stats.WasCancelled = true
				return stats
			}
		}
	}
	if sink != nil {
		sink(snapshot(stats))
	}
	return stats
}

func snapshot(s *ChunkStats) Progress {
	return Progress{
		RoundsDone: s.N,
		Mean:       s.Mean(),
		Variance:   s.Variance(),
		AvgBet:     s.AvgBet(),
	}
}

func floorTC(tc float64) int64 {
	f := int64(tc)
	if tc < 0 && float64(f) != tc {
		f--
	}
	return f
}
