// Package simulate runs chunks of rounds against a shoe and accumulates the
// streaming statistics the aggregator and derivation layer consume.
package simulate

import (
	"github.com/ridgeline-analytics/countsim/counting"
	"github.com/ridgeline-analytics/countsim/engine"
)

// BucketAcc accumulates the per-true-count-bucket moments the tc_table rows
// are built from. Returns are profit/bet ratios, not raw profit, so the
// per-bucket mean and variance are in units-per-unit-bet directly and feed
// the Kelly formula without a second normalization pass.
type BucketAcc struct {
	N           int64 // rounds landing in this bucket, IBA or not
	NIba        int64
	ReturnSum   float64
	ReturnSqSum float64
	BetSum      float64 // IBA rounds only; used for avg bet per bucket
}

func (b *BucketAcc) add(bet, profit int, isIBA bool) {
	b.N++
	if !isIBA {
		return
	}
	b.NIba++
	r := float64(profit) / float64(bet)
	b.ReturnSum += r
	b.ReturnSqSum += r * r
	b.BetSum += float64(bet)
}

func (b *BucketAcc) merge(o BucketAcc) {
	b.N += o.N
	b.NIba += o.NIba
	b.ReturnSum += o.ReturnSum
	b.ReturnSqSum += o.ReturnSqSum
	b.BetSum += o.BetSum
}

// ChunkStats is the per-worker accumulator a chunk produces. It holds only
// additive sums so merging chunks (§4.9) never needs the original rounds.
type ChunkStats struct {
	N             int64
	ProfitSum     float64
	ProfitSqSum   float64
	BetSum        float64
	HistogramRaw  [counting.NumBuckets]int64
	HistogramEst  [counting.NumBuckets]int64
	Buckets       [counting.NumBuckets]BucketAcc
	WasCancelled  bool
}

// Record folds one round's observation into the accumulator. estBucket is
// computed by the caller from the estimated (quantized) true count at bet
// time, since RoundObservation only carries the exact-TC bucket.
func (c *ChunkStats) Record(obs engine.RoundObservation, estBucket int) {
	c.N++
	profit := float64(obs.TotalProfitUnits)
	c.ProfitSum += profit
	c.ProfitSqSum += profit * profit
	c.BetSum += float64(obs.InitialBetUnits)

	c.HistogramRaw[obs.Bucket]++
	c.HistogramEst[estBucket]++
	c.Buckets[obs.Bucket].add(obs.InitialBetUnits, obs.TotalProfitUnits, obs.WasIBA)
}

// Mean returns the per-round mean profit, m_i in the aggregator's notation.
func (c *ChunkStats) Mean() float64 {
	if c.N == 0 {
		return 0
	}
	return c.ProfitSum / float64(c.N)
}

// Variance returns the per-round profit variance, v_i in the aggregator's
// notation, clamped to 0 against round-off.
func (c *ChunkStats) Variance() float64 {
	if c.N == 0 {
		return 0
	}
	m := c.Mean()
	v := c.ProfitSqSum/float64(c.N) - m*m
	if v < 0 {
		return 0
	}
	return v
}

// AvgBet returns the per-round average initial bet, including zero-bet
// Wong-out rounds.
func (c *ChunkStats) AvgBet() float64 {
	if c.N == 0 {
		return 0
	}
	return c.BetSum / float64(c.N)
}

// Merge combines another chunk's accumulator into this one additively. The
// result is independent of merge order, matching the aggregator's
// commutativity requirement.
func (c *ChunkStats) Merge(o *ChunkStats) {
	c.N += o.N
	c.ProfitSum += o.ProfitSum
	c.ProfitSqSum += o.ProfitSqSum
	c.BetSum += o.BetSum
	c.WasCancelled = c.WasCancelled || o.WasCancelled
	for i := 0; i < counting.NumBuckets; i++ {
		c.HistogramRaw[i] += o.HistogramRaw[i]
		c.HistogramEst[i] += o.HistogramEst[i]
		c.Buckets[i].merge(o.Buckets[i])
	}
}
