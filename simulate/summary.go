package simulate

import (
	"github.com/ridgeline-analytics/countsim/counting"
	"github.com/ridgeline-analytics/countsim/stats"
)

// Summarize converts a finished ChunkStats accumulator into the derived
// Summary the run-control surface and the CLI both print, so neither has to
// re-derive the per-bucket moments from the raw accumulator itself.
func Summarize(c *ChunkStats, handsPerHour float64) stats.Summary {
	moments := stats.Moments{N: c.N, Mean: c.Mean(), Var: c.Variance(), AvgBet: c.AvgBet()}

	bucketMoments := make([]stats.BucketMoments, counting.NumBuckets)
	labels := make([]int, counting.NumBuckets)
	for i := 0; i < counting.NumBuckets; i++ {
		b := c.Buckets[i]
		bm := stats.BucketMoments{N: b.N, NIba: b.NIba}
		if b.NIba > 0 {
			bm.ReturnMean = b.ReturnSum / float64(b.NIba)
			bm.ReturnVar = b.ReturnSqSum/float64(b.NIba) - bm.ReturnMean*bm.ReturnMean
			if bm.ReturnVar < 0 {
				bm.ReturnVar = 0
			}
			bm.AvgBetIba = b.BetSum / float64(b.NIba)
		}
		bucketMoments[i] = bm
		labels[i] = i + counting.BucketMin
	}

	return stats.Derive(moments, bucketMoments, labels, handsPerHour)
}
