package simulate

import "github.com/ridgeline-analytics/countsim/counting"

// Aggregate combines independent chunks into one result using the
// parallel-variance identity: N = Σn_i, M = Σ(n_i·m_i)/N,
// V = Σ(n_i·(v_i + (m_i−M)²))/N. It is algebraically equivalent to summing
// raw first/second moments directly, but stated this way because it is the
// numerically stable form when chunk means diverge under widely different
// bet ramps.
func Aggregate(chunks []*ChunkStats) *ChunkStats {
	out := &ChunkStats{}
	var n int64
	var weightedMean float64
	for _, c := range chunks {
		n += c.N
		weightedMean += float64(c.N) * c.Mean()
	}
	if n == 0 {
		return out
	}
	capitalM := weightedMean / float64(n)

	var weightedVar float64
	for _, c := range chunks {
		d := c.Mean() - capitalM
		weightedVar += float64(c.N) * (c.Variance() + d*d)
	}
	capitalV := weightedVar / float64(n)
	if capitalV < 0 {
		capitalV = 0
	}

	out.N = n
	out.ProfitSum = capitalM * float64(n)
	out.ProfitSqSum = (capitalV + capitalM*capitalM) * float64(n)

	for _, c := range chunks {
		out.BetSum += c.BetSum
		out.WasCancelled = out.WasCancelled || c.WasCancelled
		for i := 0; i < counting.NumBuckets; i++ {
			out.HistogramRaw[i] += c.HistogramRaw[i]
			out.HistogramEst[i] += c.HistogramEst[i]
			out.Buckets[i].merge(c.Buckets[i])
		}
	}
	return out
}
