package simulate

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// inlineThreshold and the worker_count==1 case both run a single in-line
// chunk to avoid parallel setup overhead for short runs.
const inlineThreshold = 100_000

// Run executes targetRounds across min(workerCount, NumCPU-1) goroutines (or
// in-line below inlineThreshold / when that count is <= 1), deriving each
// worker's seed from masterSeed via workerSeeds so the chunk split is
// independently reproducible. onProgress is invoked at coarse intervals with
// the combined snapshot of every worker so far; it may be nil. A panic in a
// worker goroutine is re-raised on the caller's goroutine once every worker
// has returned.
func Run(cfg Config, targetRounds int64, workerCount int, masterSeed int64, cancel *atomic.Bool, onProgress func(Progress)) *ChunkStats {
	if limit := runtime.NumCPU() - 1; limit >= 1 && workerCount > limit {
		workerCount = limit
	}
	if targetRounds < inlineThreshold || workerCount <= 1 {
		seeds := workerSeeds(masterSeed, 1)
		return RunChunk(cfg, targetRounds, seeds[0], cancel, onProgress)
	}

	chunks := splitRounds(targetRounds, workerCount)
	seeds := workerSeeds(masterSeed, workerCount)

	results := make([]*ChunkStats, workerCount)
	snapshots := make([]Progress, workerCount)
	var mu sync.Mutex
	var panicked any

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func(idx int) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					mu.Lock()
					if panicked == nil {
						panicked = rec
					}
					mu.Unlock()
				}
			}()
			results[idx] = RunChunk(cfg, chunks[idx], seeds[idx], cancel, func(p Progress) {
				if onProgress == nil {
					return
				}
				mu.Lock()
				snapshots[idx] = p
				combined := combineSnapshots(snapshots)
				mu.Unlock()
				onProgress(combined)
			})
		}(w)
	}
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}

	return Aggregate(results)
}

// splitRounds divides n rounds into w chunks differing by at most one round.
func splitRounds(n int64, w int) []int64 {
	base := n / int64(w)
	rem := n % int64(w)
	out := make([]int64, w)
	for i := range out {
		out[i] = base
		if int64(i) < rem {
			out[i]++
		}
	}
	return out
}

// combineSnapshots applies the same parallel-variance identity the final
// aggregator uses (§4.9) to per-worker progress snapshots, so a mid-run
// status reading is not merely an average of already-scaled display values.
func combineSnapshots(snaps []Progress) Progress {
	var n int64
	var weightedMean, avgBet float64
	for _, s := range snaps {
		n += s.RoundsDone
		weightedMean += float64(s.RoundsDone) * s.Mean
		avgBet += float64(s.RoundsDone) * s.AvgBet
	}
	if n == 0 {
		return Progress{}
	}
	mean := weightedMean / float64(n)

	var weightedVar float64
	for _, s := range snaps {
		d := s.Mean - mean
		weightedVar += float64(s.RoundsDone) * (s.Variance + d*d)
	}
	variance := weightedVar / float64(n)
	if variance < 0 {
		variance = 0
	}

	return Progress{
		RoundsDone: n,
		Mean:       mean,
		Variance:   variance,
		AvgBet:     avgBet / float64(n),
	}
}
