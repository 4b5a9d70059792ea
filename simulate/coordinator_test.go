package simulate

import (
	"sync/atomic"
	"testing"
)

func TestSplitRoundsDiffersByAtMostOne(t *testing.T) {
	chunks := splitRounds(103, 10)
	var total int64
	min, max := chunks[0], chunks[0]
	for _, c := range chunks {
		total += c
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	if total != 103 {
		t.Fatalf("splitRounds total = %d, want 103", total)
	}
	if max-min > 1 {
		t.Fatalf("splitRounds chunks differ by more than one round: min=%d max=%d", min, max)
	}
}

func TestRunBelowInlineThresholdMatchesRunChunk(t *testing.T) {
	cfg := testConfig()
	direct := RunChunk(cfg, 2000, workerSeeds(55, 1)[0], nil, nil)
	viaRun := Run(cfg, 2000, 4, 55, nil, nil) // below inlineThreshold -> single chunk path

	if direct.N != viaRun.N || direct.ProfitSum != viaRun.ProfitSum {
		t.Fatalf("Run() below inlineThreshold diverged from RunChunk: %+v vs %+v", direct, viaRun)
	}
}

func TestRunParallelPlaysEveryTargetRound(t *testing.T) {
	cfg := testConfig()
	const target = inlineThreshold + 40_000
	result := Run(cfg, target, 4, 77, nil, nil)
	if result.N != target {
		t.Fatalf("Run() total N = %d, want %d", result.N, target)
	}
}

func TestRunRespectsCancelAcrossWorkers(t *testing.T) {
	cfg := testConfig()
	var cancel atomic.Bool
	var calls int64
	result := Run(cfg, inlineThreshold+500_000, 4, 3, &cancel, func(p Progress) {
		if atomic.AddInt64(&calls, 1) == 1 {
			cancel.Store(true)
		}
	})
	if !result.WasCancelled {
		t.Fatal("Run should propagate WasCancelled from its workers")
	}
	if result.N >= inlineThreshold+500_000 {
		t.Fatalf("Run should stop short of target after cancel, got N=%d", result.N)
	}
}

func TestCombineSnapshotsWeightsByRoundsDone(t *testing.T) {
	snaps := []Progress{
		{RoundsDone: 100, Mean: 1, Variance: 0, AvgBet: 10},
		{RoundsDone: 300, Mean: 2, Variance: 0, AvgBet: 10},
	}
	combined := combineSnapshots(snaps)
	if combined.RoundsDone != 400 {
		t.Fatalf("combineSnapshots RoundsDone = %d, want 400", combined.RoundsDone)
	}
	want := (100.0*1 + 300.0*2) / 400.0
	if combined.Mean != want {
		t.Fatalf("combineSnapshots Mean = %v, want %v", combined.Mean, want)
	}
}

func TestCombineSnapshotsOfNoProgressIsZero(t *testing.T) {
	combined := combineSnapshots([]Progress{{}, {}})
	if combined.RoundsDone != 0 || combined.Mean != 0 {
		t.Fatalf("combineSnapshots of empty progress should be zero, got %+v", combined)
	}
}
