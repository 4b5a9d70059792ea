package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/ridgeline-analytics/countsim/config"
	"github.com/ridgeline-analytics/countsim/dto"
	"github.com/ridgeline-analytics/countsim/simulate"
	"github.com/ridgeline-analytics/countsim/stats"
)

var cfg = new(cliConfig)

type cliConfig struct {
	requestPath string
	worker      int
	seed        int64
	quiet       bool
	pprofMode   string
}

func bindVar() {
	flag.StringVar(&cfg.requestPath, "request", "", "path to a SimulationRequest .yaml/.yml/.json file")
	flag.IntVar(&cfg.worker, "worker", 1, "number of worker goroutines")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator (overrides the request file's seed when >= 0)")
	flag.BoolVar(&cfg.quiet, "quiet", false, "suppress the progress bar")
	flag.StringVar(&cfg.pprofMode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.Parse()

	if cfg.requestPath == "" {
		log.Fatal("value err: -request is required")
	}
}

// executeSimulation loads the request, runs it to completion with a
// progress bar, and prints the derived summary to stdout.
func executeSimulation() {
	req, err := config.LoadRequest(cfg.requestPath)
	if err != nil {
		log.Fatal(err)
	}

	run, err := config.FromRequest(req)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.seed >= 0 {
		run.Seed = cfg.seed
	} else if run.Seed == 0 {
		s, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		run.Seed = s.Int64()
	}

	workers := cfg.worker
	if workers < 1 {
		workers = 1
	}
	run.Workers = workers
	run.UseMultiprocessing = workers > 1

	simCfg := simulate.Config{
		Rules:      run.Rules,
		Deviations: run.Deviations,
		Ramp:       run.Ramp,
		TCConfig:   run.TCConfig,
		System:     run.System,
	}

	bar := pb.StartNew(int(run.TargetRounds))
	if cfg.quiet {
		bar.SetWriter(io.Discard)
	}

	var cancel atomic.Bool
	start := time.Now()
	chunk := simulate.Run(simCfg, run.TargetRounds, run.Workers, run.Seed, &cancel, func(p simulate.Progress) {
		bar.SetCurrent(p.RoundsDone)
	})
	used := time.Since(start)
	bar.SetCurrent(chunk.N)
	bar.Finish()

	summary := simulate.Summarize(chunk, run.HandsPerHour)
	fmt.Print(stats.PrintSummary(requestTitle(req), summary))
	fmt.Print(stats.FormatDuration(used, chunk.N))
}

func requestTitle(req dto.SimulationRequest) string {
	if req.Settings.Hands > 0 {
		return fmt.Sprintf("countsim: %d hands", req.Settings.Hands)
	}
	return "countsim"
}
