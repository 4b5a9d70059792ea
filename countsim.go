// Package countsim is the run-control assembler: it takes a validated
// SimulationRequest, launches it against the simulation driver, and
// tracks its lifecycle so a caller can poll status, fetch the result, or
// request cancellation.
//
// An Engine holds no simulation state itself; every run owns its private
// accumulator and cancel flag, mirroring the "no shared mutable state
// inside a run" guarantee the simulation driver gives each worker.
package countsim

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"sync/atomic"

	"github.com/ridgeline-analytics/countsim/config"
	"github.com/ridgeline-analytics/countsim/dto"
	"github.com/ridgeline-analytics/countsim/errs"
	"github.com/ridgeline-analytics/countsim/simulate"
	"github.com/ridgeline-analytics/countsim/stats"
)

// Status enumerates a run's lifecycle state.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusStopped Status = "stopped"
	StatusErrored Status = "error"
)

// run is the registry entry behind one run_id. Reads of status/progress and
// the one-shot cancel flag are the only state shared outside the run's own
// goroutine, matching the driver's cross-worker contract.
type run struct {
	mu       sync.Mutex
	status   Status
	progress simulate.Progress
	target   int64
	cancel   atomic.Bool
	done     chan struct{}
	result   dto.SimulationResult
	cfg      config.Run
	err      error
}

// Engine is the assembler a transport (HTTP handlers or a CLI command)
// drives. It is safe for concurrent use; NewEngine returns a ready instance
// with an empty run registry.
type Engine struct {
	mu   sync.Mutex
	runs map[string]*run
}

// NewEngine builds an empty run registry.
func NewEngine() *Engine {
	return &Engine{runs: make(map[string]*run)}
}

// Start validates the request synchronously (an invalid request never
// creates a run) and launches the simulation in a background goroutine,
// returning the run_id the rest of the surface is keyed on.
func (e *Engine) Start(req dto.SimulationRequest) (string, error) {
	cfg, err := config.FromRequest(req)
	if err != nil {
		return "", err
	}

	id, err := newRunID()
	if err != nil {
		return "", errs.NewFatal("generating run id: " + err.Error())
	}

	r := &run{
		status: StatusRunning,
		target: cfg.TargetRounds,
		cfg:    cfg,
		done:   make(chan struct{}),
	}

	e.mu.Lock()
	e.runs[id] = r
	e.mu.Unlock()

	go e.execute(r, cfg)

	return id, nil
}

func (e *Engine) execute(r *run, cfg config.Run) {
	defer close(r.done)
	defer func() {
		if rec := recover(); rec != nil {
			r.mu.Lock()
			r.status = StatusErrored
			r.err = errs.NewFatal("simulation worker panic")
			r.mu.Unlock()
		}
	}()

	simCfg := simulate.Config{
		Rules:      cfg.Rules,
		Deviations: cfg.Deviations,
		Ramp:       cfg.Ramp,
		TCConfig:   cfg.TCConfig,
		System:     cfg.System,
	}

	workers := cfg.Workers
	if !cfg.UseMultiprocessing {
		workers = 1
	}

	onProgress := func(p simulate.Progress) {
		r.mu.Lock()
		r.progress = p
		r.mu.Unlock()
	}

	chunk := simulate.Run(simCfg, cfg.TargetRounds, workers, cfg.Seed, &r.cancel, onProgress)

	result := buildResult(chunk, cfg)

	r.mu.Lock()
	r.result = result
	if chunk.WasCancelled {
		r.status = StatusStopped
	} else {
		r.status = StatusDone
	}
	r.mu.Unlock()
}

// Status reports a run's current progress snapshot.
func (e *Engine) Status(runID string) (dto.RunStatus, error) {
	r, err := e.lookup(runID)
	if err != nil {
		return dto.RunStatus{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var progress float64
	if r.target > 0 {
		progress = float64(r.progress.RoundsDone) / float64(r.target)
		if progress > 1 {
			progress = 1
		}
	}

	return dto.RunStatus{
		Status:           string(r.status),
		Progress:         progress,
		HandsDone:        r.progress.RoundsDone,
		HandsTotal:       r.target,
		EVPer100Est:      r.progress.EVPer100(),
		StdevPer100Est:   r.progress.SDPer100(),
		AvgInitialBetEst: r.progress.AvgBet,
	}, nil
}

// Get blocks until the run finishes (or has already finished) and returns
// its result. It never blocks past the run's own completion.
func (e *Engine) Get(runID string) (dto.SimulationResult, error) {
	r, err := e.lookup(runID)
	if err != nil {
		return dto.SimulationResult{}, err
	}

	<-r.done

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return dto.SimulationResult{}, r.err
	}
	return r.result, nil
}

// Stop requests cooperative cancellation. It returns immediately; the run
// transitions to StatusStopped once its workers observe the flag at their
// next checkpoint.
func (e *Engine) Stop(runID string) (bool, error) {
	r, err := e.lookup(runID)
	if err != nil {
		return false, err
	}
	r.cancel.Store(true)
	return true, nil
}

func (e *Engine) lookup(runID string) (*run, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.runs[runID]
	if !ok {
		return nil, errs.NewWarn("unknown run_id: " + runID)
	}
	return r, nil
}

func newRunID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func buildResult(chunk *simulate.ChunkStats, cfg config.Run) dto.SimulationResult {
	summary := simulate.Summarize(chunk, cfg.HandsPerHour)
	moments := stats.Moments{N: chunk.N, Mean: chunk.Mean(), Var: chunk.Variance()}

	result := dto.SimulationResult{
		RoundsPlayed:    summary.RoundsPlayed,
		EVPer100:        summary.EVPer100,
		EVPer100CI:      dto.CIDTO{Lo: summary.EVPer100CI.Lo, Hi: summary.EVPer100CI.Hi},
		StdevPer100:     summary.SDPer100,
		StdevPer100CI:   dto.CIDTO{Lo: summary.SDPer100CI.Lo, Hi: summary.SDPer100CI.Hi},
		VariancePerHand: summary.VariancePerHand,
		AvgInitialBet:   summary.AvgInitialBet,
		DI:              summary.DI,
		Score:           summary.Score,
		TCHistogram:     chunk.HistogramRaw[:],
		TCHistogramEst:  chunk.HistogramEst[:],
		Meta: dto.MetaDTO{
			RoundsPlayed: chunk.N,
			WasCancelled: chunk.WasCancelled,
		},
	}
	if summary.N0Valid {
		n0 := summary.N0
		result.N0Hands = &n0
	}
	if summary.HoursPlayedValid {
		h := summary.HoursPlayed
		result.HoursPlayed = &h
	}

	result.TCTable = make([]dto.BucketRowDTO, len(summary.TCTable))
	for i, row := range summary.TCTable {
		result.TCTable[i] = dto.BucketRowDTO{
			TC: row.TC, N: row.N, NIba: row.NIba, NZero: row.NZero,
			Freq: row.Freq, EVPct: row.EVPct, EVSEPct: row.EVSEPct, Variance: row.Variance,
		}
	}

	if cfg.BankrollUnits > 0 {
		lifetime, _ := stats.RiskOfRuin(cfg.BankrollUnits, moments.Mean, moments.Var)
		ror := &dto.RoRDTO{Lifetime: lifetime}
		finite := stats.FiniteTripRoR(cfg.BankrollUnits, moments.Mean, moments.Var, float64(chunk.N))
		ror.FiniteTrip = &finite
		if b, ok := stats.RequiredBankroll(cfg.TargetRoR, moments.Mean, moments.Var); ok {
			ror.RequiredBankroll = &b
		}
		result.RoR = ror
	}

	return result
}
