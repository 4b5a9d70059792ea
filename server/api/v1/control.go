package v1

import (
	"encoding/json"
	"net/http"

	"github.com/ridgeline-analytics/countsim"
	"github.com/ridgeline-analytics/countsim/dto"
	"github.com/ridgeline-analytics/countsim/errs"
	"github.com/ridgeline-analytics/countsim/server/httperr"
)

// ControlHandler exposes the run-control surface: start a simulation,
// poll its status, fetch its result, or request cancellation.
type ControlHandler struct {
	Engine *countsim.Engine
}

func NewControlHandler(engine *countsim.Engine) (*ControlHandler, error) {
	if engine == nil {
		return nil, errs.NewFatal("engine is required")
	}
	return &ControlHandler{Engine: engine}, nil
}

type startResponse struct {
	RunID string `json:"run_id"`
}

// Start accepts a SimulationRequest and launches it, returning a run_id.
func (ch *ControlHandler) Start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Errs(w, errs.NewWarn("invalid json: "+err.Error()))
		return
	}
	runID, err := ch.Engine.Start(req)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, startResponse{RunID: runID})
}

// Status reports a run's progress snapshot.
func (ch *ControlHandler) Status(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httperr.Errs(w, errs.NewWarn("run_id is required"))
		return
	}
	status, err := ch.Engine.Status(runID)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, status)
}

// Get blocks until the run finishes and returns its result.
func (ch *ControlHandler) Get(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httperr.Errs(w, errs.NewWarn("run_id is required"))
		return
	}
	result, err := ch.Engine.Get(runID)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, result)
}

type stopResponse struct {
	Stopped bool `json:"stopped"`
}

// Stop requests cooperative cancellation of a run.
func (ch *ControlHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httperr.Errs(w, errs.NewWarn("run_id is required"))
		return
	}
	stopped, err := ch.Engine.Stop(runID)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, stopResponse{Stopped: stopped})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
