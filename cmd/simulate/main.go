package main

import "github.com/ridgeline-analytics/countsim/sdk/perf"

func main() {
	bindVar()
	perf.RunPProf(executeSimulation, cfg.pprofMode)
}
