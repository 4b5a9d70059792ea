// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package svrcfg

import (
	"log/slog"

	"github.com/ridgeline-analytics/countsim"
	"github.com/ridgeline-analytics/countsim/errs"
	"github.com/ridgeline-analytics/countsim/server/logger"
)

// RunMode controls which HTTP endpoints are exposed by the server router.
type RunMode uint8

const (
	// ModeDev enables the full surface, including the run-control endpoints
	// (start/status/get/stop) intended for local experimentation.
	ModeDev RunMode = iota

	// ModeProd restricts the router to the minimal production-safe surface.
	ModeProd
)

type SvrCfg struct {
	Log    *slog.Logger
	Engine *countsim.Engine
	Mode   RunMode
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	if sc.Engine == nil {
		return errs.NewFatal("engine is required")
	}
	return nil
}
