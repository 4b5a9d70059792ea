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

package api

import (
	"log/slog"
	"net/http"

	v1 "github.com/ridgeline-analytics/countsim/server/api/v1"
	"github.com/ridgeline-analytics/countsim/server/netsvr"
	"github.com/ridgeline-analytics/countsim/server/netsvr/middleware"
	"github.com/ridgeline-analytics/countsim/server/svrcfg"
)

// RegisterRoutes registers HTTP routes based on SvrCfg.Mode.
//
// ModeProd exposes nothing beyond middleware and the landing page; the
// run-control surface (start/status/get/stop) is ModeDev-only, matching the
// built-in cmd/svr's role as a local experimentation server rather than a
// production deployment target.
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)
	registerIndex(svr)

	return registerV1API(svr, sCfg)
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("countsim\n"))
	})
}

func registerV1API(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	if sCfg.Mode == svrcfg.ModeProd {
		return nil
	}

	ch, err := v1.NewControlHandler(sCfg.Engine)
	if err != nil {
		return err
	}

	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Post("/start", ch.Start)
		vOne.Get("/status", ch.Status)
		vOne.Get("/result", ch.Get)
		vOne.Post("/stop", ch.Stop)
	})
	return nil
}
