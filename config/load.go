package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ridgeline-analytics/countsim/dto"
	"github.com/ridgeline-analytics/countsim/errs"
	"gopkg.in/yaml.v3"
)

// LoadRequest reads a SimulationRequest from a .yaml/.yml or .json file,
// picking the decoder by extension the way the CLI's other config files do.
func LoadRequest(path string) (dto.SimulationRequest, error) {
	var req dto.SimulationRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, errs.NewFatal("reading request file: " + err.Error())
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return req, errs.NewFatal("parsing yaml request: " + err.Error())
		}
	case ".json":
		if err := json.Unmarshal(data, &req); err != nil {
			return req, errs.NewFatal("parsing json request: " + err.Error())
		}
	default:
		return req, errs.NewWarn("unrecognized request file extension: " + path)
	}
	return req, nil
}
