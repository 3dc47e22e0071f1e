package main

import (
	"encoding/json"
	"os"
)

type appConfig struct {
	ScanDir      string `json:"scan_dir"`
	OutputSuffix string `json:"output_suffix"`
}

const (
	defaultScanDir      = "."
	defaultOutputSuffix = "_anki"
)

// loadConfig reads the optional config file. A missing or unreadable file
// just means defaults; the tool never refuses to start over configuration.
func loadConfig(path string) appConfig {
	cfg := appConfig{ScanDir: defaultScanDir, OutputSuffix: defaultOutputSuffix}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var fileCfg appConfig
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return cfg
	}
	if fileCfg.ScanDir != "" {
		cfg.ScanDir = fileCfg.ScanDir
	}
	if fileCfg.OutputSuffix != "" {
		cfg.OutputSuffix = fileCfg.OutputSuffix
	}
	return cfg
}
