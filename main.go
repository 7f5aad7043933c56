package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/sway-titlebar/internal/app"
	"github.com/atomicstack/sway-titlebar/internal/config"
	"github.com/atomicstack/sway-titlebar/internal/logging"
	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
	for _, warning := range runtimeCfg.Warnings {
		logging.Errorf("config: %s", warning)
	}

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v (details in %s)\n", err, logging.Path())
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"ipc":    ipcEnvironment(),
	}
	payload["logPath"] = logging.Path()
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if len(cfg.Warnings) > 0 {
		payload["configWarnings"] = cfg.Warnings
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

// ipcEnvironment records the socket variables sway and i3 export.
func ipcEnvironment() map[string]string {
	out := map[string]string{}
	for _, key := range []string{"SWAYSOCK", "I3SOCK", "WAYLAND_DISPLAY"} {
		if v, ok := os.LookupEnv(key); ok {
			out[key] = v
		}
	}
	return out
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and
// the strip width each one offers.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.file.Fd())
		if !term.IsTerminal(fd) {
			results = append(results, entry)
			continue
		}
		entry.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Width, entry.Height = width, height
			if detected == nil {
				detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
