package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/atomicstack/inkshell/internal/app"
	"github.com/atomicstack/inkshell/internal/config"
	"github.com/atomicstack/inkshell/internal/logging"
	"github.com/atomicstack/inkshell/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	runtimeCfg.App.RunID = uuid.NewString()
	logging.SetRunID(runtimeCfg.App.RunID)
	ttys := probeTTYs()
	if !runtimeCfg.App.Headless && !ttys[0].IsTerminal {
		runtimeCfg.App.Headless = true
	}

	if logging.TraceEnabled() {
		traceStartup(runtimeCfg, ttys)
	}

	if err := app.Run(context.Background(), runtimeCfg.App, os.Stdout); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	events.App.Stop("exit")
}

func traceStartup(cfg config.Config, ttys []ttyProbe) {
	events.App.Start(startupTracePayload(cfg, ttys))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, ttys []ttyProbe) map[string]interface{} {
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
		"runID":  cfg.App.RunID,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = ttys
	return payload
}

// ttyProbe describes one standard descriptor. The host needs a terminal
// on stdin; the sizes only feed the startup trace.
type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTTYs inspects stdin, stdout and stderr, in that order.
func probeTTYs() []ttyProbe {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	probes := make([]ttyProbe, len(files))
	for i, f := range files {
		p := ttyProbe{Name: f.Name()}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			p.IsTerminal = true
			if w, h, err := term.GetSize(fd); err != nil {
				p.Error = err.Error()
			} else {
				p.Width, p.Height = w, h
			}
		}
		probes[i] = p
	}
	return probes
}
