package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/term"

	"github.com/atomicstack/touch-widgets/internal/app"
	"github.com/atomicstack/touch-widgets/internal/config"
	"github.com/atomicstack/touch-widgets/internal/logging"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)
	if err := requireTerminal(runtimeCfg, probeTTY(os.Stdin, os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
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
		"mode":   runMode(cfg),
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
	payload["tty"] = probeTTY(os.Stdin, os.Stdout, os.Stderr)
	return payload
}

// runMode names what this invocation will do.
func runMode(cfg config.Config) string {
	switch {
	case cfg.App.SnapshotPath != "":
		return "snapshot"
	case cfg.App.RemoteAddr != "":
		return "interactive+remote"
	default:
		return "interactive"
	}
}

// ttyInfo records which standard streams are terminals and the first size
// one of them reported.
type ttyInfo struct {
	Terminals []string `json:"terminals"`
	Source    string   `json:"source,omitempty"`
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
}

func (i ttyInfo) is(name string) bool {
	return slices.Contains(i.Terminals, name)
}

func probeTTY(files ...*os.File) ttyInfo {
	info := ttyInfo{Terminals: []string{}}
	for _, f := range files {
		fd := int(f.Fd())
		if fd < 0 || !term.IsTerminal(fd) {
			continue
		}
		name := filepath.Base(f.Name())
		info.Terminals = append(info.Terminals, name)
		if info.Source != "" {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil {
			info.Source, info.Width, info.Height = name, w, h
		}
	}
	return info
}

// requireTerminal rejects interactive runs without a terminal to draw on and
// read the mouse from. Snapshots need neither.
func requireTerminal(cfg config.Config, info ttyInfo) error {
	if cfg.App.SnapshotPath != "" {
		return nil
	}
	if !info.is("stdin") || !info.is("stdout") {
		return errors.New("interactive mode needs a terminal on stdin and stdout; use -snapshot to render a PNG")
	}
	return nil
}
