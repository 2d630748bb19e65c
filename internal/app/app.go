package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx/raster"
	"github.com/atomicstack/touch-widgets/internal/layout"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
	"github.com/atomicstack/touch-widgets/internal/pager"
	"github.com/atomicstack/touch-widgets/internal/remote"
	"github.com/atomicstack/touch-widgets/internal/scene"
	"github.com/atomicstack/touch-widgets/internal/ui"
)

// Snapshot size used when no width or height is given.
const (
	SnapshotWidth  = 320
	SnapshotHeight = 240
)

// feedBuffer is how many remote samples may queue ahead of the program.
const feedBuffer = 64

// Config describes user-provided application options.
type Config struct {
	LayoutPath    string
	Width         int
	Height        int
	SwipeDistance int
	RemoteAddr    string
	SnapshotPath  string
}

// Run bootstraps and executes the Bubble Tea program, or writes a snapshot
// when one is requested.
func Run(cfg Config) error {
	l, err := loadLayout(cfg.LayoutPath)
	if err != nil {
		return err
	}
	if cfg.SnapshotPath != "" {
		return snapshot(cfg, l)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		feed   *ui.Feed
		served chan error
	)
	if cfg.RemoteAddr != "" {
		ln, err := net.Listen("tcp", cfg.RemoteAddr)
		if err != nil {
			return fmt.Errorf("remote feed: %w", err)
		}
		feed = ui.NewFeed(feedBuffer)
		server := remote.NewServer(feed.Push, geom.Rect{})
		served = make(chan error, 1)
		go func() { served <- server.Serve(ctx, ln) }()
	}

	model := ui.NewModel(ui.Options{
		Layout:        l,
		Width:         cfg.Width,
		Height:        cfg.Height,
		SwipeDistance: cfg.SwipeDistance,
		Feed:          feed,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}

	if feed != nil {
		cancel()
		feed.Close()
		if serveErr := <-served; err == nil {
			err = serveErr
		}
	}
	return err
}

// Snapshot renders the first page of the configured layout to a PNG file.
func Snapshot(cfg Config) error {
	l, err := loadLayout(cfg.LayoutPath)
	if err != nil {
		return err
	}
	return snapshot(cfg, l)
}

func snapshot(cfg Config, l *layout.Layout) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = SnapshotWidth
	}
	if h <= 0 {
		h = SnapshotHeight
	}
	if l == nil {
		l = layout.Demo(w, h)
	}

	metrics := pager.DefaultMetrics()
	if cfg.SwipeDistance > 0 {
		metrics.SwipeDistance = cfg.SwipeDistance
	}
	canvas := raster.New(w, h)
	s := scene.New(l, gesture.NewDetector(), canvas, metrics)
	s.Start()

	f, err := os.Create(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := canvas.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("snapshot %s: %w", cfg.SnapshotPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	events.App.Snapshot(cfg.SnapshotPath, w, h)
	return nil
}

// loadLayout returns nil when no path is set so the host sizes the demo to
// the screen.
func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return nil, nil
	}
	l, err := layout.Load(path)
	if err != nil {
		return nil, err
	}
	events.App.Layout(path, l.Pager.Pages)
	return l, nil
}
