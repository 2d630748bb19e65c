package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.LayoutPath != "" || cfg.App.Width != 0 || cfg.App.Height != 0 || cfg.App.SwipeDistance != 0 {
		t.Fatalf("expected zero defaults, got %+v", cfg.App)
	}
	if cfg.App.RemoteAddr != "" || cfg.App.SnapshotPath != "" || cfg.Logging.Trace {
		t.Fatalf("expected remote, snapshot and trace off, got %+v %+v", cfg.App, cfg.Logging)
	}
}

func TestLoadArgsEnvFallback(t *testing.T) {
	env := []string{
		envLayout + "=panel.toml",
		envWidth + "=100",
		envHeight + "=30",
		envSwipeDistance + "=5",
		envRemoteAddr + "=:8089",
		envTrace + "=true",
		envLogFile + "=/tmp/touch.log",
		"UNRELATED",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.LayoutPath != "panel.toml" || cfg.App.Width != 100 || cfg.App.Height != 30 {
		t.Fatalf("expected env values, got %+v", cfg.App)
	}
	if cfg.App.SwipeDistance != 5 || cfg.App.RemoteAddr != ":8089" {
		t.Fatalf("expected env swipe and remote, got %+v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/touch.log" {
		t.Fatalf("expected env logging, got %+v", cfg.Logging)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{envWidth + "=100", envTrace + "=true", envSnapshot + "=env.png"}
	args := []string{"-width", "64", "-trace=false", "-snapshot", "flag.png", "-layout", "demo.yaml"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 64 || cfg.Logging.Trace || cfg.App.SnapshotPath != "flag.png" {
		t.Fatalf("expected flags to win, got %+v %+v", cfg.App, cfg.Logging)
	}
	if cfg.Flags["width"] != "64" || cfg.Flags["layout"] != "demo.yaml" || cfg.Flags["trace"] != "false" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
	if !slices.Equal(cfg.Args, args) {
		t.Fatalf("expected args kept, got %v", cfg.Args)
	}
}

func TestLoadArgsIgnoresMalformedEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{envWidth + "=wide", envTrace + "=maybe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 || cfg.Logging.Trace {
		t.Fatalf("expected fallbacks, got %+v %+v", cfg.App, cfg.Logging)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"-width", "-1"},
		{"-height", "-2"},
		{"-swipe-distance", "-3"},
		{"-bogus"},
	} {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestWithEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "TOUCH_WIDGETS_WIDTH=120\n# comment\nTOUCH_WIDGETS_LAYOUT=\"from file.toml\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	environ, err := WithEnvFile(path, []string{envWidth + "=90"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 90 {
		t.Fatalf("expected the environment to win over the file, got %d", cfg.App.Width)
	}
	if cfg.App.LayoutPath != "from file.toml" {
		t.Fatalf("expected layout from file, got %q", cfg.App.LayoutPath)
	}

	missing, err := WithEnvFile(filepath.Join(dir, "absent.env"), []string{"A=1"})
	if err != nil || !slices.Equal(missing, []string{"A=1"}) {
		t.Fatalf("expected a missing file to be ignored, got %v %v", missing, err)
	}
}

func TestValidate(t *testing.T) {
	ok, _ := LoadArgs([]string{"-layout", "panel.yml"}, nil)
	if err := Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad, _ := LoadArgs([]string{"-layout", "panel.json"}, nil)
	if err := Validate(bad); err == nil {
		t.Fatalf("expected unknown layout extension to fail")
	}
	both, _ := LoadArgs([]string{"-snapshot", "a.png", "-remote-addr", ":1"}, nil)
	if err := Validate(both); err == nil {
		t.Fatalf("expected snapshot with remote feed to fail")
	}
}
