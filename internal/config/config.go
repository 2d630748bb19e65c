package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/atomicstack/touch-widgets/internal/app"
	"github.com/atomicstack/touch-widgets/internal/layout"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// EnvFile is read from the working directory when present.
const EnvFile = ".env"

const (
	envLayout        = "TOUCH_WIDGETS_LAYOUT"
	envWidth         = "TOUCH_WIDGETS_WIDTH"
	envHeight        = "TOUCH_WIDGETS_HEIGHT"
	envSwipeDistance = "TOUCH_WIDGETS_SWIPE_DISTANCE"
	envRemoteAddr    = "TOUCH_WIDGETS_REMOTE_ADDR"
	envSnapshot      = "TOUCH_WIDGETS_SNAPSHOT"
	envTrace         = "TOUCH_WIDGETS_TRACE"
	envLogFile       = "TOUCH_WIDGETS_LOG_FILE"
)

// Load parses configuration from CLI arguments, the environment and EnvFile.
func Load() (Config, error) {
	environ, err := WithEnvFile(EnvFile, os.Environ())
	if err != nil {
		return Config{}, err
	}
	return LoadArgs(os.Args[1:], environ)
}

// WithEnvFile appends the variables defined in path to environ. Variables
// already in environ win. A missing file leaves environ alone.
func WithEnvFile(path string, environ []string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return environ, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	existing := parseEnv(environ)
	out := append([]string(nil), environ...)
	for key, value := range values {
		if _, ok := existing[key]; ok {
			continue
		}
		out = append(out, key+"="+value)
	}
	return out, nil
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("touch-widgets", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	layoutPath := fs.String("layout", envOrDefault(env, envLayout, ""), "path to a .toml or .yaml layout (default is the built-in demo)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "widget screen width in cells, or pixels with -snapshot (0 uses the terminal)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "widget screen height in rows, or pixels with -snapshot (0 uses the terminal)")
	swipe := fs.Int("swipe-distance", envOrInt(env, envSwipeDistance, 0), "minimum horizontal travel for a page swipe (0 keeps the default)")
	remoteAddr := fs.String("remote-addr", envOrDefault(env, envRemoteAddr, ""), "listen address for the websocket touch feed (empty disables it)")
	snapshot := fs.String("snapshot", envOrDefault(env, envSnapshot, ""), "render the first page to this PNG file and exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *swipe < 0 {
		return Config{}, fmt.Errorf("swipe-distance must be >= 0 (got %d)", *swipe)
	}

	cfg := Config{
		App: app.Config{
			LayoutPath:    *layoutPath,
			Width:         *width,
			Height:        *height,
			SwipeDistance: *swipe,
			RemoteAddr:    *remoteAddr,
			SnapshotPath:  *snapshot,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"layout":        *layoutPath,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"swipeDistance": strconv.Itoa(*swipe),
			"remoteAddr":    *remoteAddr,
			"snapshot":      *snapshot,
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks the options that can be judged before anything runs.
func Validate(cfg Config) error {
	if cfg.App.LayoutPath != "" {
		if _, err := layout.FormatFor(cfg.App.LayoutPath); err != nil {
			return err
		}
	}
	if cfg.App.SnapshotPath != "" && cfg.App.RemoteAddr != "" {
		return errors.New("snapshot and remote-addr cannot be combined")
	}
	return nil
}
