package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/display"
	"github.com/valerio/practicum/practicum/histogram"
	"github.com/valerio/practicum/practicum/loop"
)

// Backend names
const (
	BackendSDL2     = "sdl2"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
	BackendBrowser  = "browser"
)

// DefaultHistogramPath is where frame statistics are written on exit.
const DefaultHistogramPath = "frame_histogram.dat"

// DefaultMaxDelay bounds the simulated per-frame render cost.
const DefaultMaxDelay = 16 * time.Millisecond

// Config holds everything the harness needs to run. The defaults open an
// 800x600 SDL2 window with statistics enabled.
type Config struct {
	Backend string `yaml:"backend"`
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`

	// Simulated render cost is uniform in [0, MaxDelay).
	MaxDelay time.Duration `yaml:"max_delay"`

	Stats            bool    `yaml:"stats"`
	HistogramPath    string  `yaml:"histogram_path"`
	HistogramBuckets int     `yaml:"histogram_buckets"`
	HistogramMin     float64 `yaml:"histogram_min"`
	HistogramMax     float64 `yaml:"histogram_max"`

	// Frames stops the headless backend after this many frames (0 = never).
	Frames int `yaml:"frames"`

	// Displays and Cursor fake a desktop layout for the headless backend.
	Displays []display.Rect `yaml:"displays"`
	CursorX  int32          `yaml:"cursor_x"`
	CursorY  int32          `yaml:"cursor_y"`

	// Refresh is the animation-frame interval of the desktop callback model.
	Refresh time.Duration `yaml:"refresh"`

	Verbose bool `yaml:"verbose"`

	// Model is fixed at build time, see loop.DefaultModel.
	Model loop.Model `yaml:"-"`
}

// Default returns the default configuration for this build.
func Default() Config {
	cfg := Config{
		Backend:          BackendSDL2,
		Title:            "",
		Width:            display.DefaultWindowWidth,
		Height:           display.DefaultWindowHeight,
		MaxDelay:         DefaultMaxDelay,
		Stats:            true,
		HistogramPath:    DefaultHistogramPath,
		HistogramBuckets: histogram.DefaultBuckets,
		HistogramMin:     histogram.DefaultMin,
		HistogramMax:     histogram.DefaultMax,
		Refresh:          loop.DefaultRefresh,
		Model:            loop.DefaultModel,
	}
	if runtime.GOOS == "js" {
		cfg.Backend = BackendBrowser
	}
	return cfg
}

// Load overlays the YAML file at path onto base. Keys missing from the file
// keep their value from base.
func Load(path string, base Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSDL2, BackendTerminal, BackendHeadless, BackendBrowser:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.MaxDelay < 0 {
		return errors.New("max delay cannot be negative")
	}
	if c.Frames < 0 {
		return errors.New("frames cannot be negative")
	}

	if c.Stats {
		if c.HistogramPath == "" {
			return errors.New("statistics enabled without a histogram path")
		}
		if c.HistogramBuckets <= 0 {
			return fmt.Errorf("invalid histogram bucket count %d", c.HistogramBuckets)
		}
		if c.HistogramMin >= c.HistogramMax {
			return fmt.Errorf("invalid histogram range [%g, %g)", c.HistogramMin, c.HistogramMax)
		}
	}

	return nil
}

// BackendConfig returns the host configuration.
func (c Config) BackendConfig() backend.Config {
	return backend.Config{
		Title:        c.Title,
		Width:        c.Width,
		Height:       c.Height,
		DebugContext: runtime.GOOS != "js",
	}
}
