package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli"

	"github.com/valerio/practicum/practicum"
	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/backend/browser"
	"github.com/valerio/practicum/practicum/backend/headless"
	"github.com/valerio/practicum/practicum/backend/sdl2"
	"github.com/valerio/practicum/practicum/backend/terminal"
	"github.com/valerio/practicum/practicum/config"
)

// SDL and GL calls must stay on the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "Practicum"
	app.Description = "A render loop harness that measures frame timing"
	app.Usage = "practicum [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML config file, flags override its values",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Host to run on: sdl2, terminal, headless or browser",
			Value: config.Default().Backend,
		},
		cli.StringFlag{
			Name:  "title",
			Usage: "Window title",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Window width",
			Value: config.Default().Width,
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Window height",
			Value: config.Default().Height,
		},
		cli.BoolTFlag{
			Name:  "stats",
			Usage: "Collect frame rate statistics (use --stats=false to disable)",
		},
		cli.StringFlag{
			Name:  "histogram",
			Usage: "Path the frame rate histogram is written to on exit",
			Value: config.DefaultHistogramPath,
		},
		cli.DurationFlag{
			Name:  "max-delay",
			Usage: "Upper bound of the simulated render cost per frame",
			Value: config.DefaultMaxDelay,
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (0 = until quit)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runHarness

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running harness", "error", err)
		os.Exit(1)
	}
}

func runHarness(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	if cfg.Verbose {
		level.Set(slog.LevelDebug)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	host, err := newHost(cfg, level)
	if err != nil {
		return err
	}

	return practicum.Run(host, cfg)
}

// loadConfig layers defaults, the config file and explicitly set flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path, cfg)
		if err != nil {
			return cfg, err
		}
	}

	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("title") {
		cfg.Title = c.String("title")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("stats") {
		cfg.Stats = c.BoolT("stats")
	}
	if c.IsSet("histogram") {
		cfg.HistogramPath = c.String("histogram")
	}
	if c.IsSet("max-delay") {
		cfg.MaxDelay = c.Duration("max-delay")
	}
	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newHost(cfg config.Config, level slog.Leveler) (backend.Host, error) {
	switch cfg.Backend {
	case config.BackendSDL2:
		return sdl2.New(), nil
	case config.BackendTerminal:
		return terminal.New(level), nil
	case config.BackendHeadless:
		return headless.New(headless.Options{
			MaxFrames: cfg.Frames,
			Displays:  cfg.Displays,
			CursorX:   cfg.CursorX,
			CursorY:   cfg.CursorY,
		}), nil
	case config.BackendBrowser:
		return browser.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
