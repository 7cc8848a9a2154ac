package practicum

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/clock"
	"github.com/valerio/practicum/practicum/config"
	"github.com/valerio/practicum/practicum/histogram"
	"github.com/valerio/practicum/practicum/loop"
)

// Run opens the host, drives the harness with cfg.Model until it stops and
// tears down. In the blocking model the histogram is written after teardown;
// the callback model hands teardown to the host and never writes it.
func Run(host backend.Host, cfg config.Config) error {
	if err := host.Init(cfg.BackendConfig()); err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}

	var hist *histogram.Histogram
	if cfg.Stats {
		var err error
		hist, err = histogram.NewUniform(cfg.HistogramBuckets, cfg.HistogramMin, cfg.HistogramMax)
		if err != nil {
			cleanup(host)
			return err
		}
	}

	h, err := New(host, Options{Histogram: hist, MaxDelay: cfg.MaxDelay})
	if err != nil {
		cleanup(host)
		return err
	}

	var source clock.Source
	if p, ok := host.(backend.ClockProvider); ok {
		source = p.ClockSource()
	}
	clk := clock.New(source)
	clk.ElapsedSeconds()

	slog.Info("Starting frame loop", "model", cfg.Model, "backend", cfg.Backend, "stats", cfg.Stats)

	if cfg.Model == loop.ModelCallback {
		return runCallback(host, h, clk, cfg)
	}

	if err := (loop.Blocking{}).Run(h.Tick); err != nil {
		cleanup(host)
		return err
	}

	slog.Info("Exit time", "frames", h.Frames(), "elapsed", clk.Elapsed())
	cleanup(host)

	if hist != nil {
		if err := hist.Save(cfg.HistogramPath); err != nil {
			return err
		}
		slog.Info("Frame histogram written",
			"path", cfg.HistogramPath,
			"samples", hist.Sum(),
			"out_of_range", hist.Outside())
	}

	return nil
}

func runCallback(host backend.Host, h *Harness, clk *clock.Clock, cfg config.Config) error {
	frames := loop.NewHost(cfg.Refresh)

	if err := (loop.Callback{Host: frames}).Run(h.Tick); err != nil {
		cleanup(host)
		return err
	}

	err := frames.Serve(context.Background())
	slog.Info("Animation frame loop finished", "frames", h.Frames(), "elapsed", clk.Elapsed())
	if cfg.Stats {
		slog.Debug("Frame histogram is not written in the callback model")
	}

	cleanup(host)
	return err
}

func cleanup(host backend.Host) {
	if err := host.Cleanup(); err != nil {
		slog.Warn("Backend cleanup failed", "error", err)
	}
}
