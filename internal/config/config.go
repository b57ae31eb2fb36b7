// Package config loads runtime settings: defaults, then an optional YAML file,
// then POSTMATCH_* environment variables.
package config

import (
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/DataKnight1/PostMatchReport/internal/events"
	"github.com/DataKnight1/PostMatchReport/internal/match"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config is the full application configuration.
type Config struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// DBPath is the sqlite database file.
	DBPath string `koanf:"db_path"`

	// Workers bounds the batch worker pool.
	Workers int `koanf:"workers"`

	// MetricsFile, when set, receives a Prometheus textfile after batch runs.
	MetricsFile string `koanf:"metrics_file"`

	match.Config `koanf:",squash"`
}

func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "console",
		DBPath:    "postmatch.db",
		Workers:   runtime.NumCPU(),
		Config:    match.DefaultConfig(),
	}
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log_format %q: want json or console", c.LogFormat)
	}
	if c.DBPath == "" {
		return errors.Wrap(ErrInvalidConfig, "db_path must not be empty")
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be positive, got %d", c.Workers)
	}

	ev := c.Events
	if ev.ProgressiveDistance <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "events.progressive_distance must be positive, got %v", ev.ProgressiveDistance)
	}
	if ev.ClockMode != "period" && ev.ClockMode != "match" {
		return errors.Wrapf(ErrInvalidConfig, "events.clock_mode %q: want period or match", ev.ClockMode)
	}
	switch ev.Frame {
	case events.FrameAuto, events.FrameShared, events.FrameNormalized:
	default:
		return errors.Wrapf(ErrInvalidConfig, "events.frame %q: want auto, shared or normalized", ev.Frame)
	}

	x := c.XG
	if x.Min < 0 || x.Max > 1 || x.Min >= x.Max {
		return errors.Wrapf(ErrInvalidConfig, "xg bounds [%v, %v] must satisfy 0 <= min < max <= 1", x.Min, x.Max)
	}
	for i := 1; i < len(x.Bands); i++ {
		if x.Bands[i].MaxDistance <= x.Bands[i-1].MaxDistance {
			return errors.Wrap(ErrInvalidConfig, "xg.bands must be ordered nearest first")
		}
	}

	n := c.Network
	if n.ReceiverWindow <= 0 || n.ReceiverRadius <= 0 {
		return errors.Wrap(ErrInvalidConfig, "network receiver window and radius must be positive")
	}
	if n.MinPasses < 1 {
		return errors.Wrapf(ErrInvalidConfig, "network.min_passes must be at least 1, got %d", n.MinPasses)
	}

	if c.Momentum.Sigma <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "momentum.sigma must be positive, got %v", c.Momentum.Sigma)
	}

	z := c.Zones
	if z.Threshold <= 0.5 || z.Threshold > 1 {
		return errors.Wrapf(ErrInvalidConfig, "zones.threshold must be in (0.5, 1], got %v", z.Threshold)
	}
	for _, p := range []struct {
		name       string
		rows, cols int
	}{{"territory", z.Territory.Rows, z.Territory.Cols}, {"tactical", z.Tactical.Rows, z.Tactical.Cols}} {
		if p.rows < 1 || p.cols < 1 {
			return errors.Wrapf(ErrInvalidConfig, "zones.%s grid %dx%d must be positive", p.name, p.rows, p.cols)
		}
	}
	return nil
}
