package portreclaim

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/zavul0nn/portreclaim/internal/config"
	"github.com/zavul0nn/portreclaim/internal/inspector"
	"github.com/zavul0nn/portreclaim/internal/logger"
	"github.com/zavul0nn/portreclaim/internal/metrics"
	"github.com/zavul0nn/portreclaim/internal/reclaimer"
	"github.com/zavul0nn/portreclaim/internal/terminator"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Outcome = terminator.Outcome

type Result = reclaimer.Result

type Config = cfg.FileConfig

type LoggerConfig = logger.Config

const (
	AlreadyFree       = terminator.AlreadyFree
	GracefullyStopped = terminator.GracefullyStopped
	ForcefullyStopped = terminator.ForcefullyStopped
	StillOccupied     = terminator.StillOccupied
)

// DefaultPort is reclaimed when the caller names no port.
const DefaultPort = cfg.DefaultPort

// Options tunes one reclamation run. Zero values select defaults.
type Options struct {
	GraceWait time.Duration // cooperative shutdown window (default 2s)
	KillWait  time.Duration // post-SIGKILL reap window (default 1s)
	Backends  []string      // discovery backend chain (default lsof, fuser, netstat, ss)
	DryRun    bool          // discover and describe only, send no signal
	Logger    *slog.Logger
}

// Reclaimer is a thin facade over internal/reclaimer.
// It provides a stable public API for embedding.
type Reclaimer struct{ inner *reclaimer.Reclaimer }

func New(opts Options) (*Reclaimer, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	backends, err := cfg.Backends(opts.Backends)
	if err != nil {
		return nil, err
	}
	term := terminator.New(log)
	if opts.GraceWait > 0 {
		term.GraceWait = opts.GraceWait
	}
	if opts.KillWait > 0 {
		term.KillWait = opts.KillWait
	}
	insp := inspector.NewWithBackends(backends, log)
	r := reclaimer.NewWith(insp, term, nil, log)
	r.DryRun = opts.DryRun
	return &Reclaimer{inner: r}, nil
}

// Reclaim frees port and returns the outcome report.
func (r *Reclaimer) Reclaim(port int) Result { return r.inner.Reclaim(port) }

func LoadConfig(path string) (Config, error) { return cfg.Load(path) }

func DefaultConfig() Config { return cfg.Default() }

// NewLogger builds a structured logger per the config.
func NewLogger(c LoggerConfig) *slog.Logger { return c.NewSlogger() }

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// PushMetrics delivers collected metrics to a Prometheus Pushgateway.
// Intended for one-shot runs where a scrape endpoint never exists.
func PushMetrics(url, job string) error { return metrics.Push(url, job) }
