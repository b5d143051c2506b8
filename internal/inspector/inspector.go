package inspector

import (
	"log/slog"
	"sort"

	"github.com/zavul0nn/portreclaim/internal/metrics"
)

// Backend is a strategy that maps a TCP port to the PIDs bound to it.
// Implementations wrap one OS-provided inspection tool; a missing tool
// surfaces as an error, which the Inspector downgrades to an empty result.
type Backend interface {
	// PIDs returns the processes listening on port.
	PIDs(port int) ([]int, error)
	// Describe returns a short name of the strategy for logging.
	Describe() string
}

// Inspector queries backends in a fixed priority order and stops at the
// first backend that yields a non-empty set. Results from different
// backends are never combined; the first success is authoritative.
type Inspector struct {
	backends []Backend
	logger   *slog.Logger
}

// DefaultBackends returns the backend chain in order of specificity.
func DefaultBackends() []Backend {
	return []Backend{LsofBackend{}, FuserBackend{}, NetstatBackend{}, SsBackend{}}
}

func New(logger *slog.Logger) *Inspector {
	return NewWithBackends(DefaultBackends(), logger)
}

func NewWithBackends(backends []Backend, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{backends: backends, logger: logger}
}

// Discover returns the PIDs currently bound to port. It never fails: a
// backend error falls through to the next backend, and all-empty means the
// port is treated as free. The result is deduplicated and sorted.
func (i *Inspector) Discover(port int) []int {
	failed := 0
	for _, b := range i.backends {
		pids, err := b.PIDs(port)
		if err != nil {
			failed++
			metrics.IncBackendError(b.Describe())
			i.logger.Debug("discovery backend unavailable", "backend", b.Describe(), "error", err)
			continue
		}
		if len(pids) == 0 {
			continue
		}
		pids = dedupe(pids)
		metrics.IncBackendHit(b.Describe())
		i.logger.Debug("discovery backend matched", "backend", b.Describe(), "port", port, "pids", pids)
		return pids
	}
	if failed == len(i.backends) && failed > 0 {
		// Indistinguishable from a truly free port from here; the caller
		// proceeds as if no occupant exists.
		i.logger.Warn("all discovery backends unavailable, treating port as free", "port", port)
	}
	return nil
}

func dedupe(pids []int) []int {
	seen := make(map[int]struct{}, len(pids))
	out := make([]int, 0, len(pids))
	for _, pid := range pids {
		if pid <= 0 {
			continue
		}
		if _, ok := seen[pid]; ok {
			continue
		}
		seen[pid] = struct{}{}
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}
