package reclaimer

import (
	"log/slog"

	"github.com/zavul0nn/portreclaim/internal/inspector"
	"github.com/zavul0nn/portreclaim/internal/metrics"
	"github.com/zavul0nn/portreclaim/internal/proc"
	"github.com/zavul0nn/portreclaim/internal/terminator"
)

// Discoverer yields the PIDs currently bound to a TCP port.
type Discoverer interface {
	Discover(port int) []int
}

// Terminator drives escalating termination over a fixed PID set.
type Terminator interface {
	Terminate(pids []int) (terminator.Outcome, []int)
}

// Reclaimer composes discovery, description and escalating termination into
// one port reclamation run. Every phase re-queries the OS process table;
// nothing is cached between phases.
type Reclaimer struct {
	inspector  Discoverer
	terminator Terminator
	describe   func(pid int) proc.Record
	logger     *slog.Logger

	// DryRun discovers and describes occupants but sends no signal.
	DryRun bool
}

func New(logger *slog.Logger) *Reclaimer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reclaimer{
		inspector:  inspector.New(logger),
		terminator: terminator.New(logger),
		describe:   proc.Describe,
		logger:     logger,
	}
}

// NewWith assembles a Reclaimer from explicit collaborators.
func NewWith(d Discoverer, t Terminator, describe func(int) proc.Record, logger *slog.Logger) *Reclaimer {
	if logger == nil {
		logger = slog.Default()
	}
	if describe == nil {
		describe = proc.Describe
	}
	return &Reclaimer{inspector: d, terminator: t, describe: describe, logger: logger}
}

// Reclaim frees port: discover occupants, audit them, terminate with
// escalation, then re-discover to confirm. The final discovery pass is
// independent of the original occupant set, so a newcomer that bound the
// port mid-run also downgrades the outcome to StillOccupied.
func (r *Reclaimer) Reclaim(port int) Result {
	res := Result{Port: port, DryRun: r.DryRun}

	pids := r.inspector.Discover(port)
	if len(pids) == 0 {
		r.logger.Info("port already free", "port", port)
		res.Outcome = terminator.AlreadyFree
		metrics.IncOutcome(res.Outcome.String())
		return res
	}

	for _, pid := range pids {
		rec := r.describe(pid)
		res.Occupants = append(res.Occupants, rec)
		if rec.Alive {
			r.logger.Info("port occupant", "port", port, "pid", pid, "command", rec.Description)
		} else {
			r.logger.Info("occupant exited before action", "port", port, "pid", pid)
		}
	}

	if r.DryRun {
		r.logger.Info("dry run, no signals sent", "port", port)
		res.Outcome = terminator.StillOccupied
		res.Survivors = pids
		return res
	}

	outcome, survivors := r.terminator.Terminate(pids)

	if bound := r.inspector.Discover(port); len(bound) > 0 {
		r.logger.Warn("port still bound after termination", "port", port, "pids", bound)
		outcome = terminator.StillOccupied
		survivors = bound
	}

	res.Outcome = outcome
	res.Survivors = survivors
	metrics.IncOutcome(outcome.String())

	if outcome.Freed() {
		r.logger.Info("port freed", "port", port, "outcome", outcome.String())
	} else {
		r.logger.Error("port still occupied", "port", port, "pids", survivors)
	}
	return res
}
