package terminator

import (
	"log/slog"
	"time"

	"github.com/zavul0nn/portreclaim/internal/metrics"
	"github.com/zavul0nn/portreclaim/internal/proc"
)

// Default wait intervals between escalation tiers. The graceful window
// covers a cooperative shutdown; the forceful window only covers OS reaping.
const (
	DefaultGraceWait = 2 * time.Second
	DefaultKillWait  = 1 * time.Second
)

// Terminator drives escalating termination over a fixed PID set:
// graceful signal, wait, liveness recheck, forceful signal, wait, final
// verification. The probe/signal/sleep primitives are injectable so the
// state machine is testable without a real process table.
type Terminator struct {
	GraceWait time.Duration
	KillWait  time.Duration

	alive  func(pid int) bool
	signal func(pid int, c proc.Class) error
	sleep  func(d time.Duration)
	logger *slog.Logger
}

func New(logger *slog.Logger) *Terminator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminator{
		GraceWait: DefaultGraceWait,
		KillWait:  DefaultKillWait,
		alive:     proc.Alive,
		signal:    proc.Send,
		sleep:     time.Sleep,
		logger:    logger,
	}
}

// Terminate runs the escalation state machine over pids and returns the
// outcome plus any PIDs that survived both tiers. An empty set short-circuits
// to AlreadyFree without emitting any signal.
func (t *Terminator) Terminate(pids []int) (Outcome, []int) {
	if len(pids) == 0 {
		return AlreadyFree, nil
	}
	if t.signalAll(pids, proc.Graceful) > 0 {
		t.sleep(t.GraceWait)
	}
	if len(t.stillAlive(pids)) == 0 {
		return GracefullyStopped, nil
	}
	if t.signalAll(pids, proc.Forceful) > 0 {
		t.sleep(t.KillWait)
	}
	survivors := t.stillAlive(pids)
	if len(survivors) == 0 {
		return ForcefullyStopped, nil
	}
	return StillOccupied, survivors
}

// signalAll delivers the class to every pid still alive, re-probing each one
// immediately before sending. Per-PID failures are logged and do not block
// the remaining PIDs. Returns the number of signals delivered.
func (t *Terminator) signalAll(pids []int, c proc.Class) int {
	sent := 0
	for _, pid := range pids {
		if !t.alive(pid) {
			t.logger.Debug("occupant already exited", "pid", pid)
			continue
		}
		if err := t.signal(pid, c); err != nil {
			t.logger.Warn("signal delivery failed", "pid", pid, "signal", c.String(), "error", err)
			continue
		}
		metrics.IncSignal(c.String())
		t.logger.Info("signal sent", "pid", pid, "signal", c.String())
		sent++
	}
	return sent
}

func (t *Terminator) stillAlive(pids []int) []int {
	var alive []int
	for _, pid := range pids {
		if t.alive(pid) {
			alive = append(alive, pid)
		}
	}
	return alive
}
