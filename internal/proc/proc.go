package proc

import (
	"errors"
	"syscall"
)

// Record is a point-in-time snapshot of one process, built on demand for
// audit output and discarded after use. Liveness must be re-probed before
// acting on a Record taken earlier.
type Record struct {
	PID         int
	Alive       bool
	Description string
}

// Alive returns true if a process with the given pid exists (or EPERM).
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Describe probes pid and resolves its command line.
// A pid that exited between discovery and description yields Alive=false and
// an empty description; that is a race outcome, not an error.
func Describe(pid int) Record {
	r := Record{PID: pid}
	if !Alive(pid) {
		return r
	}
	r.Alive = true
	r.Description = commandline(pid)
	return r
}
