package proc

import "syscall"

// Class selects the strength of a termination signal.
type Class int

const (
	// Graceful asks the process to shut down; it may catch or ignore the request.
	Graceful Class = iota
	// Forceful terminates the process unconditionally.
	Forceful
)

func (c Class) String() string {
	if c == Forceful {
		return "SIGKILL"
	}
	return "SIGTERM"
}

func (c Class) signal() syscall.Signal {
	if c == Forceful {
		return syscall.SIGKILL
	}
	return syscall.SIGTERM
}

// Send delivers a termination signal of the given class to pid.
// Signaling an already-exited pid returns ESRCH; callers treat that as a
// race outcome, not a hazard.
func Send(pid int, c Class) error {
	return syscall.Kill(pid, c.signal())
}
