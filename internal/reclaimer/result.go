package reclaimer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zavul0nn/portreclaim/internal/proc"
	"github.com/zavul0nn/portreclaim/internal/terminator"
)

// Result is the report of one reclamation run: the final outcome plus every
// PID acted upon and its disposition.
type Result struct {
	Port      int
	Outcome   terminator.Outcome
	Occupants []proc.Record
	Survivors []int
	DryRun    bool
}

// ExitCode maps the outcome to a process exit status: zero whenever the
// port ended up free, non-zero on StillOccupied. Dry runs always exit zero.
func (r Result) ExitCode() int {
	if r.DryRun || r.Outcome.Freed() {
		return 0
	}
	return 1
}

// Report renders the human-readable disposition listing.
func (r Result) Report() string {
	var b strings.Builder
	if r.Outcome == terminator.AlreadyFree {
		fmt.Fprintf(&b, "port %d is already free\n", r.Port)
		return b.String()
	}
	for _, occ := range r.Occupants {
		switch {
		case occ.Description != "":
			fmt.Fprintf(&b, "pid %d: %s\n", occ.PID, occ.Description)
		case occ.Alive:
			fmt.Fprintf(&b, "pid %d: (command line unavailable)\n", occ.PID)
		default:
			fmt.Fprintf(&b, "pid %d: exited before action\n", occ.PID)
		}
	}
	switch {
	case r.DryRun:
		fmt.Fprintf(&b, "dry run: port %d occupied by %s, no signals sent\n", r.Port, joinPIDs(r.Survivors))
	case r.Outcome == terminator.GracefullyStopped:
		fmt.Fprintf(&b, "port %d freed (graceful)\n", r.Port)
	case r.Outcome == terminator.ForcefullyStopped:
		fmt.Fprintf(&b, "port %d freed (forced)\n", r.Port)
	default:
		fmt.Fprintf(&b, "port %d still occupied by: %s\n", r.Port, joinPIDs(r.Survivors))
		fmt.Fprintf(&b, "hint: the occupant may belong to another user; retry with elevated privileges\n")
	}
	return b.String()
}

func joinPIDs(pids []int) string {
	s := make([]string, len(pids))
	for i, pid := range pids {
		s[i] = strconv.Itoa(pid)
	}
	return strings.Join(s, ", ")
}
