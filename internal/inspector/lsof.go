package inspector

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// LsofBackend queries the open-socket table directly: each output line is a
// bare PID holding a listening TCP socket on the port. Preferred backend
// because the listing is exact (process owns port, no parsing heuristics).
type LsofBackend struct{}

func (LsofBackend) PIDs(port int) ([]int, error) {
	out, err := exec.Command("lsof", "-t", "-i", fmt.Sprintf("tcp:%d", port), "-sTCP:LISTEN").Output()
	if err != nil {
		// lsof exits non-zero when nothing matches; that is an empty
		// result, not a backend failure.
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, nil
		}
		return nil, err
	}
	return parsePIDLines(string(out)), nil
}

func (LsofBackend) Describe() string { return "lsof" }

// parsePIDLines parses newline-separated bare PIDs, skipping anything else.
func parsePIDLines(out string) []int {
	var pids []int
	for _, line := range strings.Split(out, "\n") {
		pid, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
