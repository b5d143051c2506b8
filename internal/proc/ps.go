package proc

import (
	"os/exec"
	"strconv"
	"strings"
)

// psArgs asks the process table for pid's full command line.
// Returns "" when ps is unavailable or the process is gone.
func psArgs(pid int) string {
	out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "args=").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
