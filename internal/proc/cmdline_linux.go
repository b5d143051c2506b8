package proc

import (
	"bytes"
	"os"
	"strconv"
	"strings"
)

// commandline reads /proc/<pid>/cmdline (argv entries are NUL separated).
// Falls back to ps when /proc is unreadable for the pid.
func commandline(pid int) string {
	b, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/cmdline")
	if err == nil && len(b) > 0 {
		return strings.TrimSpace(string(bytes.ReplaceAll(b, []byte{0}, []byte{' '})))
	}
	return psArgs(pid)
}
