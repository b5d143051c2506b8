package inspector

import (
	"os/exec"
	"strconv"
	"strings"
)

// NetstatBackend lists the TCP connection table and filters by local port.
// The owning process is the "PID/Program name" column; entries owned by
// other users show "-" there and are skipped.
type NetstatBackend struct{}

func (NetstatBackend) PIDs(port int) ([]int, error) {
	out, err := exec.Command("netstat", "-tlnp").Output()
	if err != nil {
		return nil, err
	}
	return parseNetstatOutput(string(out), port), nil
}

func (NetstatBackend) Describe() string { return "netstat" }

// parseNetstatOutput extracts owner PIDs for sockets whose local address
// ends in :port. Lines look like:
//
//	tcp  0  0 0.0.0.0:5000  0.0.0.0:*  LISTEN  1234/gunicorn
func parseNetstatOutput(out string, port int) []int {
	suffix := ":" + strconv.Itoa(port)
	var pids []int
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) < 7 || !strings.HasPrefix(f[0], "tcp") {
			continue
		}
		if !strings.HasSuffix(f[3], suffix) {
			continue
		}
		owner, _, ok := strings.Cut(f[6], "/")
		if !ok {
			continue
		}
		pid, err := strconv.Atoi(owner)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
