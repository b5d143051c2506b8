package inspector

import (
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var ssPIDRe = regexp.MustCompile(`pid=(\d+)`)

// SsBackend parses the listening-socket table from ss. The owner is encoded
// in the users:(...) column as ("name",pid=N,fd=M) tuples, a different
// delimiter scheme than netstat's PID/Program pairing.
type SsBackend struct{}

func (SsBackend) PIDs(port int) ([]int, error) {
	out, err := exec.Command("ss", "-tlnp").Output()
	if err != nil {
		return nil, err
	}
	return parseSsOutput(string(out), port), nil
}

func (SsBackend) Describe() string { return "ss" }

// parseSsOutput extracts every pid=N occurrence on lines whose local
// address ends in :port. Lines look like:
//
//	LISTEN 0 128 0.0.0.0:5000 0.0.0.0:* users:(("gunicorn",pid=1234,fd=5))
func parseSsOutput(out string, port int) []int {
	suffix := ":" + strconv.Itoa(port)
	var pids []int
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) < 5 {
			continue
		}
		if !strings.HasSuffix(f[3], suffix) {
			continue
		}
		for _, m := range ssPIDRe.FindAllStringSubmatch(line, -1) {
			pid, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			pids = append(pids, pid)
		}
	}
	return pids
}
