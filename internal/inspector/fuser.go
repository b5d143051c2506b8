package inspector

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FuserBackend asks the file/handle layer which processes hold the port's
// socket. Output is bare PIDs without further metadata (the "<port>/tcp:"
// banner goes to stderr on Linux, so only stdout is parsed).
type FuserBackend struct{}

func (FuserBackend) PIDs(port int) ([]int, error) {
	out, err := exec.Command("fuser", fmt.Sprintf("%d/tcp", port)).Output()
	if err != nil {
		// fuser exits 1 when no process holds the socket.
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, nil
		}
		return nil, err
	}
	return parseFuserOutput(string(out)), nil
}

func (FuserBackend) Describe() string { return "fuser" }

// parseFuserOutput parses whitespace-separated PIDs, tolerating a leading
// "<port>/tcp:" banner on platforms that print it to stdout.
func parseFuserOutput(out string) []int {
	var pids []int
	for _, field := range strings.Fields(out) {
		pid, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
