package reclaimer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zavul0nn/portreclaim/internal/proc"
	"github.com/zavul0nn/portreclaim/internal/terminator"
)

// fakeDiscoverer replays a sequence of discovery results, one per call.
// The last entry repeats once the sequence is exhausted.
type fakeDiscoverer struct {
	results [][]int
	calls   int
}

func (f *fakeDiscoverer) Discover(port int) []int {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	if i < 0 {
		return nil
	}
	return f.results[i]
}

type fakeTerminator struct {
	outcome   terminator.Outcome
	survivors []int
	calls     int
	lastPIDs  []int
}

func (f *fakeTerminator) Terminate(pids []int) (terminator.Outcome, []int) {
	f.calls++
	f.lastPIDs = pids
	return f.outcome, f.survivors
}

func describeAlive(pid int) proc.Record {
	return proc.Record{PID: pid, Alive: true, Description: "fake-server --port 5000"}
}

func newTestReclaimer(d *fakeDiscoverer, t *fakeTerminator) *Reclaimer {
	return NewWith(d, t, describeAlive, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReclaimAlreadyFree(t *testing.T) {
	disc := &fakeDiscoverer{results: [][]int{nil}}
	term := &fakeTerminator{}
	res := newTestReclaimer(disc, term).Reclaim(5000)

	assert.Equal(t, terminator.AlreadyFree, res.Outcome)
	assert.Zero(t, term.calls, "terminator must not run for a free port")
	assert.Empty(t, res.Occupants)
	assert.Equal(t, 0, res.ExitCode())
}

func TestReclaimIdempotentOnFreePort(t *testing.T) {
	disc := &fakeDiscoverer{results: [][]int{nil}}
	term := &fakeTerminator{}
	r := newTestReclaimer(disc, term)
	for i := 0; i < 2; i++ {
		res := r.Reclaim(5000)
		assert.Equal(t, terminator.AlreadyFree, res.Outcome)
	}
	assert.Zero(t, term.calls)
}

func TestReclaimGraceful(t *testing.T) {
	disc := &fakeDiscoverer{results: [][]int{{42}, nil}}
	term := &fakeTerminator{outcome: terminator.GracefullyStopped}
	res := newTestReclaimer(disc, term).Reclaim(5000)

	assert.Equal(t, terminator.GracefullyStopped, res.Outcome)
	assert.Equal(t, []int{42}, term.lastPIDs)
	require.Len(t, res.Occupants, 1)
	assert.Equal(t, 42, res.Occupants[0].PID)
	assert.Equal(t, 0, res.ExitCode())
	assert.Equal(t, 2, disc.calls, "a final independent discovery pass is required")
}

func TestReclaimForceful(t *testing.T) {
	disc := &fakeDiscoverer{results: [][]int{{42}, nil}}
	term := &fakeTerminator{outcome: terminator.ForcefullyStopped}
	res := newTestReclaimer(disc, term).Reclaim(5000)

	assert.Equal(t, terminator.ForcefullyStopped, res.Outcome)
	assert.Equal(t, 0, res.ExitCode())
}

func TestReclaimStillOccupied(t *testing.T) {
	disc := &fakeDiscoverer{results: [][]int{{42}, {42}}}
	term := &fakeTerminator{outcome: terminator.StillOccupied, survivors: []int{42}}
	res := newTestReclaimer(disc, term).Reclaim(5000)

	assert.Equal(t, terminator.StillOccupied, res.Outcome)
	assert.Equal(t, []int{42}, res.Survivors)
	assert.Equal(t, 1, res.ExitCode())
}

func TestReclaimDowngradesWhenNewOccupantAppears(t *testing.T) {
	// Original occupant dies, but a newcomer binds the port mid-run.
	disc := &fakeDiscoverer{results: [][]int{{42}, {77}}}
	term := &fakeTerminator{outcome: terminator.GracefullyStopped}
	res := newTestReclaimer(disc, term).Reclaim(5000)

	assert.Equal(t, terminator.StillOccupied, res.Outcome)
	assert.Equal(t, []int{77}, res.Survivors)
	assert.Equal(t, 1, res.ExitCode())
}

func TestReclaimDryRunSendsNothing(t *testing.T) {
	disc := &fakeDiscoverer{results: [][]int{{42}}}
	term := &fakeTerminator{}
	r := newTestReclaimer(disc, term)
	r.DryRun = true
	res := r.Reclaim(5000)

	assert.Zero(t, term.calls, "dry run must not terminate")
	assert.Equal(t, terminator.StillOccupied, res.Outcome)
	assert.True(t, res.DryRun)
	assert.Equal(t, 0, res.ExitCode(), "dry run always exits zero")
	assert.Equal(t, 1, disc.calls, "dry run skips the confirmation pass")
}

func TestReportAlreadyFree(t *testing.T) {
	res := Result{Port: 5000, Outcome: terminator.AlreadyFree}
	assert.Equal(t, "port 5000 is already free\n", res.Report())
}

func TestReportOccupantsAndDisposition(t *testing.T) {
	res := Result{
		Port:    5000,
		Outcome: terminator.ForcefullyStopped,
		Occupants: []proc.Record{
			{PID: 42, Alive: true, Description: "gunicorn app:app"},
			{PID: 43, Alive: true},
			{PID: 44},
		},
	}
	report := res.Report()
	assert.Contains(t, report, "pid 42: gunicorn app:app")
	assert.Contains(t, report, "pid 43: (command line unavailable)")
	assert.Contains(t, report, "pid 44: exited before action")
	assert.Contains(t, report, "port 5000 freed (forced)")
}

func TestReportStillOccupiedHasRemediationHint(t *testing.T) {
	res := Result{
		Port:      5000,
		Outcome:   terminator.StillOccupied,
		Survivors: []int{42, 77},
	}
	report := res.Report()
	assert.Contains(t, report, "port 5000 still occupied by: 42, 77")
	assert.Contains(t, report, "elevated privileges")
}
