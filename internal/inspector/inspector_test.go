package inspector

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

type fakeBackend struct {
	name  string
	pids  []int
	err   error
	calls int
}

func (f *fakeBackend) PIDs(port int) ([]int, error) {
	f.calls++
	return f.pids, f.err
}

func (f *fakeBackend) Describe() string { return f.name }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscoverFirstMatchWins(t *testing.T) {
	first := &fakeBackend{name: "a", pids: []int{7}}
	second := &fakeBackend{name: "b", pids: []int{8, 9}}
	ins := NewWithBackends([]Backend{first, second}, discard())
	got := ins.Discover(5000)
	if !reflect.DeepEqual(got, []int{7}) {
		t.Fatalf("expected first backend result, got %v", got)
	}
	if second.calls != 0 {
		t.Fatal("second backend should not run after a non-empty result")
	}
}

func TestDiscoverFallsThroughOnErrorAndEmpty(t *testing.T) {
	broken := &fakeBackend{name: "broken", err: errors.New("tool missing")}
	empty := &fakeBackend{name: "empty"}
	last := &fakeBackend{name: "last", pids: []int{3, 1, 3, 2}}
	ins := NewWithBackends([]Backend{broken, empty, last}, discard())
	got := ins.Discover(5000)
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("expected deduplicated sorted result, got %v", got)
	}
	if broken.calls != 1 || empty.calls != 1 {
		t.Fatal("every earlier backend should have been tried once")
	}
}

func TestDiscoverAllEmptyMeansFree(t *testing.T) {
	ins := NewWithBackends([]Backend{
		&fakeBackend{name: "a", err: errors.New("nope")},
		&fakeBackend{name: "b"},
	}, discard())
	if got := ins.Discover(5000); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestDiscoverWarnsWhenAllBackendsFail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ins := NewWithBackends([]Backend{
		&fakeBackend{name: "a", err: errors.New("missing")},
		&fakeBackend{name: "b", err: errors.New("missing")},
	}, logger)
	if got := ins.Discover(5000); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if !strings.Contains(buf.String(), "all discovery backends unavailable") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestDedupeDropsNonPositive(t *testing.T) {
	got := dedupe([]int{0, -5, 10, 10, 4})
	if !reflect.DeepEqual(got, []int{4, 10}) {
		t.Fatalf("dedupe = %v", got)
	}
}

func TestDefaultBackendsOrder(t *testing.T) {
	want := []string{"lsof", "fuser", "netstat", "ss"}
	bs := DefaultBackends()
	if len(bs) != len(want) {
		t.Fatalf("expected %d backends, got %d", len(want), len(bs))
	}
	for i, b := range bs {
		if b.Describe() != want[i] {
			t.Fatalf("backend %d = %q, want %q", i, b.Describe(), want[i])
		}
	}
}
