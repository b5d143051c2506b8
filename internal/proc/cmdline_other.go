//go:build !linux && !windows

package proc

// commandline resolves pid's command line via the process table.
func commandline(pid int) string { return psArgs(pid) }
