//go:build windows

package proc

import (
	"os"
	"syscall"
)

// IsRunning reports whether a process with the given PID exists.
// On Windows, FindProcess always succeeds; test with Signal(0) equivalent.
func IsRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return p.Signal(syscall.Signal(0)) == nil
}
