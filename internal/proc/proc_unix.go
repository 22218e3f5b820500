//go:build !windows

package proc

import (
	"errors"
	"syscall"
)

// IsRunning reports whether a process with the given PID exists.
func IsRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	// Signal 0 tests if the process exists without sending a signal.
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	// EPERM means the process exists but belongs to someone else.
	return !errors.Is(err, syscall.ESRCH)
}
