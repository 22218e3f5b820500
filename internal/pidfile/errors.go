package pidfile

import (
	"errors"
	"fmt"
	"strconv"
)

// The four error kinds a PIDFile operation can surface. There is no shared
// base type: callers branch with errors.Is for the sentinels and errors.As
// for the kinds that carry data.
var (
	// ErrNotFound is returned by Get when the PID file doesn't exist.
	ErrNotFound = errors.New("the PID file doesn't exist")

	// ErrNotCreated is returned by Write, WritePID and Fd when Create
	// hasn't completed successfully. A correct caller never sees it.
	ErrNotCreated = errors.New("the PID file hasn't been created")
)

// InvalidContentError is returned by Get when the file exists but doesn't
// hold a newline-terminated positive decimal integer. Content is the raw
// payload as read, so callers can report exactly what was on disk.
type InvalidContentError struct {
	Content []byte
}

func (e *InvalidContentError) Error() string {
	if len(e.Content) == 0 {
		return "the PID file is empty"
	}
	return "invalid PID file content: " + strconv.Quote(string(e.Content))
}

// AlreadyRunningError is returned by Create when the existing file names a
// process that is still alive. Startup should abort, not retry.
type AlreadyRunningError struct {
	PID int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("the process is already running. PID: %d", e.PID)
}
