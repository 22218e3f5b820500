// Package pidfile manages the lifecycle of a daemon's PID file: exclusive
// creation, stale-file detection and reclamation, and cleanup on exit.
//
// Correctness across processes rests entirely on the file system's
// exclusive-create primitive (O_CREATE|O_EXCL). Create loops on it until the
// claim succeeds or a live owner is found, so at most one process holds a
// given path at a time and files left behind by a crash heal themselves.
package pidfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joescharf/pidlock/internal/proc"
)

// isRunning is the process-liveness probe, replaceable in tests.
var isRunning = proc.IsRunning

// PIDFile manages one PID file slot. The zero state is "unclaimed"; Create
// transitions to "claimed" (open handle held), Close back. A single PIDFile
// instance should own a given path within a process.
type PIDFile struct {
	path        string
	file        *os.File
	maxAttempts int
}

// Option configures a PIDFile.
type Option func(*PIDFile)

// WithMaxAttempts bounds Create's claim loop to n iterations. Zero (the
// default) retries until the claim succeeds or a live owner is found.
func WithMaxAttempts(n int) Option {
	return func(p *PIDFile) { p.maxAttempts = n }
}

// New creates a PIDFile for the given path without touching the file system.
// The path is made absolute once and is immutable afterwards.
func New(path string, opts ...Option) (*PIDFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve PID file path: %w", err)
	}
	p := &PIDFile{path: abs}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Path returns the canonicalized path of the PID file.
func (p *PIDFile) Path() string { return p.path }

// Get reads and validates the recorded PID.
//
// Returns ErrNotFound if the file doesn't exist and *InvalidContentError if
// the content isn't a newline-terminated positive decimal integer. A missing
// trailing newline means the writer crashed mid-write or is still writing.
func (p *PIDFile) Get() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("read PID file: %w", err)
	}

	if !bytes.HasSuffix(data, []byte("\n")) {
		return 0, &InvalidContentError{Content: data}
	}
	digits := bytes.TrimSpace(data)
	if len(digits) == 0 {
		return 0, &InvalidContentError{Content: data}
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return 0, &InvalidContentError{Content: data}
		}
	}
	pid, err := strconv.Atoi(string(digits))
	if err != nil || pid == 0 {
		return 0, &InvalidContentError{Content: data}
	}
	return pid, nil
}

// Create claims the PID file via exclusive creation and reports whether a
// pre-existing file had to be handled.
//
// If the path already exists, the recorded PID decides the outcome: a live
// process means *AlreadyRunningError (the file is left untouched); a dead
// process or corrupt content means the file is abandoned, so it is removed
// and the claim retried. The loop has no bound unless WithMaxAttempts was
// given — it ends when creation succeeds or a live owner turns up.
func (p *PIDFile) Create() (bool, error) {
	existed := false

	for attempt := 0; ; attempt++ {
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return existed, fmt.Errorf("claim %s: gave up after %d attempts", p.path, p.maxAttempts)
		}

		f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_ = p.Close()
			p.file = f
			return existed, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return existed, fmt.Errorf("create PID file: %w", err)
		}

		pid, err := p.Get()
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// The file vanished between create and read —
				// raced with a releaser. Claim again.
				continue
			}
			var invalid *InvalidContentError
			if !errors.As(err, &invalid) {
				return existed, err
			}
			// Corrupt or half-written: assume abandoned.
		} else if isRunning(pid) {
			return existed, &AlreadyRunningError{PID: pid}
		}

		existed = true
		if _, err := p.Remove(); err != nil {
			return existed, err
		}
	}
}

// Write records the current process's PID. Requires a successful Create.
func (p *PIDFile) Write() error {
	return p.WritePID(os.Getpid())
}

// WritePID records the given PID in the claimed file.
func (p *PIDFile) WritePID(pid int) error {
	if p.file == nil {
		return ErrNotCreated
	}
	if _, err := fmt.Fprintf(p.file, "%d\n", pid); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	return nil
}

// Fd returns the OS-level descriptor of the claimed file, for callers that
// redirect standard streams or keep the file open across an exec.
func (p *PIDFile) Fd() (int, error) {
	if p.file == nil {
		return 0, ErrNotCreated
	}
	return int(p.file.Fd()), nil
}

// Close releases the open handle without deleting the file. Calling it when
// nothing is claimed is a no-op.
func (p *PIDFile) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	if err != nil {
		return fmt.Errorf("close PID file: %w", err)
	}
	return nil
}

// Remove deletes the PID file if present and reports whether it was there.
// An absent file is not an error, and the file need not have been claimed
// by this instance.
func (p *PIDFile) Remove() (bool, error) {
	if err := os.Remove(p.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove PID file: %w", err)
	}
	return true, nil
}

// Release closes the handle and then deletes the file. Defer it right after
// a successful Acquire so the lock is cleaned up on every exit path.
func (p *PIDFile) Release() error {
	cerr := p.Close()
	if _, err := p.Remove(); err != nil {
		return err
	}
	return cerr
}

// Acquire claims the PID file at path and records the current process's PID
// in it. The caller holds the returned PIDFile open for the process's
// lifetime and defers Release.
func Acquire(path string, opts ...Option) (*PIDFile, error) {
	p, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := p.Create(); err != nil {
		return nil, err
	}
	if err := p.Write(); err != nil {
		_ = p.Release()
		return nil, err
	}
	return p, nil
}
