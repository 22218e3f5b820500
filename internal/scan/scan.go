// Package scan classifies the PID files in a directory by the state of the
// process each one records.
package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/joescharf/pidlock/internal/pidfile"
	"github.com/joescharf/pidlock/internal/proc"
)

// State is the classification of one PID file.
type State string

const (
	// Running: the recorded process is alive.
	Running State = "running"
	// Stale: the recorded process is gone.
	Stale State = "stale"
	// Invalid: the content is not a valid PID (corrupt or half-written).
	Invalid State = "invalid"
	// Unreadable: the file could not be read at all.
	Unreadable State = "unreadable"
)

// Entry is one classified PID file.
type Entry struct {
	Path  string `json:"path" yaml:"path"`
	PID   int    `json:"pid,omitempty" yaml:"pid,omitempty"`
	State State  `json:"state" yaml:"state"`
	Err   error  `json:"-" yaml:"-"`
}

// Dir classifies every *.pid file in dir, sorted by path.
func Dir(dir string) ([]Entry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pid"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)

	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		entries = append(entries, classify(path))
	}
	return entries, nil
}

func classify(path string) Entry {
	p, err := pidfile.New(path)
	if err != nil {
		return Entry{Path: path, State: Unreadable, Err: err}
	}

	pid, err := p.Get()
	if err != nil {
		var invalid *pidfile.InvalidContentError
		if errors.As(err, &invalid) {
			return Entry{Path: path, State: Invalid, Err: err}
		}
		// Includes files that vanished between glob and read.
		return Entry{Path: path, State: Unreadable, Err: err}
	}

	if proc.IsRunning(pid) {
		return Entry{Path: path, PID: pid, State: Running}
	}
	return Entry{Path: path, PID: pid, State: Stale}
}

// Reclaimable filters entries down to the ones clean may remove: stale and
// invalid files. Running and unreadable entries are never touched.
func Reclaimable(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.State == Stale || e.State == Invalid {
			out = append(out, e)
		}
	}
	return out
}
