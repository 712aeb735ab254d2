// Package entry validates a captured stopwatch reading before it is
// submitted for persistence.
package entry

import (
	"strings"

	"timekeep/internal/stopwatch"
)

// Draft is a provisional entry built from the stopwatch's last reading
// and the task text typed by the user.
type Draft struct {
	Reading stopwatch.Reading
	Task    string
}

// Flags reports which validation checks failed. The checks are
// independent: several flags can be raised at once and each maps to
// its own user-visible warning.
type Flags struct {
	EmptyTask    bool // task is empty or whitespace-only
	NotStarted   bool // no session was ever started
	StillRunning bool // sampling is still active at submission time
}

// OK reports whether the draft may be persisted.
func (f Flags) OK() bool {
	return !f.EmptyTask && !f.NotStarted && !f.StillRunning
}

// Validate runs the pre-persistence checks on a draft. It mutates
// nothing; on failure the caller aborts the submission and leaves the
// session untouched.
func Validate(d Draft) Flags {
	return Flags{
		EmptyTask:    strings.TrimSpace(d.Task) == "",
		NotStarted:   !d.Reading.Started(),
		StillRunning: d.Reading.State == stopwatch.StateRunning,
	}
}
