// Package stats computes summary statistics over entry snapshots.
package stats

import (
	"time"

	"timekeep/internal/models"
	"timekeep/internal/timeutil"
)

// NoEntries is the last-entry label when the collection is empty.
const NoEntries = "-"

// Summary holds the derived statistics for one entry collection. The
// by-project and by-user summaries are computed from independently
// fetched lists and share no state.
type Summary struct {
	TotalWorked time.Duration
	EntryCount  int
	LastEntry   time.Time // zero when EntryCount is 0
}

// Summarize computes the summary for a list of entries ordered newest
// first. It never fails: an empty list produces a zero total and a
// sentinel last-entry date.
func Summarize(entries []models.Entry) Summary {
	s := Summary{EntryCount: len(entries)}
	if len(entries) > 0 {
		s.LastEntry = entries[0].FinalTime
	}

	// Summed in raw seconds rather than by clock-face arithmetic so
	// totals past 24 hours never wrap.
	var totalSec int64
	for _, e := range entries {
		totalSec += int64(e.Elapsed / time.Second)
	}
	s.TotalWorked = time.Duration(totalSec) * time.Second
	return s
}

// TotalWorkedLabel formats the total as HH:MM:SS; hours may exceed 23.
func (s Summary) TotalWorkedLabel() string {
	return timeutil.FormatHMS(s.TotalWorked)
}

// LastEntryLabel formats the most recent entry's end date, or the
// NoEntries sentinel when there is none.
func (s Summary) LastEntryLabel() string {
	if s.EntryCount == 0 {
		return NoEntries
	}
	return s.LastEntry.Format("06-01-02")
}
