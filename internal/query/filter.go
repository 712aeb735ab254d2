// Package query evaluates filter predicates over fetched entry
// snapshots. The store returns entries newest first; everything here
// is a pure function over that slice and never mutates it.
package query

import (
	"time"

	"timekeep/internal/models"
	"timekeep/internal/timeutil"
)

// Filter narrows which entries to return. Nil pointer fields leave the
// corresponding dimension unrestricted; a nil *Filter matches all
// entries. Active predicates are AND-combined.
type Filter struct {
	FavoriteOnly bool

	// From and To bound InitTime by calendar day, inclusive at both
	// ends: [From 00:00:00, To 23:59:59].
	From *time.Time
	To   *time.Time

	// MinElapsed and MaxElapsed bound the elapsed duration,
	// inclusive. An unset minimum defaults to 00:00:00 and an unset
	// maximum to 23:59:59.
	MinElapsed *time.Duration
	MaxElapsed *time.Duration
}

// Match reports whether a single entry satisfies the filter.
func (f *Filter) Match(e models.Entry) bool {
	if f == nil {
		return true
	}
	if f.FavoriteOnly && !e.Favorite {
		return false
	}
	if f.From != nil && e.InitTime.Before(timeutil.StartOfDay(*f.From)) {
		return false
	}
	if f.To != nil && e.InitTime.After(timeutil.EndOfDay(*f.To)) {
		return false
	}

	min := time.Duration(0)
	if f.MinElapsed != nil {
		min = *f.MinElapsed
	}
	max := timeutil.MaxClockDuration
	if f.MaxElapsed != nil {
		max = *f.MaxElapsed
	}
	if e.Elapsed < min || e.Elapsed > max {
		return false
	}
	return true
}

// Apply returns the entries matching the filter, preserving the input
// order. An empty result is a valid outcome, not an error.
func Apply(entries []models.Entry, f *Filter) []models.Entry {
	matched := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Bounds are the effective date limits of an entry collection, used to
// seed the history view's range controls before the user narrows them.
type Bounds struct {
	From time.Time // earliest InitTime, truncated to its day
	To   time.Time // latest FinalTime, truncated to its day
}

// SeedBounds derives the date bounds from an entry snapshot. ok is
// false when the snapshot is empty and there is nothing to seed from.
func SeedBounds(entries []models.Entry) (b Bounds, ok bool) {
	if len(entries) == 0 {
		return Bounds{}, false
	}
	b.From = entries[0].InitTime
	b.To = entries[0].FinalTime
	for _, e := range entries[1:] {
		if e.InitTime.Before(b.From) {
			b.From = e.InitTime
		}
		if e.FinalTime.After(b.To) {
			b.To = e.FinalTime
		}
	}
	b.From = timeutil.StartOfDay(b.From)
	b.To = timeutil.StartOfDay(b.To)
	return b, true
}
