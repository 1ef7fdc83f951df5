// Package queue contains the pure ordering logic for work center queues.
// The application layer fetches candidates and persists snapshots; this
// package only ranks them and accumulates wait estimates.
package queue

import (
	"cmp"
	"slices"
	"time"
)

// Candidate is a ready operation waiting for a work center.
type Candidate struct {
	OperationID      string
	Priority         int
	DueDate          time.Time // zero value means no due date
	SequenceNumber   int
	PlannedSetupTime int
	PlannedRunTime   int
}

// Entry is one ranked queue slot. EstimatedWaitTime is the cumulative
// setup+run minutes of every candidate ranked strictly before it.
type Entry struct {
	OperationID       string
	Position          int // 1-based
	Priority          int
	EstimatedWaitTime int
}

// Order sorts candidates by priority descending, due date ascending with
// missing due dates last, then sequence number ascending.
func Order(candidates []Candidate) []Candidate {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		if a.Priority != b.Priority {
			return cmp.Compare(b.Priority, a.Priority)
		}
		if c := compareDueDates(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.SequenceNumber, b.SequenceNumber)
	})
	return sorted
}

func compareDueDates(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	default:
		return a.Compare(b)
	}
}

// BuildEntries ranks candidates and assigns 1-based positions and
// cumulative wait estimates.
func BuildEntries(candidates []Candidate) []Entry {
	sorted := Order(candidates)
	entries := make([]Entry, len(sorted))
	wait := 0
	for i, c := range sorted {
		entries[i] = Entry{
			OperationID:       c.OperationID,
			Position:          i + 1,
			Priority:          c.Priority,
			EstimatedWaitTime: wait,
		}
		wait += c.PlannedSetupTime + c.PlannedRunTime
	}
	return entries
}
