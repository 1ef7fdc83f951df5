// Package operation contains the pure business logic for routing operations:
// the status state machine and the guards that protect transitions.
// Nothing in this package performs I/O.
package operation

// Status is the lifecycle state of a routing operation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSetup     Status = "setup"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// transitions is the closed set of legal status moves. Completed and
// skipped are terminal and have no outgoing edges.
var transitions = map[Status][]Status{
	StatusPending: {StatusSetup, StatusSkipped},
	StatusSetup:   {StatusRunning},
	StatusRunning: {StatusPaused, StatusCompleted},
	StatusPaused:  {StatusRunning},
}

// Valid reports whether s is a known operation status.
func Valid(s Status) bool {
	switch s {
	case StatusPending, StatusSetup, StatusRunning, StatusPaused, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusSkipped
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Active reports whether the operation currently occupies its work center.
func Active(s Status) bool {
	return s == StatusSetup || s == StatusRunning
}
