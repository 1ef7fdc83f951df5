// Package readiness contains the pure readiness evaluation for routing
// operations. Evaluate is side-effect free; persistence and notification
// are layered on top by the application service.
package readiness

import (
	"github.com/example/shopfloor/internal/core/dependency"
	"github.com/example/shopfloor/internal/core/operation"
)

// BlockedReason names a cause preventing an operation from starting.
type BlockedReason string

const (
	WaitingPredecessor  BlockedReason = "waiting_predecessor"
	MaterialUnavailable BlockedReason = "material_unavailable"
	WorkCenterBusy      BlockedReason = "work_center_busy"
	OperatorUnavailable BlockedReason = "operator_unavailable"
	ToolUnavailable     BlockedReason = "tool_unavailable"
)

// PredecessorState is the slice of a predecessor operation that gating
// needs: its current status and planned run time in minutes.
type PredecessorState struct {
	Status         operation.Status
	PlannedRunTime int
}

// EdgeCheck pairs a dependency edge with its predecessor's state.
type EdgeCheck struct {
	Edge        dependency.Edge
	Predecessor PredecessorState
}

// PeerState is the slice of a sibling operation at the same work center
// that occupancy checks need.
type PeerState struct {
	Status         operation.Status
	PlannedRunTime int
}

// Input carries everything Evaluate needs. All checks run; none
// short-circuits, so the verdict reports the complete blocked set.
type Input struct {
	AssignedUserID    string
	Edges             []EdgeCheck
	WorkCenterPeers   []PeerState
	MaterialAvailable bool
	ToolingAvailable  bool
}

// Verdict is the outcome of a readiness evaluation.
type Verdict struct {
	IsReady           bool
	BlockedReasons    []BlockedReason
	EstimatedWaitTime int // minutes, meaningful only when not ready
}

// Blocked reports whether reason is present in the verdict.
func (v Verdict) Blocked(reason BlockedReason) bool {
	for _, r := range v.BlockedReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Evaluate computes the readiness verdict for one operation.
//
// Per dependency edge:
//   - finish_to_start blocks until the predecessor is completed; while
//     blocked it contributes predecessor planned run time plus lag to the
//     wait estimate
//   - start_to_start blocks only while the predecessor is still pending
//   - finish_to_finish and start_to_finish constrain finishing, not
//     starting, and never block here
//
// Resource checks: work center occupancy (any peer in setup or running),
// operator assignment, and the material/tooling availability signals.
// The wait estimate is the max over contributing checks, not their sum.
func Evaluate(in Input) Verdict {
	var reasons []BlockedReason
	waitTime := 0

	predecessorBlocked := false
	for _, check := range in.Edges {
		switch check.Edge.Type {
		case dependency.FinishToStart:
			if check.Predecessor.Status != operation.StatusCompleted {
				predecessorBlocked = true
				if wait := check.Predecessor.PlannedRunTime + check.Edge.LagTime; wait > waitTime {
					waitTime = wait
				}
			}
		case dependency.StartToStart:
			if check.Predecessor.Status == operation.StatusPending {
				predecessorBlocked = true
			}
		case dependency.FinishToFinish, dependency.StartToFinish:
			// Finish-side constraints are not enforced by the start gate.
		}
	}
	if predecessorBlocked {
		reasons = append(reasons, WaitingPredecessor)
	}

	if !in.MaterialAvailable {
		reasons = append(reasons, MaterialUnavailable)
	}

	busy := false
	queuedWait := 0
	for _, peer := range in.WorkCenterPeers {
		if operation.Active(peer.Status) {
			busy = true
		}
		if peer.Status == operation.StatusPending {
			queuedWait += peer.PlannedRunTime
		}
	}
	if busy {
		reasons = append(reasons, WorkCenterBusy)
		if queuedWait > waitTime {
			waitTime = queuedWait
		}
	}

	if in.AssignedUserID == "" {
		reasons = append(reasons, OperatorUnavailable)
	}

	if !in.ToolingAvailable {
		reasons = append(reasons, ToolUnavailable)
	}

	verdict := Verdict{
		IsReady:        len(reasons) == 0,
		BlockedReasons: reasons,
	}
	if !verdict.IsReady {
		verdict.EstimatedWaitTime = waitTime
	}
	return verdict
}
