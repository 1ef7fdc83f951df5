package readiness

import (
	"testing"

	"github.com/example/shopfloor/internal/core/dependency"
	"github.com/example/shopfloor/internal/core/operation"
)

func readyInput() Input {
	return Input{
		AssignedUserID:    "USR-001",
		MaterialAvailable: true,
		ToolingAvailable:  true,
	}
}

func TestEvaluate_NoConstraintsIsReady(t *testing.T) {
	verdict := Evaluate(readyInput())

	if !verdict.IsReady {
		t.Fatalf("expected ready, got blocked: %v", verdict.BlockedReasons)
	}
	if verdict.EstimatedWaitTime != 0 {
		t.Errorf("expected zero wait time when ready, got %d", verdict.EstimatedWaitTime)
	}
}

func TestEvaluate_FinishToStartGating(t *testing.T) {
	for _, status := range []operation.Status{
		operation.StatusPending,
		operation.StatusSetup,
		operation.StatusRunning,
		operation.StatusPaused,
	} {
		in := readyInput()
		in.Edges = []EdgeCheck{{
			Edge:        dependency.Edge{OperationID: "OP-002", DependsOnID: "OP-001", Type: dependency.FinishToStart, LagTime: 10},
			Predecessor: PredecessorState{Status: status, PlannedRunTime: 30},
		}}

		verdict := Evaluate(in)
		if verdict.IsReady {
			t.Errorf("expected blocked while predecessor is %s", status)
		}
		if !verdict.Blocked(WaitingPredecessor) {
			t.Errorf("expected waiting_predecessor while predecessor is %s", status)
		}
		if verdict.EstimatedWaitTime != 40 {
			t.Errorf("expected wait of run+lag=40, got %d", verdict.EstimatedWaitTime)
		}
	}
}

func TestEvaluate_FinishToStartSatisfiedByCompletion(t *testing.T) {
	in := readyInput()
	in.Edges = []EdgeCheck{{
		Edge:        dependency.Edge{OperationID: "OP-002", DependsOnID: "OP-001", Type: dependency.FinishToStart},
		Predecessor: PredecessorState{Status: operation.StatusCompleted, PlannedRunTime: 30},
	}}

	if verdict := Evaluate(in); !verdict.IsReady {
		t.Errorf("expected ready once predecessor completed, got %v", verdict.BlockedReasons)
	}
}

func TestEvaluate_StartToStartBlocksOnlyWhilePending(t *testing.T) {
	in := readyInput()
	edge := dependency.Edge{OperationID: "OP-002", DependsOnID: "OP-001", Type: dependency.StartToStart}

	in.Edges = []EdgeCheck{{Edge: edge, Predecessor: PredecessorState{Status: operation.StatusPending}}}
	if verdict := Evaluate(in); !verdict.Blocked(WaitingPredecessor) {
		t.Error("expected start_to_start to block while predecessor pending")
	}

	in.Edges = []EdgeCheck{{Edge: edge, Predecessor: PredecessorState{Status: operation.StatusSetup}}}
	if verdict := Evaluate(in); !verdict.IsReady {
		t.Errorf("expected start_to_start satisfied once predecessor started, got %v", verdict.BlockedReasons)
	}
}

func TestEvaluate_FinishSideTypesNeverBlockStart(t *testing.T) {
	in := readyInput()
	in.Edges = []EdgeCheck{
		{
			Edge:        dependency.Edge{OperationID: "OP-002", DependsOnID: "OP-001", Type: dependency.FinishToFinish},
			Predecessor: PredecessorState{Status: operation.StatusPending, PlannedRunTime: 60},
		},
		{
			Edge:        dependency.Edge{OperationID: "OP-002", DependsOnID: "OP-003", Type: dependency.StartToFinish},
			Predecessor: PredecessorState{Status: operation.StatusPending, PlannedRunTime: 60},
		},
	}

	if verdict := Evaluate(in); !verdict.IsReady {
		t.Errorf("expected finish-side edges not to gate starting, got %v", verdict.BlockedReasons)
	}
}

func TestEvaluate_WorkCenterExclusivity(t *testing.T) {
	in := readyInput()
	in.WorkCenterPeers = []PeerState{
		{Status: operation.StatusRunning, PlannedRunTime: 45},
		{Status: operation.StatusPending, PlannedRunTime: 20},
		{Status: operation.StatusPending, PlannedRunTime: 15},
	}

	verdict := Evaluate(in)
	if verdict.IsReady {
		t.Fatal("expected work_center_busy while a peer is running")
	}
	if !verdict.Blocked(WorkCenterBusy) {
		t.Error("expected work_center_busy in blocked reasons")
	}
	// Wait estimate is the planned run time of queued pending peers.
	if verdict.EstimatedWaitTime != 35 {
		t.Errorf("expected wait of 35, got %d", verdict.EstimatedWaitTime)
	}
}

func TestEvaluate_PausedPeerDoesNotOccupy(t *testing.T) {
	in := readyInput()
	in.WorkCenterPeers = []PeerState{{Status: operation.StatusPaused, PlannedRunTime: 45}}

	if verdict := Evaluate(in); verdict.Blocked(WorkCenterBusy) {
		t.Error("expected paused peer not to occupy the work center")
	}
}

func TestEvaluate_OperatorUnassigned(t *testing.T) {
	in := readyInput()
	in.AssignedUserID = ""

	verdict := Evaluate(in)
	if !verdict.Blocked(OperatorUnavailable) {
		t.Error("expected operator_unavailable without an assigned user")
	}
}

func TestEvaluate_AllChecksReported(t *testing.T) {
	// No short-circuiting: every failing check appears in the verdict.
	in := Input{
		AssignedUserID:    "",
		MaterialAvailable: false,
		ToolingAvailable:  false,
		Edges: []EdgeCheck{{
			Edge:        dependency.Edge{OperationID: "OP-002", DependsOnID: "OP-001", Type: dependency.FinishToStart},
			Predecessor: PredecessorState{Status: operation.StatusRunning, PlannedRunTime: 30},
		}},
		WorkCenterPeers: []PeerState{{Status: operation.StatusSetup, PlannedRunTime: 10}},
	}

	verdict := Evaluate(in)
	for _, reason := range []BlockedReason{
		WaitingPredecessor, MaterialUnavailable, WorkCenterBusy, OperatorUnavailable, ToolUnavailable,
	} {
		if !verdict.Blocked(reason) {
			t.Errorf("expected %s in blocked reasons, got %v", reason, verdict.BlockedReasons)
		}
	}
}

func TestEvaluate_WaitTimeIsMaxNotSum(t *testing.T) {
	in := readyInput()
	in.Edges = []EdgeCheck{{
		Edge:        dependency.Edge{OperationID: "OP-003", DependsOnID: "OP-001", Type: dependency.FinishToStart, LagTime: 0},
		Predecessor: PredecessorState{Status: operation.StatusRunning, PlannedRunTime: 50},
	}}
	in.WorkCenterPeers = []PeerState{
		{Status: operation.StatusRunning, PlannedRunTime: 10},
		{Status: operation.StatusPending, PlannedRunTime: 30},
	}

	verdict := Evaluate(in)
	if verdict.EstimatedWaitTime != 50 {
		t.Errorf("expected max(50, 30)=50, got %d", verdict.EstimatedWaitTime)
	}
}
