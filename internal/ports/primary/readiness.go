package primary

import "context"

// ReadinessService defines the primary port for readiness evaluation.
type ReadinessService interface {
	// CalculateReadiness evaluates whether an operation may begin,
	// refreshes the cached verdict, and emits a ready notification when
	// the verdict flips from blocked to ready.
	CalculateReadiness(ctx context.Context, operationID string) (*ReadinessCheck, error)
}

// ReadinessCheck is the verdict returned to callers.
type ReadinessCheck struct {
	OperationID       string
	IsReady           bool
	BlockedReasons    []string
	EstimatedWaitTime int // minutes, meaningful only when not ready
	LastCalculated    string
}
