package secondary

import "context"

// AvailabilityChecker defines the secondary port for material and tooling
// availability signals. The default adapter reports everything available;
// a real inventory or tooling integration substitutes here without
// touching the readiness evaluator.
type AvailabilityChecker interface {
	// MaterialAvailable reports whether required material is on hand for
	// the operation.
	MaterialAvailable(ctx context.Context, operationID string) (bool, error)

	// ToolingAvailable reports whether required tooling is on hand for
	// the operation.
	ToolingAvailable(ctx context.Context, operationID string) (bool, error)
}
