package operation

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// TransitionContext provides context for status transition guards.
type TransitionContext struct {
	OperationID string
	From        Status
	To          Status
}

// CanUpdateStatus evaluates whether an operation may move between statuses.
// Rules:
// - Target status must be a known status
// - Source status must not be terminal
// - The move must exist in the transition table
func CanUpdateStatus(ctx TransitionContext) GuardResult {
	if !Valid(ctx.To) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown operation status %q", ctx.To),
		}
	}

	if Terminal(ctx.From) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("operation %s is %s and cannot change status", ctx.OperationID, ctx.From),
		}
	}

	if !CanTransition(ctx.From, ctx.To) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("illegal transition %s -> %s for operation %s", ctx.From, ctx.To, ctx.OperationID),
		}
	}

	return GuardResult{Allowed: true}
}

// QuantityContext provides context for quantity update guards.
type QuantityContext struct {
	OperationID  string
	CompletedQty int
	ScrappedQty  int
}

// CanUpdateQuantity evaluates whether reported quantities are acceptable.
// Rules:
// - Quantities must be non-negative
// Planned-quantity tolerance is intentionally not enforced here; only
// status gating is the engine's concern.
func CanUpdateQuantity(ctx QuantityContext) GuardResult {
	if ctx.CompletedQty < 0 || ctx.ScrappedQty < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("quantities for operation %s must be non-negative", ctx.OperationID),
		}
	}

	return GuardResult{Allowed: true}
}

// ActualsContext provides context for actual-time recording guards.
type ActualsContext struct {
	OperationID string
	Status      Status
	SetupTime   int
	RunTime     int
}

// CanRecordActuals evaluates whether actual times may be recorded.
// Rules:
// - Times must be non-negative
// - The operation must have started setup (pending and skipped have no
//   actuals to report)
func CanRecordActuals(ctx ActualsContext) GuardResult {
	if ctx.SetupTime < 0 || ctx.RunTime < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("actual times for operation %s must be non-negative", ctx.OperationID),
		}
	}

	if ctx.Status == StatusPending || ctx.Status == StatusSkipped {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("operation %s is %s and has no actual times to record", ctx.OperationID, ctx.Status),
		}
	}

	return GuardResult{Allowed: true}
}
