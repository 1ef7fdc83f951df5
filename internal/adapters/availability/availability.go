// Package availability provides the default material and tooling
// availability checks. Inventory and tool crib systems are external;
// until one is integrated the engine assumes availability, so the
// dependency and work center gates decide readiness on their own.
package availability

import (
	"context"

	"github.com/example/shopfloor/internal/ports/secondary"
)

// StaticChecker implements secondary.AvailabilityChecker with fixed
// answers.
type StaticChecker struct {
	material bool
	tooling  bool
}

// NewStaticChecker creates a checker that always returns the given
// answers.
func NewStaticChecker(material, tooling bool) *StaticChecker {
	return &StaticChecker{material: material, tooling: tooling}
}

// NewAlwaysAvailable creates the default checker used when no inventory
// system is wired in.
func NewAlwaysAvailable() *StaticChecker {
	return NewStaticChecker(true, true)
}

// MaterialAvailable reports whether material is staged for the operation.
func (c *StaticChecker) MaterialAvailable(ctx context.Context, operationID string) (bool, error) {
	return c.material, nil
}

// ToolingAvailable reports whether tooling is ready for the operation.
func (c *StaticChecker) ToolingAvailable(ctx context.Context, operationID string) (bool, error) {
	return c.tooling, nil
}

// Ensure StaticChecker implements the interface
var _ secondary.AvailabilityChecker = (*StaticChecker)(nil)
