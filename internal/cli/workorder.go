package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var workOrderCmd = &cobra.Command{
	Use:   "workorder",
	Short: "Manage work orders and their routings",
	Long:  "Create work orders with routings, list them, and inspect their progress",
}

var workOrderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a work order with its routing",
	Long: `Create a work order together with its routing in one step.

Operations are given with repeated --op flags in the form
seq:type:work-center:setup:run (setup and run in minutes), and
dependency edges with repeated --dep flags in the form
seq:depends-on-seq:type[:lag].

Example:
  shopfloor workorder create --part PART-001 --priority 5 --due 2026-09-15 \
    --op 1:machining:WC-001:15:45 --op 2:inspection:WC-003:0:15 \
    --dep 2:1:finish_to_start`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		partID, _ := cmd.Flags().GetString("part")
		priority, _ := cmd.Flags().GetInt("priority")
		due, _ := cmd.Flags().GetString("due")
		routingName, _ := cmd.Flags().GetString("routing")
		qty, _ := cmd.Flags().GetInt("qty")
		opSpecs, _ := cmd.Flags().GetStringArray("op")
		depSpecs, _ := cmd.Flags().GetStringArray("dep")

		if len(opSpecs) == 0 {
			return fmt.Errorf("at least one --op is required")
		}
		if due != "" && len(due) == 10 {
			// Accept bare dates for convenience.
			due += "T00:00:00Z"
		}

		operations := make([]primary.OperationSpec, 0, len(opSpecs))
		for _, raw := range opSpecs {
			spec, err := parseOperationSpec(raw, qty, priority)
			if err != nil {
				return err
			}
			operations = append(operations, spec)
		}

		dependencies := make([]primary.DependencySpec, 0, len(depSpecs))
		for _, raw := range depSpecs {
			spec, err := parseDependencySpec(raw)
			if err != nil {
				return err
			}
			dependencies = append(dependencies, spec)
		}

		resp, err := wire.WorkOrderService().CreateWorkOrderWithRouting(ctx, primary.CreateWorkOrderRequest{
			PartID:       partID,
			Priority:     priority,
			DueDate:      due,
			RoutingName:  routingName,
			Operations:   operations,
			Dependencies: dependencies,
		})
		if err != nil {
			return fmt.Errorf("failed to create work order: %w", err)
		}

		fmt.Printf("✓ Created work order %s with routing %s\n", resp.WorkOrderID, resp.RoutingID)
		fmt.Printf("  Operations: %s\n", strings.Join(resp.OperationIDs, ", "))
		return nil
	},
}

var workOrderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		workOrders, err := wire.WorkOrderService().ListWorkOrders(ctx, primary.WorkOrderFilters{
			Status: status,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list work orders: %w", err)
		}

		if len(workOrders) == 0 {
			fmt.Println("No work orders found")
			return nil
		}

		fmt.Printf("\n%-10s %-12s %-14s %-9s %-12s\n", "ID", "PART", "STATUS", "PRIORITY", "DUE")
		fmt.Println("─────────────────────────────────────────────────────────────")
		for _, wo := range workOrders {
			part := wo.PartNumber
			if part == "" {
				part = "-"
			}
			due := wo.DueDate
			if due == "" {
				due = "-"
			} else if len(due) >= 10 {
				due = due[:10]
			}
			fmt.Printf("%-10s %-12s %-14s %-9d %-12s\n", wo.ID, part, colorStatus(wo.Status), wo.Priority, due)
		}
		fmt.Println()

		return nil
	},
}

var workOrderShowCmd = &cobra.Command{
	Use:   "show [work-order-id]",
	Short: "Show work order details and its operations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		wo, err := wire.WorkOrderService().GetWorkOrder(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get work order: %w", err)
		}

		fmt.Printf("\nWork Order: %s\n", wo.ID)
		if wo.PartNumber != "" {
			fmt.Printf("Part:       %s\n", wo.PartNumber)
		}
		fmt.Printf("Status:     %s\n", colorStatus(wo.Status))
		fmt.Printf("Priority:   %d\n", wo.Priority)
		if wo.DueDate != "" {
			fmt.Printf("Due:        %s\n", wo.DueDate)
		}
		if wo.CompletedAt != "" {
			fmt.Printf("Completed:  %s\n", wo.CompletedAt)
		}
		fmt.Println()

		return nil
	},
}

var workOrderRefreshCmd = &cobra.Command{
	Use:   "refresh [work-order-id]",
	Short: "Re-derive the work order status from its operations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		wo, err := wire.WorkOrderService().RefreshWorkOrderStatus(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to refresh work order: %w", err)
		}

		fmt.Printf("✓ Work order %s is %s\n", wo.ID, wo.Status)
		return nil
	},
}

// parseOperationSpec parses seq:type:work-center:setup:run.
func parseOperationSpec(raw string, qty, priority int) (primary.OperationSpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 5 {
		return primary.OperationSpec{}, fmt.Errorf("invalid --op %q: want seq:type:work-center:setup:run", raw)
	}

	seq, err := strconv.Atoi(parts[0])
	if err != nil {
		return primary.OperationSpec{}, fmt.Errorf("invalid --op %q: bad sequence number", raw)
	}
	setup, err := strconv.Atoi(parts[3])
	if err != nil {
		return primary.OperationSpec{}, fmt.Errorf("invalid --op %q: bad setup time", raw)
	}
	run, err := strconv.Atoi(parts[4])
	if err != nil {
		return primary.OperationSpec{}, fmt.Errorf("invalid --op %q: bad run time", raw)
	}

	return primary.OperationSpec{
		OperationType:    parts[1],
		WorkCenterID:     parts[2],
		SequenceNumber:   seq,
		PlannedQty:       qty,
		PlannedSetupTime: setup,
		PlannedRunTime:   run,
		Priority:         priority,
	}, nil
}

// parseDependencySpec parses seq:depends-on-seq:type[:lag].
func parseDependencySpec(raw string) (primary.DependencySpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return primary.DependencySpec{}, fmt.Errorf("invalid --dep %q: want seq:depends-on-seq:type[:lag]", raw)
	}

	seq, err := strconv.Atoi(parts[0])
	if err != nil {
		return primary.DependencySpec{}, fmt.Errorf("invalid --dep %q: bad sequence number", raw)
	}
	dependsOn, err := strconv.Atoi(parts[1])
	if err != nil {
		return primary.DependencySpec{}, fmt.Errorf("invalid --dep %q: bad depends-on sequence", raw)
	}

	lag := 0
	if len(parts) == 4 {
		lag, err = strconv.Atoi(parts[3])
		if err != nil {
			return primary.DependencySpec{}, fmt.Errorf("invalid --dep %q: bad lag", raw)
		}
	}

	return primary.DependencySpec{
		SequenceNumber:          seq,
		DependsOnSequenceNumber: dependsOn,
		DependencyType:          parts[2],
		LagTime:                 lag,
	}, nil
}

// colorStatus renders a status with the shop floor color conventions.
func colorStatus(status string) string {
	switch status {
	case "running", "in_progress", "manufacturing":
		return color.New(color.FgGreen).Sprint(status)
	case "paused", "setup", "todo", "hold", "quality_control":
		return color.New(color.FgYellow).Sprint(status)
	case "completed", "ship":
		return color.New(color.FgBlue).Sprint(status)
	case "scrapped", "skipped":
		return color.New(color.FgRed).Sprint(status)
	default:
		return status
	}
}

func init() {
	workOrderCreateCmd.Flags().String("part", "", "Part ID the work order produces")
	workOrderCreateCmd.Flags().IntP("priority", "p", 1, "Work order priority (higher runs first)")
	workOrderCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD or RFC3339)")
	workOrderCreateCmd.Flags().String("routing", "", "Routing name")
	workOrderCreateCmd.Flags().IntP("qty", "q", 1, "Planned quantity for every operation")
	workOrderCreateCmd.Flags().StringArray("op", nil, "Operation spec seq:type:work-center:setup:run (repeatable)")
	workOrderCreateCmd.Flags().StringArray("dep", nil, "Dependency spec seq:depends-on-seq:type[:lag] (repeatable)")

	workOrderListCmd.Flags().StringP("status", "s", "", "Filter by status")
	workOrderListCmd.Flags().Int("limit", 0, "Limit the number of results")

	workOrderCmd.AddCommand(workOrderCreateCmd)
	workOrderCmd.AddCommand(workOrderListCmd)
	workOrderCmd.AddCommand(workOrderShowCmd)
	workOrderCmd.AddCommand(workOrderRefreshCmd)
}

// WorkOrderCmd returns the workorder command tree.
func WorkOrderCmd() *cobra.Command {
	return workOrderCmd
}
