package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var operationCmd = &cobra.Command{
	Use:   "operation",
	Short: "Manage operations (manufacturing steps)",
	Long:  "Inspect operations, move them through their lifecycle, and manage dependencies",
}

var operationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		routingID, _ := cmd.Flags().GetString("routing")
		workCenterID, _ := cmd.Flags().GetString("workcenter")
		status, _ := cmd.Flags().GetString("status")

		operations, err := wire.OperationService().ListOperations(ctx, primary.OperationFilters{
			RoutingID:    routingID,
			WorkCenterID: workCenterID,
			Status:       status,
		})
		if err != nil {
			return fmt.Errorf("failed to list operations: %w", err)
		}

		if len(operations) == 0 {
			fmt.Println("No operations found")
			return nil
		}

		fmt.Printf("\n%-10s %-10s %-10s %-4s %-14s %-9s %s\n", "ID", "ROUTING", "CENTER", "SEQ", "STATUS", "PRIORITY", "TYPE")
		fmt.Println("────────────────────────────────────────────────────────────────────────")
		for _, op := range operations {
			fmt.Printf("%-10s %-10s %-10s %-4d %-14s %-9d %s\n",
				op.ID, op.RoutingID, op.WorkCenterID, op.SequenceNumber, colorStatus(op.Status), op.Priority, op.OperationType)
		}
		fmt.Println()

		return nil
	},
}

var operationShowCmd = &cobra.Command{
	Use:   "show [operation-id]",
	Short: "Show operation details and readiness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		op, err := wire.OperationService().GetOperation(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get operation: %w", err)
		}

		fmt.Printf("\nOperation:  %s (%s)\n", op.ID, op.OperationType)
		fmt.Printf("Routing:    %s (work order %s)\n", op.RoutingID, op.WorkOrderID)
		fmt.Printf("Center:     %s\n", op.WorkCenterID)
		fmt.Printf("Sequence:   %d\n", op.SequenceNumber)
		fmt.Printf("Status:     %s\n", colorStatus(op.Status))
		fmt.Printf("Priority:   %d\n", op.Priority)
		if op.AssignedUserID != "" {
			fmt.Printf("Operator:   %s\n", op.AssignedUserID)
		}
		fmt.Printf("Quantity:   %d/%d complete, %d scrapped\n", op.CompletedQty, op.PlannedQty, op.ScrappedQty)
		fmt.Printf("Planned:    %dm setup, %dm run\n", op.PlannedSetupTime, op.PlannedRunTime)
		if op.ActualSetupTime > 0 || op.ActualRunTime > 0 {
			fmt.Printf("Actual:     %dm setup, %dm run\n", op.ActualSetupTime, op.ActualRunTime)
		}
		if op.StartedAt != "" {
			fmt.Printf("Started:    %s\n", op.StartedAt)
		}
		if op.CompletedAt != "" {
			fmt.Printf("Completed:  %s\n", op.CompletedAt)
		}
		fmt.Println()

		check, err := wire.ReadinessService().CalculateReadiness(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to calculate readiness: %w", err)
		}
		if check.IsReady {
			fmt.Println("Readiness:  ready")
		} else {
			fmt.Printf("Readiness:  blocked (%s)", strings.Join(check.BlockedReasons, ", "))
			if check.EstimatedWaitTime > 0 {
				fmt.Printf(", estimated wait %dm", check.EstimatedWaitTime)
			}
			fmt.Println()
		}
		fmt.Println()

		return nil
	},
}

var operationStatusCmd = &cobra.Command{
	Use:   "status [operation-id] [new-status]",
	Short: "Move an operation through its lifecycle",
	Long:  "Move an operation to pending, setup, running, paused, completed, or skipped.\nIllegal transitions are rejected.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		notes, _ := cmd.Flags().GetString("notes")

		op, err := wire.OperationService().UpdateOperationStatus(ctx, args[0], args[1], notes)
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		fmt.Printf("✓ Operation %s is now %s\n", op.ID, op.Status)
		return nil
	},
}

var operationQtyCmd = &cobra.Command{
	Use:   "qty [operation-id] [completed] [scrapped]",
	Short: "Report completed and scrapped quantities",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		completed, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid completed quantity %q", args[1])
		}
		scrapped, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid scrapped quantity %q", args[2])
		}

		if err := wire.OperationService().UpdateOperationQuantity(ctx, args[0], completed, scrapped); err != nil {
			return fmt.Errorf("failed to update quantities: %w", err)
		}

		fmt.Printf("✓ Operation %s: %d complete, %d scrapped\n", args[0], completed, scrapped)
		return nil
	},
}

var operationTimesCmd = &cobra.Command{
	Use:   "times [operation-id] [actual-setup] [actual-run]",
	Short: "Record actual setup and run minutes",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		setup, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid setup time %q", args[1])
		}
		run, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid run time %q", args[2])
		}

		if err := wire.OperationService().RecordActualTimes(ctx, args[0], setup, run); err != nil {
			return fmt.Errorf("failed to record actual times: %w", err)
		}

		fmt.Printf("✓ Operation %s: %dm setup, %dm run recorded\n", args[0], setup, run)
		return nil
	},
}

var operationAssignCmd = &cobra.Command{
	Use:   "assign [operation-id] [user-id]",
	Short: "Assign an operator to an operation",
	Long:  "Assign an operator to an operation. With no user-id the station's pinned operator is used.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		userID, err := defaultOperator(args, 1)
		if err != nil {
			return err
		}

		if err := wire.OperationService().AssignUserToOperation(ctx, args[0], userID); err != nil {
			return fmt.Errorf("failed to assign operator: %w", err)
		}

		fmt.Printf("✓ Assigned %s to %s\n", userID, args[0])
		return nil
	},
}

var operationDependCmd = &cobra.Command{
	Use:   "depend [operation-id] [depends-on-id]",
	Short: "Add a dependency edge between two operations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		depType, _ := cmd.Flags().GetString("type")
		lag, _ := cmd.Flags().GetInt("lag")

		err := wire.OperationService().AddDependency(ctx, primary.AddDependencyRequest{
			OperationID:          args[0],
			DependsOnOperationID: args[1],
			DependencyType:       depType,
			LagTime:              lag,
		})
		if err != nil {
			return fmt.Errorf("failed to add dependency: %w", err)
		}

		fmt.Printf("✓ %s now depends on %s (%s)\n", args[0], args[1], depType)
		return nil
	},
}

func init() {
	operationListCmd.Flags().String("routing", "", "Filter by routing")
	operationListCmd.Flags().StringP("workcenter", "w", "", "Filter by work center")
	operationListCmd.Flags().StringP("status", "s", "", "Filter by status")

	operationStatusCmd.Flags().String("notes", "", "Notes recorded with the transition")

	operationDependCmd.Flags().String("type", "finish_to_start", "Dependency type (finish_to_start, start_to_start, finish_to_finish, start_to_finish)")
	operationDependCmd.Flags().Int("lag", 0, "Lag time in minutes")

	operationCmd.AddCommand(operationListCmd)
	operationCmd.AddCommand(operationShowCmd)
	operationCmd.AddCommand(operationStatusCmd)
	operationCmd.AddCommand(operationQtyCmd)
	operationCmd.AddCommand(operationTimesCmd)
	operationCmd.AddCommand(operationAssignCmd)
	operationCmd.AddCommand(operationDependCmd)
}

// OperationCmd returns the operation command tree.
func OperationCmd() *cobra.Command {
	return operationCmd
}
