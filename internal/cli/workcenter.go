package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var workCenterCmd = &cobra.Command{
	Use:   "workcenter",
	Short: "Manage work centers (machines and stations)",
	Long:  "Create, list, and inspect the work centers of the shop floor",
}

var workCenterCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new work center",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		description, _ := cmd.Flags().GetString("description")

		wc, err := wire.WorkCenterService().CreateWorkCenter(ctx, primary.CreateWorkCenterRequest{
			Name:        args[0],
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create work center: %w", err)
		}

		fmt.Printf("✓ Created work center %s: %s\n", wc.ID, wc.Name)
		return nil
	},
}

var workCenterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work centers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		workCenters, err := wire.WorkCenterService().ListWorkCenters(ctx)
		if err != nil {
			return fmt.Errorf("failed to list work centers: %w", err)
		}

		if len(workCenters) == 0 {
			fmt.Println("No work centers found")
			return nil
		}

		fmt.Printf("\n%-10s %-25s %-12s %s\n", "ID", "NAME", "STATUS", "DESCRIPTION")
		fmt.Println("─────────────────────────────────────────────────────────────────")
		for _, wc := range workCenters {
			fmt.Printf("%-10s %-25s %-12s %s\n", wc.ID, wc.Name, wc.Status, wc.Description)
		}
		fmt.Println()

		return nil
	},
}

var workCenterShowCmd = &cobra.Command{
	Use:   "show [work-center-id]",
	Short: "Show work center details and its queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		wc, err := wire.WorkCenterService().GetWorkCenter(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get work center: %w", err)
		}

		fmt.Printf("\nWork Center: %s\n", wc.ID)
		fmt.Printf("Name:        %s\n", wc.Name)
		fmt.Printf("Status:      %s\n", wc.Status)
		if wc.Description != "" {
			fmt.Printf("Description: %s\n", wc.Description)
		}
		fmt.Println()

		entries, err := wire.QueueService().GetQueue(ctx, id)
		if err == nil && len(entries) > 0 {
			fmt.Println("Queue:")
			for _, e := range entries {
				fmt.Printf("  %d. %s (priority %d, wait %dm)\n", e.QueuePosition, e.OperationID, e.Priority, e.EstimatedWaitTime)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	workCenterCreateCmd.Flags().StringP("description", "d", "", "Work center description")

	workCenterCmd.AddCommand(workCenterCreateCmd)
	workCenterCmd.AddCommand(workCenterListCmd)
	workCenterCmd.AddCommand(workCenterShowCmd)
}

// WorkCenterCmd returns the workcenter command tree.
func WorkCenterCmd() *cobra.Command {
	return workCenterCmd
}
