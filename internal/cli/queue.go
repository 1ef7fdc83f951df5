package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/wire"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect and rebuild work center queues",
	Long:  "Show queue snapshots, the next operation to run, and the ready set per work center",
}

var queueShowCmd = &cobra.Command{
	Use:   "show [work-center-id]",
	Short: "Show the current queue snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		workCenterID, err := defaultWorkCenter(args)
		if err != nil {
			return err
		}

		entries, err := wire.QueueService().GetQueue(ctx, workCenterID)
		if err != nil {
			return fmt.Errorf("failed to get queue: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("Queue for %s is empty\n", workCenterID)
			return nil
		}

		fmt.Printf("\nQueue for %s:\n", workCenterID)
		fmt.Printf("%-4s %-10s %-9s %s\n", "POS", "OPERATION", "PRIORITY", "EST. WAIT")
		fmt.Println("──────────────────────────────────────")
		for _, e := range entries {
			fmt.Printf("%-4d %-10s %-9d %dm\n", e.QueuePosition, e.OperationID, e.Priority, e.EstimatedWaitTime)
		}
		fmt.Println()

		return nil
	},
}

var queueNextCmd = &cobra.Command{
	Use:   "next [work-center-id]",
	Short: "Show the next operation to run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		workCenterID, err := defaultWorkCenter(args)
		if err != nil {
			return err
		}

		next, err := wire.QueueService().NextOperation(ctx, workCenterID)
		if err != nil {
			return fmt.Errorf("failed to get next operation: %w", err)
		}
		if next == nil {
			fmt.Printf("Nothing queued for %s\n", workCenterID)
			return nil
		}

		fmt.Printf("Next at %s: %s (priority %d)\n", workCenterID, next.OperationID, next.Priority)
		return nil
	},
}

var queueReadyCmd = &cobra.Command{
	Use:   "ready [work-center-id]",
	Short: "Evaluate and list the ready operations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		workCenterID, err := defaultWorkCenter(args)
		if err != nil {
			return err
		}

		ready, err := wire.QueueService().GetReadyOperations(ctx, workCenterID)
		if err != nil {
			return fmt.Errorf("failed to get ready operations: %w", err)
		}

		if len(ready) == 0 {
			fmt.Printf("No ready operations at %s\n", workCenterID)
			return nil
		}

		fmt.Printf("\nReady at %s:\n", workCenterID)
		for i, op := range ready {
			fmt.Printf("  %d. %s %s (priority %d, seq %d)\n", i+1, op.ID, op.OperationType, op.Priority, op.SequenceNumber)
		}
		fmt.Println()

		return nil
	},
}

var queueRebuildCmd = &cobra.Command{
	Use:   "rebuild [work-center-id]",
	Short: "Rebuild the queue snapshot from scratch",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		workCenterID, err := defaultWorkCenter(args)
		if err != nil {
			return err
		}

		if err := wire.QueueService().UpdateWorkCenterQueue(ctx, workCenterID); err != nil {
			return fmt.Errorf("failed to rebuild queue: %w", err)
		}

		fmt.Printf("✓ Queue rebuilt for %s\n", workCenterID)
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueShowCmd)
	queueCmd.AddCommand(queueNextCmd)
	queueCmd.AddCommand(queueReadyCmd)
	queueCmd.AddCommand(queueRebuildCmd)
}

// QueueCmd returns the queue command tree.
func QueueCmd() *cobra.Command {
	return queueCmd
}
