package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/cli"
	"github.com/example/shopfloor/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "shopfloor",
		Short:   "shopfloor - work center queues and operation readiness",
		Version: version.String(),
		Long: `shopfloor is a CLI for running a small manufacturing execution system.
It tracks work orders through routings of dependent operations, decides
which operations are ready to run, and keeps a prioritized queue per
work center.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.WorkCenterCmd())
	rootCmd.AddCommand(cli.WorkOrderCmd())
	rootCmd.AddCommand(cli.OperationCmd())
	rootCmd.AddCommand(cli.QueueCmd())
	rootCmd.AddCommand(cli.StationCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
