package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/config"
)

var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Pin this terminal to a work center and operator",
	Long: `A shop floor terminal usually lives at one work center and is used by
one operator. Pinning them lets queue and assignment commands omit the
work-center-id and user-id arguments.`,
}

var stationSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the default work center and operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		workCenterID, _ := cmd.Flags().GetString("workcenter")
		operatorID, _ := cmd.Flags().GetString("operator")

		if workCenterID == "" && operatorID == "" {
			return fmt.Errorf("nothing to set: pass --workcenter and/or --operator")
		}

		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		cfg, err := config.LoadConfig(home)
		if err != nil {
			cfg = &config.Config{Version: "1"}
		}
		if workCenterID != "" {
			cfg.DefaultWorkCenter = workCenterID
		}
		if operatorID != "" {
			cfg.OperatorID = operatorID
		}

		if err := config.SaveConfig(home, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Station pinned: work center %s, operator %s\n",
			orDash(cfg.DefaultWorkCenter), orDash(cfg.OperatorID))
		return nil
	},
}

var stationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the pinned work center and operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		cfg, err := config.LoadConfig(home)
		if err != nil {
			fmt.Println("No station config. Run: shopfloor station set --workcenter WC-001 --operator USR-001")
			return nil
		}

		fmt.Printf("Work center: %s\n", orDash(cfg.DefaultWorkCenter))
		fmt.Printf("Operator:    %s\n", orDash(cfg.OperatorID))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// defaultWorkCenter resolves a work center from the args or the station
// config, in that order.
func defaultWorkCenter(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	cfg, err := config.LoadConfig(home)
	if err != nil || cfg.DefaultWorkCenter == "" {
		return "", fmt.Errorf("no work-center-id given and no station default set (shopfloor station set --workcenter WC-XXX)")
	}
	return cfg.DefaultWorkCenter, nil
}

// defaultOperator resolves an operator from the args or the station
// config, in that order.
func defaultOperator(args []string, pos int) (string, error) {
	if len(args) > pos {
		return args[pos], nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	cfg, err := config.LoadConfig(home)
	if err != nil || cfg.OperatorID == "" {
		return "", fmt.Errorf("no user-id given and no station operator set (shopfloor station set --operator USR-XXX)")
	}
	return cfg.OperatorID, nil
}

func init() {
	stationSetCmd.Flags().StringP("workcenter", "w", "", "Default work center for this terminal")
	stationSetCmd.Flags().StringP("operator", "o", "", "Default operator for this terminal")

	stationCmd.AddCommand(stationSetCmd)
	stationCmd.AddCommand(stationShowCmd)
}

// StationCmd returns the station command tree.
func StationCmd() *cobra.Command {
	return stationCmd
}
