package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the shopfloor database",
		Long:  `Initialize the shopfloor database at ~/.shopfloor/shopfloor.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing shopfloor database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  shopfloor workcenter create \"CNC Mill 1\"")
			fmt.Println("  shopfloor workorder create --priority 5")

			return nil
		},
	}
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo fixtures",
		Long:  `Populate the database with a small demo shop: work centers, operators, and a work order with a dependent routing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Demo fixtures created")
			fmt.Println("  3 work centers, 3 users, 1 work order with a 4-operation routing")
			return nil
		},
	}
}
