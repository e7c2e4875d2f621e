package cmd

import (
	"encoding/json"
	"fmt"

	"sheet-sync/core/config"
	"sheet-sync/core/database"
	"sheet-sync/feature/destination"

	"github.com/spf13/cobra"
)

// checkCmd verifies the destination schema without touching any data.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that destination tables exist with id and soft-delete columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		defer database.Close(db)

		store := destination.NewStore(db, destination.Options{
			IDColumn:      cfg.Sync.IDColumn,
			DeletedColumn: cfg.Sync.DeletedColumn,
		})
		report := store.CheckSchema(cmd.Context(), cfg.Sync.TableOrder)

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))

		if !report.Matched {
			return fmt.Errorf("destination schema does not match")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
