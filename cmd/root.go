package cmd

import (
	"errors"
	"fmt"
	"os"

	"sheet-sync/core/logger"
	"sheet-sync/feature/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "sheet-sync",
	Short: "Spreadsheet to database synchronization",
	Long: `sheet-sync loads spreadsheet worksheets into relational tables.
Rows that disappear from a worksheet are soft-deleted, rows that come back
are reactivated and every current row is upserted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Failed tables were already logged per table by the run itself
		if errors.Is(err, pipeline.ErrTablesFailed) {
			os.Exit(1)
		}

		// Console format with the development config gives ISO8601 timestamps for CLI users
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
