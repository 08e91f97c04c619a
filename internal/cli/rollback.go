package cli

import (
	"os"
	"strconv"

	"github.com/pankajredekar/gormcrud/internal/database"
	"github.com/pankajredekar/gormcrud/internal/utils"
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <service> [n]",
	Short: "Rollback migrations",
	Long:  "Rolls back the last N migrations of a service (default: 1)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		service := args[0]
		if err := validService(service); err != nil {
			utils.PrintError("%v", err)
			os.Exit(1)
		}

		n := 1
		if len(args) > 1 {
			var err error
			n, err = strconv.Atoi(args[1])
			if err != nil || n < 1 {
				utils.PrintError("Invalid number: %s", args[1])
				os.Exit(1)
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			utils.PrintError("Invalid config: %v", err)
			os.Exit(1)
		}

		ctx := cmd.Context()
		db, run, ver, err := openService(ctx, cfg, service)
		if err != nil {
			utils.PrintError("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer database.Close(db)

		appliedCount, err := ver.AppliedCount(ctx)
		if err != nil {
			utils.PrintError("Failed to get applied count: %v", err)
			os.Exit(1)
		}

		if appliedCount == 0 {
			utils.PrintWarning("No migrations to rollback")
			return
		}

		if int64(n) > appliedCount {
			n = int(appliedCount)
		}

		utils.PrintInfo("Rolling back %d migration(s)...", n)

		if err := run.Rollback(ctx, n); err != nil {
			utils.PrintError("Failed to rollback: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Rolled back %d migration(s)", n)
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
