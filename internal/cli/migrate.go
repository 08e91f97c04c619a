package cli

import (
	"os"

	"github.com/pankajredekar/gormcrud/internal/database"
	"github.com/pankajredekar/gormcrud/internal/utils"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <service>",
	Short: "Apply pending migrations",
	Long:  "Applies all migrations of a service that haven't been applied yet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := args[0]
		if err := validService(service); err != nil {
			utils.PrintError("%v", err)
			os.Exit(1)
		}

		cfg, err := loadConfig()
		if err != nil {
			utils.PrintError("Invalid config: %v", err)
			os.Exit(1)
		}

		ctx := cmd.Context()
		db, run, _, err := openService(ctx, cfg, service)
		if err != nil {
			utils.PrintError("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer database.Close(db)

		pending, err := run.GetPendingMigrations(ctx)
		if err != nil {
			utils.PrintError("Failed to get pending migrations: %v", err)
			os.Exit(1)
		}

		if len(pending) == 0 {
			utils.PrintSuccess("No pending migrations")
			return
		}

		utils.PrintInfo("Applying %d migration(s)...", len(pending))

		applied, err := run.Migrate(ctx)
		if err != nil {
			utils.PrintError("Failed to apply migrations: %v", err)
			os.Exit(1)
		}

		utils.PrintSuccess("Applied %d migration(s)", applied)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
