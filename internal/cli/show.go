package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/pankajredekar/gormcrud/internal/database"
	"github.com/pankajredekar/gormcrud/internal/utils"
	"github.com/spf13/cobra"
)

var showSchema bool

var showCmd = &cobra.Command{
	Use:   "show <service>",
	Short: "Show migration status",
	Long:  "Shows all applied and pending migrations of a service",
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

		applied, err := run.GetAppliedMigrations(ctx)
		if err != nil {
			utils.PrintError("Failed to get applied migrations: %v", err)
			os.Exit(1)
		}

		pending, err := run.GetPendingMigrations(ctx)
		if err != nil {
			utils.PrintError("Failed to get pending migrations: %v", err)
			os.Exit(1)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\n"+strings.Repeat("=", 60))
		fmt.Fprintf(out, "Migration Status: %s\n", service)
		fmt.Fprintln(out, strings.Repeat("=", 60))

		if len(applied) > 0 {
			fmt.Fprintln(out, "\n✓ Applied Migrations:")
			for _, m := range applied {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n✓ Applied Migrations: (none)")
		}

		if len(pending) > 0 {
			fmt.Fprintln(out, "\n○ Pending Migrations:")
			for _, m := range pending {
				fmt.Fprintf(out, "  %s - %s\n", m.Version(), m.Name())
			}
		} else {
			fmt.Fprintln(out, "\n○ Pending Migrations: (none)")
		}

		if showSchema {
			sim, err := run.SimulateSchema()
			if err != nil {
				utils.PrintError("Failed to simulate schema: %v", err)
				os.Exit(1)
			}
			fmt.Fprintln(out, "\nSchema:")
			fmt.Fprint(out, sim.Schema.String())
		}

		fmt.Fprintln(out)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showSchema, "schema", false, "print the schema built by all registered migrations")
	rootCmd.AddCommand(showCmd)
}
