package cli

import (
	"github.com/pankajredekar/gormcrud/internal/addressapi"
	"github.com/pankajredekar/gormcrud/internal/database"
	"github.com/pankajredekar/gormcrud/internal/logging"
	"github.com/pankajredekar/gormcrud/internal/store"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Serve the address API",
	Long:  "Recreates the address table and serves the address REST API on listen_addr",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.WithComponent("address")

		ctx := cmd.Context()
		db, run, _, err := openService(ctx, cfg, "address")
		if err != nil {
			return err
		}
		defer database.Close(db)

		applied, err := run.Fresh(ctx)
		if err != nil {
			return err
		}
		logging.InfoWith("address schema recreated", map[string]interface{}{
			"service":    "address",
			"migrations": applied,
		})

		app := addressapi.NewApp(store.NewAddressStore(db), log)
		if err := addressapi.ListenAndServe(ctx, cfg.ListenAddr, app); err != nil {
			logging.ErrorWith("service failed", map[string]interface{}{
				"service": "address",
				"error":   err,
			})
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
