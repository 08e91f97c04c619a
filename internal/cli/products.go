package cli

import (
	"github.com/pankajredekar/gormcrud/internal/database"
	"github.com/pankajredekar/gormcrud/internal/logging"
	"github.com/pankajredekar/gormcrud/internal/productapi"
	"github.com/pankajredekar/gormcrud/internal/rawhttp"
	"github.com/pankajredekar/gormcrud/internal/store"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Serve the product API",
	Long:  "Creates the products table if needed and serves the product API over raw TCP on listen_addr",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.WithComponent("products")

		ctx := cmd.Context()
		db, run, _, err := openService(ctx, cfg, "products")
		if err != nil {
			return err
		}
		defer database.Close(db)

		applied, err := run.Migrate(ctx)
		if err != nil {
			return err
		}
		logging.InfoWith("products schema ready", map[string]interface{}{
			"service":    "products",
			"migrations": applied,
		})

		srv := &rawhttp.Server{
			Addr:        cfg.ListenAddr,
			Handler:     productapi.NewHandlers(store.NewProductStore(db), log).Router(),
			BufferSize:  cfg.ReadBufferSize,
			ReadTimeout: cfg.ReadTimeout,
			Logger:      log,
		}
		if err := srv.ListenAndServe(ctx); err != nil {
			logging.ErrorWith("service failed", map[string]interface{}{
				"service": "products",
				"error":   err,
			})
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}
