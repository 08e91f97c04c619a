package cli

import (
	"context"

	"github.com/pankajredekar/gormcrud/internal/config"
	"github.com/pankajredekar/gormcrud/internal/logging"
	"github.com/pankajredekar/gormcrud/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:          "gormcrud",
	Short:        "Address and product CRUD services backed by GORM",
	Long:         "gormcrud serves the address and product CRUD APIs and manages their migrations",
	SilenceUsage: true,
}

// Execute runs the CLI. Cancelling ctx stops a running service.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor {
			utils.DisableColor()
		}
	}
}

// loadConfig reads the config, validates it and initializes logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Init(cfg.Logging)
	if !utils.FileExists(configPath) {
		logging.Warn("config file not found, using defaults and environment")
	}
	logging.InfoWith("configuration loaded", map[string]interface{}{
		"config":      configPath,
		"listen_addr": cfg.ListenAddr,
	})
	return cfg, nil
}
