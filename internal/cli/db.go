package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pankajredekar/gormcrud/internal/config"
	"github.com/pankajredekar/gormcrud/internal/database"
	"github.com/pankajredekar/gormcrud/internal/migrations"
	"github.com/pankajredekar/gormcrud/internal/runner"
	"github.com/pankajredekar/gormcrud/internal/versioner"
	"gorm.io/gorm"
)

// registries maps a service name to its migration set
var registries = map[string]func() *runner.Registry{
	"address":  migrations.Address,
	"products": migrations.Products,
}

func serviceNames() []string {
	names := make([]string, 0, len(registries))
	for name := range registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validService(name string) error {
	if _, ok := registries[name]; !ok {
		return fmt.Errorf("unknown service %q (expected one of: %s)", name, strings.Join(serviceNames(), ", "))
	}
	return nil
}

// migrationTable is the bookkeeping table of one service. Services keep
// separate tables since the address service resets its own on every start.
func migrationTable(cfg *config.Config, service string) string {
	return cfg.MigrationTable + "_" + service
}

// openService connects to the database and prepares the runner of a service
func openService(ctx context.Context, cfg *config.Config, service string) (*gorm.DB, *runner.Runner, *versioner.Versioner, error) {
	newRegistry, ok := registries[service]
	if !ok {
		return nil, nil, nil, validService(service)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	ver := versioner.NewVersioner(db, migrationTable(cfg, service))
	if err := ver.Initialize(ctx); err != nil {
		database.Close(db)
		return nil, nil, nil, fmt.Errorf("initialize version table: %w", err)
	}

	return db, runner.NewRunner(db, newRegistry(), ver), ver, nil
}
