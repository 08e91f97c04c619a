package runner

import (
	"context"
	"fmt"
	"sort"

	"github.com/pankajredekar/gormcrud/internal/schema"
	"github.com/pankajredekar/gormcrud/internal/versioner"
	"gorm.io/gorm"
)

// Migration interface that all migrations must implement
type Migration interface {
	Version() string
	Name() string
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Simulator is implemented by migrations that can describe their effect on
// an in-memory schema
type Simulator interface {
	Simulate(sim *schema.SchemaBuilder)
}

// Registry holds the migrations of one service
type Registry struct {
	migrations map[string]Migration
}

func NewRegistry(migrations ...Migration) *Registry {
	r := &Registry{
		migrations: make(map[string]Migration),
	}
	for _, m := range migrations {
		r.RegisterMigration(m)
	}
	return r
}

// RegisterMigration registers a migration, replacing any with the same version
func (r *Registry) RegisterMigration(m Migration) {
	r.migrations[m.Version()] = m
}

func (r *Registry) GetMigration(version string) (Migration, bool) {
	m, ok := r.migrations[version]
	return m, ok
}

// GetAllMigrations returns all migrations sorted by version
func (r *Registry) GetAllMigrations() []Migration {
	migrations := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version() < migrations[j].Version()
	})
	return migrations
}

// Runner executes migrations
type Runner struct {
	db        *gorm.DB
	registry  *Registry
	versioner *versioner.Versioner
}

func NewRunner(db *gorm.DB, registry *Registry, versioner *versioner.Versioner) *Runner {
	return &Runner{
		db:        db,
		registry:  registry,
		versioner: versioner,
	}
}

// Migrate applies all pending migrations in version order and returns how
// many were applied
func (r *Runner) Migrate(ctx context.Context) (int, error) {
	pending, err := r.GetPendingMigrations(ctx)
	if err != nil {
		return 0, err
	}

	db := r.db.WithContext(ctx)
	for i, m := range pending {
		if err := m.Up(db); err != nil {
			return i, fmt.Errorf("failed to apply migration %s: %w", m.Version(), err)
		}
		if err := r.versioner.RecordApplied(ctx, m.Version(), m.Name()); err != nil {
			return i, fmt.Errorf("failed to record migration %s: %w", m.Version(), err)
		}
	}

	return len(pending), nil
}

// Rollback rolls back the last n applied migrations
func (r *Runner) Rollback(ctx context.Context, n int) error {
	applied, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if len(applied) == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	if n > len(applied) {
		n = len(applied)
	}

	db := r.db.WithContext(ctx)
	for i := len(applied) - 1; i >= len(applied)-n; i-- {
		version := applied[i]
		m, ok := r.registry.GetMigration(version)
		if !ok {
			return fmt.Errorf("migration %s not found in registry", version)
		}

		if err := m.Down(db); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", version, err)
		}

		if err := r.versioner.RemoveApplied(ctx, version); err != nil {
			return err
		}
	}

	return nil
}

// Fresh tears down every registered migration, whether or not it was
// recorded as applied, forgets all records and migrates from scratch.
// Existing data in the service's tables is lost.
func (r *Runner) Fresh(ctx context.Context) (int, error) {
	all := r.registry.GetAllMigrations()

	db := r.db.WithContext(ctx)
	for i := len(all) - 1; i >= 0; i-- {
		if err := all[i].Down(db); err != nil {
			return 0, fmt.Errorf("failed to drop migration %s: %w", all[i].Version(), err)
		}
	}

	if err := r.versioner.Reset(ctx); err != nil {
		return 0, err
	}

	return r.Migrate(ctx)
}

// GetPendingMigrations returns migrations that haven't been applied
func (r *Runner) GetPendingMigrations(ctx context.Context) ([]Migration, error) {
	applied, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedMap[v] = true
	}

	var pending []Migration
	for _, m := range r.registry.GetAllMigrations() {
		if !appliedMap[m.Version()] {
			pending = append(pending, m)
		}
	}

	return pending, nil
}

// GetAppliedMigrations returns applied migrations known to the registry
func (r *Runner) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	applied, err := r.versioner.AppliedVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var migrations []Migration
	for _, v := range applied {
		if m, ok := r.registry.GetMigration(v); ok {
			migrations = append(migrations, m)
		}
	}

	return migrations, nil
}

// SimulateSchema replays every registered migration against an in-memory
// schema. Migrations that cannot simulate themselves are reported.
func (r *Runner) SimulateSchema() (*schema.SchemaBuilder, error) {
	builder := schema.NewSchemaBuilder()

	for _, m := range r.registry.GetAllMigrations() {
		sim, ok := m.(Simulator)
		if !ok {
			return nil, fmt.Errorf("migration %s does not support simulation", m.Version())
		}
		sim.Simulate(builder)
	}

	return builder, nil
}
