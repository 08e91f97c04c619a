package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pankajredekar/gormcrud/internal/config"
)

func TestValidService(t *testing.T) {
	for _, name := range []string{"address", "products"} {
		if err := validService(name); err != nil {
			t.Errorf("validService(%q) returned %v", name, err)
		}
	}
	if err := validService("orders"); err == nil {
		t.Error("Expected error for unknown service")
	}
}

func TestMigrationTablePerService(t *testing.T) {
	cfg := config.Default()
	a := migrationTable(cfg, "address")
	p := migrationTable(cfg, "products")
	if a == p {
		t.Fatalf("Services should not share a bookkeeping table, both use %s", a)
	}
	if a != "_gormcrud_migrations_address" {
		t.Errorf("Unexpected table name %s", a)
	}
}

func TestWriteStarterConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gormcrud.yml")
	if err := writeStarterConfig(path); err != nil {
		t.Fatalf("writeStarterConfig failed: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Starter config should validate: %v", err)
	}
	if cfg.ListenAddr != config.DefaultListenAddr {
		t.Errorf("Expected listen addr %s, got %s", config.DefaultListenAddr, cfg.ListenAddr)
	}
	if cfg.ReadBufferSize != config.DefaultReadBufferSize {
		t.Errorf("Expected buffer size %d, got %d", config.DefaultReadBufferSize, cfg.ReadBufferSize)
	}
	if cfg.ReadTimeout != config.DefaultReadTimeout {
		t.Errorf("Expected read timeout %s, got %s", config.DefaultReadTimeout, cfg.ReadTimeout)
	}
}

func TestOpenServiceMigrations(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseURL = "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, run, ver, err := openService(ctx, cfg, "products")
	if err != nil {
		t.Fatalf("openService failed: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	if ver.Table() != "_gormcrud_migrations_products" {
		t.Errorf("Unexpected version table %s", ver.Table())
	}

	applied, err := run.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("Expected 1 applied migration, got %d", applied)
	}
	if !db.Migrator().HasTable("products") {
		t.Error("products table should exist")
	}

	if _, _, _, err := openService(ctx, cfg, "orders"); err == nil {
		t.Error("Expected error for unknown service")
	}
}

func TestShowCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(dir, "test.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"show", "address", "--schema", "--config", filepath.Join(dir, "missing.yml")})
	defer rootCmd.SetArgs(nil)

	if err := Execute(context.Background()); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Migration Status: address",
		"202201010000010001 - create_address",
		"Table: address",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestNoColorFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(dir, "test.db"))

	previous := color.NoColor
	color.NoColor = false
	defer func() {
		color.NoColor = previous
		noColor = false
	}()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"show", "products", "--no-color", "--config", filepath.Join(dir, "missing.yml")})
	defer rootCmd.SetArgs(nil)

	if err := Execute(context.Background()); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !color.NoColor {
		t.Error("--no-color should disable colored output")
	}
	if !strings.Contains(out.String(), "Migration Status: products") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}
