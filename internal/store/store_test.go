package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pankajredekar/gormcrud/internal/migrations"
	"github.com/pankajredekar/gormcrud/internal/models"
	"github.com/pankajredekar/gormcrud/internal/runner"
	"github.com/pankajredekar/gormcrud/internal/versioner"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, registry *runner.Registry) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	ctx := context.Background()
	ver := versioner.NewVersioner(db, "_test_migrations")
	if err := ver.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := runner.NewRunner(db, registry, ver).Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func TestAddressCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	created, err := s.Create(ctx, models.AddressPayload{PostalCode: "75000", City: "Paris"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create should assign an id")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Errorf("Expected %+v, got %+v", created, got)
	}
}

func TestAddressGetMissing(t *testing.T) {
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	_, err := s.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAddressUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	created, err := s.Create(ctx, models.AddressPayload{PostalCode: "75000", City: "Paris"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := s.Update(ctx, created.ID, models.AddressPayload{PostalCode: "69000", City: "Lyon"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Update must not change the id: %s != %s", updated.ID, created.ID)
	}
	if updated.PostalCode != "69000" || updated.City != "Lyon" {
		t.Errorf("Unexpected updated address %+v", updated)
	}

	got, _ := s.Get(ctx, created.ID)
	if got != updated {
		t.Errorf("Stored row %+v should match returned row %+v", got, updated)
	}

	// Empty values are written too
	updated, err = s.Update(ctx, created.ID, models.AddressPayload{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = s.Get(ctx, created.ID)
	if got.City != "" || got.PostalCode != "" {
		t.Errorf("Expected empty fields, got %+v", got)
	}

	if _, err := s.Update(ctx, uuid.New(), models.AddressPayload{City: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update of a missing address should return ErrNotFound, got %v", err)
	}
}

func TestAddressDelete(t *testing.T) {
	ctx := context.Background()
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	created, _ := s.Create(ctx, models.AddressPayload{PostalCode: "75000", City: "Paris"})

	n, err := s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 row affected, got %d", n)
	}

	n, err = s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 rows affected on second delete, got %d", n)
	}
}

func TestAddressPage(t *testing.T) {
	ctx := context.Background()
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	for i := 0; i < 5; i++ {
		if _, err := s.Create(ctx, models.AddressPayload{PostalCode: "7500" + string(rune('0'+i)), City: "Paris"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	var seen []models.Address
	for page := 1; page <= 3; page++ {
		addresses, numPages, err := s.Page(ctx, page, 2)
		if err != nil {
			t.Fatalf("Page %d failed: %v", page, err)
		}
		if numPages != 3 {
			t.Errorf("Expected 3 pages, got %d", numPages)
		}
		if len(addresses) > 2 {
			t.Errorf("Page %d has %d addresses, more than per_page", page, len(addresses))
		}
		seen = append(seen, addresses...)
	}

	if len(seen) != 5 {
		t.Fatalf("Expected 5 addresses across pages, got %d", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if seen[i-1].ID.String() >= seen[i].ID.String() {
			t.Errorf("Addresses should be ordered by id ascending")
		}
	}

	addresses, _, err := s.Page(ctx, 4, 2)
	if err != nil {
		t.Fatalf("Page past the end failed: %v", err)
	}
	if len(addresses) != 0 {
		t.Errorf("Expected an empty page past the end, got %d", len(addresses))
	}

	if _, _, err := s.Page(ctx, 0, 2); err == nil {
		t.Error("Page 0 should be rejected")
	}
}

func TestAddressPageEmpty(t *testing.T) {
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	addresses, numPages, err := s.Page(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if numPages != 0 {
		t.Errorf("Expected 0 pages, got %d", numPages)
	}
	if addresses == nil || len(addresses) != 0 {
		t.Errorf("Expected an empty non-nil slice, got %v", addresses)
	}
}

func TestAddressPageHugeSizes(t *testing.T) {
	ctx := context.Background()
	s := NewAddressStore(setupTestDB(t, migrations.Address()))

	for _, city := range []string{"Paris", "Lyon"} {
		if _, err := s.Create(ctx, models.AddressPayload{PostalCode: "75000", City: city}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	addresses, numPages, err := s.Page(ctx, 1, math.MaxInt64)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if numPages != 1 {
		t.Errorf("Expected 1 page, got %d", numPages)
	}
	if len(addresses) != 2 {
		t.Errorf("Expected 2 addresses on the only page, got %d", len(addresses))
	}

	addresses, numPages, err = s.Page(ctx, 3, math.MaxInt64/2+1)
	if err != nil {
		t.Fatalf("Page past the end failed: %v", err)
	}
	if numPages != 1 {
		t.Errorf("Expected 1 page, got %d", numPages)
	}
	if len(addresses) != 0 {
		t.Errorf("Expected an empty page past the end, got %d", len(addresses))
	}

	addresses, _, err = s.Page(ctx, math.MaxInt64, 2)
	if err != nil {
		t.Fatalf("Page far past the end failed: %v", err)
	}
	if len(addresses) != 0 {
		t.Errorf("Expected an empty page far past the end, got %d", len(addresses))
	}
}

func newWidget() models.Product {
	return models.Product{Name: "Widget", Price: 9.99, Stock: 10, Description: "d", DateAdded: "2024-01-01"}
}

func TestProductCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore(setupTestDB(t, migrations.Products()))

	input := newWidget()
	input.ID = 99
	created, err := s.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 || created.ID == 99 {
		t.Errorf("Expected a store-assigned id, got %d", created.ID)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != created {
		t.Errorf("Expected %+v, got %+v", created, got)
	}

	if _, err := s.Get(ctx, created.ID+1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestProductList(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore(setupTestDB(t, migrations.Products()))

	products, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", products)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, newWidget()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	products, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 3 {
		t.Errorf("Expected 3 products, got %d", len(products))
	}
}

func TestProductUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore(setupTestDB(t, migrations.Products()))

	created, _ := s.Create(ctx, newWidget())

	changed := models.Product{Name: "Gadget", Price: 0, Stock: 0, Description: "", DateAdded: "2025-02-02"}
	n, err := s.Update(ctx, created.ID, changed)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 row affected, got %d", n)
	}

	got, _ := s.Get(ctx, created.ID)
	changed.ID = created.ID
	if got != changed {
		t.Errorf("Expected %+v, got %+v", changed, got)
	}

	n, err = s.Update(ctx, created.ID+100, changed)
	if err != nil {
		t.Fatalf("Update of a missing product failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 rows affected, got %d", n)
	}
}

func TestProductDelete(t *testing.T) {
	ctx := context.Background()
	s := NewProductStore(setupTestDB(t, migrations.Products()))

	created, _ := s.Create(ctx, newWidget())

	n, err := s.Delete(ctx, created.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: expected 1 row, got %d (%v)", n, err)
	}
	n, err = s.Delete(ctx, created.ID)
	if err != nil || n != 0 {
		t.Fatalf("Second delete: expected 0 rows, got %d (%v)", n, err)
	}
}
