package migrations

import (
	"github.com/pankajredekar/gormcrud/internal/runner"
	"github.com/pankajredekar/gormcrud/internal/schema"
	"gorm.io/gorm"
)

type CreateProducts struct{}

func (m CreateProducts) Version() string { return "202201010000020001" }

func (m CreateProducts) Name() string { return "create_products" }

// Up creates the products table only if it is absent, so restarts keep data
func (m CreateProducts) Up(db *gorm.DB) error {
	type Product struct {
		ID          int32   `gorm:"primaryKey;autoIncrement"`
		Name        string  `gorm:"type:text;not null"`
		Price       float64 `gorm:"not null"`
		Stock       int32   `gorm:"not null"`
		Description string  `gorm:"type:text;not null"`
		DateAdded   string  `gorm:"type:text;not null"`
	}
	if db.Migrator().HasTable("products") {
		return nil
	}
	return db.Table("products").Migrator().CreateTable(&Product{})
}

func (m CreateProducts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

func (m CreateProducts) Simulate(sim *schema.SchemaBuilder) {
	sim.CreateTable("products").
		PrimaryKey("id", "serial", true).
		Column("name", "text").
		Column("price", "float").
		Column("stock", "int").
		Column("description", "text").
		Column("date_added", "text")
}

// Products returns the migrations of the product service
func Products() *runner.Registry {
	return runner.NewRegistry(
		CreateProducts{},
	)
}
