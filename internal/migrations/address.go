package migrations

import (
	"github.com/google/uuid"
	"github.com/pankajredekar/gormcrud/internal/runner"
	"github.com/pankajredekar/gormcrud/internal/schema"
	"gorm.io/gorm"
)

type CreateAddress struct{}

func (m CreateAddress) Version() string { return "202201010000010001" }

func (m CreateAddress) Name() string { return "create_address" }

func (m CreateAddress) Up(db *gorm.DB) error {
	// Frozen copy of the table shape at this version
	type Address struct {
		ID         uuid.UUID `gorm:"type:uuid;primaryKey;not null"`
		PostalCode string    `gorm:"not null"`
		City       string    `gorm:"not null"`
	}
	return db.Table("address").AutoMigrate(&Address{})
}

func (m CreateAddress) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("address")
}

func (m CreateAddress) Simulate(sim *schema.SchemaBuilder) {
	sim.CreateTable("address").
		PrimaryKey("id", "uuid", false).
		Column("postal_code", "text").
		Column("city", "text")
}

// Address returns the migrations of the address service
func Address() *runner.Registry {
	return runner.NewRegistry(
		CreateAddress{},
	)
}
