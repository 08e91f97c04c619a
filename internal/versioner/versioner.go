package versioner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Record is a row of the migration bookkeeping table
type Record struct {
	Version   string    `gorm:"primaryKey;column:version"`
	Name      string    `gorm:"column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// Versioner tracks which migrations of a service have been applied
type Versioner struct {
	db    *gorm.DB
	table string
}

func NewVersioner(db *gorm.DB, tableName string) *Versioner {
	return &Versioner{
		db:    db,
		table: tableName,
	}
}

// Table returns the bookkeeping table name
func (v *Versioner) Table() string {
	return v.table
}

// Initialize creates the bookkeeping table if it does not exist
func (v *Versioner) Initialize(ctx context.Context) error {
	if err := v.db.WithContext(ctx).Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255),
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, v.table)).Error; err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// AppliedVersions returns applied versions in ascending order
func (v *Versioner) AppliedVersions(ctx context.Context) ([]string, error) {
	var records []Record
	if err := v.db.WithContext(ctx).Table(v.table).Order("version ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}

	versions := make([]string, len(records))
	for i, r := range records {
		versions[i] = r.Version
	}
	return versions, nil
}

func (v *Versioner) IsApplied(ctx context.Context, version string) (bool, error) {
	var count int64
	if err := v.db.WithContext(ctx).Table(v.table).Where("version = ?", version).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

func (v *Versioner) RecordApplied(ctx context.Context, version, name string) error {
	record := Record{
		Version:   version,
		Name:      name,
		AppliedAt: time.Now().UTC(),
	}
	if err := v.db.WithContext(ctx).Table(v.table).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}
	return nil
}

// RemoveApplied removes a migration record (for rollback)
func (v *Versioner) RemoveApplied(ctx context.Context, version string) error {
	if err := v.db.WithContext(ctx).Table(v.table).Where("version = ?", version).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", version, err)
	}
	return nil
}

// Reset forgets every applied migration
func (v *Versioner) Reset(ctx context.Context) error {
	if err := v.db.WithContext(ctx).Table(v.table).Where("1 = 1").Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to reset migration table: %w", err)
	}
	return nil
}

// LatestVersion returns the newest applied version, or "" when none
func (v *Versioner) LatestVersion(ctx context.Context) (string, error) {
	var record Record
	err := v.db.WithContext(ctx).Table(v.table).Order("version DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest version: %w", err)
	}
	return record.Version, nil
}

func (v *Versioner) AppliedCount(ctx context.Context) (int64, error) {
	var count int64
	if err := v.db.WithContext(ctx).Table(v.table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count applied migrations: %w", err)
	}
	return count, nil
}
