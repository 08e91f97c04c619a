package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pankajredekar/gormcrud/internal/models"
	"gorm.io/gorm"
)

type AddressStore struct {
	db *gorm.DB
}

func NewAddressStore(db *gorm.DB) *AddressStore {
	return &AddressStore{db: db}
}

// Create inserts an address under a freshly generated UUID and reads it back
func (s *AddressStore) Create(ctx context.Context, p models.AddressPayload) (models.Address, error) {
	a := models.Address{
		ID:         uuid.New(),
		PostalCode: p.PostalCode,
		City:       p.City,
	}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return models.Address{}, fmt.Errorf("insert address: %w", err)
	}
	return s.Get(ctx, a.ID)
}

func (s *AddressStore) Get(ctx context.Context, id uuid.UUID) (models.Address, error) {
	var a models.Address
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Address{}, ErrNotFound
	}
	if err != nil {
		return models.Address{}, fmt.Errorf("get address %s: %w", id, err)
	}
	return a, nil
}

// Page returns the 1-based page of addresses ordered by id, and the number of
// pages needed to hold every address at perPage per page.
func (s *AddressStore) Page(ctx context.Context, page, perPage int) ([]models.Address, int64, error) {
	if page < 1 || perPage < 1 {
		return nil, 0, fmt.Errorf("invalid page %d of size %d", page, perPage)
	}

	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Address{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count addresses: %w", err)
	}
	pp := int64(perPage)
	numPages := total / pp
	if total%pp != 0 {
		numPages++
	}

	addresses := []models.Address{}
	// Past the last page; also keeps (page-1)*perPage below total
	if int64(page-1) >= numPages {
		return addresses, numPages, nil
	}

	err := db.Order("id ASC").
		Limit(perPage).
		Offset(int((int64(page) - 1) * pp)).
		Find(&addresses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, numPages, nil
}

// Update changes postal code and city of an existing address and returns the
// updated row
func (s *AddressStore) Update(ctx context.Context, id uuid.UUID, p models.AddressPayload) (models.Address, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return models.Address{}, err
	}

	a.PostalCode = p.PostalCode
	a.City = p.City
	err = s.db.WithContext(ctx).
		Model(&a).
		Select("postal_code", "city").
		Updates(models.Address{PostalCode: a.PostalCode, City: a.City}).Error
	if err != nil {
		return models.Address{}, fmt.Errorf("update address %s: %w", id, err)
	}
	return a, nil
}

// Delete removes an address and reports how many rows were affected
func (s *AddressStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Address{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete address %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
