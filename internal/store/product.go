package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pankajredekar/gormcrud/internal/models"
	"gorm.io/gorm"
)

type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Create inserts p without an id and returns it with the store-assigned id
func (s *ProductStore) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = 0
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *ProductStore) Get(ctx context.Context, id int32) (models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// List returns every product, unfiltered
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Update overwrites every column but id and reports how many rows matched
func (s *ProductStore) Update(ctx context.Context, id int32, p models.Product) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Select("name", "price", "stock", "description", "date_added").
		Updates(models.Product{
			Name:        p.Name,
			Price:       p.Price,
			Stock:       p.Stock,
			Description: p.Description,
			DateAdded:   p.DateAdded,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *ProductStore) Delete(ctx context.Context, id int32) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
