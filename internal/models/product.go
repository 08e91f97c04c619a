package models

// Product is a catalog entry owned by the product service. The store assigns ID.
type Product struct {
	ID          int32   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int32   `gorm:"not null" json:"stock"`
	Description string  `gorm:"not null" json:"description"`
	DateAdded   string  `gorm:"not null" json:"date_added"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

type productBody struct {
	ID          *int32   `json:"id"`
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int32   `json:"stock"`
	Description *string  `json:"description"`
	DateAdded   *string  `json:"date_added"`
}

// DecodeProductPayload decodes a create/update body. Every field except id is
// required; a supplied id is ignored.
func DecodeProductPayload(data []byte) (Product, error) {
	var body productBody
	if err := decode(data, &body); err != nil {
		return Product{}, err
	}

	switch {
	case body.Name == nil:
		return Product{}, missing("name")
	case body.Price == nil:
		return Product{}, missing("price")
	case body.Stock == nil:
		return Product{}, missing("stock")
	case body.Description == nil:
		return Product{}, missing("description")
	case body.DateAdded == nil:
		return Product{}, missing("date_added")
	}

	return Product{
		Name:        *body.Name,
		Price:       *body.Price,
		Stock:       *body.Stock,
		Description: *body.Description,
		DateAdded:   *body.DateAdded,
	}, nil
}
