package models

import (
	"github.com/google/uuid"
)

// Address is a postal address owned by the address service
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;not null" json:"id"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	City       string    `gorm:"not null" json:"city"`
}

// TableName returns the table name for Address
func (Address) TableName() string {
	return "address"
}

// AddressPayload is the body accepted by create and update
type AddressPayload struct {
	PostalCode string
	City       string
}

type addressBody struct {
	PostalCode *string `json:"postal_code"`
	City       *string `json:"city"`
}

// DecodeAddressPayload decodes a create/update body. Both fields are required.
func DecodeAddressPayload(data []byte) (AddressPayload, error) {
	var body addressBody
	if err := decode(data, &body); err != nil {
		return AddressPayload{}, err
	}
	if body.PostalCode == nil {
		return AddressPayload{}, missing("postal_code")
	}
	if body.City == nil {
		return AddressPayload{}, missing("city")
	}
	return AddressPayload{PostalCode: *body.PostalCode, City: *body.City}, nil
}
