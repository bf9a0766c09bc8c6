package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ProductStatus represents a product's sales state
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusInactive     ProductStatus = "INACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// IsValid checks if a product status is valid
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

type Product struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null;index"`
	Description string        `json:"description,omitempty"`
	SKU         string        `json:"sku" gorm:"uniqueIndex;not null"`
	Barcode     *string       `json:"barcode,omitempty" gorm:"uniqueIndex"`
	Price       float64       `json:"price" gorm:"not null"`
	Cost        *float64      `json:"cost,omitempty"`
	Quantity    int           `json:"quantity" gorm:"not null;default:0"`
	MinQuantity int           `json:"minQuantity" gorm:"not null;default:0"`
	MaxQuantity *int          `json:"maxQuantity,omitempty"`
	Status      ProductStatus `json:"status" gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CategoryID  uint          `json:"categoryId" gorm:"not null;index"`
	SupplierID  uint          `json:"supplierId" gorm:"not null;index"`
	// Attributes holds free-form product metadata (size, color, material)
	Attributes datatypes.JSON `json:"attributes,omitempty"`
	Category   *Category      `json:"category,omitempty"`
	Supplier   *Supplier      `json:"supplier,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// IsLowStock reports whether quantity has dropped below the minimum
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinQuantity
}
