package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a product id does not resolve
	ErrProductNotFound = errors.New("product not found")
	// ErrSKUExists is returned when a create would violate SKU uniqueness
	ErrSKUExists = errors.New("sku already exists")
)

// Product represents a catalog entry. SKU is the external natural key and is
// unique across all products; Quantity is the authoritative stock level and is
// mutated only through explicit updates or the stock ledger.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	SKU         string          `json:"sku" gorm:"uniqueIndex;not null"`
	Category    string          `json:"category" gorm:"not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Cost        decimal.Decimal `json:"cost" gorm:"type:decimal(10,2);default:0"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	MinStock    int             `json:"min_stock" gorm:"not null;default:0"`
	MaxStock    *int            `json:"max_stock,omitempty"`
	Supplier    string          `json:"supplier"`
	Barcode     string          `json:"barcode"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product sits at or below its reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// IsOutOfStock reports whether the product has no stock left
func (p *Product) IsOutOfStock() bool {
	return p.Quantity == 0
}

// StockValue is the retail value of the units on hand
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ListFilter narrows FindAll results. Zero value lists everything.
type ListFilter struct {
	Category string
	Search   string // matches name, sku or description
	LowStock bool
}

// ProductRepository defines the contract for product data access.
// FindBySKU returns (nil, nil) when no product carries the SKU.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll(filter ListFilter) ([]Product, error)
	Update(product *Product) error
	UpdateQuantity(id uint, quantity int) error
	Delete(id uint) error
	Count() (int64, error)
}
