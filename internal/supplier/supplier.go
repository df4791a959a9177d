package supplier

import (
	"errors"
	"time"
)

var ErrSupplierNotFound = errors.New("supplier not found")

// Supplier is a vendor products are sourced from
type Supplier struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Supplier) TableName() string {
	return "suppliers"
}

// Repository defines the contract for supplier data access
type Repository interface {
	Create(supplier *Supplier) error
	FindByID(id uint) (*Supplier, error)
	FindAll() ([]Supplier, error)
	Update(supplier *Supplier) error
	Delete(id uint) error
}
