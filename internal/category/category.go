package category

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNameExists       = errors.New("category name already exists")
)

// Category groups products for filtering and reporting
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Repository defines the contract for category data access
type Repository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindAll() ([]Category, error)
	Update(category *Category) error
	Delete(id uint) error
}
