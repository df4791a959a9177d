package supplier

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(supplier *Supplier) error {
	if err := r.db.Create(supplier).Error; err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *GormRepository) FindByID(id uint) (*Supplier, error) {
	var supplier Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return &supplier, nil
}

func (r *GormRepository) FindAll() ([]Supplier, error) {
	var suppliers []Supplier
	if err := r.db.Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to find suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *GormRepository) Update(supplier *Supplier) error {
	result := r.db.Save(supplier)
	if result.Error != nil {
		return fmt.Errorf("failed to update supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (r *GormRepository) Delete(id uint) error {
	result := r.db.Delete(&Supplier{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
