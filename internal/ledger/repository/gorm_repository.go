package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
)

type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockMovement{})
}

// Record inserts the movement and applies its delta to the product quantity
// inside one transaction. An OUT movement is clamped at zero stock; the
// returned record carries the delta that was actually applied.
func (r *GormMovementRepository) Record(movement *domain.StockMovement) (*domain.MovementRecord, error) {
	var record domain.MovementRecord

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product productdomain.Product
		if err := tx.First(&product, movement.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return productdomain.ErrProductNotFound
			}
			return err
		}

		delta := movement.Quantity
		if movement.MovementType == domain.MovementOut {
			delta = -movement.Quantity
			if product.Quantity+delta < 0 {
				delta = -product.Quantity
			}
		}

		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		newQuantity := product.Quantity + delta
		if err := tx.Model(&productdomain.Product{}).
			Where("id = ?", movement.ProductID).
			Update("quantity", newQuantity).Error; err != nil {
			return err
		}

		record = domain.MovementRecord{
			MovementID:   movement.ID,
			NewQuantity:  newQuantity,
			AppliedDelta: delta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindRecent returns movements newest-first, annotated with the owning
// product's name and SKU. The join happens at read time; movements whose
// product was deleted come back with empty product fields.
func (r *GormMovementRepository) FindRecent(productID *uint, limit int) ([]domain.AnnotatedMovement, error) {
	if limit <= 0 {
		limit = 100
	}

	var movements []domain.StockMovement
	query := r.db.Order("created_at DESC").Limit(limit)
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}

	annotated := make([]domain.AnnotatedMovement, 0, len(movements))
	names := make(map[uint]productdomain.Product)
	for _, m := range movements {
		product, seen := names[m.ProductID]
		if !seen {
			// Unscoped so soft-deleted products still annotate their history
			if err := r.db.Unscoped().First(&product, m.ProductID).Error; err == nil {
				names[m.ProductID] = product
			}
		}
		annotated = append(annotated, domain.AnnotatedMovement{
			StockMovement: m,
			ProductName:   product.Name,
			ProductSKU:    product.SKU,
		})
	}
	return annotated, nil
}
