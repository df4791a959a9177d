package repository

import (
	"sync"
	"time"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
)

// MemoryMovementRepository is the in-process ledger used by the offline/demo
// mode and by tests. It has no multi-statement transaction: the movement is
// recorded first and the quantity update follows, mirroring the remote-API
// fallback ordering. A failed quantity update leaves an orphaned movement,
// which is the documented operational risk of that mode.
type MemoryMovementRepository struct {
	mu        sync.Mutex
	nextID    uint
	movements []domain.StockMovement
	products  productdomain.ProductRepository
}

func NewMemoryMovementRepository(products productdomain.ProductRepository) *MemoryMovementRepository {
	return &MemoryMovementRepository{
		nextID:   1,
		products: products,
	}
}

func (r *MemoryMovementRepository) Record(movement *domain.StockMovement) (*domain.MovementRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, err := r.products.FindByID(movement.ProductID)
	if err != nil {
		return nil, err
	}

	delta := movement.Quantity
	if movement.MovementType == domain.MovementOut {
		delta = -movement.Quantity
		if product.Quantity+delta < 0 {
			delta = -product.Quantity
		}
	}

	movement.ID = r.nextID
	r.nextID++
	movement.CreatedAt = time.Now()
	r.movements = append(r.movements, *movement)

	newQuantity := product.Quantity + delta
	if err := r.products.UpdateQuantity(movement.ProductID, newQuantity); err != nil {
		return nil, err
	}

	return &domain.MovementRecord{
		MovementID:   movement.ID,
		NewQuantity:  newQuantity,
		AppliedDelta: delta,
	}, nil
}

func (r *MemoryMovementRepository) FindRecent(productID *uint, limit int) ([]domain.AnnotatedMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}

	var annotated []domain.AnnotatedMovement
	for i := len(r.movements) - 1; i >= 0 && len(annotated) < limit; i-- {
		m := r.movements[i]
		if productID != nil && m.ProductID != *productID {
			continue
		}

		entry := domain.AnnotatedMovement{StockMovement: m}
		if product, err := r.products.FindByID(m.ProductID); err == nil {
			entry.ProductName = product.Name
			entry.ProductSKU = product.SKU
		}
		annotated = append(annotated, entry)
	}
	return annotated, nil
}

// Movements returns a copy of the ledger, oldest first
func (r *MemoryMovementRepository) Movements() []domain.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StockMovement, len(r.movements))
	copy(out, r.movements)
	return out
}
