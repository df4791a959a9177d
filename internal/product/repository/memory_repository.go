package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// MemoryProductRepository keeps the catalog in process memory. It backs the
// offline/demo mode and doubles as the test store.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	nextID   uint
	products map[uint]domain.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		nextID:   1,
		products: make(map[uint]domain.Product),
	}
}

func (r *MemoryProductRepository) Create(product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return domain.ErrSKUExists
		}
	}

	product.ID = r.nextID
	r.nextID++
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) FindByID(id uint) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *MemoryProductRepository) FindBySKU(sku string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.SKU == sku {
			p := product
			return &p, nil
		}
	}
	return nil, nil
}

func (r *MemoryProductRepository) FindAll(filter domain.ListFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []domain.Product
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		if filter.LowStock && !p.IsLowStock() {
			continue
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (r *MemoryProductRepository) Update(product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) UpdateQuantity(id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.Quantity = quantity
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

func (r *MemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func matchesSearch(p domain.Product, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.SKU), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}
