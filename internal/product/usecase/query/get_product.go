package query

import (
	"fmt"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// GetProductQuery represents the query to get a product by id or SKU
type GetProductQuery struct {
	ID  uint
	SKU string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query. SKU lookup is used when ID is zero.
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	if query.ID != 0 {
		return h.repo.FindByID(query.ID)
	}
	if query.SKU == "" {
		return nil, fmt.Errorf("product id or SKU is required")
	}

	product, err := h.repo.FindBySKU(query.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to look up SKU: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}
