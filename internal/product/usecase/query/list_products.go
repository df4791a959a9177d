package query

import (
	"fmt"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// ListProductsQuery represents the query to list products with filters
type ListProductsQuery struct {
	Category string
	Search   string
	LowStock bool
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query; results are ordered by name.
func (h *ListProductsHandler) Handle(query ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(domain.ListFilter{
		Category: query.Category,
		Search:   query.Search,
		LowStock: query.LowStock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
