package query

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// GetStatsQuery represents the query to get inventory statistics
type GetStatsQuery struct{}

// InventoryStats represents aggregate inventory statistics
type InventoryStats struct {
	TotalProducts   int64           `json:"total_products"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCostValue  decimal.Decimal `json:"total_cost_value"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	CategoryCount   int64           `json:"category_count"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*InventoryStats, error) {
	products, err := h.repo.FindAll(domain.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &InventoryStats{
		TotalProducts:  int64(len(products)),
		TotalValue:     decimal.Zero,
		TotalCostValue: decimal.Zero,
	}
	categories := make(map[string]bool)

	for _, p := range products {
		stats.TotalQuantity += int64(p.Quantity)
		stats.TotalValue = stats.TotalValue.Add(p.StockValue())
		stats.TotalCostValue = stats.TotalCostValue.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.IsOutOfStock() {
			stats.OutOfStockCount++
		}
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		if p.Category != "" {
			categories[p.Category] = true
		}
	}
	stats.CategoryCount = int64(len(categories))

	return stats, nil
}
