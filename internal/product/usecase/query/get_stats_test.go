package query

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/internal/product/repository"
)

func TestGetStats_StockBuckets(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	products := []*domain.Product{
		{Name: "Laptop", SKU: "LAP001", Category: "Electronics", Price: decimal.NewFromInt(1000), Quantity: 10, MinStock: 2},
		{Name: "Mouse", SKU: "MOU001", Category: "Electronics", Price: decimal.NewFromInt(20), Quantity: 3, MinStock: 5},
		{Name: "Chair", SKU: "CHR001", Category: "Furniture", Price: decimal.NewFromInt(250), Quantity: 0, MinStock: 5},
	}
	for _, p := range products {
		require.NoError(t, repo.Create(p))
	}

	handler := NewGetStatsHandler(repo)
	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(13), stats.TotalQuantity)
	assert.Equal(t, int64(2), stats.CategoryCount)
	assert.Equal(t, int64(1), stats.OutOfStockCount)
	// Out-of-stock products sit at or below their reorder threshold too.
	assert.Equal(t, int64(2), stats.LowStockCount)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromInt(10060)))
}
