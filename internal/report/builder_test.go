package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	productrepo "github.com/stockroomlabs/stockroom/internal/product/repository"
)

func seedCatalog(t *testing.T) *productrepo.MemoryProductRepository {
	t.Helper()
	store := productrepo.NewMemoryProductRepository()
	for _, p := range []*productdomain.Product{
		{Name: "Laptop", SKU: "LAP001", Category: "Electronics", Price: decimal.NewFromInt(1000), Quantity: 10, MinStock: 5},
		{Name: "Mouse", SKU: "MOU001", Category: "Electronics", Price: decimal.NewFromInt(20), Quantity: 3, MinStock: 5},
		{Name: "Chair", SKU: "CHR001", Category: "Furniture", Price: decimal.NewFromInt(250), Quantity: 0, MinStock: 2},
	} {
		require.NoError(t, store.Create(p))
	}
	return store
}

func TestBuild_SummaryAndBuckets(t *testing.T) {
	builder := NewBuilder(seedCatalog(t))

	data, err := builder.Build()

	require.NoError(t, err)
	assert.Equal(t, 3, data.Summary.TotalProducts)
	assert.Equal(t, 13, data.Summary.TotalQuantity)
	assert.True(t, decimal.NewFromInt(10060).Equal(data.Summary.TotalValue))

	// Mouse is low, Chair is out; both count as low stock in the summary
	assert.Equal(t, 2, data.Summary.LowStockCount)
	assert.Equal(t, 1, data.StockStatus.InStock)
	assert.Equal(t, 1, data.StockStatus.LowStock)
	assert.Equal(t, 1, data.StockStatus.OutOfStock)
}

func TestBuild_CategoryBreakdown(t *testing.T) {
	builder := NewBuilder(seedCatalog(t))

	data, err := builder.Build()

	require.NoError(t, err)
	require.Len(t, data.Categories, 2)

	byName := map[string]CategoryStat{}
	for _, c := range data.Categories {
		byName[c.Name] = c
	}
	assert.Equal(t, 2, byName["Electronics"].Count)
	assert.True(t, decimal.NewFromInt(10060).Equal(byName["Electronics"].Value))
	assert.Equal(t, 1, byName["Furniture"].Count)
}

func TestBuild_TopProductsRankedByValue(t *testing.T) {
	builder := NewBuilder(seedCatalog(t))

	data, err := builder.Build()

	require.NoError(t, err)
	require.NotEmpty(t, data.TopProducts)
	assert.Equal(t, "LAP001", data.TopProducts[0].SKU)
	assert.True(t, decimal.NewFromInt(10000).Equal(data.TopProducts[0].TotalValue))
}

func TestRenderCSV_SectionHeaders(t *testing.T) {
	builder := NewBuilder(seedCatalog(t))
	data, err := builder.Build()
	require.NoError(t, err)

	csv := string(RenderCSV(data))

	for _, section := range []string{
		"INVENTORY SUMMARY",
		"CATEGORY BREAKDOWN",
		"STOCK STATUS",
		"TOP PRODUCTS BY VALUE",
		"LOW STOCK ITEMS",
	} {
		assert.Contains(t, csv, section+"\n")
	}

	assert.Contains(t, csv, "Total Products,3\n")
	assert.Contains(t, csv, `"Mouse","MOU001",3,5,"Electronics"`)
}

func TestRenderCSV_NoLowStockSectionWhenHealthy(t *testing.T) {
	store := productrepo.NewMemoryProductRepository()
	require.NoError(t, store.Create(&productdomain.Product{
		Name: "Laptop", SKU: "LAP001", Category: "Electronics",
		Price: decimal.NewFromInt(1000), Quantity: 10, MinStock: 2,
	}))

	data, err := NewBuilder(store).Build()
	require.NoError(t, err)

	csv := string(RenderCSV(data))
	assert.NotContains(t, csv, "LOW STOCK ITEMS")
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 33.3, Percent(1, 3), 0.1)
	assert.Zero(t, Percent(1, 0))
}
