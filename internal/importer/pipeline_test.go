package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	productrepo "github.com/stockroomlabs/stockroom/internal/product/repository"
)

func seedStore(t *testing.T, products ...*productdomain.Product) *productrepo.MemoryProductRepository {
	t.Helper()
	store := productrepo.NewMemoryProductRepository()
	for _, p := range products {
		require.NoError(t, store.Create(p))
	}
	return store
}

func validRow(sku, name string) Row {
	return Row{
		"name":     name,
		"sku":      sku,
		"category": "Electronics",
		"price":    "99.99",
		"quantity": "10",
	}
}

func TestCheckDuplicates_FindsExistingSKUs(t *testing.T) {
	store := seedStore(t,
		&productdomain.Product{Name: "Old Laptop", SKU: "LAP001", Category: "Electronics"},
	)
	pipeline := NewPipeline(store)

	rows := []Row{validRow("LAP001", "New Laptop"), validRow("MOU001", "Mouse")}
	duplicates, err := pipeline.CheckDuplicates(context.Background(), rows)

	require.NoError(t, err)
	require.Len(t, duplicates, 1)
	assert.Equal(t, "LAP001", duplicates[0].SKU)
	assert.Equal(t, "New Laptop", duplicates[0].IncomingName)
	assert.Equal(t, "Old Laptop", duplicates[0].ExistingName)
	assert.NotZero(t, duplicates[0].ExistingID)
}

func TestCheckDuplicates_IgnoresRowsWithoutSKU(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	duplicates, err := pipeline.CheckDuplicates(context.Background(), []Row{{"name": "No SKU"}})

	require.NoError(t, err)
	assert.Empty(t, duplicates)
}

func TestRun_CreatesAllRows(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	rows := []Row{validRow("LAP001", "Laptop"), validRow("MOU001", "Mouse")}
	result, err := pipeline.Run(context.Background(), rows, ResolutionNone)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Skipped)
	assert.NotEmpty(t, result.RunID)

	created, err := store.FindBySKU("LAP001")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Laptop", created.Name)
	assert.True(t, decimal.NewFromFloat(99.99).Equal(created.Price))
	assert.Equal(t, 10, created.Quantity)
}

func TestRun_DuplicatesRequireResolution(t *testing.T) {
	store := seedStore(t,
		&productdomain.Product{Name: "Old Laptop", SKU: "LAP001", Category: "Electronics"},
	)
	pipeline := NewPipeline(store)

	rows := []Row{validRow("LAP001", "New Laptop"), validRow("MOU001", "Mouse")}
	_, err := pipeline.Run(context.Background(), rows, ResolutionNone)

	assert.ErrorIs(t, err, ErrDuplicatesUnresolved)

	// Nothing was applied, the non-duplicate row included
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRun_SkipLeavesExistingUntouched(t *testing.T) {
	store := seedStore(t,
		&productdomain.Product{Name: "Old Laptop", SKU: "LAP001", Category: "Electronics", Quantity: 3},
	)
	pipeline := NewPipeline(store)

	rows := []Row{validRow("LAP001", "New Laptop"), validRow("MOU001", "Mouse")}
	result, err := pipeline.Run(context.Background(), rows, ResolutionSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	existing, err := store.FindBySKU("LAP001")
	require.NoError(t, err)
	assert.Equal(t, "Old Laptop", existing.Name)
	assert.Equal(t, 3, existing.Quantity)
}

func TestRun_UpdateOverwritesExisting(t *testing.T) {
	store := seedStore(t,
		&productdomain.Product{Name: "Old Laptop", SKU: "LAP001", Category: "Clearance", Quantity: 3},
	)
	pipeline := NewPipeline(store)

	result, err := pipeline.Run(context.Background(), []Row{validRow("LAP001", "New Laptop")}, ResolutionUpdate)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 0, result.Skipped)

	updated, err := store.FindBySKU("LAP001")
	require.NoError(t, err)
	assert.Equal(t, "New Laptop", updated.Name)
	assert.Equal(t, "Electronics", updated.Category)
	assert.Equal(t, 10, updated.Quantity)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRun_CancelTouchesNothing(t *testing.T) {
	store := seedStore(t,
		&productdomain.Product{Name: "Old Laptop", SKU: "LAP001", Category: "Electronics"},
	)
	pipeline := NewPipeline(store)

	result, err := pipeline.Run(context.Background(), []Row{validRow("LAP001", "New"), validRow("MOU001", "Mouse")}, ResolutionCancel)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Skipped)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRun_RowFailureDoesNotAbortRun(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	bad := validRow("BAD001", "Broken")
	bad["price"] = "not-a-number"
	missing := Row{"name": "No Category", "sku": "BAD002", "price": "5", "quantity": "1"}
	rows := []Row{bad, missing, validRow("OK001", "Fine")}

	result, err := pipeline.Run(context.Background(), rows, ResolutionNone)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Equal(t, "BAD001", result.Errors[0].SKU)
	assert.Contains(t, result.Errors[0].Message, "invalid numeric value")
	assert.Contains(t, result.Errors[1].Message, "missing required field")

	ok, err := store.FindBySKU("OK001")
	require.NoError(t, err)
	assert.NotNil(t, ok)
}

func TestRun_SampleErrorsCapped(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	var rows []Row
	for i := 0; i < 12; i++ {
		bad := validRow(fmt.Sprintf("BAD%03d", i), "Broken")
		bad["quantity"] = "-1"
		rows = append(rows, bad)
	}

	result, err := pipeline.Run(context.Background(), rows, ResolutionNone)

	require.NoError(t, err)
	assert.Equal(t, 12, result.Failed)

	sample := result.SampleErrors(10)
	require.Len(t, sample, 11)
	assert.Equal(t, "... and 2 more", sample[10])
}

func TestRun_CancelledContextStopsBetweenRows(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Run(ctx, []Row{validRow("LAP001", "Laptop")}, ResolutionNone)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidResolution(t *testing.T) {
	pipeline := NewPipeline(seedStore(t))

	_, err := pipeline.Run(context.Background(), nil, Resolution("merge"))

	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestRun_TemplateImportsCleanly(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	rows, err := Parse(CSVTemplate(), "inventory-template.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	result, err := pipeline.Run(context.Background(), rows, ResolutionNone)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)

	for _, sku := range []string{"LAP001", "CHR001", "MOU001"} {
		product, err := store.FindBySKU(sku)
		require.NoError(t, err)
		require.NotNil(t, product, sku)
	}

	laptop, _ := store.FindBySKU("LAP001")
	assert.Equal(t, 15, laptop.Quantity)
	assert.Equal(t, 5, laptop.MinStock)
	require.NotNil(t, laptop.MaxStock)
	assert.Equal(t, 50, *laptop.MaxStock)
}

func TestRun_MixedNewAndExistingWithUpdate(t *testing.T) {
	store := seedStore(t,
		&productdomain.Product{
			Name:     "Old Chair",
			SKU:      "CHR001",
			Category: "Clearance",
			Price:    decimal.NewFromInt(99),
			Quantity: 2,
		},
	)
	pipeline := NewPipeline(store)

	rows, err := Parse(CSVTemplate(), "inventory-template.csv")
	require.NoError(t, err)

	result, err := pipeline.Run(context.Background(), rows, ResolutionUpdate)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Skipped)

	chair, err := store.FindBySKU("CHR001")
	require.NoError(t, err)
	assert.Equal(t, "Office Chair", chair.Name)
	assert.Equal(t, "Furniture", chair.Category)
	assert.Equal(t, 30, chair.Quantity)
	assert.True(t, chair.Price.Equal(decimal.RequireFromString("249.99")))

	for _, sku := range []string{"LAP001", "MOU001"} {
		product, err := store.FindBySKU(sku)
		require.NoError(t, err)
		require.NotNil(t, product, sku)
		assert.NotZero(t, product.ID)
	}

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRun_TXTTemplateImportsCleanly(t *testing.T) {
	store := seedStore(t)
	pipeline := NewPipeline(store)

	rows, err := Parse(TXTTemplate(), "inventory-template.txt")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	result, err := pipeline.Run(context.Background(), rows, ResolutionNone)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Successful)
}
