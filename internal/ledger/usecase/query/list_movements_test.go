package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
	ledgerrepo "github.com/stockroomlabs/stockroom/internal/ledger/repository"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	productrepo "github.com/stockroomlabs/stockroom/internal/product/repository"
)

func seedLedger(t *testing.T) (*ListMovementsHandler, uint, uint) {
	t.Helper()
	products := productrepo.NewMemoryProductRepository()
	laptop := &productdomain.Product{Name: "Laptop", SKU: "LAP001", Category: "Electronics", Quantity: 10}
	mouse := &productdomain.Product{Name: "Mouse", SKU: "MOU001", Category: "Electronics", Quantity: 50}
	require.NoError(t, products.Create(laptop))
	require.NoError(t, products.Create(mouse))

	movements := ledgerrepo.NewMemoryMovementRepository(products)
	for _, m := range []*domain.StockMovement{
		{ProductID: laptop.ID, MovementType: domain.MovementIn, Quantity: 5},
		{ProductID: mouse.ID, MovementType: domain.MovementOut, Quantity: 10},
		{ProductID: laptop.ID, MovementType: domain.MovementOut, Quantity: 2},
	} {
		_, err := movements.Record(m)
		require.NoError(t, err)
	}

	return NewListMovementsHandler(movements), laptop.ID, mouse.ID
}

func TestListMovements_NewestFirstWithAnnotations(t *testing.T) {
	handler, laptopID, mouseID := seedLedger(t)

	result, err := handler.Handle(ListMovementsQuery{})

	require.NoError(t, err)
	require.Len(t, result, 3)

	// Newest first
	assert.Equal(t, laptopID, result[0].ProductID)
	assert.Equal(t, domain.MovementOut, result[0].MovementType)
	assert.Equal(t, mouseID, result[1].ProductID)

	// Annotated with the owning product at read time
	assert.Equal(t, "Laptop", result[0].ProductName)
	assert.Equal(t, "LAP001", result[0].ProductSKU)
	assert.Equal(t, "Mouse", result[1].ProductName)
}

func TestListMovements_FilterByProduct(t *testing.T) {
	handler, laptopID, _ := seedLedger(t)

	result, err := handler.Handle(ListMovementsQuery{ProductID: &laptopID})

	require.NoError(t, err)
	require.Len(t, result, 2)
	for _, m := range result {
		assert.Equal(t, laptopID, m.ProductID)
	}
}

func TestListMovements_LimitApplied(t *testing.T) {
	handler, _, _ := seedLedger(t)

	result, err := handler.Handle(ListMovementsQuery{Limit: 1})

	require.NoError(t, err)
	assert.Len(t, result, 1)
}
