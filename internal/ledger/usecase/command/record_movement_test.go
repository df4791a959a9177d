package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
	ledgerrepo "github.com/stockroomlabs/stockroom/internal/ledger/repository"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	productrepo "github.com/stockroomlabs/stockroom/internal/product/repository"
)

func newTestHandler(t *testing.T, quantity int) (*RecordMovementHandler, *productrepo.MemoryProductRepository, uint) {
	t.Helper()
	products := productrepo.NewMemoryProductRepository()
	product := &productdomain.Product{Name: "Laptop", SKU: "LAP001", Category: "Electronics", Quantity: quantity}
	require.NoError(t, products.Create(product))

	movements := ledgerrepo.NewMemoryMovementRepository(products)
	return NewRecordMovementHandler(movements), products, product.ID
}

func TestRecordMovement_InAddsQuantity(t *testing.T) {
	handler, products, productID := newTestHandler(t, 10)

	result, err := handler.Handle(RecordMovementCommand{
		ProductID:    productID,
		MovementType: domain.MovementIn,
		Quantity:     5,
		Reason:       "restock",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, result.Record.NewQuantity)
	assert.Equal(t, 5, result.Record.AppliedDelta)
	assert.NotZero(t, result.Record.MovementID)

	product, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 15, product.Quantity)
}

func TestRecordMovement_OutSubtractsQuantity(t *testing.T) {
	handler, products, productID := newTestHandler(t, 10)

	result, err := handler.Handle(RecordMovementCommand{
		ProductID:    productID,
		MovementType: domain.MovementOut,
		Quantity:     5,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, result.Record.NewQuantity)
	assert.Equal(t, -5, result.Record.AppliedDelta)

	product, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Quantity)
}

func TestRecordMovement_OutClampsAtZero(t *testing.T) {
	handler, products, productID := newTestHandler(t, 10)

	result, err := handler.Handle(RecordMovementCommand{
		ProductID:    productID,
		MovementType: domain.MovementOut,
		Quantity:     25,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Record.NewQuantity)
	assert.Equal(t, -10, result.Record.AppliedDelta)

	product, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)
}

func TestRecordMovement_AdjustmentAddsQuantity(t *testing.T) {
	handler, _, productID := newTestHandler(t, 10)

	result, err := handler.Handle(RecordMovementCommand{
		ProductID:    productID,
		MovementType: domain.MovementAdjustment,
		Quantity:     3,
		Reason:       "stocktake correction",
	})

	require.NoError(t, err)
	assert.Equal(t, 13, result.Record.NewQuantity)
}

func TestRecordMovement_RejectsNonPositiveQuantity(t *testing.T) {
	handler, products, productID := newTestHandler(t, 10)

	for _, quantity := range []int{0, -5} {
		_, err := handler.Handle(RecordMovementCommand{
			ProductID:    productID,
			MovementType: domain.MovementIn,
			Quantity:     quantity,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}

	// Rejected commands leave the quantity alone
	product, err := products.FindByID(productID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.Quantity)
}

func TestRecordMovement_RejectsInvalidType(t *testing.T) {
	handler, _, productID := newTestHandler(t, 10)

	_, err := handler.Handle(RecordMovementCommand{
		ProductID:    productID,
		MovementType: "TRANSFER",
		Quantity:     1,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestRecordMovement_UnknownProduct(t *testing.T) {
	handler, _, _ := newTestHandler(t, 10)

	_, err := handler.Handle(RecordMovementCommand{
		ProductID:    999,
		MovementType: domain.MovementIn,
		Quantity:     1,
	})

	assert.ErrorIs(t, err, productdomain.ErrProductNotFound)
}

func TestRecordMovement_RequiresProductID(t *testing.T) {
	handler, _, _ := newTestHandler(t, 10)

	_, err := handler.Handle(RecordMovementCommand{
		MovementType: domain.MovementIn,
		Quantity:     1,
	})

	assert.Error(t, err)
}
