package command

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/internal/product/repository"
)

func validCommand() CreateProductCommand {
	return CreateProductCommand{
		Name:     "Laptop",
		SKU:      "LAP001",
		Category: "Electronics",
		Price:    decimal.NewFromFloat(1299.99),
		Cost:     decimal.NewFromFloat(950.00),
		Quantity: 15,
		MinStock: 5,
	}
}

func TestCreateProduct_Success(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := NewCreateProductHandler(repo)

	product, err := handler.Handle(validCommand())

	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "LAP001", product.SKU)
	assert.True(t, decimal.NewFromFloat(1299.99).Equal(product.Price))
	assert.False(t, product.CreatedAt.IsZero())
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := NewCreateProductHandler(repo)

	_, err := handler.Handle(validCommand())
	require.NoError(t, err)

	_, err = handler.Handle(validCommand())
	assert.ErrorIs(t, err, domain.ErrSKUExists)
}

func TestCreateProduct_MissingRequiredFields(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := NewCreateProductHandler(repo)

	missingName := validCommand()
	missingName.Name = ""
	_, err := handler.Handle(missingName)
	assert.Error(t, err)

	missingSKU := validCommand()
	missingSKU.SKU = ""
	_, err = handler.Handle(missingSKU)
	assert.Error(t, err)

	missingCategory := validCommand()
	missingCategory.Category = ""
	_, err = handler.Handle(missingCategory)
	assert.Error(t, err)
}

func TestCreateProduct_NegativeValuesRejected(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := NewCreateProductHandler(repo)

	negativePrice := validCommand()
	negativePrice.Price = decimal.NewFromInt(-1)
	_, err := handler.Handle(negativePrice)
	assert.Error(t, err)

	negativeQuantity := validCommand()
	negativeQuantity.Quantity = -1
	_, err = handler.Handle(negativeQuantity)
	assert.Error(t, err)

	count, _ := repo.Count()
	assert.Equal(t, int64(0), count)
}

func TestProduct_LowStockChecks(t *testing.T) {
	product := domain.Product{Quantity: 5, MinStock: 5}
	assert.True(t, product.IsLowStock())
	assert.False(t, product.IsOutOfStock())

	product.Quantity = 0
	assert.True(t, product.IsOutOfStock())

	product.Quantity = 6
	product.MinStock = 5
	assert.False(t, product.IsLowStock())
}
