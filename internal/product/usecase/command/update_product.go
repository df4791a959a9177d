package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// UpdateProductCommand represents the command to update an existing product.
// Nil pointer fields are left untouched.
type UpdateProductCommand struct {
	ID          uint
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Cost        *decimal.Decimal
	Quantity    *int
	MinStock    *int
	MaxStock    *int
	Supplier    *string
	Barcode     *string
	Description *string
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("product name is required")
		}
		product.Name = *cmd.Name
	}
	if cmd.Category != nil {
		if *cmd.Category == "" {
			return nil, fmt.Errorf("category is required")
		}
		product.Category = *cmd.Category
	}
	if cmd.Price != nil {
		if cmd.Price.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative")
		}
		product.Price = *cmd.Price
	}
	if cmd.Cost != nil {
		if cmd.Cost.IsNegative() {
			return nil, fmt.Errorf("cost cannot be negative")
		}
		product.Cost = *cmd.Cost
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}
		product.Quantity = *cmd.Quantity
	}
	if cmd.MinStock != nil {
		if *cmd.MinStock < 0 {
			return nil, fmt.Errorf("min stock cannot be negative")
		}
		product.MinStock = *cmd.MinStock
	}
	if cmd.MaxStock != nil {
		product.MaxStock = cmd.MaxStock
	}
	if cmd.Supplier != nil {
		product.Supplier = *cmd.Supplier
	}
	if cmd.Barcode != nil {
		product.Barcode = *cmd.Barcode
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
