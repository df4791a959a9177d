package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name        string
	SKU         string
	Category    string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Quantity    int
	MinStock    int
	MaxStock    *int
	Supplier    string
	Barcode     string
	Description string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("SKU is required")
	}
	if cmd.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if cmd.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Cost.IsNegative() {
		return nil, fmt.Errorf("cost cannot be negative")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if cmd.MinStock < 0 {
		return nil, fmt.Errorf("min stock cannot be negative")
	}

	// Check if SKU already exists
	if existing, err := h.repo.FindBySKU(cmd.SKU); err != nil {
		return nil, fmt.Errorf("failed to check SKU: %w", err)
	} else if existing != nil {
		return nil, domain.ErrSKUExists
	}

	product := &domain.Product{
		Name:        cmd.Name,
		SKU:         cmd.SKU,
		Category:    cmd.Category,
		Price:       cmd.Price,
		Cost:        cmd.Cost,
		Quantity:    cmd.Quantity,
		MinStock:    cmd.MinStock,
		MaxStock:    cmd.MaxStock,
		Supplier:    cmd.Supplier,
		Barcode:     cmd.Barcode,
		Description: cmd.Description,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
