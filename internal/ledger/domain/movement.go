package domain

import (
	"errors"
	"time"
)

// Movement types. IN and ADJUSTMENT add stock, OUT removes stock. The sign is
// implied by the type; Quantity is always the positive magnitude.
const (
	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
)

var (
	// ErrInvalidQuantity is returned for a zero or negative movement quantity
	ErrInvalidQuantity = errors.New("movement quantity must be a positive integer")
	// ErrInvalidMovementType is returned for an unknown movement type
	ErrInvalidMovementType = errors.New("invalid movement type")
)

// StockMovement is an immutable ledger entry recording one stock change.
// Entries are append-only: the repository exposes no update or delete.
type StockMovement struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"product_id" gorm:"not null;index"`
	MovementType string    `json:"movement_type" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// ValidMovementType reports whether t is one of the known movement types
func ValidMovementType(t string) bool {
	return t == MovementIn || t == MovementOut || t == MovementAdjustment
}

// MovementRecord is the result of recording a movement: the ledger entry id,
// the product quantity after the movement, and the delta actually applied
// (an OUT movement is clamped so the quantity never goes below zero, so the
// applied delta can be smaller in magnitude than the requested one).
type MovementRecord struct {
	MovementID   uint `json:"movement_id"`
	NewQuantity  int  `json:"new_quantity"`
	AppliedDelta int  `json:"applied_delta"`
}

// AnnotatedMovement is a movement joined with its product's name and SKU at
// read time. Movements for deleted products keep empty product fields.
type AnnotatedMovement struct {
	StockMovement
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
}

// MovementRepository defines the contract for the append-only stock ledger.
// Record must apply the movement and the product quantity change atomically.
type MovementRepository interface {
	Record(movement *StockMovement) (*MovementRecord, error)
	FindRecent(productID *uint, limit int) ([]AnnotatedMovement, error)
}
