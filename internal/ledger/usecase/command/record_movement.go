package command

import (
	"fmt"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
)

// RecordMovementCommand represents the command to record a stock movement
type RecordMovementCommand struct {
	ProductID    uint
	MovementType string
	Quantity     int
	Reason       string
	Reference    string
}

// RecordMovementResult carries the outcome back to the caller so the UI can
// refresh optimistically without a full reload.
type RecordMovementResult struct {
	Movement *domain.StockMovement  `json:"movement"`
	Record   *domain.MovementRecord `json:"record"`
}

// RecordMovementHandler handles record movement command
type RecordMovementHandler struct {
	repo domain.MovementRepository
}

// NewRecordMovementHandler creates a new record movement handler
func NewRecordMovementHandler(repo domain.MovementRepository) *RecordMovementHandler {
	return &RecordMovementHandler{repo: repo}
}

// Handle executes the record movement command. Validation failures create no
// movement and change no quantity.
func (h *RecordMovementHandler) Handle(cmd RecordMovementCommand) (*RecordMovementResult, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !domain.ValidMovementType(cmd.MovementType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMovementType, cmd.MovementType)
	}

	movement := &domain.StockMovement{
		ProductID:    cmd.ProductID,
		MovementType: cmd.MovementType,
		Quantity:     cmd.Quantity,
		Reason:       cmd.Reason,
		Reference:    cmd.Reference,
	}

	record, err := h.repo.Record(movement)
	if err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	return &RecordMovementResult{
		Movement: movement,
		Record:   record,
	}, nil
}
