package query

import (
	"fmt"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
)

// ListMovementsQuery represents the query to list recent movements.
// ProductID of nil lists movements across all products.
type ListMovementsQuery struct {
	ProductID *uint
	Limit     int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	repo domain.MovementRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.MovementRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query, newest first
func (h *ListMovementsHandler) Handle(query ListMovementsQuery) ([]domain.AnnotatedMovement, error) {
	if query.Limit <= 0 {
		query.Limit = 100
	}
	if query.Limit > 500 {
		query.Limit = 500
	}

	movements, err := h.repo.FindRecent(query.ProductID, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}
