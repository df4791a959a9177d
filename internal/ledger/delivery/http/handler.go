package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stockroomlabs/stockroom/internal/ledger/domain"
	"github.com/stockroomlabs/stockroom/internal/ledger/usecase/command"
	"github.com/stockroomlabs/stockroom/internal/ledger/usecase/query"
	productdomain "github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/kafka"
	"github.com/stockroomlabs/stockroom/pkg/logger"
)

// MovementHandler handles HTTP requests for the stock ledger
type MovementHandler struct {
	recordHandler *command.RecordMovementHandler
	listHandler   *query.ListMovementsHandler
	products      productdomain.ProductRepository
	publisher     *kafka.Publisher
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(
	repo domain.MovementRepository,
	products productdomain.ProductRepository,
	publisher *kafka.Publisher,
) *MovementHandler {
	return &MovementHandler{
		recordHandler: command.NewRecordMovementHandler(repo),
		listHandler:   query.NewListMovementsHandler(repo),
		products:      products,
		publisher:     publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecordMovement handles POST /api/movements
func (h *MovementHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID    uint   `json:"product_id"`
		MovementType string `json:"movement_type"`
		Quantity     int    `json:"quantity"`
		Reason       string `json:"reason"`
		Reference    string `json:"reference"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.recordHandler.Handle(command.RecordMovementCommand{
		ProductID:    req.ProductID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		Reference:    req.Reference,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, productdomain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		logger.Logger.Error().
			Err(err).
			Uint("product_id", req.ProductID).
			Str("movement_type", req.MovementType).
			Msg("Failed to record movement")
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.publishEvents(r, result)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Movement recorded successfully",
		Data:    result,
	})
}

func (h *MovementHandler) publishEvents(r *http.Request, result *command.RecordMovementResult) {
	if h.publisher == nil {
		return
	}
	ctx := r.Context()

	event := kafka.StockMovementRecordedEvent{
		MovementID:   result.Record.MovementID,
		ProductID:    result.Movement.ProductID,
		MovementType: result.Movement.MovementType,
		Quantity:     result.Movement.Quantity,
		NewQuantity:  result.Record.NewQuantity,
		AppliedDelta: result.Record.AppliedDelta,
		Reference:    result.Movement.Reference,
	}
	if err := h.publisher.PublishMovementRecorded(ctx, event); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to publish movement event")
	}

	product, err := h.products.FindByID(result.Movement.ProductID)
	if err != nil || !product.IsLowStock() {
		return
	}
	alert := kafka.LowStockAlertEvent{
		ProductID: product.ID,
		SKU:       product.SKU,
		Quantity:  product.Quantity,
		MinStock:  product.MinStock,
	}
	if err := h.publisher.PublishLowStockAlert(ctx, alert); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to publish low stock alert")
	}
}

// ListMovements handles GET /api/movements
func (h *MovementHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	q := query.ListMovementsQuery{}

	if v := r.URL.Query().Get("product_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid product ID",
			})
			return
		}
		productID := uint(id)
		q.ProductID = &productID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		q.Limit, _ = strconv.Atoi(v)
	}

	movements, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list movements",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    movements,
	})
}

// RegisterRoutes registers all ledger routes
func (h *MovementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/movements", h.ListMovements).Methods("GET")
	router.HandleFunc("/api/movements", h.RecordMovement).Methods("POST")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
