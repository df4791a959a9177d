package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/stockroomlabs/stockroom/internal/product/domain"
	"github.com/stockroomlabs/stockroom/internal/product/usecase/command"
	"github.com/stockroomlabs/stockroom/internal/product/usecase/query"
	"github.com/stockroomlabs/stockroom/pkg/logger"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler
	getHandler    *query.GetProductHandler
	listHandler   *query.ListProductsHandler
	statsHandler  *query.GetStatsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	lowStockGauge  prometheus.Gauge
}

// NewProductHandler creates a new product handler with Prometheus metrics
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_service_requests_total",
			Help: "Total number of requests to the product endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_service_request_duration_seconds",
			Help:    "Duration of product endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	lowStockGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "product_service_low_stock_products",
			Help: "Number of products at or below their reorder threshold",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(lowStockGauge)

	return &ProductHandler{
		createHandler:  command.NewCreateProductHandler(repo),
		updateHandler:  command.NewUpdateProductHandler(repo),
		deleteHandler:  command.NewDeleteProductHandler(repo),
		getHandler:     query.NewGetProductHandler(repo),
		listHandler:    query.NewListProductsHandler(repo),
		statsHandler:   query.NewGetStatsHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		lowStockGauge:  lowStockGauge,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type productRequest struct {
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Quantity    *int             `json:"quantity"`
	MinStock    *int             `json:"min_stock"`
	MaxStock    *int             `json:"max_stock"`
	Supplier    *string          `json:"supplier"`
	Barcode     *string          `json:"barcode"`
	Description *string          `json:"description"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	defer h.observe("POST", "/api/products", time.Now())

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "POST", "/api/products", Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateProductCommand{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		MaxStock: req.MaxStock,
	}
	if req.Price != nil {
		cmd.Price = *req.Price
	}
	if req.Cost != nil {
		cmd.Cost = *req.Cost
	}
	if req.Quantity != nil {
		cmd.Quantity = *req.Quantity
	}
	if req.MinStock != nil {
		cmd.MinStock = *req.MinStock
	}
	if req.Supplier != nil {
		cmd.Supplier = *req.Supplier
	}
	if req.Barcode != nil {
		cmd.Barcode = *req.Barcode
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}

	product, err := h.createHandler.Handle(cmd)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrSKUExists) {
			status = http.StatusConflict
		}
		logger.Logger.Error().Err(err).Str("sku", req.SKU).Msg("Failed to create product")
		h.respond(w, status, "POST", "/api/products", Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, http.StatusCreated, "POST", "/api/products", Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	defer h.observe("GET", "/api/products/{id}", time.Now())

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respond(w, http.StatusBadRequest, "GET", "/api/products/{id}", Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	product, err := h.getHandler.Handle(query.GetProductQuery{ID: uint(id)})
	if err != nil {
		h.respond(w, http.StatusNotFound, "GET", "/api/products/{id}", Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	h.respond(w, http.StatusOK, "GET", "/api/products/{id}", Response{
		Success: true,
		Data:    product,
	})
}

// GetProductBySKU handles GET /api/products/sku/{sku}
func (h *ProductHandler) GetProductBySKU(w http.ResponseWriter, r *http.Request) {
	defer h.observe("GET", "/api/products/sku/{sku}", time.Now())

	product, err := h.getHandler.Handle(query.GetProductQuery{SKU: mux.Vars(r)["sku"]})
	if err != nil {
		h.respond(w, http.StatusNotFound, "GET", "/api/products/sku/{sku}", Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	h.respond(w, http.StatusOK, "GET", "/api/products/sku/{sku}", Response{
		Success: true,
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	defer h.observe("GET", "/api/products", time.Now())

	q := query.ListProductsQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		LowStock: r.URL.Query().Get("low_stock") == "true",
	}

	products, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		h.respond(w, http.StatusInternalServerError, "GET", "/api/products", Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	h.respond(w, http.StatusOK, "GET", "/api/products", Response{
		Success: true,
		Data:    products,
	})
}

// GetStats handles GET /api/products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	defer h.observe("GET", "/api/products/stats", time.Now())

	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute stats")
		h.respond(w, http.StatusInternalServerError, "GET", "/api/products/stats", Response{
			Success: false,
			Error:   "Failed to compute stats",
		})
		return
	}

	h.lowStockGauge.Set(float64(stats.LowStockCount))

	h.respond(w, http.StatusOK, "GET", "/api/products/stats", Response{
		Success: true,
		Data:    stats,
	})
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	defer h.observe("PATCH", "/api/products/{id}", time.Now())

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respond(w, http.StatusBadRequest, "PATCH", "/api/products/{id}", Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	var req struct {
		Name        *string          `json:"name"`
		Category    *string          `json:"category"`
		Price       *decimal.Decimal `json:"price"`
		Cost        *decimal.Decimal `json:"cost"`
		Quantity    *int             `json:"quantity"`
		MinStock    *int             `json:"min_stock"`
		MaxStock    *int             `json:"max_stock"`
		Supplier    *string          `json:"supplier"`
		Barcode     *string          `json:"barcode"`
		Description *string          `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, http.StatusBadRequest, "PATCH", "/api/products/{id}", Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:          uint(id),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		Supplier:    req.Supplier,
		Barcode:     req.Barcode,
		Description: req.Description,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		logger.Logger.Error().Err(err).Uint64("id", id).Msg("Failed to update product")
		h.respond(w, status, "PATCH", "/api/products/{id}", Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, http.StatusOK, "PATCH", "/api/products/{id}", Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	defer h.observe("DELETE", "/api/products/{id}", time.Now())

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respond(w, http.StatusBadRequest, "DELETE", "/api/products/{id}", Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ID: uint(id)}); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		h.respond(w, status, "DELETE", "/api/products/{id}", Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, http.StatusOK, "DELETE", "/api/products/{id}", Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products", AuthMiddleware(h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/api/products/sku/{sku}", h.GetProductBySKU).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{id}", AuthMiddleware(h.UpdateProduct)).Methods("PATCH")
	router.HandleFunc("/api/products/{id}", AdminMiddleware(h.DeleteProduct)).Methods("DELETE")
}

// RegisterHealthCheck registers the health check endpoint
func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Database unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

func (h *ProductHandler) respond(w http.ResponseWriter, status int, method, endpoint string, payload Response) {
	h.requestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	respondJSON(w, status, payload)
}

func (h *ProductHandler) observe(method, endpoint string, start time.Time) {
	h.requestLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
