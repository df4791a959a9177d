package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler handles HTTP requests for categories
type Handler struct {
	repo Repository

	requestCounter *prometheus.CounterVec
}

// NewHandler creates a new category handler
func NewHandler(repo Repository) *Handler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "category_service_requests_total",
			Help: "Total number of requests to the category endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	prometheus.MustRegister(requestCounter)

	return &Handler{repo: repo, requestCounter: requestCounter}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List handles GET /api/categories
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.FindAll()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "GET", "/api/categories", "Failed to list categories")
		return
	}
	h.respond(w, http.StatusOK, "GET", "/api/categories", categories)
}

// Create handles POST /api/categories
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "POST", "/api/categories", "Invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "POST", "/api/categories", "Category name is required")
		return
	}

	category := &Category{Name: req.Name, Description: req.Description}
	if err := h.repo.Create(category); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNameExists) {
			status = http.StatusConflict
		}
		h.respondError(w, status, "POST", "/api/categories", err.Error())
		return
	}
	h.respond(w, http.StatusCreated, "POST", "/api/categories", category)
}

// Update handles PUT /api/categories/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "PUT", "/api/categories/{id}", "Invalid category ID")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "PUT", "/api/categories/{id}", "Invalid request body")
		return
	}

	category, err := h.repo.FindByID(uint(id))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "PUT", "/api/categories/{id}", "Category not found")
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	category.Description = req.Description

	if err := h.repo.Update(category); err != nil {
		h.respondError(w, http.StatusInternalServerError, "PUT", "/api/categories/{id}", err.Error())
		return
	}
	h.respond(w, http.StatusOK, "PUT", "/api/categories/{id}", category)
}

// Delete handles DELETE /api/categories/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "DELETE", "/api/categories/{id}", "Invalid category ID")
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrCategoryNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, "DELETE", "/api/categories/{id}", err.Error())
		return
	}
	h.respond(w, http.StatusOK, "DELETE", "/api/categories/{id}", map[string]string{"message": "Category deleted successfully"})
}

// RegisterRoutes registers all category routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/categories", h.List).Methods("GET")
	router.HandleFunc("/api/categories", h.Create).Methods("POST")
	router.HandleFunc("/api/categories/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/api/categories/{id}", h.Delete).Methods("DELETE")
}

func (h *Handler) respond(w http.ResponseWriter, status int, method, endpoint string, payload interface{}) {
	h.requestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, method, endpoint, message string) {
	h.respond(w, status, method, endpoint, map[string]string{"error": message})
}
