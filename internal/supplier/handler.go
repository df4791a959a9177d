package supplier

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler handles HTTP requests for suppliers
type Handler struct {
	repo Repository

	requestCounter *prometheus.CounterVec
}

// NewHandler creates a new supplier handler
func NewHandler(repo Repository) *Handler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supplier_service_requests_total",
			Help: "Total number of requests to the supplier endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	prometheus.MustRegister(requestCounter)

	return &Handler{repo: repo, requestCounter: requestCounter}
}

type supplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// List handles GET /api/suppliers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.repo.FindAll()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "GET", "/api/suppliers", "Failed to list suppliers")
		return
	}
	h.respond(w, http.StatusOK, "GET", "/api/suppliers", suppliers)
}

// Create handles POST /api/suppliers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "POST", "/api/suppliers", "Invalid request body")
		return
	}
	if req.Name == "" {
		h.respondError(w, http.StatusBadRequest, "POST", "/api/suppliers", "Supplier name is required")
		return
	}

	supplier := &Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := h.repo.Create(supplier); err != nil {
		h.respondError(w, http.StatusInternalServerError, "POST", "/api/suppliers", err.Error())
		return
	}
	h.respond(w, http.StatusCreated, "POST", "/api/suppliers", supplier)
}

// Update handles PUT /api/suppliers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "PUT", "/api/suppliers/{id}", "Invalid supplier ID")
		return
	}

	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "PUT", "/api/suppliers/{id}", "Invalid request body")
		return
	}

	supplier, err := h.repo.FindByID(uint(id))
	if err != nil {
		h.respondError(w, http.StatusNotFound, "PUT", "/api/suppliers/{id}", "Supplier not found")
		return
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address

	if err := h.repo.Update(supplier); err != nil {
		h.respondError(w, http.StatusInternalServerError, "PUT", "/api/suppliers/{id}", err.Error())
		return
	}
	h.respond(w, http.StatusOK, "PUT", "/api/suppliers/{id}", supplier)
}

// Delete handles DELETE /api/suppliers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "DELETE", "/api/suppliers/{id}", "Invalid supplier ID")
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrSupplierNotFound) {
			status = http.StatusNotFound
		}
		h.respondError(w, status, "DELETE", "/api/suppliers/{id}", err.Error())
		return
	}
	h.respond(w, http.StatusOK, "DELETE", "/api/suppliers/{id}", map[string]string{"message": "Supplier deleted successfully"})
}

// RegisterRoutes registers all supplier routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/suppliers", h.List).Methods("GET")
	router.HandleFunc("/api/suppliers", h.Create).Methods("POST")
	router.HandleFunc("/api/suppliers/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/api/suppliers/{id}", h.Delete).Methods("DELETE")
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
