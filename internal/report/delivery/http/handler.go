package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockroomlabs/stockroom/internal/report"
	"github.com/stockroomlabs/stockroom/pkg/logger"
)

// ReportHandler handles HTTP requests for inventory reports
type ReportHandler struct {
	builder *report.Builder

	requestCounter *prometheus.CounterVec
	buildLatency   prometheus.Histogram
}

// NewReportHandler creates a new report handler with Prometheus metrics
func NewReportHandler(builder *report.Builder) *ReportHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_service_requests_total",
			Help: "Total number of requests to the report endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	buildLatency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_service_build_duration_seconds",
			Help:    "Time spent assembling the inventory report",
			Buckets: prometheus.DefBuckets,
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(buildLatency)

	return &ReportHandler{
		builder:        builder,
		requestCounter: requestCounter,
		buildLatency:   buildLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GetReport handles GET /api/reports/inventory
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	data, ok := h.build(w, "/api/reports/inventory")
	if !ok {
		return
	}

	h.requestCounter.WithLabelValues("GET", "/api/reports/inventory", strconv.Itoa(http.StatusOK)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// ExportReportCSV handles GET /api/reports/inventory.csv
func (h *ReportHandler) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	data, ok := h.build(w, "/api/reports/inventory.csv")
	if !ok {
		return
	}

	filename := fmt.Sprintf("inventory_reports_%s.csv", data.GeneratedAt.Format("2006-01-02"))

	h.requestCounter.WithLabelValues("GET", "/api/reports/inventory.csv", strconv.Itoa(http.StatusOK)).Inc()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(report.RenderCSV(data))
}

func (h *ReportHandler) build(w http.ResponseWriter, endpoint string) (*report.Data, bool) {
	start := time.Now()
	data, err := h.builder.Build()
	h.buildLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to build inventory report")
		h.requestCounter.WithLabelValues("GET", endpoint, strconv.Itoa(http.StatusInternalServerError)).Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(Response{Success: false, Error: "Failed to build inventory report"})
		return nil, false
	}
	return data, true
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/inventory", h.GetReport).Methods("GET")
	router.HandleFunc("/api/reports/inventory.csv", h.ExportReportCSV).Methods("GET")
}
