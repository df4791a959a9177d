package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockroomlabs/stockroom/internal/importer"
	"github.com/stockroomlabs/stockroom/kafka"
	"github.com/stockroomlabs/stockroom/pkg/logger"
)

const maxUploadBytes = 10 << 20 // 10 MB

// ImportHandler handles HTTP requests for bulk product imports
type ImportHandler struct {
	pipeline  *importer.Pipeline
	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	rowsImported   *prometheus.CounterVec
}

// NewImportHandler creates a new import handler with Prometheus metrics
func NewImportHandler(pipeline *importer.Pipeline, publisher *kafka.Publisher) *ImportHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_service_requests_total",
			Help: "Total number of requests to the import endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	rowsImported := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_service_rows_total",
			Help: "Import rows by outcome",
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(rowsImported)

	return &ImportHandler{
		pipeline:       pipeline,
		publisher:      publisher,
		requestCounter: requestCounter,
		rowsImported:   rowsImported,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type previewResponse struct {
	Headers    []string             `json:"headers"`
	Rows       []importer.Row       `json:"rows"`
	TotalRows  int                  `json:"total_rows"`
	Duplicates []importer.Duplicate `json:"duplicates"`
}

type importResponse struct {
	*importer.Result
	ErrorSample []string `json:"error_sample,omitempty"`
}

// PreviewImport handles POST /api/imports/preview
func (h *ImportHandler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	rows, headers, filename, ok := h.readUpload(w, r, "POST", "/api/imports/preview")
	if !ok {
		return
	}

	duplicates, err := h.pipeline.CheckDuplicates(r.Context(), rows)
	if err != nil {
		logger.Logger.Error().Err(err).Str("filename", filename).Msg("Failed to check duplicates")
		h.respond(w, http.StatusInternalServerError, "POST", "/api/imports/preview", Response{
			Success: false,
			Error:   "Failed to check for duplicate SKUs",
		})
		return
	}

	preview := importer.Preview(rows, 5)

	h.respond(w, http.StatusOK, "POST", "/api/imports/preview", Response{
		Success: true,
		Data: previewResponse{
			Headers:    headers,
			Rows:       preview,
			TotalRows:  len(rows),
			Duplicates: duplicates,
		},
	})
}

// RunImport handles POST /api/imports
func (h *ImportHandler) RunImport(w http.ResponseWriter, r *http.Request) {
	rows, _, filename, ok := h.readUpload(w, r, "POST", "/api/imports")
	if !ok {
		return
	}

	resolution := importer.Resolution(r.FormValue("resolution"))
	if !importer.ValidResolution(resolution) {
		h.respond(w, http.StatusBadRequest, "POST", "/api/imports", Response{
			Success: false,
			Error:   "Invalid duplicate resolution, expected skip, update or cancel",
		})
		return
	}

	result, err := h.pipeline.Run(r.Context(), rows, resolution)
	if err != nil {
		if errors.Is(err, importer.ErrDuplicatesUnresolved) {
			h.respond(w, http.StatusConflict, "POST", "/api/imports", Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
		logger.Logger.Error().Err(err).Str("filename", filename).Msg("Import run failed")
		h.respond(w, http.StatusInternalServerError, "POST", "/api/imports", Response{
			Success: false,
			Error:   "Import run failed",
		})
		return
	}

	h.rowsImported.WithLabelValues("successful").Add(float64(result.Successful))
	h.rowsImported.WithLabelValues("failed").Add(float64(result.Failed))
	h.rowsImported.WithLabelValues("skipped").Add(float64(result.Skipped))

	if resolution != importer.ResolutionCancel {
		if err := h.publisher.PublishImportCompleted(r.Context(), kafka.ImportCompletedEvent{
			RunID:      result.RunID,
			Successful: result.Successful,
			Failed:     result.Failed,
			Skipped:    result.Skipped,
		}); err != nil {
			logger.Logger.Warn().Err(err).Str("run_id", result.RunID).Msg("Failed to publish import event")
		}
	}

	message := "Import completed"
	if resolution == importer.ResolutionCancel {
		message = "Import cancelled"
	}

	h.respond(w, http.StatusOK, "POST", "/api/imports", Response{
		Success: true,
		Message: message,
		Data: importResponse{
			Result:      result,
			ErrorSample: result.SampleErrors(10),
		},
	})
}

// DownloadTemplate handles GET /api/imports/template.{ext}
func (h *ImportHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	ext := mux.Vars(r)["ext"]

	var body []byte
	var contentType, filename string
	switch ext {
	case "csv":
		body = importer.CSVTemplate()
		contentType = "text/csv"
		filename = "inventory-template.csv"
	case "txt":
		body = importer.TXTTemplate()
		contentType = "text/plain"
		filename = "inventory-template.txt"
	default:
		h.respond(w, http.StatusNotFound, "GET", "/api/imports/template", Response{
			Success: false,
			Error:   "Unknown template format",
		})
		return
	}

	h.requestCounter.WithLabelValues("GET", "/api/imports/template", strconv.Itoa(http.StatusOK)).Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// readUpload parses the multipart "file" field into rows plus the file's
// header tokens in column order. It writes the error response itself and
// reports whether the caller should continue.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request, method, endpoint string) ([]importer.Row, []string, string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respond(w, http.StatusBadRequest, method, endpoint, Response{
			Success: false,
			Error:   "Invalid multipart request",
		})
		return nil, nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respond(w, http.StatusBadRequest, method, endpoint, Response{
			Success: false,
			Error:   "Missing file upload",
		})
		return nil, nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.respond(w, http.StatusBadRequest, method, endpoint, Response{
			Success: false,
			Error:   "Failed to read uploaded file",
		})
		return nil, nil, "", false
	}

	rows, err := importer.Parse(data, header.Filename)
	if err != nil {
		h.respond(w, http.StatusBadRequest, method, endpoint, Response{
			Success: false,
			Error:   err.Error(),
		})
		return nil, nil, "", false
	}
	headers, _ := importer.Headers(data, header.Filename)
	return rows, headers, header.Filename, true
}

// RegisterRoutes registers all import routes
func (h *ImportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/imports", h.RunImport).Methods("POST")
	router.HandleFunc("/api/imports/preview", h.PreviewImport).Methods("POST")
	router.HandleFunc("/api/imports/template.{ext}", h.DownloadTemplate).Methods("GET")
}

func (h *ImportHandler) respond(w http.ResponseWriter, status int, method, endpoint string, payload Response) {
	h.requestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	respondJSON(w, status, payload)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
