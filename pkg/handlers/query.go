package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/adapters/datasource"
	"github.com/askdata-labs/askdata-engine/pkg/apperrors"
	"github.com/askdata-labs/askdata-engine/pkg/models"
	"github.com/askdata-labs/askdata-engine/pkg/sqlgen"
)

// QueryHandler exposes the natural-language-to-SQL pipeline.
type QueryHandler struct {
	service  QueryService
	tester   datasource.ConnectionTester
	readOnly bool
	logger   *zap.Logger
}

// NewQueryHandler creates a QueryHandler. tester may be nil when no query
// target is configured; requests then fail with a connection error. When
// readOnly is true the server runs in read-only mode and requests cannot
// opt into execution.
func NewQueryHandler(service QueryService, tester datasource.ConnectionTester, readOnly bool, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{service: service, tester: tester, readOnly: readOnly, logger: logger}
}

// RegisterRoutes registers the query handler's routes on the given mux.
func (h *QueryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/db/query", h.Query)
}

type queryRequest struct {
	Query          string               `json:"query"`
	SelectedTables []string             `json:"selectedTables"`
	Schema         []models.TableSchema `json:"schema"`
	ReadOnly       *bool                `json:"readOnly"`
	MaxRows        int                  `json:"maxRows"`
}

// Query handles POST /api/db/query. readOnly defaults to true when absent.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !datasource.IsConnected(r.Context(), h.tester) {
		_ = ErrorResponse(w, http.StatusBadRequest, "No active database connection")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" || len(req.SelectedTables) == 0 || len(req.Schema) == 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "Missing required fields: query, selectedTables, schema")
		return
	}

	readOnly := true
	if req.ReadOnly != nil {
		readOnly = *req.ReadOnly
	}
	if h.readOnly && !readOnly {
		h.logger.Warn("Request asked for execution while server is read-only")
		readOnly = true
	}

	result, err := h.service.Generate(r.Context(), sqlgen.Request{
		Question:       req.Query,
		Schema:         req.Schema,
		SelectedTables: req.SelectedTables,
		ReadOnly:       readOnly,
		MaxRows:        req.MaxRows,
	})
	if err != nil {
		h.writeQueryError(w, result, err)
		return
	}

	response := map[string]any{
		"success":        true,
		"query":          result.Question,
		"sql":            result.Candidate.NormalizedSQL,
		"explanation":    result.Explanation,
		"results":        result.Results,
		"executionTime":  result.DurationMs,
		"readOnly":       result.ReadOnly,
		"selectedTables": result.Tables,
	}
	_ = WriteJSON(w, http.StatusOK, response)
}

func (h *QueryHandler) writeQueryError(w http.ResponseWriter, result *models.GeneratedQuery, err error) {
	generatedSQL := ""
	rejectionReason := ""
	if result != nil {
		generatedSQL = result.Candidate.NormalizedSQL
		rejectionReason = result.Candidate.RejectionReason
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationRejected):
		_ = ErrorResponseWithDetails(w, http.StatusBadRequest, "Generated SQL query is invalid or unsafe", map[string]any{
			"details":      rejectionReason,
			"generatedSQL": generatedSQL,
		})
	case errors.Is(err, apperrors.ErrExecutionFailed):
		_ = ErrorResponseWithDetails(w, http.StatusInternalServerError, "Query execution failed", map[string]any{
			"details":      err.Error(),
			"generatedSQL": generatedSQL,
		})
	case errors.Is(err, apperrors.ErrNotConnected):
		_ = ErrorResponse(w, http.StatusBadRequest, "No active database connection")
	default:
		h.logger.Error("Query generation failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to generate SQL query")
	}
}
