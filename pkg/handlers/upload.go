package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/apperrors"
)

// maxUploadBytes caps a single uploaded document at 10 MB.
const maxUploadBytes = 10 << 20

// UploadHandler ingests uploaded files into the vector store.
type UploadHandler struct {
	extractor FileExtractor
	store     DocumentStore
	logger    *zap.Logger
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(extractor FileExtractor, store DocumentStore, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{extractor: extractor, store: store, logger: logger}
}

// RegisterRoutes registers the upload handler's routes on the given mux.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/upload", h.Upload)
}

// Upload handles POST /api/upload: multipart form with a "file" field,
// 10 MB cap, TXT and MD only.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "File size must be less than 10MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		_ = ErrorResponse(w, http.StatusBadRequest, "File size must be less than 10MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	mediaType := header.Header.Get("Content-Type")
	chunks, err := h.extractor.Extract(data, header.Filename, mediaType)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedMediaType) {
			_ = ErrorResponse(w, http.StatusBadRequest, "Invalid file type. Please upload TXT or MD files only.")
			return
		}
		h.logger.Error("Failed to extract uploaded file", zap.String("filename", header.Filename), zap.Error(err))
		_ = ErrorResponse(w, http.StatusBadRequest, "Failed to process uploaded file")
		return
	}

	if err := h.store.AddDocuments(r.Context(), chunks); err != nil {
		h.logger.Error("Failed to store uploaded file", zap.String("filename", header.Filename), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to store document")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "File uploaded successfully",
		"filename":  header.Filename,
		"size":      header.Size,
		"type":      mediaType,
		"chunks":    len(chunks),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
