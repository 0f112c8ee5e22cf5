package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// FilesHandler lists and deletes ingested sources.
type FilesHandler struct {
	store  DocumentStore
	logger *zap.Logger
}

// NewFilesHandler creates a FilesHandler.
func NewFilesHandler(store DocumentStore, logger *zap.Logger) *FilesHandler {
	return &FilesHandler{store: store, logger: logger}
}

// RegisterRoutes registers the files handler's routes on the given mux.
// The delete route uses a trailing wildcard because URL keys contain
// slashes and arrive percent-encoded.
func (h *FilesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/files", h.List)
	mux.HandleFunc("DELETE /api/files/{key...}", h.Delete)
}

// List handles GET /api/files.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.UploadedItems(r.Context())
	if err != nil {
		h.logger.Error("Failed to list uploaded files", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch uploaded files")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"files": items,
		"count": len(items),
	})
}

// Delete handles DELETE /api/files/{key}. The key arrives percent-encoded
// on the wire; PathValue returns it already decoded, so the raw filename or
// URL is used as-is. Deleting an unknown key succeeds and removes nothing.
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Filename is required")
		return
	}

	if err := h.store.Delete(r.Context(), key); err != nil {
		h.logger.Error("Failed to delete source", zap.String("key", key), zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("File %q deleted successfully", key),
		"filename": key,
	})
}
