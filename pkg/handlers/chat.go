package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ChatHandler answers conversation turns over HTTP.
type ChatHandler struct {
	service ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(service ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: logger}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.Chat)
}

type chatRequest struct {
	Message           string   `json:"message"`
	SelectedDocuments []string `json:"selectedDocuments"`
	MultiSelectMode   bool     `json:"multiSelectMode"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "Message is required and must be a string")
		return
	}

	response, err := h.service.Chat(r.Context(), req.Message, req.SelectedDocuments, req.MultiSelectMode)
	if err != nil {
		h.logger.Error("Chat request failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to generate response")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"response":  response,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
