package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/services"
)

// ContentHandler exposes the generation pipeline over HTTP.
type ContentHandler struct {
	orchestrator services.ContentOrchestrator
	logger       *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(orchestrator services.ContentOrchestrator, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		orchestrator: orchestrator,
		logger:       logger.Named("content"),
	}
}

// RegisterRoutes registers the content handler's routes on the given mux.
func (h *ContentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/content/generate", h.Generate)
}

// Generate handles POST /api/content/generate. It runs one generation pass
// and returns the structured outcome, published or abandoned.
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req services.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.Category == "" {
		req.Category = models.CategoryMarketInsights
	}

	result, err := h.orchestrator.Generate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCategory):
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_category", err.Error())
		case errors.Is(err, apperrors.ErrMissingPropertyFacts):
			_ = ErrorResponse(w, http.StatusBadRequest, "missing_property_facts", err.Error())
		default:
			h.logger.Error("Generation run failed",
				zap.String("category", string(req.Category)),
				zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "generation_failed", "content generation failed")
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode generation response", zap.Error(err))
	}
}
