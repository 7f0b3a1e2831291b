package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Raymond9734/loan-callback-service/internal/cache"
	"github.com/Raymond9734/loan-callback-service/internal/transliteration"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	store      cache.Store
	translator transliteration.Service
	logger     *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store cache.Store, translator transliteration.Service, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:      store,
		translator: translator,
		logger:     logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	// Check transliteration memo store
	if h.store != nil {
		if err := h.store.Health(ctx); err != nil {
			h.logger.Error("cache health check failed",
				slog.String("backend", h.store.Name()),
				slog.String("error", err.Error()),
			)
			response.Status = "unhealthy"
			response.Services["cache"] = "unhealthy"
		} else {
			response.Services["cache"] = "healthy"
		}
	} else {
		response.Services["cache"] = "not_configured"
	}

	// Transliteration degrades to original names without an API key
	if h.translator != nil && h.translator.Enabled() {
		response.Services["transliteration"] = "enabled"
	} else {
		response.Services["transliteration"] = "disabled"
	}

	// Return appropriate status code
	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
