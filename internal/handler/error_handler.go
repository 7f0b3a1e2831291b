package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	// Check for custom AppError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		respondError(w, status, appErr.Code, appErr.Message)
		return
	}

	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) {
		respondError(w, http.StatusBadGateway, models.CodeUpstream, upstreamErr.Error())
		return
	}

	// Log internal errors but don't expose details to client
	logger.Error("internal server error",
		slog.String("error", err.Error()),
	)
	respondError(w, http.StatusInternalServerError, models.CodeInternal, "An unexpected error occurred")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case models.CodeInvalidInput, "INVALID_JSON":
		return http.StatusBadRequest
	case models.CodeUpstream:
		return http.StatusBadGateway
	case models.CodeServiceUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
