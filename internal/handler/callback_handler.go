package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Raymond9734/loan-callback-service/internal/models"
	"github.com/Raymond9734/loan-callback-service/internal/service"
)

// maxBodyBytes bounds the size of a form submission
const maxBodyBytes = 64 << 10

// CallbackHandler handles the request-a-call form endpoints
type CallbackHandler struct {
	callbackService service.CallbackService
	logger          *slog.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(callbackService service.CallbackService, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{
		callbackService: callbackService,
		logger:          logger,
	}
}

// RequestCall handles POST /api/call
func (h *CallbackHandler) RequestCall(w http.ResponseWriter, r *http.Request) {
	var req models.CallRequest

	if err := decodeBody(w, r, &req); err != nil {
		respondResult(w, invalidJSONResult())
		return
	}

	result := h.callbackService.RequestCall(r.Context(), &req)
	if !result.Success {
		h.logger.Warn("call request failed",
			slog.String("code", result.Code),
			slog.String("message", result.Message),
		)
	}

	respondResult(w, result)
}

// SubmitForm handles POST /api/submit
func (h *CallbackHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var form models.LoanFormValues

	if err := decodeBody(w, r, &form); err != nil {
		respondResult(w, invalidJSONResult())
		return
	}

	result := h.callbackService.SubmitForm(r.Context(), &form)
	if !result.Success {
		h.logger.Warn("form submission failed",
			slog.String("code", result.Code),
			slog.String("message", result.Message),
		)
	}

	respondResult(w, result)
}

// Derive handles POST /api/loan/derive. With ?validate=true the derived form
// is also checked against the full schema.
func (h *CallbackHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var form models.LoanFormValues

	if err := decodeBody(w, r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	derived := h.callbackService.Derive(&form)

	if validate, _ := strconv.ParseBool(r.URL.Query().Get("validate")); validate {
		if err := derived.Validate(); err != nil {
			handleError(w, err, h.logger)
			return
		}
	}

	respondSuccess(w, derived)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func invalidJSONResult() *models.SubmissionResult {
	return &models.SubmissionResult{
		Success:    false,
		Message:    "Invalid JSON format",
		Code:       "INVALID_JSON",
		StatusCode: http.StatusBadRequest,
	}
}
