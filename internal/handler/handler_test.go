package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raymond9734/loan-callback-service/internal/cache"
	"github.com/Raymond9734/loan-callback-service/internal/loancalc"
	"github.com/Raymond9734/loan-callback-service/internal/models"
	"github.com/Raymond9734/loan-callback-service/internal/transliteration"
)

// mockCallbackService returns a canned result
type mockCallbackService struct {
	result   *models.SubmissionResult
	lastCall *models.CallRequest
	lastForm *models.LoanFormValues
}

func (m *mockCallbackService) RequestCall(ctx context.Context, req *models.CallRequest) *models.SubmissionResult {
	m.lastCall = req
	return m.result
}

func (m *mockCallbackService) SubmitForm(ctx context.Context, form *models.LoanFormValues) *models.SubmissionResult {
	m.lastForm = form
	return m.result
}

func (m *mockCallbackService) Derive(form *models.LoanFormValues) *models.LoanFormValues {
	derived := loancalc.Apply(*form)
	return &derived
}

// failingStore is a cache backend that cannot be reached
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("down")
}

func (failingStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("down")
}

func (failingStore) Health(ctx context.Context) error { return errors.New("connection refused") }
func (failingStore) Close() error { return nil }
func (failingStore) Name() string { return "redis" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) models.SubmissionResult {
	t.Helper()
	var got models.SubmissionResult
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return got
}

func TestRequestCall_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		result     *models.SubmissionResult
		wantStatus int
	}{
		{
			name:       "success",
			result:     &models.SubmissionResult{Success: true, Message: "ok", StatusCode: http.StatusOK},
			wantStatus: http.StatusOK,
		},
		{
			name:       "validation failure",
			result:     &models.SubmissionResult{Message: "Invalid mobile number format", Code: models.CodeInvalidInput},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "configuration failure",
			result:     &models.SubmissionResult{Message: "Missing agent_id.", Code: models.CodeConfiguration},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "remote status passed through",
			result:     &models.SubmissionResult{Message: "API Error: 404 - nope", Code: models.CodeUpstream, StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unreachable",
			result:     &models.SubmissionResult{Message: "Calling service is unreachable.", Code: models.CodeServiceUnreachable},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCallbackService{result: tt.result}
			h := NewCallbackHandler(svc, testLogger())

			body := []byte(`{"callee_name":"Rahul","mobile_number":"9876543210","campaign_type":"winback","previous_branch":"Karol Bagh"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/call", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			h.RequestCall(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			got := decodeResult(t, w)
			if got.Success != tt.result.Success || got.Message != tt.result.Message {
				t.Errorf("unexpected body: %+v", got)
			}
			if svc.lastCall.PreviousBranch != "Karol Bagh" || svc.lastCall.CalleeName != "Rahul" {
				t.Errorf("request not decoded: %+v", svc.lastCall)
			}
		})
	}
}

func TestRequestCall_InvalidJSON(t *testing.T) {
	svc := &mockCallbackService{}
	h := NewCallbackHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/call", bytes.NewBuffer([]byte(`{invalid-json}`)))
	w := httptest.NewRecorder()

	h.RequestCall(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if got := decodeResult(t, w); got.Success || got.Code != "INVALID_JSON" {
		t.Errorf("unexpected body: %+v", got)
	}
	if svc.lastCall != nil {
		t.Error("service should not be called for malformed JSON")
	}
}

func TestSubmitForm(t *testing.T) {
	svc := &mockCallbackService{result: &models.SubmissionResult{Success: true, Message: "Form submitted successfully! We will get back to you shortly."}}
	h := NewCallbackHandler(svc, testLogger())

	body := []byte(`{"callee_name":"Rahul","mobile_number":"9876543210","sanc_amount":"500000","loan_tenor":"240"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/submit", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.SubmitForm(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastForm.SancAmount != 500000 || svc.lastForm.LoanTenor != 240 {
		t.Errorf("form not decoded: %+v", svc.lastForm)
	}
}

func TestDerive(t *testing.T) {
	h := NewCallbackHandler(&mockCallbackService{}, testLogger())

	body := []byte(`{"sanc_amount":500000,"total_disb_amount":450000,"roi":8.5,"loan_tenor":240,"emi_due_date":"2026-01-31"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/loan/derive", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Derive(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got models.LoanFormValues
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.EMIAmount != 3905 || got.PendDisbAmount != 50000 {
		t.Errorf("amounts = emi %v pending %v", got.EMIAmount, got.PendDisbAmount)
	}
	if got.LoanStartDate != "2026-01-31" || got.LoanEndDate != "2045-12-31" {
		t.Errorf("dates = %s..%s", got.LoanStartDate, got.LoanEndDate)
	}
}

func TestDerive_OverflowingTenorStillEncodes(t *testing.T) {
	h := NewCallbackHandler(&mockCallbackService{}, testLogger())

	body := []byte(`{"sanc_amount":500000,"total_disb_amount":450000,"roi":12,"loan_tenor":100000,"emi_due_date":"2026-01-31"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/loan/derive", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Derive(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got models.LoanFormValues
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.EMIAmount != 0 {
		t.Errorf("EMIAmount = %v, want 0", got.EMIAmount)
	}
}

func TestDerive_ValidateReportsFirstError(t *testing.T) {
	h := NewCallbackHandler(&mockCallbackService{}, testLogger())

	body := []byte(`{"callee_name":"Rahul","mobile_number":"98765"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/loan/derive?validate=true", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.Derive(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var got ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Error.Code != models.CodeInvalidInput {
		t.Errorf("code = %s", got.Error.Code)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		store      cache.Store
		translator transliteration.Service
		wantStatus int
		wantCache  string
		wantTrans  string
	}{
		{
			name:       "memory store without API key",
			store:      cache.NewMemoryStore(),
			translator: transliteration.NewClient(nil, nil, 0, testLogger()),
			wantStatus: http.StatusOK,
			wantCache:  "healthy",
			wantTrans:  "disabled",
		},
		{
			name:       "unreachable redis",
			store:      failingStore{},
			translator: transliteration.NewClient(nil, nil, 0, testLogger()),
			wantStatus: http.StatusServiceUnavailable,
			wantCache:  "unhealthy",
			wantTrans:  "disabled",
		},
		{
			name:       "no store",
			wantStatus: http.StatusOK,
			wantCache:  "not_configured",
			wantTrans:  "disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.store, tt.translator, testLogger())

			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			var got HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Services["cache"] != tt.wantCache || got.Services["transliteration"] != tt.wantTrans {
				t.Errorf("services = %v", got.Services)
			}
		})
	}
}
