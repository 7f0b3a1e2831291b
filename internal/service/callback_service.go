package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Raymond9734/loan-callback-service/internal/caller"
	"github.com/Raymond9734/loan-callback-service/internal/loancalc"
	"github.com/Raymond9734/loan-callback-service/internal/models"
	"github.com/Raymond9734/loan-callback-service/internal/transliteration"
)

// Result messages returned to form clients
const (
	MsgCallInitiated   = "Call initiated successfully! You should receive a call shortly."
	MsgFormSubmitted   = "Form submitted successfully! We will get back to you shortly."
	msgCallFailed      = "Failed to initiate call"
	msgSubmitErrPrefix = "An error occurred while submitting the form."
)

// isoMillis matches the calling agent's expected current_date_time format
const isoMillis = "2006-01-02T15:04:05.000Z"

// Settings holds the deployment values the orchestrator needs per request
type Settings struct {
	APIURL      string
	APIKey      string
	CountryCode string
	Timezone    string
	WebhookURL  string
}

// CallbackService handles form submissions
type CallbackService interface {
	RequestCall(ctx context.Context, req *models.CallRequest) *models.SubmissionResult
	SubmitForm(ctx context.Context, form *models.LoanFormValues) *models.SubmissionResult
	Derive(form *models.LoanFormValues) *models.LoanFormValues
}

type callbackService struct {
	settings   Settings
	router     CampaignRouter
	translator transliteration.Service
	callPlacer caller.CallPlacer
	forwarder  caller.FormForwarder
	logger     *slog.Logger
	now        func() time.Time
}

// NewCallbackService creates a new callback service
func NewCallbackService(
	settings Settings,
	router CampaignRouter,
	translator transliteration.Service,
	callPlacer caller.CallPlacer,
	forwarder caller.FormForwarder,
	logger *slog.Logger,
) CallbackService {
	if settings.CountryCode == "" {
		settings.CountryCode = "+91"
	}
	return &callbackService{
		settings:   settings,
		router:     router,
		translator: translator,
		callPlacer: callPlacer,
		forwarder:  forwarder,
		logger:     logger,
		now:        time.Now,
	}
}

// Derive fills every derived loan field from the entered ones
func (s *callbackService) Derive(form *models.LoanFormValues) *models.LoanFormValues {
	derived := loancalc.Apply(*form)
	return &derived
}

// RequestCall validates the request, transliterates the customer's name and
// asks the calling API to dial the customer
func (s *callbackService) RequestCall(ctx context.Context, req *models.CallRequest) (result *models.SubmissionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("call request panicked", slog.String("panic", fmt.Sprint(r)))
			result = failure(models.CodeInternal, msgCallFailed, 0)
		}
	}()

	if err := req.Validate(); err != nil {
		return s.callFailure(err)
	}

	mobile := models.FormatMobileNumber(req.MobileNumber, s.settings.CountryCode)
	route := s.router.Resolve(req.CampaignType)

	if missing := s.missingCallSettings(route); len(missing) > 0 {
		s.logger.Error("call routing misconfigured",
			slog.String("campaign_type", route.CampaignType),
			slog.String("missing", strings.Join(missing, ", ")),
		)
		return s.callFailure(models.ErrConfiguration(
			fmt.Sprintf("Missing %s. Please check your environment variables.", strings.Join(missing, ", ")),
		))
	}

	payload := s.buildCallPayload(ctx, req, route, mobile)

	s.logger.Info("placing outbound call",
		slog.String("campaign_type", route.CampaignType),
		slog.String("agent_id", route.AgentID),
	)

	data, err := s.callPlacer.PlaceCall(ctx, caller.Target{
		BaseURL: s.settings.APIURL,
		APIKey:  s.settings.APIKey,
	}, payload)
	if err != nil {
		return s.callFailure(err)
	}

	s.logger.Info("outbound call initiated", slog.String("campaign_type", route.CampaignType))

	return &models.SubmissionResult{
		Success:    true,
		Message:    MsgCallInitiated,
		Data:       data,
		StatusCode: http.StatusOK,
	}
}

// SubmitForm derives and validates the full form, then forwards it with the
// Hindi name to the webhook
func (s *callbackService) SubmitForm(ctx context.Context, form *models.LoanFormValues) (result *models.SubmissionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("form submission panicked", slog.String("panic", fmt.Sprint(r)))
			result = failure(models.CodeInternal, msgSubmitErrPrefix+" An unknown error occurred.", 0)
		}
	}()

	derived := loancalc.Apply(*form)
	if err := derived.Validate(); err != nil {
		return s.submitFailure(err)
	}

	if strings.TrimSpace(s.settings.WebhookURL) == "" {
		s.logger.Error("webhook URL not configured")
		return s.submitFailure(models.ErrConfiguration("Missing webhook_url. Please check your environment variables."))
	}

	names := s.translator.TranslateCustomerName(ctx, derived.CalleeName)

	payload := &models.WebhookPayload{
		LoanFormValues:  derived,
		CalleeNameHindi: names.CustomerNameHindi,
	}

	if err := s.forwarder.Forward(ctx, s.settings.WebhookURL, payload); err != nil {
		return s.submitFailure(err)
	}

	s.logger.Info("form submitted to webhook")

	return &models.SubmissionResult{
		Success:    true,
		Message:    MsgFormSubmitted,
		StatusCode: http.StatusOK,
	}
}

func (s *callbackService) missingCallSettings(route models.CampaignRoute) []string {
	var missing []string
	if route.AgentID == "" {
		missing = append(missing, "agent_id")
	}
	if route.FromNumber == "" {
		missing = append(missing, "from_number")
	}
	if strings.TrimSpace(s.settings.APIURL) == "" {
		missing = append(missing, "api_url")
	}
	if strings.TrimSpace(s.settings.APIKey) == "" {
		missing = append(missing, "api_key")
	}
	return missing
}

func (s *callbackService) buildCallPayload(ctx context.Context, req *models.CallRequest, route models.CampaignRoute, mobile string) *models.OutboundCallPayload {
	name := strings.TrimSpace(req.CalleeName)
	parsed := models.ParseFullName(name)

	var calleeNameHindi, addressNameHindi string
	branch := strings.TrimSpace(req.PreviousBranch)

	if models.IsWinback(route.CampaignType) {
		t := s.translator.TranslateWinbackData(ctx, name, branch)
		calleeNameHindi, addressNameHindi, branch = t.CustomerNameHindi, t.AddressNameHindi, t.BranchNameHindi
	} else {
		t := s.translator.TranslateCustomerName(ctx, name)
		calleeNameHindi, addressNameHindi = t.CustomerNameHindi, t.AddressNameHindi
		branch = ""
	}

	if calleeNameHindi == "" {
		calleeNameHindi = name
	}
	if addressNameHindi == "" {
		addressNameHindi = parsed.AddressName()
	}

	loan := loancalc.FillMissing(req.LoanFormValues)

	return &models.OutboundCallPayload{
		Name:         name,
		MobileNumber: mobile,
		AgentID:      route.AgentID,
		FromNumber:   route.FromNumber,
		CallConfig:   models.DefaultCallConfig(s.settings.Timezone),
		CustomArgsValues: models.CustomArgsValues{
			CalleeName:      calleeNameHindi,
			CalleeNameHindi: calleeNameHindi,
			AddressName:     addressNameHindi,
			MobileNumber:    mobile,
			CurrentDateTime: s.now().UTC().Format(isoMillis),
			MaxRPGOur:       models.MaxRPGOur,
			LoanNumber:      loan.LoanNumber,
			SancAmount:      float64(loan.SancAmount),
			TotalDisbAmount: float64(loan.TotalDisbAmount),
			PendDisbAmount:  float64(loan.PendDisbAmount),
			ProceFeeAmount:  float64(loan.ProceFeeAmount),
			TotDedAmount:    float64(loan.TotDedAmount),
			ROI:             float64(loan.ROI),
			LoanTenor:       int(loan.LoanTenor),
			EMIAmount:       float64(loan.EMIAmount),
			LoanDisbDate:    loan.LoanDisbDate,
			LoanStartDate:   loan.LoanStartDate,
			EMIDueDate:      loan.EMIDueDate,
			LoanEndDate:     loan.LoanEndDate,
			CheqHand:        loan.CheqHand,
			PaymentMode:     loan.PaymentMode,
			PreviousBranch:  branch,
		},
	}
}

// callFailure converts an error from the call variant into a result
func (s *callbackService) callFailure(err error) *models.SubmissionResult {
	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		return failure(models.CodeUpstream,
			fmt.Sprintf("API Error: %d - %s", upstream.StatusCode, upstream.Detail),
			upstreamStatus(upstream.StatusCode),
		)
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		result := failure(appErr.Code, appErr.Message, 0)
		result.Errors = fieldErrors(err)
		return result
	}

	s.logger.Error("call request failed", slog.String("error", err.Error()))
	return failure(models.CodeInternal, msgCallFailed, 0)
}

// submitFailure converts an error from the webhook variant into a result
func (s *callbackService) submitFailure(err error) *models.SubmissionResult {
	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		msg := fmt.Sprintf("%s Webhook submission failed with status: %d", msgSubmitErrPrefix, upstream.StatusCode)
		if upstream.Detail != "" {
			msg += " - " + upstream.Detail
		}
		return failure(models.CodeUpstream, msg, upstreamStatus(upstream.StatusCode))
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		result := failure(appErr.Code, msgSubmitErrPrefix+" "+appErr.Message, 0)
		result.Errors = fieldErrors(err)
		return result
	}

	s.logger.Error("form submission failed", slog.String("error", err.Error()))
	return failure(models.CodeInternal, msgSubmitErrPrefix+" "+err.Error(), 0)
}

func failure(code, message string, status int) *models.SubmissionResult {
	return &models.SubmissionResult{
		Success:    false,
		Message:    message,
		Code:       code,
		StatusCode: status,
	}
}

func fieldErrors(err error) models.ValidationErrors {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

// upstreamStatus passes remote error statuses through and reports anything
// else as a bad gateway
func upstreamStatus(status int) int {
	if status >= 400 && status <= 599 {
		return status
	}
	return http.StatusBadGateway
}
