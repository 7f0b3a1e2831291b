package models

// MaxRPGOur is a fixed value expected by the calling agent's prompt arguments
const MaxRPGOur = 8787

// OutboundCallPayload is the body sent to the outbound calling API
type OutboundCallPayload struct {
	Name             string           `json:"name"`
	MobileNumber     string           `json:"mobile_number"`
	AgentID          string           `json:"agent_id"`
	FromNumber       string           `json:"from_number"`
	CallConfig       CallConfig       `json:"call_config"`
	CustomArgsValues CustomArgsValues `json:"custom_args_values"`
}

// CustomArgsValues carries the loan fields and Hindi names into the call agent.
// Loan fields are omitted when empty.
type CustomArgsValues struct {
	CalleeName      string  `json:"callee_name"`
	CalleeNameHindi string  `json:"callee_name_hindi"`
	AddressName     string  `json:"address_name"`
	MobileNumber    string  `json:"mobile_number"`
	CurrentDateTime string  `json:"current_date_time"`
	MaxRPGOur       int     `json:"max_rpg_our"`
	LoanNumber      string  `json:"loan_number,omitempty"`
	SancAmount      float64 `json:"sanc_amount,omitempty"`
	TotalDisbAmount float64 `json:"total_disb_amount,omitempty"`
	PendDisbAmount  float64 `json:"pend_disb_amount,omitempty"`
	ProceFeeAmount  float64 `json:"proce_fee_amount,omitempty"`
	TotDedAmount    float64 `json:"tot_ded_amount,omitempty"`
	ROI             float64 `json:"roi,omitempty"`
	LoanTenor       int     `json:"loan_tenor,omitempty"`
	EMIAmount       float64 `json:"emi_amount,omitempty"`
	LoanDisbDate    string  `json:"loan_disb_date,omitempty"`
	LoanStartDate   string  `json:"loan_start_date,omitempty"`
	EMIDueDate      string  `json:"emi_due_date,omitempty"`
	LoanEndDate     string  `json:"loan_end_date,omitempty"`
	CheqHand        string  `json:"cheq_hand,omitempty"`
	PaymentMode     string  `json:"payment_mode,omitempty"`
	PreviousBranch  string  `json:"previous_branch,omitempty"`
}

// CallConfig controls timeouts, retries and the allowed calling window
type CallConfig struct {
	IdleTimeoutWarning int             `json:"idle_timeout_warning"`
	IdleTimeoutEnd     int             `json:"idle_timeout_end"`
	MaxCallLength      int             `json:"max_call_length"`
	CallRetryConfig    CallRetryConfig `json:"call_retry_config"`
	CallTime           CallTime        `json:"call_time"`
}

// CallRetryConfig is the remote retry policy; retries here are the calling
// service's, not ours
type CallRetryConfig struct {
	RetryCount     int `json:"retry_count"`
	RetryBusy      int `json:"retry_busy"`
	RetryNotPicked int `json:"retry_not_picked"`
	RetryFailed    int `json:"retry_failed"`
}

// CallTime is the window during which the agent may dial
type CallTime struct {
	CallStartTime string `json:"call_start_time"`
	CallEndTime   string `json:"call_end_time"`
	Timezone      string `json:"timezone"`
}

// DefaultCallConfig returns the call configuration sent with every request
func DefaultCallConfig(timezone string) CallConfig {
	if timezone == "" {
		timezone = "Asia/Kolkata"
	}
	return CallConfig{
		IdleTimeoutWarning: 100,
		IdleTimeoutEnd:     100,
		MaxCallLength:      3000,
		CallRetryConfig: CallRetryConfig{
			RetryCount:     0,
			RetryBusy:      30,
			RetryNotPicked: 30,
			RetryFailed:    30,
		},
		CallTime: CallTime{
			CallStartTime: "00:00",
			CallEndTime:   "23:59",
			Timezone:      timezone,
		},
	}
}

// WebhookPayload is the raw form forwarded to the alternate webhook
type WebhookPayload struct {
	LoanFormValues
	CalleeNameHindi string `json:"callee_name_hindi"`
}

// SubmissionResult is the uniform outcome returned to form clients
type SubmissionResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Code    string           `json:"code,omitempty"`
	Errors  ValidationErrors `json:"errors,omitempty"`

	// StatusCode is the HTTP status the handler should answer with
	StatusCode int `json:"-"`
}
