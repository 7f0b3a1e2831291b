package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// LoanFormValues is the flat record collected by the request-a-call form
type LoanFormValues struct {
	CalleeName      string `json:"callee_name" validate:"required"`
	MobileNumber    string `json:"mobile_number" validate:"required,mobile10"`
	LoanNumber      string `json:"loan_number,omitempty"`
	SancAmount      Amount `json:"sanc_amount" validate:"gt=0"`
	TotalDisbAmount Amount `json:"total_disb_amount" validate:"gt=0,ltefield=SancAmount"`
	PendDisbAmount  Amount `json:"pend_disb_amount" validate:"gte=0"`
	ProceFeeAmount  Amount `json:"proce_fee_amount" validate:"gte=0"`
	TotDedAmount    Amount `json:"tot_ded_amount" validate:"gte=0,ltefield=SancAmount"`
	ROI             Amount `json:"roi" validate:"gt=0"`
	LoanTenor       Months `json:"loan_tenor" validate:"gt=0"`
	EMIAmount       Amount `json:"emi_amount" validate:"gte=0"`
	LoanDisbDate    string `json:"loan_disb_date" validate:"required"`
	LoanStartDate   string `json:"loan_start_date,omitempty"`
	EMIDueDate      string `json:"emi_due_date" validate:"required"`
	LoanEndDate     string `json:"loan_end_date" validate:"required"`
	CheqHand        string `json:"cheq_hand" validate:"required"`
	PaymentMode     string `json:"payment_mode" validate:"required"`
	TermsAgreed     bool   `json:"terms_agreed,omitempty"`
}

// FieldError describes a single invalid form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field violation found on a form
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// fieldMessages maps "<json field>.<tag>" to the user-facing message
var fieldMessages = map[string]string{
	"callee_name.required":       "Name is required.",
	"mobile_number.required":     "Please enter a valid 10-digit mobile number.",
	"mobile_number.mobile10":     "Please enter a valid 10-digit mobile number.",
	"sanc_amount.gt":             "Amount must be a positive number.",
	"total_disb_amount.gt":       "Amount must be a positive number.",
	"total_disb_amount.ltefield": "Disbursed amount cannot be greater than sanctioned amount.",
	"pend_disb_amount.gte":       "Pending amount cannot be negative.",
	"proce_fee_amount.gte":       "Fee cannot be negative.",
	"tot_ded_amount.gte":         "Deduction cannot be negative.",
	"tot_ded_amount.ltefield":    "Deduction amount cannot be greater than sanctioned amount.",
	"roi.gt":                     "Rate of interest must be positive.",
	"loan_tenor.gt":              "Tenor must be a positive number of months.",
	"emi_amount.gte":             "EMI amount must be non-negative.",
	"loan_disb_date.required":    "Loan disbursed date is required.",
	"loan_disb_date.before_emi":  "Loan disbursed date must be before the first EMI due date.",
	"emi_due_date.required":      "First EMI due date is required.",
	"loan_end_date.required":     "Loan end date is required.",
	"cheq_hand.required":         "Cheque handover status is required.",
	"payment_mode.required":      "Payment mode is required.",
}

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

var (
	formValidator     *validator.Validate
	formValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	formValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names so messages line up with the wire format
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
			return mobilePattern.MatchString(fl.Field().String())
		})

		v.RegisterStructValidation(validateLoanDates, LoanFormValues{})

		formValidator = v
	})
	return formValidator
}

// validateLoanDates enforces disbursed date < first EMI due date.
// Unparseable dates are left to the per-field rules.
func validateLoanDates(sl validator.StructLevel) {
	form := sl.Current().Interface().(LoanFormValues)

	disb, ok := ParseDate(form.LoanDisbDate)
	if !ok {
		return
	}
	emi, ok := ParseDate(form.EMIDueDate)
	if !ok {
		return
	}
	if !disb.Before(emi) {
		sl.ReportError(form.LoanDisbDate, "loan_disb_date", "LoanDisbDate", "before_emi", "")
	}
}

// Validate checks the full form schema and returns an INVALID_INPUT AppError
// wrapping ValidationErrors when any field is invalid
func (f *LoanFormValues) Validate() error {
	err := getValidator().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidInput(err.Error())
	}

	fieldErrs := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid."
		}
		fieldErrs = append(fieldErrs, FieldError{Field: fe.Field(), Message: msg})
	}

	return &AppError{
		Code:    CodeInvalidInput,
		Message: fieldErrs[0].Message,
		Err:     fieldErrs,
	}
}

// CallRequest is the body accepted by the request-a-call endpoint.
// Loan fields are optional here and forwarded only when set.
type CallRequest struct {
	LoanFormValues
	CampaignType   string `json:"campaign_type,omitempty"`
	PreviousBranch string `json:"previous_branch,omitempty"`
}

// Validate runs the fast-fail checks made before any outbound call
func (r *CallRequest) Validate() error {
	if strings.TrimSpace(r.MobileNumber) == "" {
		return ErrInvalidInput("Mobile number is required")
	}
	if strings.TrimSpace(r.CalleeName) == "" {
		return ErrInvalidInput("Callee name is required")
	}
	if IsWinback(r.CampaignType) && strings.TrimSpace(r.PreviousBranch) == "" {
		return ErrInvalidInput("Previous branch is required for Winback campaign")
	}
	if len(DigitsOnly(r.MobileNumber)) < 10 {
		return ErrInvalidInput("Invalid mobile number format")
	}
	return nil
}

// DigitsOnly strips every non-digit character
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatMobileNumber keeps numbers already prefixed with "+" and otherwise
// prepends countryCode to the digits
func FormatMobileNumber(mobile, countryCode string) string {
	trimmed := strings.TrimSpace(mobile)
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return countryCode + DigitsOnly(trimmed)
}
