// Package loancalc derives the read-only loan fields of the callback form.
package loancalc

import (
	"math"
	"time"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// DerivedFields holds the values recomputed whenever their inputs change
type DerivedFields struct {
	PendDisbAmount float64 `json:"pend_disb_amount"`
	EMIAmount      float64 `json:"emi_amount"`
	LoanStartDate  string  `json:"loan_start_date"`
	LoanEndDate    string  `json:"loan_end_date"`
}

// PendingDisbursal returns max(0, sanctioned - disbursed)
func PendingDisbursal(sanctioned, disbursed float64) float64 {
	return math.Max(0, sanctioned-disbursed)
}

// EMI computes the reducing-balance installment rounded to the nearest unit.
// Returns 0 unless principal, rate and tenor are all positive, and when the
// result is not a finite number (the growth factor overflows or rounds to 1).
func EMI(principal, annualROI float64, tenorMonths int) float64 {
	r := annualROI / 12 / 100
	if principal <= 0 || r <= 0 || tenorMonths <= 0 {
		return 0
	}

	growth := math.Pow(1+r, float64(tenorMonths))
	emi := math.Round(principal * r * growth / (growth - 1))
	if math.IsNaN(emi) || math.IsInf(emi, 0) {
		return 0
	}
	return emi
}

// AddMonths adds calendar months, clamping the day to the end of the target
// month (Jan 31 + 1 month is Feb 28/29)
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// StartDate returns the first EMI due date normalized to a calendar date,
// or "" when it cannot be parsed
func StartDate(emiDueDate string) string {
	t, ok := models.ParseDate(emiDueDate)
	if !ok {
		return ""
	}
	return models.FormatDate(t)
}

// EndDate returns emiDueDate + (tenor - 1) months, or "" when the date is
// unparseable or the tenor is below one month
func EndDate(emiDueDate string, tenorMonths int) string {
	if tenorMonths < 1 {
		return ""
	}
	t, ok := models.ParseDate(emiDueDate)
	if !ok {
		return ""
	}
	return models.FormatDate(AddMonths(t, tenorMonths-1))
}

// Derive computes every derived field from the form inputs
func Derive(form models.LoanFormValues) DerivedFields {
	return DerivedFields{
		PendDisbAmount: PendingDisbursal(float64(form.SancAmount), float64(form.TotalDisbAmount)),
		EMIAmount:      EMI(float64(form.TotalDisbAmount), float64(form.ROI), int(form.LoanTenor)),
		LoanStartDate:  StartDate(form.EMIDueDate),
		LoanEndDate:    EndDate(form.EMIDueDate, int(form.LoanTenor)),
	}
}

// Apply returns a copy of form with the derived fields overwritten
func Apply(form models.LoanFormValues) models.LoanFormValues {
	d := Derive(form)
	form.PendDisbAmount = models.Amount(d.PendDisbAmount)
	form.EMIAmount = models.Amount(d.EMIAmount)
	form.LoanStartDate = d.LoanStartDate
	form.LoanEndDate = d.LoanEndDate
	return form
}

// FillMissing derives only the fields the caller left empty, keeping any
// values that were supplied explicitly
func FillMissing(form models.LoanFormValues) models.LoanFormValues {
	d := Derive(form)
	if form.PendDisbAmount == 0 {
		form.PendDisbAmount = models.Amount(d.PendDisbAmount)
	}
	if form.EMIAmount == 0 {
		form.EMIAmount = models.Amount(d.EMIAmount)
	}
	if form.LoanStartDate == "" {
		form.LoanStartDate = d.LoanStartDate
	}
	if form.LoanEndDate == "" {
		form.LoanEndDate = d.LoanEndDate
	}
	return form
}
