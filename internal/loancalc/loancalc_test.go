package loancalc

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

func TestPendingDisbursal(t *testing.T) {
	tests := []struct {
		name       string
		sanctioned float64
		disbursed  float64
		want       float64
	}{
		{name: "partially disbursed", sanctioned: 500000, disbursed: 450000, want: 50000},
		{name: "fully disbursed", sanctioned: 500000, disbursed: 500000, want: 0},
		{name: "nothing disbursed", sanctioned: 500000, disbursed: 0, want: 500000},
		{name: "disbursed exceeds sanctioned", sanctioned: 400000, disbursed: 450000, want: 0},
		{name: "both zero", sanctioned: 0, disbursed: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PendingDisbursal(tt.sanctioned, tt.disbursed); got != tt.want {
				t.Errorf("PendingDisbursal(%v, %v) = %v, want %v", tt.sanctioned, tt.disbursed, got, tt.want)
			}
		})
	}
}

func TestEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		roi       float64
		tenor     int
		want      float64
	}{
		{name: "form default sanctioned amount", principal: 500000, roi: 8.5, tenor: 240, want: 4339},
		{name: "form default disbursed amount", principal: 450000, roi: 8.5, tenor: 240, want: 3905},
		{name: "short personal loan", principal: 100000, roi: 12, tenor: 12, want: 8885},
		{name: "zero rate", principal: 450000, roi: 0, tenor: 240, want: 0},
		{name: "zero tenor", principal: 450000, roi: 8.5, tenor: 0, want: 0},
		{name: "zero principal", principal: 0, roi: 8.5, tenor: 240, want: 0},
		{name: "negative rate", principal: 450000, roi: -1, tenor: 240, want: 0},
		{name: "growth overflows", principal: 450000, roi: 12, tenor: 100000, want: 0},
		{name: "rate too small to compound", principal: 450000, roi: 1e-300, tenor: 240, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EMI(tt.principal, tt.roi, tt.tenor); got != tt.want {
				t.Errorf("EMI(%v, %v, %d) = %v, want %v", tt.principal, tt.roi, tt.tenor, got, tt.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{name: "zero months", start: "2026-03-01", months: 0, want: "2026-03-01"},
		{name: "within year", start: "2026-03-01", months: 5, want: "2026-08-01"},
		{name: "across year", start: "2026-11-15", months: 3, want: "2027-02-15"},
		{name: "clamp to february", start: "2026-01-31", months: 1, want: "2026-02-28"},
		{name: "clamp to leap february", start: "2027-01-31", months: 13, want: "2028-02-29"},
		{name: "clamp to thirty days", start: "2026-05-31", months: 1, want: "2026-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := time.Parse(models.DateLayout, tt.start)
			if err != nil {
				t.Fatalf("bad start date: %v", err)
			}
			if got := models.FormatDate(AddMonths(start, tt.months)); got != tt.want {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestEndDate(t *testing.T) {
	tests := []struct {
		name  string
		emi   string
		tenor int
		want  string
	}{
		{name: "twenty year loan", emi: "2026-03-01", tenor: 240, want: "2046-02-01"},
		{name: "single installment", emi: "2026-03-01", tenor: 1, want: "2026-03-01"},
		{name: "timestamp keeps calendar day", emi: "2026-03-01T00:00:00+05:30", tenor: 12, want: "2027-02-01"},
		{name: "zero tenor", emi: "2026-03-01", tenor: 0, want: ""},
		{name: "unparseable date", emi: "01/03/2026", tenor: 12, want: ""},
		{name: "empty date", emi: "", tenor: 12, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EndDate(tt.emi, tt.tenor); got != tt.want {
				t.Errorf("EndDate(%q, %d) = %q, want %q", tt.emi, tt.tenor, got, tt.want)
			}
		})
	}
}

func TestStartDate(t *testing.T) {
	if got := StartDate("2026-03-01"); got != "2026-03-01" {
		t.Errorf("StartDate() = %q, want 2026-03-01", got)
	}
	if got := StartDate("2026-03-01T23:30:00-08:00"); got != "2026-03-01" {
		t.Errorf("StartDate() shifted calendar day: %q", got)
	}
	if got := StartDate("not a date"); got != "" {
		t.Errorf("StartDate() = %q, want empty", got)
	}
}

func TestDerive(t *testing.T) {
	form := models.LoanFormValues{
		SancAmount:      500000,
		TotalDisbAmount: 450000,
		ROI:             8.5,
		LoanTenor:       240,
		EMIDueDate:      "2026-03-01",
	}

	want := DerivedFields{
		PendDisbAmount: 50000,
		EMIAmount:      3905,
		LoanStartDate:  "2026-03-01",
		LoanEndDate:    "2046-02-01",
	}

	if diff := cmp.Diff(want, Derive(form)); diff != "" {
		t.Errorf("Derive() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyOverwritesDerivedFields(t *testing.T) {
	form := models.LoanFormValues{
		SancAmount:      500000,
		TotalDisbAmount: 450000,
		PendDisbAmount:  1,
		EMIAmount:       1,
		ROI:             8.5,
		LoanTenor:       240,
		EMIDueDate:      "bad",
		LoanStartDate:   "2020-01-01",
		LoanEndDate:     "2020-01-01",
	}

	got := Apply(form)

	if got.PendDisbAmount != 50000 || got.EMIAmount != 3905 {
		t.Errorf("amounts not recomputed: pending=%v emi=%v", got.PendDisbAmount, got.EMIAmount)
	}
	if got.LoanStartDate != "" || got.LoanEndDate != "" {
		t.Errorf("invalid due date should clear dates, got start=%q end=%q", got.LoanStartDate, got.LoanEndDate)
	}
}

func TestFillMissingKeepsSuppliedValues(t *testing.T) {
	form := models.LoanFormValues{
		SancAmount:      500000,
		TotalDisbAmount: 450000,
		EMIAmount:       4339,
		ROI:             8.5,
		LoanTenor:       240,
		EMIDueDate:      "2026-03-01",
	}

	got := FillMissing(form)

	if got.EMIAmount != 4339 {
		t.Errorf("EMIAmount = %v, want supplied 4339", got.EMIAmount)
	}
	if got.PendDisbAmount != 50000 {
		t.Errorf("PendDisbAmount = %v, want 50000", got.PendDisbAmount)
	}
	if got.LoanEndDate != "2046-02-01" {
		t.Errorf("LoanEndDate = %q, want 2046-02-01", got.LoanEndDate)
	}
}
