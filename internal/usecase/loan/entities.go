package loan

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/emi"
	"loan-origination-backend/internal/domain/loan"
)

var ErrInvalidInput = errors.New("invalid input")

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("application validation failed")

// ValidationError carries the per-field messages of a rejected draft.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type SubmitInput struct {
	BorrowerID string            `json:"borrower_id"`
	Draft      application.Draft `json:"draft"`
}

type LoanDTO struct {
	LoanID       string     `json:"loan_id"`
	BorrowerID   string     `json:"borrower_id"`
	ProductID    string     `json:"product_id"`
	Principal    float64    `json:"principal"`
	AprPct       float64    `json:"apr_pct"`
	TenureMonths int        `json:"tenure_months"`
	EMI          int64      `json:"emi"`
	State        string     `json:"state"`
	OriginatedAt *time.Time `json:"originated_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:       l.LoanID,
		BorrowerID:   l.BorrowerID,
		ProductID:    l.ProductID,
		Principal:    l.Principal,
		AprPct:       l.AprPct,
		TenureMonths: l.TenureMonths,
		EMI:          l.EMI,
		State:        string(l.State),
		OriginatedAt: l.OriginatedAt,
		CreatedAt:    l.CreatedAt,
	}
}

type SummaryDTO struct {
	LoanDTO
	TotalPayable          int64      `json:"total_payable"`
	TotalInterest         int64      `json:"total_interest"`
	InstallmentsElapsed   int        `json:"installments_elapsed"`
	InstallmentsRemaining int        `json:"installments_remaining"`
	NextDueDate           *time.Time `json:"next_due_date,omitempty"`
}

type ScheduleDTO struct {
	Loan LoanDTO `json:"loan"`
	// set when the loan is not originated yet and dates start from today
	Provisional  bool              `json:"provisional"`
	Installments []emi.Installment `json:"installments"`
}

type QuoteInput struct {
	Principal float64
	AprPct    float64
	Months    int
	Start     time.Time
}

type QuoteDTO struct {
	emi.Totals
	Installments []emi.Installment `json:"installments"`
}

type RowError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type NormalizeResult struct {
	Records []loan.Record `json:"records"`
	Errors  []RowError    `json:"errors,omitempty"`
}
