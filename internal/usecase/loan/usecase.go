package loan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/emi"
	"loan-origination-backend/internal/domain/loan"
	"loan-origination-backend/internal/domain/product"
	"loan-origination-backend/internal/domain/uow"
	"loan-origination-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repo    loan.Repository
	tx      uow.UnitOfWork
	catalog *product.Catalog
	log     *zap.Logger
	now     func() time.Time
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork, c *product.Catalog, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, tx: tx, catalog: c, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Submit validates the whole draft against the catalog and stores it as a
// proposed loan priced at the product's base APR.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*LoanDTO, error) {
	if !id.IsID32(in.BorrowerID) {
		return nil, fmt.Errorf("%w: borrower_id must be 32-char lowercase hex", ErrInvalidInput)
	}

	d := in.Draft
	u.catalog.Attach(&d)
	res := application.Validate(application.FirstStep, &d, true)
	if _, bad := res.Errors["product_id"]; !bad && d.Product == nil {
		res.Errors["product_id"] = "Unknown loan type"
	}
	if tenure, ok := d.TenureMonths.Decimal(); ok && !tenure.IsInteger() {
		if _, bad := res.Errors["tenure_months"]; !bad {
			res.Errors["tenure_months"] = "Tenure must be whole months"
		}
	}
	if len(res.Errors) > 0 {
		u.log.Info("application rejected",
			zap.String("borrower_id", in.BorrowerID),
			zap.Int("error_count", len(res.Errors)))
		return nil, &ValidationError{Errors: res.Errors}
	}

	principal, _ := d.LoanAmount.Float()
	income, _ := d.AnnualIncome.Float()
	tenure, _ := d.TenureMonths.Decimal()
	months := int(tenure.IntPart())
	apr := d.Product.BaseInterestAPR

	l := &loan.Loan{
		LoanID:         id.NewID32(),
		BorrowerID:     in.BorrowerID,
		ProductID:      d.ProductID,
		FullName:       strings.TrimSpace(d.FullName),
		Email:          strings.TrimSpace(d.Email),
		Phone:          d.Phone,
		Address:        strings.TrimSpace(d.Address),
		AnnualIncome:   income,
		Principal:      principal,
		AprPct:         apr,
		TenureMonths:   months,
		EMI:            emi.Calculate(principal, apr, months),
		Purpose:        strings.TrimSpace(d.Purpose),
		AadhaarLast4:   d.AadhaarNo[len(d.AadhaarNo)-4:],
		PanNo:          strings.ToUpper(d.PanNo),
		DocumentCount:  len(d.Documents),
		State:          loan.StateProposed,
		StateUpdatedAt: u.now(),
	}
	// one pending loan per borrower; the unique pending slot catches a
	// concurrent submit that passed the check at the same time
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		pending, err := r.Loans.GetPendingLoanByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", loan.ErrPendingExists, pending.LoanID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return r.Loans.Create(ctx, l)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: concurrent submission", loan.ErrPendingExists)
	}
	if err != nil {
		return nil, err
	}
	u.log.Info("loan submitted",
		zap.String("loan_id", l.LoanID),
		zap.String("product_id", l.ProductID),
		zap.Int64("emi", l.EMI))
	return toDTO(l), nil
}

func (u *Usecase) get(ctx context.Context, loanID string) (*loan.Loan, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Summary reports repayment totals and, for originated loans, the projected
// next due date as of today (zero today means now).
func (u *Usecase) Summary(ctx context.Context, loanID string, today time.Time) (*SummaryDTO, error) {
	l, err := u.get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if today.IsZero() {
		today = u.now()
	}
	t := emi.Summarize(l.Principal, l.AprPct, l.TenureMonths)
	out := &SummaryDTO{
		LoanDTO:               *toDTO(l),
		TotalPayable:          t.TotalPayable,
		TotalInterest:         t.TotalInterest,
		InstallmentsRemaining: l.TenureMonths,
	}
	if l.State != loan.StateApproved || l.OriginatedAt == nil {
		return out, nil
	}

	elapsed := emi.ElapsedMonths(*l.OriginatedAt, today)
	if elapsed >= l.TenureMonths {
		out.InstallmentsElapsed = l.TenureMonths
		out.InstallmentsRemaining = 0
		return out, nil
	}
	next := emi.NextDueDate(*l.OriginatedAt, today)
	out.InstallmentsElapsed = elapsed
	out.InstallmentsRemaining = l.TenureMonths - elapsed
	out.NextDueDate = &next
	return out, nil
}

// Schedule returns the amortization table of a loan. Loans that are not
// originated yet get a provisional table starting today.
func (u *Usecase) Schedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	l, err := u.get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	start, provisional := u.now(), true
	if l.OriginatedAt != nil {
		start, provisional = *l.OriginatedAt, false
	}
	return &ScheduleDTO{
		Loan:         *toDTO(l),
		Provisional:  provisional,
		Installments: emi.Schedule(l.Principal, l.AprPct, l.TenureMonths, start),
	}, nil
}

// Quote prices a hypothetical loan. Degenerate inputs give a zero quote.
func (u *Usecase) Quote(in QuoteInput) *QuoteDTO {
	start := in.Start
	if start.IsZero() {
		start = u.now()
	}
	rows := emi.Schedule(in.Principal, in.AprPct, in.Months, start)
	if rows == nil {
		rows = []emi.Installment{}
	}
	return &QuoteDTO{
		Totals:       emi.Summarize(in.Principal, in.AprPct, in.Months),
		Installments: rows,
	}
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID string) ([]loan.Record, error) {
	if !id.IsID32(borrowerID) {
		return nil, fmt.Errorf("%w: borrower_id must be 32-char lowercase hex", ErrInvalidInput)
	}
	loans, err := u.repo.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]loan.Record, 0, len(loans))
	for i := range loans {
		out = append(out, loan.FromLoan(&loans[i]))
	}
	return out, nil
}

// Normalize converts upstream rows; bad rows are reported by index and skipped.
func (u *Usecase) Normalize(rows []json.RawMessage) NormalizeResult {
	res := NormalizeResult{Records: make([]loan.Record, 0, len(rows))}
	for i, raw := range rows {
		var r loan.RawRecord
		err := json.Unmarshal(raw, &r)
		var rec loan.Record
		if err == nil {
			rec, err = loan.Normalize(r)
		}
		if err != nil {
			res.Errors = append(res.Errors, RowError{Index: i, Message: err.Error()})
			continue
		}
		res.Records = append(res.Records, rec)
	}
	if len(res.Errors) > 0 {
		u.log.Warn("records skipped during normalization", zap.Int("count", len(res.Errors)))
	}
	return res
}
