package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainApproval "loan-origination-backend/internal/domain/approval"
	"loan-origination-backend/internal/domain/emi"
	domainLoan "loan-origination-backend/internal/domain/loan"
	"loan-origination-backend/internal/domain/uow"
	"loan-origination-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Approve moves a proposed loan to approved inside one transaction and
// records the approval date as the loan's origination date.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	if u.uow == nil {
		return nil, domainLoan.ErrInvalidTransition
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	date := dateOnly(in.ApprovalDate)

	var dto *ApprovalDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		switch l.State {
		case domainLoan.StateProposed:
		case domainLoan.StateApproved:
			return domainLoan.ErrAlreadyApproved
		default:
			return fmt.Errorf("%w: %s -> approved", domainLoan.ErrInvalidTransition, l.State)
		}

		if _, err := r.Approvals.GetByLoanID(ctx, l.ID); err == nil {
			return domainLoan.ErrAlreadyApproved
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		a := &domainApproval.Approval{
			ApprovalID:          id.NewID32(),
			LoanID:              l.ID,
			PhotoURL:            strings.TrimSpace(in.PhotoURL),
			ValidatorEmployeeID: in.ValidatorEmployeeID,
			ApprovalDate:        date,
			FirstDueDate:        emi.AddMonths(date, 1),
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		l.State = domainLoan.StateApproved
		l.StateUpdatedAt = u.now()
		l.OriginatedAt = &date
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &ApprovalDTO{
			ApprovalID:   a.ApprovalID,
			LoanID:       l.LoanID,
			PhotoURL:     a.PhotoURL,
			ApprovedAt:   date,
			FirstDueDate: a.FirstDueDate,
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainLoan.ErrNotFound
	}
	if err != nil {
		u.log.Warn("approval failed", zap.String("loan_id", in.LoanID), zap.Error(err))
		return nil, err
	}

	u.log.Info("loan approved",
		zap.String("loan_id", dto.LoanID),
		zap.String("approval_id", dto.ApprovalID),
		zap.Time("originated_at", date))
	return dto, nil
}

func validate(in ApproveInput) error {
	switch {
	case in.LoanID == "":
		return fmt.Errorf("%w: loan_id is required", ErrInvalidInput)
	case strings.TrimSpace(in.PhotoURL) == "":
		return fmt.Errorf("%w: photo_url is required", ErrInvalidInput)
	case !id.IsID32(in.ValidatorEmployeeID):
		return fmt.Errorf("%w: validator_employee_id must be 32-char lowercase hex", ErrInvalidInput)
	case in.ApprovalDate.IsZero():
		return fmt.Errorf("%w: approval_date is required", ErrInvalidInput)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
