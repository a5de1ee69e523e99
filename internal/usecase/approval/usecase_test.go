package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-origination-backend/internal/domain/approval"
	"loan-origination-backend/internal/domain/loan"
	"loan-origination-backend/internal/domain/uow"
	"loan-origination-backend/internal/testutil/approvalmock"
	"loan-origination-backend/internal/testutil/loanmock"
	"loan-origination-backend/internal/testutil/uowmock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const employeeID = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

func TestUsecase_Approve(t *testing.T) {
	approvedOn := time.Date(2024, 1, 31, 15, 30, 0, 0, time.FixedZone("IST", 19800))
	in := ApproveInput{
		LoanID:              "LN-123",
		PhotoURL:            "https://img/x.jpg",
		ValidatorEmployeeID: employeeID,
		ApprovalDate:        approvedOn,
	}
	wantDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	newProposedLoan := func() *loan.Loan {
		return &loan.Loan{ID: 777, LoanID: "LN-123", State: loan.StateProposed}
	}
	passthrough := func(loans *loanmock.Repo, apprs *approvalmock.Repo) *Usecase {
		return NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Approvals: apprs}), zap.NewNop())
	}

	tests := []struct {
		name    string
		in      *ApproveInput
		setup   func() *Usecase
		wantErr error
		check   func(*ApprovalDTO) error
	}{
		{
			name: "happy path proposed -> approved",
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*loan.Loan, error) {
						return newProposedLoan(), nil
					},
					SaveFn: func(ctx context.Context, l *loan.Loan) error {
						if l.State != loan.StateApproved {
							t.Fatalf("expected state=approved, got %s", l.State)
						}
						if l.OriginatedAt == nil || !l.OriginatedAt.Equal(wantDate) {
							t.Fatalf("expected origination %v, got %v", wantDate, l.OriginatedAt)
						}
						return nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByLoanIDFn: func(ctx context.Context, id uint64) (*approval.Approval, error) {
						return nil, gorm.ErrRecordNotFound
					},
					CreateFn: func(ctx context.Context, a *approval.Approval) error {
						if a.LoanID != 777 || a.PhotoURL != in.PhotoURL || !a.ApprovalDate.Equal(wantDate) {
							t.Fatalf("approval mismatch: %+v", a)
						}
						return nil
					},
				}
				return passthrough(loans, apprs)
			},
			check: func(dto *ApprovalDTO) error {
				if dto == nil {
					return errors.New("dto is nil")
				}
				if dto.LoanID != "LN-123" || len(dto.ApprovalID) != 32 {
					return errors.New("dto ids mismatch")
				}
				if !dto.FirstDueDate.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
					return errors.New("first due date not clamped to month end")
				}
				return nil
			},
		},
		{
			name: "loan not found",
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
						return nil, gorm.ErrRecordNotFound
					},
				}
				return passthrough(loans, &approvalmock.Repo{})
			},
			wantErr: loan.ErrNotFound,
		},
		{
			name: "already approved state",
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
						return &loan.Loan{ID: 1, State: loan.StateApproved}, nil
					},
				}
				return passthrough(loans, &approvalmock.Repo{})
			},
			wantErr: loan.ErrAlreadyApproved,
		},
		{
			name: "rejected loan cannot be approved",
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
						return &loan.Loan{ID: 1, State: loan.StateRejected}, nil
					},
				}
				return passthrough(loans, &approvalmock.Repo{})
			},
			wantErr: loan.ErrInvalidTransition,
		},
		{
			name: "duplicate approval exists",
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
						return newProposedLoan(), nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByLoanIDFn: func(context.Context, uint64) (*approval.Approval, error) {
						return &approval.Approval{ApprovalID: "EXIST"}, nil
					},
				}
				return passthrough(loans, apprs)
			},
			wantErr: loan.ErrAlreadyApproved,
		},
		{
			name: "approval lookup error surfaces",
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByLoanIDForUpdateFn: func(context.Context, string) (*loan.Loan, error) {
						return newProposedLoan(), nil
					},
				}
				apprs := &approvalmock.Repo{
					GetByLoanIDFn: func(context.Context, uint64) (*approval.Approval, error) {
						return nil, context.DeadlineExceeded
					},
				}
				return passthrough(loans, apprs)
			},
			wantErr: context.DeadlineExceeded,
		},
		{
			name: "bad validator id",
			in: &ApproveInput{
				LoanID: "LN-123", PhotoURL: "https://img/x.jpg",
				ValidatorEmployeeID: "EMP-9", ApprovalDate: approvedOn,
			},
			setup: func() *Usecase {
				return passthrough(&loanmock.Repo{}, &approvalmock.Repo{})
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "missing approval date",
			in: &ApproveInput{
				LoanID: "LN-123", PhotoURL: "https://img/x.jpg", ValidatorEmployeeID: employeeID,
			},
			setup: func() *Usecase {
				return passthrough(&loanmock.Repo{}, &approvalmock.Repo{})
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "nil UoW",
			setup: func() *Usecase {
				return NewUsecase(nil, zap.NewNop())
			},
			wantErr: loan.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			uc := tt.setup()
			input := in
			if tt.in != nil {
				input = *tt.in
			}
			dto, err := uc.Approve(context.Background(), input)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err=%v, got %v", tt.wantErr, err)
			}
			if tt.check != nil && err == nil {
				if cerr := tt.check(dto); cerr != nil {
					t.Fatalf("dto check failed: %v", cerr)
				}
			}
		})
	}
}
