package uow

import (
	"context"

	"loan-origination-backend/internal/domain/approval"
	"loan-origination-backend/internal/domain/loan"
)

type Repos struct {
	Loans     loan.Repository
	Approvals approval.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// locks the loan row before calling fn
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
