package approval

import "context"

type Repository interface {
	// at most one per loan, enforced by ux_approvals_loan_active
	Create(ctx context.Context, a *Approval) error

	GetByLoanID(ctx context.Context, loanID uint64) (*Approval, error)

	GetByApprovalID(ctx context.Context, approvalID string) (*Approval, error)
}
