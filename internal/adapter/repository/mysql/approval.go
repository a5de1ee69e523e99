package mysql

import (
	"context"

	approvalDomain "loan-origination-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) GetByLoanID(ctx context.Context, loanNumericID uint64) (*approvalDomain.Approval, error) {
	return r.first(ctx, "loan_id = ?", loanNumericID)
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	return r.first(ctx, "approval_id = ?", approvalID)
}

// first returns gorm.ErrRecordNotFound when nothing matches. Soft-deleted
// rows never match.
func (r *ApprovalRepository) first(ctx context.Context, cond string, arg any) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
