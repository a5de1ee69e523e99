package approvalmock

import (
	"context"
	"sync"

	domain "loan-origination-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed domain.Repository. Create keeps what it is given
// in Created unless CreateFn rejects it.
type Repo struct {
	CreateFn          func(ctx context.Context, a *domain.Approval) error
	GetByLoanIDFn     func(ctx context.Context, loanNumericID uint64) (*domain.Approval, error)
	GetByApprovalIDFn func(ctx context.Context, approvalID string) (*domain.Approval, error)

	mu      sync.Mutex
	Created []*domain.Approval
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, a); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Created = append(m.Created, a)
	m.mu.Unlock()
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanNumericID uint64) (*domain.Approval, error) {
	if m.GetByLoanIDFn == nil {
		return nil, context.Canceled
	}
	return m.GetByLoanIDFn(ctx, loanNumericID)
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	if m.GetByApprovalIDFn == nil {
		return nil, context.Canceled
	}
	return m.GetByApprovalIDFn(ctx, approvalID)
}
