package loanmock

import (
	"context"
	"sync"

	domain "loan-origination-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed domain.Repository that counts calls per method.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn       func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingLoanByBorrowerIDFn func(ctx context.Context, borrowerID string) (*domain.Loan, error)
	ListByBorrowerIDFn           func(ctx context.Context, borrowerID string) ([]domain.Loan, error)
	SaveFn                       func(ctx context.Context, l *domain.Loan) error

	mu    sync.Mutex
	calls map[string]int
}

// Calls reports how many times method was invoked.
func (m *Repo) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *Repo) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[method]++
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	m.record("Create")
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, l)
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	m.record("Save")
	if m.SaveFn == nil {
		return nil
	}
	return m.SaveFn(ctx, l)
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	m.record("GetByLoanID")
	return lookup(ctx, m.GetByLoanIDFn, loanID)
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	m.record("GetByLoanIDForUpdate")
	return lookup(ctx, m.GetByLoanIDForUpdateFn, loanID)
}

func (m *Repo) GetPendingLoanByBorrowerID(ctx context.Context, borrowerID string) (*domain.Loan, error) {
	m.record("GetPendingLoanByBorrowerID")
	return lookup(ctx, m.GetPendingLoanByBorrowerIDFn, borrowerID)
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.Loan, error) {
	m.record("ListByBorrowerID")
	if m.ListByBorrowerIDFn == nil {
		return nil, context.Canceled
	}
	return m.ListByBorrowerIDFn(ctx, borrowerID)
}

func lookup(ctx context.Context, fn func(context.Context, string) (*domain.Loan, error), key string) (*domain.Loan, error) {
	if fn == nil {
		return nil, context.Canceled
	}
	return fn(ctx, key)
}
