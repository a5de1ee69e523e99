package approvalmock

import (
	"context"
	"errors"
	"testing"

	domain "loan-origination-backend/internal/domain/approval"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if _, err := m.GetByLoanID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByLoanID default: %v", err)
	}
	if _, err := m.GetByApprovalID(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByApprovalID default: %v", err)
	}

	want := &domain.Approval{ApprovalID: "a"}
	m.GetByApprovalIDFn = func(context.Context, string) (*domain.Approval, error) { return want, nil }
	if got, err := m.GetByApprovalID(ctx, "a"); err != nil || got != want {
		t.Fatalf("GetByApprovalID: got %v, %v", got, err)
	}
}

func TestRepo_CreateRecords(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("duplicate")
	m := &Repo{}

	if err := m.Create(ctx, &domain.Approval{ApprovalID: "a"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	m.CreateFn = func(context.Context, *domain.Approval) error { return boom }
	if err := m.Create(ctx, &domain.Approval{ApprovalID: "b"}); !errors.Is(err, boom) {
		t.Fatalf("Create: want %v, got %v", boom, err)
	}
	if len(m.Created) != 1 || m.Created[0].ApprovalID != "a" {
		t.Fatalf("Created = %+v", m.Created)
	}
}
