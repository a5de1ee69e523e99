package loan

import "testing"

func TestBeforeSave_PendingSlotFollowsState(t *testing.T) {
	l := &Loan{BorrowerID: "b1", State: StateProposed}
	if err := l.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if l.PendingBorrowerID == nil || *l.PendingBorrowerID != "b1" {
		t.Fatalf("proposed loan must hold the pending slot, got %v", l.PendingBorrowerID)
	}

	l.State = StateApproved
	_ = l.BeforeSave(nil)
	if l.PendingBorrowerID != nil {
		t.Fatalf("approved loan must release the pending slot, got %q", *l.PendingBorrowerID)
	}

	unset := &Loan{BorrowerID: "b2"}
	_ = unset.BeforeSave(nil)
	if unset.PendingBorrowerID == nil {
		t.Fatal("a loan without a state defaults to proposed and holds the slot")
	}
}
