package approval

import (
	"errors"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type ApproveInput struct {
	LoanID              string
	PhotoURL            string
	ValidatorEmployeeID string // 32-char hex
	// only the calendar date is kept; it becomes the origination date
	ApprovalDate time.Time
}

type ApprovalDTO struct {
	ApprovalID   string    `json:"approval_id"`
	LoanID       string    `json:"loan_id"`
	PhotoURL     string    `json:"photo_url"`
	ApprovedAt   time.Time `json:"approved_at"`
	FirstDueDate time.Time `json:"first_due_date"`
}
