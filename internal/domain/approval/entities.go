package approval

import (
	"time"

	"gorm.io/gorm"
)

// Approval is the sign-off that starts servicing a loan. ApprovalDate is the
// loan's origination date; FirstDueDate is one month after it, clamped to the
// end of shorter months.
type Approval struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ApprovalID string `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approvals_approval_id_active"`
	// loans.id
	LoanID uint64 `gorm:"column:loan_id;not null;index;uniqueIndex:ux_approvals_loan_active"`

	// field-visit proof photo
	PhotoURL            string    `gorm:"column:photo_url;type:text;not null"`
	ValidatorEmployeeID string    `gorm:"column:validator_employee_id;type:char(32);not null"`
	ApprovalDate        time.Time `gorm:"column:approval_date;type:date;not null"`
	FirstDueDate        time.Time `gorm:"column:first_due_date;type:date;not null"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
	DeletedBy *string        `gorm:"column:deleted_by;type:char(32);"`
}

func (Approval) TableName() string { return "approvals" }
