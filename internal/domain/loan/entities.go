package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrAlreadyApproved   = errors.New("loan already approved")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrPendingExists     = errors.New("borrower already has a pending loan")
)

type State string

const (
	StateProposed State = "proposed"
	StateApproved State = "approved"
	StateRejected State = "rejected"
	StateClosed   State = "closed"
)

// Loan is a submitted application. It becomes a serviced loan once approved;
// the approval date is its origination date.
type Loan struct {
	ID           uint64  `gorm:"primaryKey;column:id" json:"-"`
	LoanID       string  `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID   string  `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	ProductID    string  `gorm:"size:32" json:"product_id"`
	FullName     string  `gorm:"size:255" json:"full_name"`
	Email        string  `gorm:"size:255" json:"email"`
	Phone        string  `gorm:"size:10" json:"phone"`
	Address      string  `gorm:"type:text" json:"address"`
	AnnualIncome float64 `gorm:"type:decimal(18,2)" json:"annual_income"`
	Principal    float64 `gorm:"type:decimal(18,2)" json:"principal"`
	AprPct       float64 `gorm:"type:decimal(6,3)" json:"apr_pct"`
	TenureMonths int     `json:"tenure_months"`
	EMI          int64   `json:"emi"`
	Purpose      string  `gorm:"type:text" json:"purpose"`
	// masked to the last four digits
	AadhaarLast4   string         `gorm:"size:4" json:"aadhaar_last4"`
	PanNo          string         `gorm:"size:10" json:"pan_no"`
	DocumentCount  int            `json:"document_count"`
	State          State          `gorm:"type:varchar(16);default:'proposed'" json:"state"`
	OriginatedAt   *time.Time     `gorm:"type:date" json:"originated_at,omitempty"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy      string         `gorm:"size:32" json:"-"`

	// borrower id while proposed, NULL otherwise; one pending loan per borrower
	PendingBorrowerID *string `gorm:"size:32;uniqueIndex:ux_loans_pending_borrower" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// BeforeSave keeps the pending slot in step with State on every create and save.
func (l *Loan) BeforeSave(*gorm.DB) error {
	l.PendingBorrowerID = nil
	if l.State == StateProposed || l.State == "" {
		b := l.BorrowerID
		l.PendingBorrowerID = &b
	}
	return nil
}
