package mysql

import (
	"loan-origination-backend/internal/domain/approval"
	"loan-origination-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the loans and approvals tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&loan.Loan{}, &approval.Approval{})
}
