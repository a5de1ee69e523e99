package mysql

import (
	"fmt"
	"strings"
	"testing"
	"time"

	loanDomain "loan-origination-backend/internal/domain/loan"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a private in-memory sqlite DB with the production schema.
// One connection keeps every query (and tx) on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, borrowerID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:         loanID,
		BorrowerID:     borrowerID,
		ProductID:      "personal",
		FullName:       "Asha Rao",
		Principal:      1_000_000.00,
		AprPct:         12.5,
		TenureMonths:   24,
		EMI:            47307,
		State:          loanDomain.StateProposed,
		StateUpdatedAt: time.Now().UTC(),
	}
}
