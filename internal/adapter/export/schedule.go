package export

import (
	"bytes"
	"fmt"

	"loan-origination-backend/internal/usecase/loan"

	"github.com/xuri/excelize/v2"
)

const (
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet  = "Summary"
	scheduleSheet = "Schedule"
	dateLayout    = "2006-01-02"
)

var scheduleHeader = []any{"Installment", "Due date", "EMI", "Interest", "Principal", "Balance"}

// ScheduleXLSX renders a repayment schedule as a two-sheet workbook: loan
// terms on Summary, one row per installment on Schedule.
func ScheduleXLSX(s *loan.ScheduleDTO) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(scheduleSheet); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Loan ID", s.Loan.LoanID},
		{"Product", s.Loan.ProductID},
		{"Principal", s.Loan.Principal},
		{"APR %", s.Loan.AprPct},
		{"Tenure (months)", s.Loan.TenureMonths},
		{"EMI", s.Loan.EMI},
		{"State", s.Loan.State},
	}
	if s.Loan.OriginatedAt != nil {
		summary = append(summary, []any{"Originated", s.Loan.OriginatedAt.Format(dateLayout)})
	}
	if s.Provisional {
		summary = append(summary, []any{"Note", "Provisional: due dates assume origination today"})
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, scheduleSheet, 1, scheduleHeader); err != nil {
		return nil, err
	}
	for i, in := range s.Installments {
		row := []any{in.Number, in.DueDate.Format(dateLayout), in.EMI, in.Interest, in.Principal, in.Balance}
		if err := setRow(f, scheduleSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(scheduleSheet, "B", "B", 12); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
