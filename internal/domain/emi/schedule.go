package emi

import (
	"time"

	"github.com/shopspring/decimal"
)

type Installment struct {
	Number    int       `json:"installment"`
	DueDate   time.Time `json:"due_date"`
	EMI       int64     `json:"emi"`
	Interest  int64     `json:"interest"`
	Principal int64     `json:"principal"`
	Balance   int64     `json:"balance"`
}

// Schedule builds the amortization table for a loan originated on
// origination. Interest is charged on the outstanding balance each month and
// rounded to whole units; the final installment settles whatever balance is
// left, so it may differ from the EMI by the accumulated rounding.
func Schedule(principal, aprPct float64, months int, origination time.Time) []Installment {
	e := Calculate(principal, aprPct, months)
	if e == 0 {
		return nil
	}
	rate := decimal.NewFromFloat(aprPct).Div(decimal.NewFromInt(1200))
	balance := decimal.NewFromFloat(principal).Round(0)
	emiD := decimal.NewFromInt(e)

	out := make([]Installment, 0, months)
	for i := 1; i <= months; i++ {
		interest := balance.Mul(rate).Round(0)
		pay := emiD
		part := pay.Sub(interest)
		if i == months || part.GreaterThan(balance) {
			part = balance
			pay = part.Add(interest)
		}
		balance = balance.Sub(part)
		out = append(out, Installment{
			Number:    i,
			DueDate:   AddMonths(origination, i),
			EMI:       pay.IntPart(),
			Interest:  interest.IntPart(),
			Principal: part.IntPart(),
			Balance:   balance.IntPart(),
		})
		if balance.IsZero() {
			break
		}
	}
	return out
}
