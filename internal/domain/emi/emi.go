// Package emi computes equated monthly installments and repayment dates.
//
// Amounts are rounded to whole currency units, half away from zero
// (half-up for the non-negative values used here).
package emi

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// maxPayable bounds the lifetime repayment so that every schedule amount
// and total fits in an int64.
const maxPayable = 1 << 62

// MonthlyRate converts an annual percentage rate (12.5 means 12.5%) to a
// monthly fraction.
func MonthlyRate(aprPct float64) float64 { return aprPct / 12 / 100 }

// Calculate returns the fixed monthly installment for principal at aprPct
// over months. Any zero or negative input yields 0, and so does a loan whose
// total repayment would not fit in an int64.
func Calculate(principal, aprPct float64, months int) int64 {
	raw, ok := exact(principal, aprPct, months)
	if !ok {
		return 0
	}
	return roundUnit(raw)
}

// exact evaluates P·r·(1+r)^n / ((1+r)^n − 1) without rounding.
func exact(principal, aprPct float64, months int) (float64, bool) {
	if !(principal > 0) || !(aprPct > 0) || months <= 0 {
		return 0, false
	}
	r := MonthlyRate(aprPct)
	f := math.Pow(1+r, float64(months))
	v := principal * r * f / (f - 1)
	if math.IsNaN(v) || math.IsInf(v, 0) || v*float64(months) >= maxPayable {
		return 0, false
	}
	return v, true
}

func roundUnit(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Totals is the repayment summary for a loan.
type Totals struct {
	EMI           int64 `json:"emi"`
	TotalPayable  int64 `json:"total_payable"`
	TotalInterest int64 `json:"total_interest"`
}

// Summarize returns the EMI and lifetime totals. TotalPayable follows the
// schedule, so the rounding residue of the last installment is included.
func Summarize(principal, aprPct float64, months int) Totals {
	e := Calculate(principal, aprPct, months)
	if e == 0 {
		return Totals{}
	}
	var paid int64
	for _, in := range Schedule(principal, aprPct, months, time.Time{}) {
		paid += in.EMI
	}
	return Totals{EMI: e, TotalPayable: paid, TotalInterest: paid - roundUnit(principal)}
}
