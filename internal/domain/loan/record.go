package loan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"loan-origination-backend/internal/domain/application"
)

var ErrMalformedRecord = errors.New("malformed loan record")

// Shape tells which field naming a raw record uses.
type Shape int

const (
	ShapeUnknown Shape = iota
	// loan_id / loan_amount / state / tenure_months
	ShapeCanonical
	// id / amount / status / tenure
	ShapeLegacy
)

// Record is the one row shape served to dashboards.
type Record struct {
	LoanID       string     `json:"loan_id"`
	ProductID    string     `json:"product_id,omitempty"`
	Amount       float64    `json:"loan_amount"`
	TenureMonths int        `json:"tenure_months,omitempty"`
	EMI          int64      `json:"emi,omitempty"`
	State        string     `json:"state"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// RawRecord is a loosely shaped row from an upstream API. Shape is set while
// decoding from whichever id field is present.
type RawRecord struct {
	Shape Shape

	ID        string
	ProductID string
	Amount    application.Number
	Tenure    application.Number
	EMI       application.Number
	State     string
	CreatedAt *time.Time
}

type canonicalRow struct {
	LoanID       string             `json:"loan_id"`
	ProductID    string             `json:"product_id"`
	LoanAmount   application.Number `json:"loan_amount"`
	TenureMonths application.Number `json:"tenure_months"`
	EMI          application.Number `json:"emi"`
	State        string             `json:"state"`
	CreatedAt    *time.Time         `json:"created_at"`
}

type legacyRow struct {
	ID        string             `json:"id"`
	ProductID string             `json:"product"`
	Amount    application.Number `json:"amount"`
	Tenure    application.Number `json:"tenure"`
	EMI       application.Number `json:"emi"`
	Status    string             `json:"status"`
	CreatedAt *time.Time         `json:"created_at"`
}

func (r *RawRecord) UnmarshalJSON(b []byte) error {
	var c canonicalRow
	if err := json.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if c.LoanID != "" {
		*r = RawRecord{
			Shape: ShapeCanonical, ID: c.LoanID, ProductID: c.ProductID,
			Amount: c.LoanAmount, Tenure: c.TenureMonths, EMI: c.EMI,
			State: c.State, CreatedAt: c.CreatedAt,
		}
		return nil
	}
	var l legacyRow
	if err := json.Unmarshal(b, &l); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if l.ID != "" {
		*r = RawRecord{
			Shape: ShapeLegacy, ID: l.ID, ProductID: l.ProductID,
			Amount: l.Amount, Tenure: l.Tenure, EMI: l.EMI,
			State: l.Status, CreatedAt: l.CreatedAt,
		}
		return nil
	}
	*r = RawRecord{Shape: ShapeUnknown}
	return nil
}

// Normalize converts a raw row into a Record. Rows without an id, and rows
// whose numeric fields are present but not numbers, are rejected.
func Normalize(r RawRecord) (Record, error) {
	switch r.Shape {
	case ShapeCanonical, ShapeLegacy:
	default:
		return Record{}, fmt.Errorf("%w: neither loan_id nor id present", ErrMalformedRecord)
	}

	out := Record{
		LoanID:    r.ID,
		ProductID: r.ProductID,
		State:     strings.ToLower(strings.TrimSpace(r.State)),
		CreatedAt: r.CreatedAt,
	}
	if r.Amount.IsSet() {
		v, ok := r.Amount.Float()
		if !ok {
			return Record{}, fmt.Errorf("%w: amount %q", ErrMalformedRecord, r.Amount.String())
		}
		out.Amount = v
	}
	if r.Tenure.IsSet() {
		v, ok := r.Tenure.Decimal()
		if !ok || !v.IsInteger() {
			return Record{}, fmt.Errorf("%w: tenure %q", ErrMalformedRecord, r.Tenure.String())
		}
		out.TenureMonths = int(v.IntPart())
	}
	if r.EMI.IsSet() {
		v, ok := r.EMI.Decimal()
		if !ok {
			return Record{}, fmt.Errorf("%w: emi %q", ErrMalformedRecord, r.EMI.String())
		}
		out.EMI = v.Round(0).IntPart()
	}
	return out, nil
}

// FromLoan builds the dashboard record of a stored loan.
func FromLoan(l *Loan) Record {
	created := l.CreatedAt
	return Record{
		LoanID:       l.LoanID,
		ProductID:    l.ProductID,
		Amount:       l.Principal,
		TenureMonths: l.TenureMonths,
		EMI:          l.EMI,
		State:        string(l.State),
		CreatedAt:    &created,
	}
}
