package application

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductTerms is the read-only range and pricing data of a loan product.
type ProductTerms struct {
	MinAmount       float64 `json:"min_amount"        yaml:"min_amount"`
	MaxAmount       float64 `json:"max_amount"        yaml:"max_amount"`
	MinTenure       int     `json:"min_tenure"        yaml:"min_tenure"`
	MaxTenure       int     `json:"max_tenure"        yaml:"max_tenure"`
	BaseInterestAPR float64 `json:"base_interest_apr" yaml:"base_interest_apr"`
}

type Document struct {
	DocumentType string `json:"document_type"`
	File         string `json:"file"`
}

// Draft is the client-held state of the application wizard.
type Draft struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	ProductID string        `json:"product_id"`
	Product   *ProductTerms `json:"product,omitempty"`

	AnnualIncome Number `json:"annual_income"`
	LoanAmount   Number `json:"loan_amount"`
	TenureMonths Number `json:"tenure_months"`
	Purpose      string `json:"purpose"`

	AadhaarNo       string `json:"aadhaar_no"`
	PanNo           string `json:"pan_no"`
	PanVerified     bool   `json:"pan_verified"`
	AadhaarVerified bool   `json:"aadhaar_verified"`

	Documents []Document `json:"documents"`
}

// Result is the outcome of a validation pass. Errors maps field name to message.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Number is a form field that may arrive as a JSON number, a numeric string,
// an empty string or null. The raw text is kept so that "unset" and "zero"
// stay distinguishable.
type Number struct {
	raw string
}

func NumberOf(s string) Number { return Number{raw: strings.TrimSpace(s)} }

// IsSet reports whether any non-blank value was supplied.
func (n Number) IsSet() bool { return n.raw != "" }

// Decimal parses the raw value. ok is false for unset or non-numeric input.
func (n Number) Decimal() (d decimal.Decimal, ok bool) {
	if n.raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Float returns the parsed value, or 0 and false.
func (n Number) Float() (float64, bool) {
	d, ok := n.Decimal()
	if !ok {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

func (n Number) String() string { return n.raw }

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		n.raw = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
		return nil
	}
	// numbers, and anything else the form layer sends (true/false), are kept
	// verbatim so parsing decides validity instead of the decoder.
	n.raw = string(b)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte("null"), nil
	}
	if _, ok := n.Decimal(); ok {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}
