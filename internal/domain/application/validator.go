package application

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Wizard steps.
const (
	StepPersonal  = 1
	StepLoanType  = 2
	StepCompare   = 3
	StepFinancial = 4
	StepKYC       = 5
	StepDocuments = 6

	FirstStep = StepPersonal
	LastStep  = StepDocuments
)

const (
	msgPanNotVerified     = "PAN not verified"
	msgAadhaarNotVerified = "Aadhaar not verified"
)

var (
	rePhone   = regexp.MustCompile(`^[0-9]{10}$`)
	reAadhaar = regexp.MustCompile(`^[0-9]{12}$`)
	rePAN     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

type stepCheck func(d *Draft, errs map[string]string)

var steps = map[int]stepCheck{
	StepPersonal:  checkPersonal,
	StepLoanType:  checkLoanType,
	StepCompare:   func(*Draft, map[string]string) {},
	StepFinancial: checkFinancial,
	StepKYC:       checkKYC,
	StepDocuments: checkDocuments,
}

// Validate checks one wizard step of d. In final mode every step is checked
// and all errors are collected; otherwise only the named step runs.
// A nil draft is treated as an empty one.
func Validate(step int, d *Draft, final bool) Result {
	if d == nil {
		d = &Draft{}
	}
	errs := map[string]string{}

	if !final {
		check, ok := steps[step]
		if !ok {
			errs["step"] = fmt.Sprintf("Unknown step %d", step)
			return Result{Valid: false, Errors: errs}
		}
		check(d, errs)
		return Result{Valid: len(errs) == 0, Errors: errs}
	}

	for s := FirstStep; s <= LastStep; s++ {
		steps[s](d, errs)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func checkPersonal(d *Draft, errs map[string]string) {
	if blank(d.FullName) {
		errs["full_name"] = "Full name is required"
	}
	if blank(d.Email) {
		errs["email"] = "Email is required"
	}
	if !rePhone.MatchString(d.Phone) {
		errs["phone"] = "Enter 10-digit phone"
	}
	if blank(d.Address) {
		errs["address"] = "Address is required"
	}
}

func checkLoanType(d *Draft, errs map[string]string) {
	if blank(d.ProductID) {
		errs["product_id"] = "Select a loan type"
	}
}

func checkFinancial(d *Draft, errs map[string]string) {
	if msg := positive(d.AnnualIncome, "Annual income"); msg != "" {
		errs["annual_income"] = msg
	}
	amount, amountOK := d.LoanAmount.Float()
	if msg := positive(d.LoanAmount, "Loan amount"); msg != "" {
		errs["loan_amount"] = msg
		amountOK = false
	}
	tenure, tenureOK := d.TenureMonths.Float()
	if msg := positive(d.TenureMonths, "Tenure"); msg != "" {
		errs["tenure_months"] = msg
		tenureOK = false
	}
	if blank(d.Purpose) {
		errs["purpose"] = "Purpose is required"
	}

	p := d.Product
	if p == nil {
		return
	}
	if amountOK && (amount < p.MinAmount || amount > p.MaxAmount) {
		errs["loan_amount"] = fmt.Sprintf("Amount must be %s–%s", num(p.MinAmount), num(p.MaxAmount))
	}
	if tenureOK && (tenure < float64(p.MinTenure) || tenure > float64(p.MaxTenure)) {
		errs["tenure_months"] = fmt.Sprintf("Tenure must be %d–%d", p.MinTenure, p.MaxTenure)
	}
}

// positive returns an error message unless n holds a number > 0.
// Unset and unparseable values share a message; zero gets its own.
func positive(n Number, label string) string {
	v, ok := n.Decimal()
	if !ok {
		return "Enter " + strings.ToLower(label)
	}
	if !v.IsPositive() {
		return label + " must be greater than 0"
	}
	return ""
}

func checkKYC(d *Draft, errs map[string]string) {
	if !reAadhaar.MatchString(d.AadhaarNo) {
		errs["aadhaar_no"] = "Enter 12-digit Aadhaar"
	}
	if !rePAN.MatchString(strings.ToUpper(d.PanNo)) {
		errs["pan_no"] = "Enter valid PAN (ABCDE1234F)"
	}
	if !d.PanVerified {
		appendMsg(errs, "pan_no", msgPanNotVerified)
	}
	if !d.AadhaarVerified {
		appendMsg(errs, "aadhaar_no", msgAadhaarNotVerified)
	}
}

func checkDocuments(d *Draft, errs map[string]string) {
	if len(d.Documents) == 0 {
		errs["documents"] = "Upload at least one document"
	}
}

func appendMsg(errs map[string]string, field, msg string) {
	if cur, ok := errs[field]; ok && cur != "" {
		errs[field] = cur + "; " + msg
		return
	}
	errs[field] = msg
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
