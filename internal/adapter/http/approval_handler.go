package http

import (
	"net/http"
	"strings"

	"loan-origination-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ApprovalHandler struct {
	uc  *approval.Usecase
	log *zap.Logger
}

func NewApprovalHandler(uc *approval.Usecase, log *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, log: log}
}

type approveLoanReq struct {
	PhotoURL            string `json:"photo_url"             validate:"required,url"`
	ValidatorEmployeeID string `json:"validator_employee_id" validate:"required,hex32"`
	// calendar date, stored as the loan's origination date
	ApprovalDate string `json:"approval_date"         validate:"required,datetime=2006-01-02"`
}

func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	loanID := strings.TrimSpace(c.Param("loan_id"))
	if loanID == "" {
		return badRequest(c, "missing loan_id path param")
	}
	var req approveLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	date, err := parseDate(req.ApprovalDate)
	if err != nil {
		return validationFailed(c, []FieldError{{Field: "approval_date", Message: "must be a date formatted as " + dateLayout}})
	}

	dto, err := h.uc.Approve(c.Request().Context(), approval.ApproveInput{
		LoanID:              loanID,
		PhotoURL:            req.PhotoURL,
		ValidatorEmployeeID: req.ValidatorEmployeeID,
		ApprovalDate:        date,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
