package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"loan-origination-backend/internal/adapter/export"
	"loan-origination-backend/internal/adapter/middleware"
	"loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log *zap.Logger
}

func NewLoanHandler(uc *loan.Usecase, log *zap.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

type submitLoanReq struct {
	BorrowerID string            `json:"borrower_id" validate:"required,hex32"`
	Draft      application.Draft `json:"draft"`
}

func (h *LoanHandler) SubmitLoan(c echo.Context) error {
	var req submitLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	// the idempotency key is scoped to the header borrower
	if hdr := c.Request().Header.Get(middleware.HeaderBorrowerID); hdr != "" && hdr != req.BorrowerID {
		return badRequest(c, middleware.HeaderBorrowerID+" does not match borrower_id")
	}
	dto, err := h.uc.Submit(c.Request().Context(), loan.SubmitInput{BorrowerID: req.BorrowerID, Draft: req.Draft})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Summary(c echo.Context) error {
	var today time.Time
	if raw := c.QueryParam("today"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return badRequest(c, "today must be YYYY-MM-DD")
		}
		today = t
	}
	dto, err := h.uc.Summary(c.Request().Context(), c.Param("loan_id"), today)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	dto, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ScheduleXLSX(c echo.Context) error {
	dto, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	buf, err := export.ScheduleXLSX(dto)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=schedule-%s.xlsx", dto.Loan.LoanID))
	return c.Blob(http.StatusOK, export.MIMEXLSX, buf.Bytes())
}

func (h *LoanHandler) ListByBorrower(c echo.Context) error {
	recs, err := h.uc.ListByBorrower(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"records": recs})
}

// principal is capped at 10^15 so schedule amounts stay inside int64.
type quoteReq struct {
	Principal float64 `query:"principal" validate:"gte=0,lte=1000000000000000"`
	APR       float64 `query:"apr"       validate:"gte=0,lte=100,dec2"`
	Months    float64 `query:"months"    validate:"gte=0,lte=600,intlike"`
	Start     string  `query:"start"     validate:"omitempty,datetime=2006-01-02"`
}

// Quote prices a hypothetical loan; zero or negative terms give a zero EMI.
func (h *LoanHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return badRequest(c, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, ToFieldErrors(err))
	}
	in := loan.QuoteInput{Principal: req.Principal, AprPct: req.APR, Months: int(req.Months)}
	if req.Start != "" {
		in.Start, _ = parseDate(req.Start)
	}
	return c.JSON(http.StatusOK, h.uc.Quote(in))
}

type normalizeReq struct {
	Records []json.RawMessage `json:"records" validate:"required"`
}

func (h *LoanHandler) Normalize(c echo.Context) error {
	var req normalizeReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return c.JSON(http.StatusOK, h.uc.Normalize(req.Records))
}
