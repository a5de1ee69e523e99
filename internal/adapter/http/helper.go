package http

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"loan-origination-backend/internal/domain/loan"
	ucApplication "loan-origination-backend/internal/usecase/application"
	ucApproval "loan-origination-backend/internal/usecase/approval"
	ucLoan "loan-origination-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, details []FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
}

// bindAndValidate binds the request into req and runs the struct validator.
// It writes the error response itself and reports whether to continue.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, ToFieldErrors(err))
	}
	return true, nil
}

func fromMap(errs map[string]string) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for f, m := range errs {
		out = append(out, FieldError{Field: f, Message: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// writeError maps usecase and domain errors to HTTP statuses.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	var ve *ucLoan.ValidationError
	switch {
	case errors.As(err, &ve):
		return validationFailed(c, fromMap(ve.Errors))
	case errors.Is(err, ucLoan.ErrInvalidInput),
		errors.Is(err, ucApproval.ErrInvalidInput):
		return badRequest(c, err.Error())
	case errors.Is(err, ucApplication.ErrUnknownStep):
		return validationFailed(c, []FieldError{{Field: "step", Message: err.Error()}})
	case errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, loan.ErrPendingExists),
		errors.Is(err, loan.ErrAlreadyApproved),
		errors.Is(err, loan.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
