package http

import (
	"net/http"

	"loan-origination-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	uc  *application.Usecase
	log *zap.Logger
}

func NewApplicationHandler(uc *application.Usecase, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, log: log}
}

func (h *ApplicationHandler) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"products": h.uc.Products()})
}

// ValidateStep answers 200 with the per-field result whenever the body is
// well formed; an invalid draft is not a request error.
func (h *ApplicationHandler) ValidateStep(c echo.Context) error {
	var req application.ValidateInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	res, err := h.uc.Validate(req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
