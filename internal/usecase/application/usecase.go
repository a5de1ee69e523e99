package application

import (
	"errors"
	"fmt"

	"loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/product"
)

var ErrUnknownStep = errors.New("unknown wizard step")

type ValidateInput struct {
	Step  int               `json:"step"`
	Final bool              `json:"final"`
	Draft application.Draft `json:"draft"`
}

type Usecase struct {
	catalog *product.Catalog
}

func NewUsecase(c *product.Catalog) *Usecase { return &Usecase{catalog: c} }

// Validate attaches the selected product's terms to the draft and checks the
// requested step, or every step in final mode. A step outside the wizard is
// only an error when not in final mode.
func (u *Usecase) Validate(in ValidateInput) (application.Result, error) {
	if !in.Final && (in.Step < application.FirstStep || in.Step > application.LastStep) {
		return application.Result{}, fmt.Errorf("%w: %d", ErrUnknownStep, in.Step)
	}
	d := in.Draft
	u.catalog.Attach(&d)
	return application.Validate(in.Step, &d, in.Final), nil
}

func (u *Usecase) Products() []product.Product { return u.catalog.List() }
