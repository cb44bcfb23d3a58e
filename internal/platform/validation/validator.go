package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type defaultValidator struct{ v *validator.Validate }

func (d *defaultValidator) Validate(i interface{}) error {
	return d.v.Struct(i)
}

var (
	once   sync.Once
	shared *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		shared = validator.New(validator.WithRequiredStructEnabled())
	})
	return shared
}

// New returns an echo.Validator implementation.
func New() echo.Validator {
	return &defaultValidator{v: instance()}
}

// Struct validates i outside of a request, e.g. CLI flag structs.
func Struct(i interface{}) error {
	return instance().Struct(i)
}
