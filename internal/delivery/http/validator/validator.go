// Package validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request bodies.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EchoValidator wraps a validator instance for Echo.
type EchoValidator struct {
	validate *playground.Validate
}

// New creates the Echo request validator.
func New() *EchoValidator {
	return &EchoValidator{
		validate: playground.New(),
	}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
