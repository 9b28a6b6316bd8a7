package core

import (
	"github.com/go-playground/validator/v10"
)

var requestValidator = validator.New()

// ValidateRequest checks a request record's validate tags before any HTTP
// call is made, so malformed requests fail locally as validation errors.
func ValidateRequest(request any) error {
	if err := requestValidator.Struct(request); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}
