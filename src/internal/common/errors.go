package common

import (
	"oreore-lsp/src/internal/errors"
)

// ParameterValidationError creates a formatted parameter validation error
func ParameterValidationError(parameter, msg string) error {
	return errors.NewValidationError(parameter, msg)
}

// NoParametersError returns a standardized "no parameters provided" error
func NoParametersError() error {
	return errors.NewValidationError("params", "no parameters provided")
}
