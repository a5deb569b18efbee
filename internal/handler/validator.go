package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface for request body shape checks.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator
func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make([]ValidationError, len(fieldErrors))
		for i, fe := range fieldErrors {
			details[i] = ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %s validation", fe.Tag()),
			}
		}
		return echo.NewHTTPError(http.StatusBadRequest, details)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
