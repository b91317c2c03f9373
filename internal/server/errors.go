// Package server provides the HTTP API for the admissions advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/admissions-advisor/internal/advisor"
	"github.com/jonathan/admissions-advisor/internal/presentation"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var upstream *advisor.UpstreamError
	var callErr *advisor.APICallError
	var parseErr *advisor.ParseError

	switch {
	case errors.As(err, &validation), errors.Is(err, presentation.ErrSubmitDisabled):
		return http.StatusBadRequest
	case errors.As(err, &upstream), errors.As(err, &callErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
