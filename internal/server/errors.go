package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/client-research/internal/research"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrLookupUnavailable indicates a company name was given but no search
// credentials are configured.
type ErrLookupUnavailable struct{}

func (e *ErrLookupUnavailable) Error() string {
	return "company lookup is not configured; provide a url instead"
}

// classify maps err to a status code and the machine-readable "error" value.
func classify(err error) (int, string) {
	var (
		validation  *ErrValidation
		fields      validator.ValidationErrors
		lookup      *research.LookupError
		unavailable *ErrLookupUnavailable
		summarize   *research.SummarizeError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &fields):
		return http.StatusBadRequest, "invalid_request"
	case errors.As(err, &unavailable):
		return http.StatusNotImplemented, "lookup_unavailable"
	case errors.As(err, &lookup):
		if lookup.Cause != nil {
			return http.StatusBadGateway, "lookup_failed"
		}
		return http.StatusNotFound, "company_not_found"
	case errors.As(err, &summarize):
		return http.StatusBadGateway, "summarizer_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
