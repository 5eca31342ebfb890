package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/fairpath/internal/catalog"
	"github.com/jonathan/fairpath/internal/recommend"
	"github.com/jonathan/fairpath/internal/types"
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
	var (
		unresolved  *types.UnresolvedEntityError
		demographic *types.DemographicInputError
		validation  *ErrValidation
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &unresolved):
		return http.StatusNotFound
	case errors.As(err, &demographic):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation), errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, catalog.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an ErrValidation for the first failing field.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
