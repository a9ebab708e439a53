package apperr

import (
	"errors"
	"net/http"
)

// Status maps an error to its stable HTTP status so every handler reports
// the same kind the same way.
func Status(err error) int {
	var (
		stockErr    *InsufficientStockError
		crossErr    *CrossStoreError
		stateErr    *InvalidStateError
		externalErr *ExternalServiceError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrTokenExpired):
		return http.StatusGone
	case errors.Is(err, ErrTokenUsed):
		return http.StatusConflict
	case errors.As(err, &stockErr), errors.As(err, &crossErr), errors.As(err, &stateErr):
		return http.StatusConflict
	case errors.As(err, &externalErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
