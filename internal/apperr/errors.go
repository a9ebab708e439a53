// Package apperr defines the error kinds the core services return.
// Handlers branch on these with errors.Is / errors.As and map each kind
// to a stable HTTP status; no caller should ever match on message text.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTokenExpired    = errors.New("pickup token expired")
	ErrTokenUsed       = errors.New("pickup token already used")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

// NotFound wraps ErrNotFound with the entity and id that were missing.
func NotFound(entity string, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// InvalidArgument wraps ErrInvalidArgument with a reason.
func InvalidArgument(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidArgument)
}

// InsufficientStockError reports a reservation shortfall on one listing.
type InsufficientStockError struct {
	ListingID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for listing %s: requested %d, available %d",
		e.ListingID, e.Requested, e.Available)
}

// CrossStoreError reports an attempt to mix listings from two stores in one cart.
type CrossStoreError struct {
	CurrentStoreID uuid.UUID
}

func (e *CrossStoreError) Error() string {
	return fmt.Sprintf("cart already holds items from store %s", e.CurrentStoreID)
}

// InvalidStateError reports an illegal order lifecycle transition.
type InvalidStateError struct {
	Current   string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s an order in state %s", e.Attempted, e.Current)
}

// ExternalServiceError reports a collaborator (payment, QR) failure.
// The surrounding order/stock state is already committed and stays committed.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
