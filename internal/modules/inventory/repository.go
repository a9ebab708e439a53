package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the ledger operations for one listing's stock counters.
//
// Every mutation locks the inventory row exclusively for the whole
// read-validate-write sequence, so concurrent callers serialize and the
// available counter can never be driven negative. Shortfalls surface as
// *apperr.InsufficientStockError carrying the requested and available
// quantities observed under the lock.
type Repository interface {
	// Get reads the current counters without locking.
	Get(ctx context.Context, listingID uuid.UUID) (*Inventory, error)

	// Reserve moves qty from available to reserved, failing on shortfall.
	Reserve(ctx context.Context, listingID uuid.UUID, qty int) error

	// CommitReserved consumes a reservation when an order is accepted.
	CommitReserved(ctx context.Context, listingID uuid.UUID, qty int) error

	// ReleaseReserved returns a reservation to available when an order is rejected.
	ReleaseReserved(ctx context.Context, listingID uuid.UUID, qty int) error

	// Restore returns committed stock to available after a cancellation.
	Restore(ctx context.Context, listingID uuid.UUID, qty int) error

	// Adjust applies a manual correction; the result must not be negative.
	Adjust(ctx context.Context, listingID uuid.UUID, delta int) (*Inventory, error)
}
