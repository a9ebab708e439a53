package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for carts and their lines. Carts are private
// to one consumer, so none of these operations needs cross-consumer locking,
// but each mutation pairs its line write with the store binding in one
// transaction so a cart never holds lines without a bound store.
type Repository interface {
	// GetActiveByConsumer returns the consumer's ACTIVE cart with its lines,
	// or (nil, nil) when no active cart exists.
	GetActiveByConsumer(ctx context.Context, consumerID uuid.UUID) (*Cart, error)

	// Create persists a new empty cart.
	Create(ctx context.Context, c *Cart) error

	// UpsertLine sets the quantity of one line, inserting it when absent, and
	// binds the cart to storeID in the same transaction.
	UpsertLine(ctx context.Context, cartID, listingID uuid.UUID, qty int, storeID uuid.UUID) error

	// UpdateLineQuantity overwrites the quantity of one existing line.
	UpdateLineQuantity(ctx context.Context, cartID, listingID uuid.UUID, qty int) error

	// DeleteLine removes one line; when the last line goes, the store binding
	// is cleared in the same transaction.
	DeleteLine(ctx context.Context, cartID, listingID uuid.UUID) error

	// Clear removes every line and unbinds the store in one transaction.
	Clear(ctx context.Context, cartID uuid.UUID) error
}
