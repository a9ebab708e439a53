package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for orders, their lines and pickup tokens.
//
// Every multi-step write is atomic: the checkout persists reservations,
// orders, lines, tokens and the cart clear in one transaction, and each
// lifecycle transition re-reads the current status under the same lock that
// writes the new one, so a concurrent transition observes InvalidState
// instead of clobbering.
type Repository interface {
	// CreateCheckout reserves stock for every reservation (rows locked in the
	// given order, which callers keep ascending by listing id), then persists
	// all sibling orders with lines and tokens, and finally converts the cart
	// (cartID may be uuid.Nil for direct orders). Any shortfall aborts the
	// whole transaction; no order is persisted and the cart is unchanged.
	CreateCheckout(ctx context.Context, orders []*Order, reservations []Reservation, cartID uuid.UUID) error

	// GetOrderByID retrieves an order with its lines and token.
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrdersByStore returns a store's orders, optionally filtered by status.
	ListOrdersByStore(ctx context.Context, storeID uuid.UUID, status OrderStatus) ([]*Order, error)

	// ListOrdersByConsumer returns a consumer's orders, newest first.
	ListOrdersByConsumer(ctx context.Context, consumerID uuid.UUID) ([]*Order, error)

	// AcceptOrder commits each line's reservation and moves PENDING -> ACCEPTED.
	AcceptOrder(ctx context.Context, o *Order) error

	// RejectOrder releases each line's reservation back to available and moves
	// PENDING -> REJECTED, recording the reason.
	RejectOrder(ctx context.Context, o *Order, reason string) error

	// CancelOrder restores each line's committed stock and moves
	// ACCEPTED -> CANCELLED, recording the reason.
	CancelOrder(ctx context.Context, o *Order, reason string) error

	// GetTokenByHash looks a pickup token up by its opaque hash.
	GetTokenByHash(ctx context.Context, tokenHash string) (*PickupToken, error)

	// CompleteOrder marks the token used and moves ACCEPTED -> COMPLETED.
	CompleteOrder(ctx context.Context, orderID uuid.UUID, usedAt time.Time) error
}
