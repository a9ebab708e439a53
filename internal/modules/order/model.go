package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusAccepted  OrderStatus = "ACCEPTED"
	StatusRejected  OrderStatus = "REJECTED"
	StatusCancelled OrderStatus = "CANCELLED"
	StatusCompleted OrderStatus = "COMPLETED"
)

// validTransitions defines the allowed status state machine. REJECTED,
// CANCELLED and COMPLETED are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusAccepted, StatusRejected},
	StatusAccepted:  {StatusCancelled, StatusCompleted},
	StatusRejected:  {},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is one consumer's purchase at one store. It exclusively owns its
// lines and its pickup token; all three are created and deleted together.
type Order struct {
	ID           uuid.UUID    `json:"id"`
	ConsumerID   uuid.UUID    `json:"consumer_id"`
	StoreID      uuid.UUID    `json:"store_id"`
	Status       OrderStatus  `json:"status"`
	Total        float64      `json:"total"`
	Currency     string       `json:"currency"`
	PickupStart  *time.Time   `json:"pickup_start,omitempty"`
	PickupEnd    *time.Time   `json:"pickup_end,omitempty"`
	CancelReason string       `json:"cancel_reason,omitempty"`
	Lines        []*Line      `json:"lines,omitempty"`
	Token        *PickupToken `json:"pickup_token,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Line is an immutable snapshot of a cart line at order-creation time.
// UnitPrice is the listing's rescue price when the order was placed and
// never changes afterwards.
type Line struct {
	OrderID   uuid.UUID `json:"order_id"`
	ListingID uuid.UUID `json:"listing_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	LineTotal float64   `json:"line_total"`
}

// Reservation is one listing's aggregated quantity inside a checkout.
type Reservation struct {
	ListingID uuid.UUID
	Qty       int
}

// CheckoutFromCartRequest is the payload for a cart checkout.
type CheckoutFromCartRequest struct {
	PickupStart time.Time `json:"pickup_start"`
	PickupEnd   time.Time `json:"pickup_end"`
}

// CreateDirectRequest is the payload for a single-listing direct order.
type CreateDirectRequest struct {
	ListingID   string     `json:"listing_id"`
	ConsumerID  string     `json:"consumer_id"`
	Quantity    int        `json:"quantity"`
	PickupStart *time.Time `json:"pickup_start,omitempty"`
	PickupEnd   *time.Time `json:"pickup_end,omitempty"`
}

// ReasonRequest carries the reason for a rejection or cancellation.
type ReasonRequest struct {
	Reason string `json:"reason"`
}
