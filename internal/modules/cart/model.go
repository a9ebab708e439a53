package cart

import (
	"time"

	"github.com/google/uuid"
)

// CartStatus tracks whether a cart is still being filled or has been
// checked out.
type CartStatus string

const (
	CartActive    CartStatus = "ACTIVE"
	CartConverted CartStatus = "CONVERTED"
)

// Cart is a consumer's single active basket. It binds to the store of its
// first line and stays bound until it empties; every line references a
// listing of that store.
type Cart struct {
	ID         uuid.UUID  `json:"id"`
	ConsumerID uuid.UUID  `json:"consumer_id"`
	StoreID    *uuid.UUID `json:"store_id,omitempty"`
	Status     CartStatus `json:"status"`
	Lines      []*Line    `json:"lines,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Line is one (listing, quantity) pair in a cart.
type Line struct {
	CartID    uuid.UUID `json:"cart_id"`
	ListingID uuid.UUID `json:"listing_id"`
	Quantity  int       `json:"quantity"`
}

// View is the totals projection returned by every cart mutation.
type View struct {
	CartID  uuid.UUID  `json:"cart_id"`
	StoreID *uuid.UUID `json:"store_id,omitempty"`
	Items   []ViewItem `json:"items"`
	// Subtotal sums rescue price * quantity; Total carries no extra fees.
	Subtotal     float64 `json:"subtotal"`
	Total        float64 `json:"total"`
	TotalSavings float64 `json:"total_savings"`
}

// ViewItem is one cart line priced from its listing.
type ViewItem struct {
	ListingID   uuid.UUID `json:"listing_id"`
	Title       string    `json:"title"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
	LineSavings float64   `json:"line_savings"`
}
