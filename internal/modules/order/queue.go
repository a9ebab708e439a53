package order

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder titles for the queue view: emptyOrderTitle marks an order that
// somehow has no lines, unavailableTitle a line whose listing no longer
// resolves.
const (
	emptyOrderTitle  = "(no items)"
	unavailableTitle = "(unavailable)"
)

// Summary is one entry in a supplier's order queue: a read-side projection
// of an order with listing titles and the consumer's display name resolved.
type Summary struct {
	OrderID      uuid.UUID     `json:"order_id"`
	Status       OrderStatus   `json:"status"`
	Items        []SummaryItem `json:"items"`
	ConsumerName string        `json:"consumer_name"`
	PickupStart  *time.Time    `json:"pickup_start,omitempty"`
	PickupEnd    *time.Time    `json:"pickup_end,omitempty"`
	CancelReason string        `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// SummaryItem is one order line in the queue view.
type SummaryItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
