package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Inventory holds the stock counters for one listing. available is stock a
// consumer can still reserve, reserved is stock held by PENDING orders;
// their sum is the un-sold total. available never goes negative.
type Inventory struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	Available int       `json:"available"`
	Reserved  int       `json:"reserved"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdjustRequest is the payload for a manual supplier stock correction.
type AdjustRequest struct {
	Delta int `json:"delta"`
}
