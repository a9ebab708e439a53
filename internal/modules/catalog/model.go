package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents whether a listing can still be bought.
type ListingStatus string

const (
	ListingActive   ListingStatus = "ACTIVE"
	ListingInactive ListingStatus = "INACTIVE"
	ListingExpired  ListingStatus = "EXPIRED"
)

// Store is a supplier's pickup location.
type Store struct {
	ID         uuid.UUID `json:"id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Listing is a sellable unit of surplus food: two prices and a pickup window.
// RescuePrice is always below OriginalPrice, and ExpiresAt never precedes the
// end of the pickup window.
type Listing struct {
	ID            uuid.UUID     `json:"id"`
	StoreID       uuid.UUID     `json:"store_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	OriginalPrice float64       `json:"original_price"`
	RescuePrice   float64       `json:"rescue_price"`
	PickupStart   time.Time     `json:"pickup_start"`
	PickupEnd     time.Time     `json:"pickup_end"`
	ExpiresAt     time.Time     `json:"expires_at"`
	Status        ListingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Savings is the per-unit discount a consumer gets off the original price.
func (l *Listing) Savings() float64 {
	return l.OriginalPrice - l.RescuePrice
}

// CreateStoreRequest holds data for creating a store.
type CreateStoreRequest struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// CreateListingRequest holds data for publishing a surplus listing.
type CreateListingRequest struct {
	StoreID       string    `json:"store_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	OriginalPrice float64   `json:"original_price"`
	RescuePrice   float64   `json:"rescue_price"`
	PickupStart   time.Time `json:"pickup_start"`
	PickupEnd     time.Time `json:"pickup_end"`
	ExpiresAt     time.Time `json:"expires_at"`
	InitialStock  int       `json:"initial_stock"`
}
