package catalog

import "context"

// Repository defines data access for stores and listings.
type Repository interface {
	// CreateStore persists a new store.
	CreateStore(ctx context.Context, s *Store) error

	// GetStoreByID retrieves a store by UUID.
	GetStoreByID(ctx context.Context, id string) (*Store, error)

	// ListStoresBySupplier returns all stores owned by a supplier.
	ListStoresBySupplier(ctx context.Context, supplierID string) ([]*Store, error)

	// CreateListing persists a listing and its 1:1 inventory row atomically.
	CreateListing(ctx context.Context, l *Listing, initialStock int) error

	// GetListingByID retrieves a listing by UUID.
	GetListingByID(ctx context.Context, id string) (*Listing, error)

	// ListListingsByStore returns a store's listings, optionally only ACTIVE ones.
	ListListingsByStore(ctx context.Context, storeID string, activeOnly bool) ([]*Listing, error)

	// UpdateListingStatus moves a listing between ACTIVE/INACTIVE/EXPIRED.
	UpdateListingStatus(ctx context.Context, id string, status ListingStatus) error
}
