package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

// Service defines catalog business logic for stores and surplus listings.
type Service interface {
	CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error)
	GetStore(ctx context.Context, id string) (*Store, error)
	ListStores(ctx context.Context, supplierID string) ([]*Store, error)

	CreateListing(ctx context.Context, req CreateListingRequest) (*Listing, error)
	GetListing(ctx context.Context, id string) (*Listing, error)
	ListListings(ctx context.Context, storeID string, activeOnly bool) ([]*Listing, error)
	SetListingStatus(ctx context.Context, id string, status string) (*Listing, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid supplier_id")
	}
	if req.Name == "" {
		return nil, apperr.InvalidArgument("store name is required")
	}
	store := &Store{
		ID:         uuid.New(),
		SupplierID: supplierID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Phone:      req.Phone,
		IsActive:   true,
	}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *service) GetStore(ctx context.Context, id string) (*Store, error) {
	store, err := s.repo.GetStoreByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("store", id)
	}
	return store, nil
}

func (s *service) ListStores(ctx context.Context, supplierID string) ([]*Store, error) {
	return s.repo.ListStoresBySupplier(ctx, supplierID)
}

func (s *service) CreateListing(ctx context.Context, req CreateListingRequest) (*Listing, error) {
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid store_id")
	}
	if req.Title == "" {
		return nil, apperr.InvalidArgument("title is required")
	}
	if req.RescuePrice <= 0 || req.RescuePrice >= req.OriginalPrice {
		return nil, apperr.InvalidArgument("rescue_price must be positive and below original_price")
	}
	if !req.PickupStart.Before(req.PickupEnd) {
		return nil, apperr.InvalidArgument("pickup_start must precede pickup_end")
	}
	if req.ExpiresAt.Before(req.PickupEnd) {
		return nil, apperr.InvalidArgument("expires_at must not precede pickup_end")
	}
	if req.InitialStock < 0 {
		return nil, apperr.InvalidArgument("initial_stock must not be negative")
	}
	if _, err := s.repo.GetStoreByID(ctx, req.StoreID); err != nil {
		return nil, apperr.NotFound("store", req.StoreID)
	}

	l := &Listing{
		ID:            uuid.New(),
		StoreID:       storeID,
		Title:         req.Title,
		Description:   req.Description,
		OriginalPrice: req.OriginalPrice,
		RescuePrice:   req.RescuePrice,
		PickupStart:   req.PickupStart,
		PickupEnd:     req.PickupEnd,
		ExpiresAt:     req.ExpiresAt,
		Status:        ListingActive,
	}
	if err := s.repo.CreateListing(ctx, l, req.InitialStock); err != nil {
		return nil, fmt.Errorf("failed to persist listing: %w", err)
	}
	return l, nil
}

func (s *service) GetListing(ctx context.Context, id string) (*Listing, error) {
	l, err := s.repo.GetListingByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("listing", id)
	}
	return l, nil
}

func (s *service) ListListings(ctx context.Context, storeID string, activeOnly bool) ([]*Listing, error) {
	return s.repo.ListListingsByStore(ctx, storeID, activeOnly)
}

func (s *service) SetListingStatus(ctx context.Context, id string, status string) (*Listing, error) {
	l, err := s.repo.GetListingByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("listing", id)
	}
	next := ListingStatus(status)
	switch next {
	case ListingActive, ListingInactive, ListingExpired:
	default:
		return nil, apperr.InvalidArgument("status must be ACTIVE, INACTIVE or EXPIRED")
	}
	if err := s.repo.UpdateListingStatus(ctx, id, next); err != nil {
		return nil, err
	}
	l.Status = next
	return l, nil
}
