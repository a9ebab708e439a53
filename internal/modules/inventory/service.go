package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
)

// Service defines the ledger operations exposed to other modules and to the
// supplier-facing adjustment endpoint.
type Service interface {
	Get(ctx context.Context, listingID string) (*Inventory, error)
	Reserve(ctx context.Context, listingID uuid.UUID, qty int) error
	CommitReserved(ctx context.Context, listingID uuid.UUID, qty int) error
	ReleaseReserved(ctx context.Context, listingID uuid.UUID, qty int) error
	Restore(ctx context.Context, listingID uuid.UUID, qty int) error
	Adjust(ctx context.Context, listingID string, delta int) (*Inventory, error)
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, listingID string) (*Inventory, error) {
	uid, err := uuid.Parse(listingID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid listing_id")
	}
	return s.repo.Get(ctx, uid)
}

func (s *service) Reserve(ctx context.Context, listingID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperr.InvalidArgument("quantity must be at least 1")
	}
	return s.repo.Reserve(ctx, listingID, qty)
}

func (s *service) CommitReserved(ctx context.Context, listingID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperr.InvalidArgument("quantity must be at least 1")
	}
	return s.repo.CommitReserved(ctx, listingID, qty)
}

func (s *service) ReleaseReserved(ctx context.Context, listingID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperr.InvalidArgument("quantity must be at least 1")
	}
	return s.repo.ReleaseReserved(ctx, listingID, qty)
}

func (s *service) Restore(ctx context.Context, listingID uuid.UUID, qty int) error {
	if qty < 1 {
		return apperr.InvalidArgument("quantity must be at least 1")
	}
	return s.repo.Restore(ctx, listingID, qty)
}

func (s *service) Adjust(ctx context.Context, listingID string, delta int) (*Inventory, error) {
	uid, err := uuid.Parse(listingID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid listing_id")
	}
	if delta == 0 {
		return s.repo.Get(ctx, uid)
	}
	return s.repo.Adjust(ctx, uid, delta)
}
