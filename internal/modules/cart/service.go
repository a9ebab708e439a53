package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
	"github.com/rescuebite/rescuebite-backend/internal/modules/catalog"
	"github.com/rescuebite/rescuebite-backend/internal/util"
)

// ListingSource is the slice of the catalog the cart needs: listing lookup
// for store binding and pricing. catalog.Repository satisfies it.
type ListingSource interface {
	GetListingByID(ctx context.Context, id string) (*catalog.Listing, error)
}

// Service defines the consumer-facing cart operations. Every call takes an
// explicit consumerID; nothing here reads ambient request state.
type Service interface {
	GetOrCreate(ctx context.Context, consumerID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, consumerID, listingID uuid.UUID, qty int) (*View, error)
	UpdateQuantity(ctx context.Context, consumerID, listingID uuid.UUID, qty int) (*View, error)
	RemoveItem(ctx context.Context, consumerID, listingID uuid.UUID) (*View, error)
	Clear(ctx context.Context, consumerID uuid.UUID) (*View, error)
}

type service struct {
	repo     Repository
	listings ListingSource
}

// NewService creates a new cart service.
func NewService(repo Repository, listings ListingSource) Service {
	return &service{repo: repo, listings: listings}
}

func (s *service) GetOrCreate(ctx context.Context, consumerID uuid.UUID) (*View, error) {
	c, err := s.getOrCreate(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, c)
}

func (s *service) AddItem(ctx context.Context, consumerID, listingID uuid.UUID, qty int) (*View, error) {
	if qty < 1 {
		return nil, apperr.InvalidArgument("quantity must be at least 1")
	}

	listing, err := s.listings.GetListingByID(ctx, listingID.String())
	if err != nil {
		return nil, apperr.NotFound("listing", listingID.String())
	}
	if listing.Status != catalog.ListingActive {
		return nil, apperr.InvalidArgument("listing is not active")
	}

	c, err := s.getOrCreate(ctx, consumerID)
	if err != nil {
		return nil, err
	}

	// Single-store rule: a non-empty cart rejects listings from another store
	// and stays untouched.
	if len(c.Lines) > 0 && c.StoreID != nil && *c.StoreID != listing.StoreID {
		return nil, &apperr.CrossStoreError{CurrentStoreID: *c.StoreID}
	}

	newQty := qty
	for _, line := range c.Lines {
		if line.ListingID == listingID {
			newQty += line.Quantity
			break
		}
	}
	// One repo call writes the line and the store binding atomically; the
	// cross-store guard above guarantees storeID matches any existing binding.
	if err := s.repo.UpsertLine(ctx, c.ID, listingID, newQty, listing.StoreID); err != nil {
		return nil, err
	}

	return s.reload(ctx, consumerID)
}

func (s *service) UpdateQuantity(ctx context.Context, consumerID, listingID uuid.UUID, qty int) (*View, error) {
	if qty < 0 {
		return nil, apperr.InvalidArgument("quantity must not be negative")
	}

	c, err := s.repo.GetActiveByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cart", consumerID.String())
	}

	found := false
	for _, line := range c.Lines {
		if line.ListingID == listingID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.NotFound("cart line", listingID.String())
	}

	if qty == 0 {
		if err := s.repo.DeleteLine(ctx, c.ID, listingID); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.UpdateLineQuantity(ctx, c.ID, listingID, qty); err != nil {
			return nil, err
		}
	}

	return s.reload(ctx, consumerID)
}

func (s *service) RemoveItem(ctx context.Context, consumerID, listingID uuid.UUID) (*View, error) {
	return s.UpdateQuantity(ctx, consumerID, listingID, 0)
}

func (s *service) Clear(ctx context.Context, consumerID uuid.UUID) (*View, error) {
	c, err := s.repo.GetActiveByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cart", consumerID.String())
	}
	if err := s.repo.Clear(ctx, c.ID); err != nil {
		return nil, err
	}
	return s.reload(ctx, consumerID)
}

func (s *service) getOrCreate(ctx context.Context, consumerID uuid.UUID) (*Cart, error) {
	c, err := s.repo.GetActiveByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	c = &Cart{
		ID:         uuid.New(),
		ConsumerID: consumerID,
		Status:     CartActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) reload(ctx context.Context, consumerID uuid.UUID) (*View, error) {
	c, err := s.repo.GetActiveByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cart", consumerID.String())
	}
	return s.buildView(ctx, c)
}

func (s *service) buildView(ctx context.Context, c *Cart) (*View, error) {
	view := &View{CartID: c.ID, StoreID: c.StoreID, Items: []ViewItem{}}
	for _, line := range c.Lines {
		listing, err := s.listings.GetListingByID(ctx, line.ListingID.String())
		if err != nil {
			return nil, apperr.NotFound("listing", line.ListingID.String())
		}
		item := ViewItem{
			ListingID:   line.ListingID,
			Title:       listing.Title,
			Quantity:    line.Quantity,
			UnitPrice:   listing.RescuePrice,
			LineTotal:   listing.RescuePrice * float64(line.Quantity),
			LineSavings: listing.Savings() * float64(line.Quantity),
		}
		view.Items = append(view.Items, item)
		view.Subtotal += item.LineTotal
		view.TotalSavings += item.LineSavings
	}
	view.Subtotal = util.Round2(view.Subtotal)
	view.Total = view.Subtotal
	view.TotalSavings = util.Round2(view.TotalSavings)
	return view, nil
}
