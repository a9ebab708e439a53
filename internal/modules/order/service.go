package order

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
	"github.com/rescuebite/rescuebite-backend/internal/modules/cart"
	"github.com/rescuebite/rescuebite-backend/internal/modules/catalog"
	"github.com/rescuebite/rescuebite-backend/internal/modules/user"
	"github.com/rescuebite/rescuebite-backend/internal/util"
)

// DefaultCurrency is used for all order totals.
const DefaultCurrency = "USD"

// ListingSource is the slice of the catalog the lifecycle needs.
type ListingSource interface {
	GetListingByID(ctx context.Context, id string) (*catalog.Listing, error)
}

// UserSource resolves consumers for validation and queue display names.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*user.User, error)
}

// CartSource is the slice of the cart module checkout reads from. The cart
// itself is cleared inside the checkout transaction by the repository.
type CartSource interface {
	GetActiveByConsumer(ctx context.Context, consumerID uuid.UUID) (*cart.Cart, error)
}

// Service drives the order lifecycle: checkout, supplier actions, and
// pickup-token redemption.
type Service interface {
	// CreateFromCart converts the consumer's cart into one PENDING order per
	// store, reserving stock for every line; any shortfall aborts the whole
	// checkout. Returns all sibling orders.
	CreateFromCart(ctx context.Context, consumerID uuid.UUID, pickupStart, pickupEnd time.Time) ([]*Order, error)

	// CreateDirect places a single-listing order without a cart, under the
	// same reserve-at-creation policy as the cart path.
	CreateDirect(ctx context.Context, req CreateDirectRequest) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)
	ListConsumerOrders(ctx context.Context, consumerID string) ([]*Order, error)

	// Accept commits the order's reservations and moves it to ACCEPTED.
	Accept(ctx context.Context, orderID string) (*Order, error)

	// Reject releases the order's reservations and moves it to REJECTED.
	Reject(ctx context.Context, orderID, reason string) (*Order, error)

	// Cancel restores the order's committed stock and moves it to CANCELLED.
	Cancel(ctx context.Context, orderID, reason string) (*Order, error)

	// CompleteViaPickupToken redeems a token and completes its order.
	CompleteViaPickupToken(ctx context.Context, tokenHash string) (*Order, error)

	// GetQueue projects a store's orders into the supplier queue view.
	GetQueue(ctx context.Context, storeID string, status string) ([]*Summary, error)
}

type service struct {
	repo     Repository
	listings ListingSource
	users    UserSource
	carts    CartSource
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, listings ListingSource, users UserSource, carts CartSource) Service {
	return &service{
		repo:     repo,
		listings: listings,
		users:    users,
		carts:    carts,
		logger:   util.GetLogger(),
		now:      time.Now,
	}
}

func (s *service) CreateFromCart(ctx context.Context, consumerID uuid.UUID, pickupStart, pickupEnd time.Time) ([]*Order, error) {
	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	if pickupStart.IsZero() || pickupEnd.IsZero() {
		util.OrdersFailedTotal.WithLabelValues("invalid_window").Inc()
		return nil, apperr.InvalidArgument("pickup window is required")
	}
	if !pickupStart.Before(pickupEnd) {
		util.OrdersFailedTotal.WithLabelValues("invalid_window").Inc()
		return nil, apperr.InvalidArgument("pickup_end must be after pickup_start")
	}

	c, err := s.carts.GetActiveByConsumer(ctx, consumerID)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Lines) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, apperr.NotFound("active cart", consumerID.String())
	}

	// Partition lines by owning store. Carts are single-store by
	// construction, but the checkout tolerates a multi-store cart by
	// emitting one sibling order per store.
	type partition struct {
		storeID uuid.UUID
		lines   []*Line
		total   float64
	}
	partitions := map[uuid.UUID]*partition{}
	var storeOrder []uuid.UUID
	reservedQty := map[uuid.UUID]int{}

	for _, line := range c.Lines {
		listing, err := s.listings.GetListingByID(ctx, line.ListingID.String())
		if err != nil {
			return nil, apperr.NotFound("listing", line.ListingID.String())
		}
		p, ok := partitions[listing.StoreID]
		if !ok {
			p = &partition{storeID: listing.StoreID}
			partitions[listing.StoreID] = p
			storeOrder = append(storeOrder, listing.StoreID)
		}
		lineTotal := listing.RescuePrice * float64(line.Quantity)
		p.lines = append(p.lines, &Line{
			ListingID: line.ListingID,
			Quantity:  line.Quantity,
			UnitPrice: listing.RescuePrice,
			LineTotal: util.Round2(lineTotal),
		})
		p.total += lineTotal
		reservedQty[line.ListingID] += line.Quantity
	}

	now := s.now()
	var orders []*Order
	for _, storeID := range storeOrder {
		p := partitions[storeID]
		o := &Order{
			ID:          uuid.New(),
			ConsumerID:  consumerID,
			StoreID:     p.storeID,
			Status:      StatusPending,
			Total:       util.Round2(p.total),
			Currency:    DefaultCurrency,
			PickupStart: &pickupStart,
			PickupEnd:   &pickupEnd,
			Lines:       p.lines,
			Token:       nil,
		}
		for _, line := range o.Lines {
			line.OrderID = o.ID
		}
		o.Token = NewPickupToken(o.ID, now)
		orders = append(orders, o)
	}

	if err := s.repo.CreateCheckout(ctx, orders, sortedReservations(reservedQty), c.ID); err != nil {
		var stockErr *apperr.InsufficientStockError
		if errors.As(err, &stockErr) {
			util.ReservationsFailedTotal.WithLabelValues("insufficient_stock").Inc()
			util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
		} else {
			util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.OrdersCreatedTotal.Add(float64(len(orders)))
	s.logger.Info("checkout completed",
		zap.String("consumer_id", consumerID.String()),
		zap.Int("orders", len(orders)))
	return orders, nil
}

func (s *service) CreateDirect(ctx context.Context, req CreateDirectRequest) (*Order, error) {
	if req.Quantity < 1 {
		return nil, apperr.InvalidArgument("quantity must be at least 1")
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid listing_id")
	}
	consumerID, err := uuid.Parse(req.ConsumerID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid consumer_id")
	}
	if req.PickupStart != nil && req.PickupEnd != nil && !req.PickupStart.Before(*req.PickupEnd) {
		return nil, apperr.InvalidArgument("pickup_end must be after pickup_start")
	}

	listing, err := s.listings.GetListingByID(ctx, req.ListingID)
	if err != nil {
		return nil, apperr.NotFound("listing", req.ListingID)
	}
	if listing.Status != catalog.ListingActive {
		return nil, apperr.InvalidArgument("listing is not active")
	}
	if _, err := s.users.GetUserByID(ctx, req.ConsumerID); err != nil {
		return nil, apperr.NotFound("consumer", req.ConsumerID)
	}

	now := s.now()
	o := &Order{
		ID:          uuid.New(),
		ConsumerID:  consumerID,
		StoreID:     listing.StoreID,
		Status:      StatusPending,
		Total:       util.Round2(listing.RescuePrice * float64(req.Quantity)),
		Currency:    DefaultCurrency,
		PickupStart: req.PickupStart,
		PickupEnd:   req.PickupEnd,
	}
	o.Lines = []*Line{{
		OrderID:   o.ID,
		ListingID: listingID,
		Quantity:  req.Quantity,
		UnitPrice: listing.RescuePrice,
		LineTotal: util.Round2(listing.RescuePrice * float64(req.Quantity)),
	}}
	o.Token = NewPickupToken(o.ID, now)

	reservations := []Reservation{{ListingID: listingID, Qty: req.Quantity}}
	if err := s.repo.CreateCheckout(ctx, []*Order{o}, reservations, uuid.Nil); err != nil {
		var stockErr *apperr.InsufficientStockError
		if errors.As(err, &stockErr) {
			util.ReservationsFailedTotal.WithLabelValues("insufficient_stock").Inc()
		}
		util.OrdersFailedTotal.WithLabelValues("direct_failed").Inc()
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid order id")
	}
	o, err := s.repo.GetOrderByID(ctx, uid)
	if err != nil {
		return nil, apperr.NotFound("order", id)
	}
	return o, nil
}

func (s *service) ListConsumerOrders(ctx context.Context, consumerID string) ([]*Order, error) {
	uid, err := uuid.Parse(consumerID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid consumer_id")
	}
	return s.repo.ListOrdersByConsumer(ctx, uid)
}

func (s *service) Accept(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusAccepted) {
		return nil, &apperr.InvalidStateError{Current: string(o.Status), Attempted: "accept"}
	}
	if err := s.repo.AcceptOrder(ctx, o); err != nil {
		return nil, err
	}
	o.Status = StatusAccepted
	s.logger.Info("order accepted", zap.String("order_id", orderID))
	return o, nil
}

func (s *service) Reject(ctx context.Context, orderID, reason string) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusRejected) {
		return nil, &apperr.InvalidStateError{Current: string(o.Status), Attempted: "reject"}
	}
	if err := s.repo.RejectOrder(ctx, o, reason); err != nil {
		return nil, err
	}
	o.Status = StatusRejected
	o.CancelReason = reason
	s.logger.Info("order rejected", zap.String("order_id", orderID), zap.String("reason", reason))
	return o, nil
}

func (s *service) Cancel(ctx context.Context, orderID, reason string) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, &apperr.InvalidStateError{Current: string(o.Status), Attempted: "cancel"}
	}
	if err := s.repo.CancelOrder(ctx, o, reason); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled
	o.CancelReason = reason
	util.OrdersCancelledTotal.Inc()
	s.logger.Info("order cancelled", zap.String("order_id", orderID), zap.String("reason", reason))
	return o, nil
}

func (s *service) CompleteViaPickupToken(ctx context.Context, tokenHash string) (*Order, error) {
	if tokenHash == "" {
		return nil, apperr.InvalidArgument("token is required")
	}
	token, err := s.repo.GetTokenByHash(ctx, tokenHash)
	if err != nil {
		return nil, apperr.NotFound("pickup token", tokenHash)
	}

	now := s.now()
	if !now.Before(token.ExpiresAt) {
		return nil, apperr.ErrTokenExpired
	}
	if token.UsedAt != nil {
		return nil, apperr.ErrTokenUsed
	}

	o, err := s.repo.GetOrderByID(ctx, token.OrderID)
	if err != nil {
		return nil, apperr.NotFound("order", token.OrderID.String())
	}
	// Redemption only completes orders the supplier has accepted.
	if !CanTransition(o.Status, StatusCompleted) {
		return nil, &apperr.InvalidStateError{Current: string(o.Status), Attempted: "complete"}
	}

	if err := s.repo.CompleteOrder(ctx, o.ID, now); err != nil {
		return nil, err
	}
	o.Status = StatusCompleted
	usedAt := now
	if o.Token != nil {
		o.Token.UsedAt = &usedAt
	}
	util.PickupTokensRedeemedTotal.Inc()
	s.logger.Info("pickup token redeemed", zap.String("order_id", o.ID.String()))
	return o, nil
}

func (s *service) GetQueue(ctx context.Context, storeID string, status string) ([]*Summary, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid store_id")
	}
	orders, err := s.repo.ListOrdersByStore(ctx, sid, OrderStatus(status))
	if err != nil {
		return nil, err
	}

	summaries := make([]*Summary, 0, len(orders))
	for _, o := range orders {
		sum := &Summary{
			OrderID:      o.ID,
			Status:       o.Status,
			PickupStart:  o.PickupStart,
			PickupEnd:    o.PickupEnd,
			CancelReason: o.CancelReason,
			CreatedAt:    o.CreatedAt,
		}
		if u, err := s.users.GetUserByID(ctx, o.ConsumerID.String()); err == nil {
			sum.ConsumerName = u.DisplayName()
		}
		for _, line := range o.Lines {
			title := unavailableTitle
			if listing, err := s.listings.GetListingByID(ctx, line.ListingID.String()); err == nil {
				title = listing.Title
			}
			sum.Items = append(sum.Items, SummaryItem{
				Title:     title,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}
		if len(sum.Items) == 0 {
			sum.Items = []SummaryItem{{Title: emptyOrderTitle}}
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// sortedReservations aggregates per-listing quantities and fixes the lock
// acquisition order (ascending listing id) so concurrent multi-listing
// checkouts cannot deadlock.
func sortedReservations(qty map[uuid.UUID]int) []Reservation {
	reservations := make([]Reservation, 0, len(qty))
	for id, q := range qty {
		reservations = append(reservations, Reservation{ListingID: id, Qty: q})
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].ListingID.String() < reservations[j].ListingID.String()
	})
	return reservations
}
