package payment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rescuebite/rescuebite-backend/internal/apperr"
	"github.com/rescuebite/rescuebite-backend/internal/modules/order"
	"github.com/rescuebite/rescuebite-backend/internal/util"
)

// OrderSource is the slice of the order module payments read from.
type OrderSource interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// Service turns a set of sibling orders into a hosted checkout session.
type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error)
}

type service struct {
	orders  OrderSource
	gateway CheckoutGateway
	logger  *zap.Logger
}

// NewService creates a new payment service.
func NewService(orders OrderSource, gateway CheckoutGateway) Service {
	return &service{orders: orders, gateway: gateway, logger: util.GetLogger()}
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*CheckoutSession, error) {
	if len(req.OrderIDs) == 0 {
		return nil, apperr.InvalidArgument("at least one order id is required")
	}

	var items []LineItem
	for _, id := range req.OrderIDs {
		o, err := s.orders.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, line := range o.Lines {
			items = append(items, LineItem{
				Name:      line.ListingID.String(),
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Currency:  o.Currency,
			})
		}
	}

	csv := strings.Join(req.OrderIDs, ",")
	redirectURL, err := s.gateway.CreateCheckoutSession(ctx, items, csv)
	if err != nil {
		// Orders stay PENDING; reconciliation is manual rather than undoing
		// committed order/stock state.
		s.logger.Error("checkout session failed", zap.String("order_ids", csv), zap.Error(err))
		return nil, &apperr.ExternalServiceError{Service: "payment", Err: err}
	}

	return &CheckoutSession{RedirectURL: redirectURL, OrderIDs: csv}, nil
}
