package payment

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// CheckoutGateway is the provider-agnostic interface a hosted-checkout
// adapter must implement. The core never sees provider payloads, only the
// redirect URL; a gateway failure never rolls back already-created orders.
type CheckoutGateway interface {
	// CreateCheckoutSession registers the line items with the provider and
	// returns the URL the consumer is redirected to. orderIDsCsv ties the
	// provider session back to the sibling orders of one checkout.
	CreateCheckoutSession(ctx context.Context, items []LineItem, orderIDsCsv string) (string, error)
}

// ── Hosted checkout adapter ───────────────────────────────────────────────────
// In production, replace the stub with an actual hosted-checkout API call
// (e.g. Stripe Checkout Sessions: POST /v1/checkout/sessions with line_items
// and metadata.order_ids, returning session.url).

type hostedCheckoutGateway struct {
	apiKey  string
	baseURL string
	env     string // sandbox | production
}

// NewHostedCheckoutGateway creates a checkout-session adapter.
func NewHostedCheckoutGateway(apiKey, baseURL, env string) CheckoutGateway {
	return &hostedCheckoutGateway{apiKey: apiKey, baseURL: baseURL, env: env}
}

func (g *hostedCheckoutGateway) CreateCheckoutSession(ctx context.Context, items []LineItem, orderIDsCsv string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("at least one line item is required")
	}
	if orderIDsCsv == "" {
		return "", fmt.Errorf("order ids are required")
	}
	for _, item := range items {
		if item.Quantity <= 0 || item.UnitPrice <= 0 {
			return "", fmt.Errorf("line item %q has a non-positive quantity or price", item.Name)
		}
	}

	// Sandbox stub: mint a session reference and a redirect URL.
	ref := fmt.Sprintf("CHK-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
	base := g.baseURL
	if base == "" {
		base = "https://checkout.sandbox.local"
	}
	return fmt.Sprintf("%s/session/%s?orders=%s", strings.TrimRight(base, "/"), ref, orderIDsCsv), nil
}
