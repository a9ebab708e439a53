package payment

// LineItem is one priced row handed to the checkout gateway.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
}

// CheckoutSession is the gateway's answer: where to send the consumer.
type CheckoutSession struct {
	RedirectURL string `json:"redirect_url"`
	OrderIDs    string `json:"order_ids"`
}

// CreateSessionRequest is the payload for starting a payment session for one
// or more sibling orders from a single checkout.
type CreateSessionRequest struct {
	OrderIDs []string `json:"order_ids"`
}
