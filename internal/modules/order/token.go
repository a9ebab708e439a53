package order

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// TokenTTL is how long a pickup token stays redeemable after issuance.
const TokenTTL = 24 * time.Hour

// PickupToken is a one-time credential bound 1:1 to its order, redeemed
// exactly once at physical collection.
type PickupToken struct {
	OrderID   uuid.UUID  `json:"order_id"`
	TokenHash string     `json:"token_hash"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// NewPickupToken issues a fresh token for an order.
func NewPickupToken(orderID uuid.UUID, now time.Time) *PickupToken {
	return &PickupToken{
		OrderID:   orderID,
		TokenHash: newTokenHash(),
		IssuedAt:  now,
		ExpiresAt: now.Add(TokenTTL),
	}
}

// IsValid reports whether the token can still be redeemed at instant now.
// A token expiring exactly at now is already invalid, and a used token is
// invalid regardless of expiry.
func (t *PickupToken) IsValid(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

func newTokenHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to a
		// uuid pair rather than handing out a guessable token.
		return uuid.New().String() + uuid.New().String()
	}
	return hex.EncodeToString(buf)
}
