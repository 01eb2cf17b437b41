package payment

import (
	"context"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid signature")

// GatewayOrder is the remote order record created in the payment processor,
// distinct from the local order it settles.
type GatewayOrder struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	AmountDue int64  `json:"amount_due"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type Gateway interface {
	// CreateOrder creates a remote order for the given amount in the
	// gateway's minor currency unit.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)

	// VerifySignature checks the gateway's payment callback signature.
	VerifySignature(orderID, paymentID, signature string) error

	// KeyID is the public key identifier handed to checkout clients.
	KeyID() string
}
