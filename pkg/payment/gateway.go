package payment

import (
	"context"
	"errors"
)

// Event type that drives the paid transition. Everything else is
// acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

var (
	ErrSignatureVerification = errors.New("webhook signature verification failed")
	ErrNotConfigured         = errors.New("payment gateway not configured")
)

// Event is a verified payment notification.
type Event struct {
	Type      string
	BookingID string
}

// SessionParams describes the checkout session for one booking.
type SessionParams struct {
	BookingID   string
	Amount      int64 // whole rupees
	Description string
}

// Gateway is the consumed payment-provider interface. Implementations:
// Stripe (hosted checkout) and Noop for the unconfigured mode, where
// bookings stay pending until confirmed manually.
type Gateway interface {
	Enabled() bool
	CreateSession(ctx context.Context, params SessionParams) (string, error)
	VerifyEvent(payload []byte, signature string) (*Event, error)
}
