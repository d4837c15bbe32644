package payment

import "context"

// NoopGateway is the unconfigured mode. Bookings are created pending and
// stay pending; webhooks cannot be verified so they are rejected.
type NoopGateway struct{}

func NewNoopGateway() *NoopGateway {
	return &NoopGateway{}
}

func (g *NoopGateway) Enabled() bool {
	return false
}

func (g *NoopGateway) CreateSession(ctx context.Context, p SessionParams) (string, error) {
	return "", ErrNotConfigured
}

func (g *NoopGateway) VerifyEvent(payload []byte, signature string) (*Event, error) {
	return nil, ErrSignatureVerification
}
