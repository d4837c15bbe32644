package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"mess-booking/pkg/utils"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

type StripeGateway struct {
	webhookSecret string
	currency      string
	successURL    string
	cancelURL     string
	log           *zap.Logger
}

func NewStripeGateway(config utils.StripeConfig, log *zap.Logger) *StripeGateway {
	stripe.Key = config.SecretKey

	return &StripeGateway{
		webhookSecret: config.WebhookSecret,
		currency:      config.Currency,
		successURL:    config.SuccessURL,
		cancelURL:     config.CancelURL,
		log:           log.With(zap.String("gateway", "stripe")),
	}
}

func (g *StripeGateway) Enabled() bool {
	return true
}

// CreateSession creates a hosted checkout session keyed by booking id.
func (g *StripeGateway) CreateSession(ctx context.Context, p SessionParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(g.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
					// Stripe expects the smallest currency unit.
					UnitAmount: stripe.Int64(p.Amount * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", p.BookingID)

	s, err := session.New(params)
	if err != nil {
		g.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", p.BookingID),
		)
		return "", fmt.Errorf("create checkout session for booking %s: %w", p.BookingID, err)
	}

	return s.URL, nil
}

// VerifyEvent checks the Stripe-Signature header against the endpoint
// secret and extracts the booking id from the session metadata. Fails
// closed on any verification or parse problem.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureVerification, err)
	}

	event := &Event{Type: string(stripeEvent.Type)}

	if event.Type == EventCheckoutCompleted {
		var checkoutSession stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &checkoutSession); err != nil {
			return nil, fmt.Errorf("%w: malformed session payload: %v", ErrSignatureVerification, err)
		}
		event.BookingID = checkoutSession.Metadata["booking_id"]
	}

	return event, nil
}
