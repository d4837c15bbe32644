package usecase

import (
	"context"
	"fmt"

	"mess-booking/internal/data/entity"
	"mess-booking/internal/data/repository"
	"mess-booking/pkg/payment"
	"mess-booking/pkg/ticket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookService turns possibly-duplicated, possibly-forged payment
// notifications into idempotent state transitions. Only a signature
// failure is returned as an error; everything else is acknowledged so
// the gateway stops redelivering.
type WebhookService interface {
	ProcessNotification(ctx context.Context, payload []byte, signature string) error
}

type webhookService struct {
	repo    *repository.Repository
	gateway payment.Gateway
	tickets ticket.Generator
	log     *zap.Logger
}

func NewWebhookService(
	repo *repository.Repository,
	gateway payment.Gateway,
	tickets ticket.Generator,
	log *zap.Logger,
) WebhookService {
	return &webhookService{
		repo:    repo,
		gateway: gateway,
		tickets: tickets,
		log:     log.With(zap.String("service", "webhook")),
	}
}

func (s *webhookService) ProcessNotification(ctx context.Context, payload []byte, signature string) error {
	// 1. Verify signature; fail closed, no state change.
	event, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		s.log.Warn("Webhook signature verification failed", zap.Error(err))
		return err
	}

	// 2. Only completed checkouts drive a transition.
	if event.Type != payment.EventCheckoutCompleted {
		s.log.Debug("Ignoring webhook event", zap.String("type", event.Type))
		return nil
	}

	// 3. Unknown booking: acknowledge, the gateway must not retry forever.
	bookingID, err := uuid.Parse(event.BookingID)
	if err != nil {
		s.log.Warn("Webhook carries no usable booking id", zap.String("booking_id", event.BookingID))
		return nil
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking for webhook: %w", err)
	}
	if booking == nil {
		s.log.Info("Webhook for unknown booking, acknowledging",
			zap.String("booking_id", event.BookingID))
		return nil
	}

	switch booking.Status {
	case entity.BookingStatusPaid:
		// 4. Idempotency gate: duplicate delivery, nothing to do.
		s.log.Info("Duplicate payment notification, booking already paid",
			zap.String("booking_id", event.BookingID),
			zap.Stringp("ticket_id", booking.TicketID),
		)
		return nil

	case entity.BookingStatusCancelled:
		// 5. Payment after cancellation is an anomaly; it does not
		// resurrect the booking and no refund is initiated here.
		s.log.Warn("Payment notification for cancelled booking",
			zap.String("booking_id", event.BookingID))
		return nil
	}

	// 6. Pending: one conditional update decides the cancel/pay race.
	ticketID := s.tickets.NewTicketID()
	won, err := s.repo.Booking.MarkPaid(ctx, booking.ID, ticketID)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	if !won {
		s.log.Info("Lost paid transition race, booking no longer pending",
			zap.String("booking_id", event.BookingID))
		return nil
	}

	s.log.Info("Booking paid",
		zap.String("booking_id", event.BookingID),
		zap.String("ticket_id", ticketID),
	)

	// 7. Artifact generation is best effort: payment is the fact of
	// record and is never rolled back, the PDF can be produced later.
	s.generateArtifact(ctx, booking, ticketID)

	return nil
}

func (s *webhookService) generateArtifact(ctx context.Context, booking *entity.Booking, ticketID string) {
	t := ticket.Ticket{
		TicketID:  ticketID,
		BookingID: booking.ID.String(),
		Date:      booking.Date,
		MealType:  string(booking.MealType),
		Persons:   booking.Persons,
		Amount:    booking.Amount,
	}

	// Owner details are cosmetic on the ticket; a lookup failure must not
	// block artifact generation.
	owner, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		s.log.Warn("Failed to load booking owner for ticket",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
	}
	if owner != nil {
		t.OwnerName = owner.Name
		t.OwnerEmail = owner.Email
		if owner.StudentID != nil {
			t.StudentID = *owner.StudentID
		}
	}

	path, err := s.tickets.GenerateArtifact(ctx, t)
	if err != nil {
		s.log.Error("Ticket artifact generation failed, booking stays paid",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("ticket_id", ticketID),
		)
		return
	}

	if err := s.repo.Booking.SetPDFPath(ctx, booking.ID, path); err != nil {
		s.log.Error("Failed to record ticket artifact path",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("path", path),
		)
	}
}
