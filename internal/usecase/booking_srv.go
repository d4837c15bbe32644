package usecase

import (
	"context"
	"fmt"
	"time"

	"mess-booking/internal/data/entity"
	"mess-booking/internal/data/repository"
	"mess-booking/internal/dto/request"
	"mess-booking/internal/dto/response"
	"mess-booking/pkg/payment"
	"mess-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	GetBooking(ctx context.Context, bookingID, requesterID string, requesterRole entity.UserRole) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, requesterID string, requesterRole entity.UserRole) (*response.BookingResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	catalog *PriceCatalog
	gateway payment.Gateway
	log     *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	catalog *PriceCatalog,
	gateway payment.Gateway,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:    repo,
		catalog: catalog,
		gateway: gateway,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", entity.ErrValidation, userID)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", entity.ErrValidation, req.Date)
	}

	// Date must not be in the past
	today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	if date.Before(today) {
		return nil, fmt.Errorf("%w: date cannot be in the past", entity.ErrValidation)
	}

	mealType := entity.MealType(req.MealType)
	amount, ok := s.catalog.Total(mealType, req.Persons)
	if !ok {
		return nil, fmt.Errorf("%w: unknown meal type %s", entity.ErrValidation, req.MealType)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userUUID,
		Date:     date,
		MealType: mealType,
		Persons:  req.Persons,
		Amount:   amount,
		Status:   entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	resp := &response.CreateBookingResponse{
		BookingID: booking.ID.String(),
		Status:    booking.Status,
		Amount:    booking.Amount,
	}

	// Without a configured gateway the booking simply stays pending until
	// confirmed manually; that is a valid mode, not an error.
	if s.gateway.Enabled() {
		checkoutURL, err := s.gateway.CreateSession(ctx, payment.SessionParams{
			BookingID:   booking.ID.String(),
			Amount:      booking.Amount,
			Description: fmt.Sprintf("Mess Token - %s (%s)", req.MealType, req.Date),
		})
		if err != nil {
			s.log.Error("Failed to create checkout session",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			return nil, fmt.Errorf("create checkout session: %w", err)
		}
		resp.CheckoutURL = checkoutURL
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("meal_type", req.MealType),
		zap.Int("persons", req.Persons),
		zap.Int64("amount", amount),
		zap.Bool("gateway", s.gateway.Enabled()),
	)

	return resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, requesterID string, requesterRole entity.UserRole) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, bookingID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", entity.ErrValidation, userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, requesterID string, requesterRole entity.UserRole) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, bookingID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	// Single conditional update; a paid (or already cancelled) booking
	// never leaves its terminal state through this path.
	won, err := s.repo.Booking.UpdateStatusIf(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !won {
		s.log.Warn("Cancel rejected, booking not pending",
			zap.String("booking_id", bookingID),
			zap.String("status", string(booking.Status)),
		)
		return nil, entity.ErrBookingNotPending
	}

	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("requester_id", requesterID),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// findOwned fetches a booking and enforces the ownership rule: only the
// owner or an admin may see it.
func (s *bookingService) findOwned(ctx context.Context, bookingID, requesterID string, requesterRole entity.UserRole) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, entity.ErrBookingNotFound
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	if requesterRole != entity.RoleAdmin && booking.UserID.String() != requesterID {
		s.log.Warn("Access denied to booking",
			zap.String("booking_id", bookingID),
			zap.String("requester_id", requesterID),
		)
		return nil, entity.ErrAccessDenied
	}

	return booking, nil
}
