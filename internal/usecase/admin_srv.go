package usecase

import (
	"context"
	"fmt"
	"time"

	"mess-booking/internal/data/entity"
	"mess-booking/internal/data/repository"
	"mess-booking/internal/dto/request"
	"mess-booking/internal/dto/response"
	"mess-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService is the operator surface. It reads the same store as the
// core state machine but only UpdateBookingStatus writes, and that write
// is an explicit manual override.
type AdminService interface {
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.BookingListResponse, error)
	Statistics(ctx context.Context) (*response.StatisticsResponse, error)
	ListUsers(ctx context.Context) (*response.UserListResponse, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	UpdateUserRole(ctx context.Context, userID string, req *request.UpdateUserRoleRequest) (*response.UserResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.BookingListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	var filter repository.BookingFilter
	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.MealType != "" {
		mealType := entity.MealType(req.MealType)
		filter.MealType = &mealType
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date", entity.ErrValidation)
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", entity.ErrValidation)
		}
		filter.EndDate = &end
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	items, err := s.withOwners(ctx, bookings)
	if err != nil {
		return nil, err
	}

	return &response.BookingListResponse{
		Bookings: items,
		Count:    len(items),
	}, nil
}

func (s *adminService) Statistics(ctx context.Context) (*response.StatisticsResponse, error) {
	statusCounts, err := s.repo.Booking.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking statistics: %w", err)
	}

	revenue, err := s.repo.Booking.SumPaidAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking statistics: %w", err)
	}

	mealTypeCounts, err := s.repo.Booking.CountByMealType(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking statistics: %w", err)
	}

	recent, err := s.repo.Booking.FindRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("booking statistics: %w", err)
	}

	recentItems, err := s.withOwners(ctx, recent)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}

	return &response.StatisticsResponse{
		TotalBookings:     total,
		PaidBookings:      statusCounts[entity.BookingStatusPaid],
		PendingBookings:   statusCounts[entity.BookingStatusPending],
		CancelledBookings: statusCounts[entity.BookingStatusCancelled],
		TotalRevenue:      revenue,
		MealTypeStats:     mealTypeCounts,
		RecentBookings:    recentItems,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) (*response.UserListResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]response.UserResponse, len(users))
	for i, user := range users {
		items[i] = response.UserToResponse(user)
	}

	return &response.UserListResponse{Users: items, Count: len(items)}, nil
}

// UpdateBookingStatus is a manual override that deliberately bypasses
// the pending-only transition guard.
func (s *adminService) UpdateBookingStatus(ctx context.Context, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, entity.ErrBookingNotFound
	}

	status := entity.BookingStatus(req.Status)
	if !entity.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %s", entity.ErrValidation, req.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	s.log.Info("Booking status overridden by admin",
		zap.String("booking_id", bookingID),
		zap.String("status", req.Status),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, userID string, req *request.UpdateUserRoleRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, entity.ErrUserNotFound
	}

	if err := s.repo.User.UpdateRole(ctx, id, entity.UserRole(req.Role)); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	s.log.Info("User role updated",
		zap.String("user_id", userID),
		zap.String("role", req.Role),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// withOwners attaches owner details, tolerating missing users.
func (s *adminService) withOwners(ctx context.Context, bookings []*entity.Booking) ([]response.AdminBookingResponse, error) {
	items := make([]response.AdminBookingResponse, len(bookings))
	owners := make(map[uuid.UUID]*response.UserResponse)

	for i, booking := range bookings {
		items[i] = response.AdminBookingResponse{
			BookingResponse: response.BookingToResponse(booking),
		}

		owner, cached := owners[booking.UserID]
		if !cached {
			user, err := s.repo.User.FindByID(ctx, booking.UserID)
			if err != nil {
				s.log.Warn("Failed to load booking owner",
					zap.Error(err),
					zap.String("user_id", booking.UserID.String()))
			}
			if user != nil {
				resp := response.UserToResponse(user)
				owner = &resp
			}
			owners[booking.UserID] = owner
		}
		items[i].Owner = owner
	}

	return items, nil
}
