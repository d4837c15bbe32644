package usecase

import (
	"context"
	"testing"
	"time"

	"mess-booking/internal/data/entity"
	"mess-booking/internal/data/repository"
	"mess-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAdminFixture() (AdminService, *fakeBookingRepo, *fakeUserRepo) {
	bookingRepo := newFakeBookingRepo()
	userRepo := newFakeUserRepo()
	repo := &repository.Repository{User: userRepo, Booking: bookingRepo}
	return NewAdminService(repo, zap.NewNop()), bookingRepo, userRepo
}

func seedUser(repo *fakeUserRepo, role entity.UserRole) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  "Test User",
		Email: uuid.New().String() + "@example.com",
		Role:  role,
	}
	repo.Create(context.Background(), user)
	return user
}

func TestAdminListBookingsWithFilter(t *testing.T) {
	service, bookingRepo, userRepo := newAdminFixture()
	owner := seedUser(userRepo, entity.RoleStudent)

	seedBooking(bookingRepo, owner.ID, entity.BookingStatusPending)
	seedBooking(bookingRepo, owner.ID, entity.BookingStatusPaid)
	seedBooking(bookingRepo, owner.ID, entity.BookingStatusPaid)

	all, err := service.ListBookings(context.Background(), &request.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	require.NotNil(t, all.Bookings[0].Owner)
	assert.Equal(t, owner.Email, all.Bookings[0].Owner.Email)

	paid, err := service.ListBookings(context.Background(), &request.ListBookingsRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, 2, paid.Count)

	_, err = service.ListBookings(context.Background(), &request.ListBookingsRequest{Status: "refunded"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAdminStatistics(t *testing.T) {
	service, bookingRepo, userRepo := newAdminFixture()
	owner := seedUser(userRepo, entity.RoleStudent)

	seedBooking(bookingRepo, owner.ID, entity.BookingStatusPending)
	seedBooking(bookingRepo, owner.ID, entity.BookingStatusPaid)
	seedBooking(bookingRepo, owner.ID, entity.BookingStatusPaid)
	seedBooking(bookingRepo, owner.ID, entity.BookingStatusCancelled)

	stats, err := service.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalBookings)
	assert.Equal(t, int64(2), stats.PaidBookings)
	assert.Equal(t, int64(1), stats.PendingBookings)
	assert.Equal(t, int64(1), stats.CancelledBookings)
	assert.Equal(t, int64(320), stats.TotalRevenue, "only paid bookings count toward revenue")
	assert.Equal(t, int64(4), stats.MealTypeStats[entity.MealLunch])
	assert.Len(t, stats.RecentBookings, 4)
}

func TestAdminUpdateBookingStatus(t *testing.T) {
	service, bookingRepo, userRepo := newAdminFixture()
	owner := seedUser(userRepo, entity.RoleStudent)
	booking := seedBooking(bookingRepo, owner.ID, entity.BookingStatusPending)

	resp, err := service.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPaid, resp.Status)

	_, err = service.UpdateBookingStatus(context.Background(), uuid.New().String(), &request.UpdateBookingStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)

	_, err = service.UpdateBookingStatus(context.Background(), booking.ID.String(), &request.UpdateBookingStatusRequest{Status: "refunded"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAdminUpdateUserRole(t *testing.T) {
	service, _, userRepo := newAdminFixture()
	user := seedUser(userRepo, entity.RoleStudent)

	resp, err := service.UpdateUserRole(context.Background(), user.ID.String(), &request.UpdateUserRoleRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	_, err = service.UpdateUserRole(context.Background(), uuid.New().String(), &request.UpdateUserRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	_, err = service.UpdateUserRole(context.Background(), user.ID.String(), &request.UpdateUserRoleRequest{Role: "superuser"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAdminListUsersOmitsPasswordHash(t *testing.T) {
	service, _, userRepo := newAdminFixture()
	seedUser(userRepo, entity.RoleStudent)
	seedUser(userRepo, entity.RoleAdmin)

	resp, err := service.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
}
