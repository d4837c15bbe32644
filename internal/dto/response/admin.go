package response

import (
	"time"

	"mess-booking/internal/data/entity"
)

type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	StudentID *string         `json:"student_id,omitempty"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		StudentID: user.StudentID,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// AdminBookingResponse adds owner details for the admin listing.
type AdminBookingResponse struct {
	BookingResponse
	Owner *UserResponse `json:"owner,omitempty"`
}

type BookingListResponse struct {
	Bookings []AdminBookingResponse `json:"bookings"`
	Count    int                    `json:"count"`
}

type StatisticsResponse struct {
	TotalBookings     int64                     `json:"total_bookings"`
	PaidBookings      int64                     `json:"paid_bookings"`
	PendingBookings   int64                     `json:"pending_bookings"`
	CancelledBookings int64                     `json:"cancelled_bookings"`
	TotalRevenue      int64                     `json:"total_revenue"`
	MealTypeStats     map[entity.MealType]int64 `json:"meal_type_stats"`
	RecentBookings    []AdminBookingResponse    `json:"recent_bookings"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}
