package response

import (
	"time"

	"mess-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Date      string               `json:"date"`
	MealType  entity.MealType      `json:"meal_type"`
	Persons   int                  `json:"persons"`
	Amount    int64                `json:"amount"`
	Status    entity.BookingStatus `json:"status"`
	TicketID  *string              `json:"ticket_id,omitempty"`
	TicketURL string               `json:"ticket_url,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// CreateBookingResponse carries the redirect target when a payment
// gateway is configured.
type CreateBookingResponse struct {
	BookingID   string               `json:"booking_id"`
	Status      entity.BookingStatus `json:"status"`
	Amount      int64                `json:"amount"`
	CheckoutURL string               `json:"checkout_url,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        booking.ID.String(),
		UserID:    booking.UserID.String(),
		Date:      booking.Date.Format("2006-01-02"),
		MealType:  booking.MealType,
		Persons:   booking.Persons,
		Amount:    booking.Amount,
		Status:    booking.Status,
		TicketID:  booking.TicketID,
		CreatedAt: booking.CreatedAt,
	}

	if booking.TicketID != nil {
		resp.TicketURL = "/tickets/" + *booking.TicketID + ".pdf"
	}

	return resp
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = BookingToResponse(booking)
	}
	return responses
}
