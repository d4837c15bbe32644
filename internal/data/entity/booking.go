package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusPaid, BookingStatusCancelled:
		return true
	}
	return false
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// Booking is a meal reservation. Status only ever moves pending -> paid
// (webhook) or pending -> cancelled (user/admin); paid and cancelled are
// terminal. TicketID and PDFPath are assigned once, on the paid transition.
type Booking struct {
	Base
	UserID   uuid.UUID     `db:"user_id"`
	Date     time.Time     `db:"date"`
	MealType MealType      `db:"meal_type"`
	Persons  int           `db:"persons"`
	Amount   int64         `db:"amount"`
	Status   BookingStatus `db:"status"`
	TicketID *string       `db:"ticket_id"`
	PDFPath  *string       `db:"pdf_path"`
}
