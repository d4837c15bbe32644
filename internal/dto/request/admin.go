package request

// ListBookingsRequest is filled from query parameters; empty fields mean
// no filter.
type ListBookingsRequest struct {
	Status    string `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	MealType  string `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student admin"`
}
