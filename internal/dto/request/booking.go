package request

type CreateBookingRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	MealType string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner"`
	Persons  int    `json:"persons" validate:"required,min=1,max=10"`
}
