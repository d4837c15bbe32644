package usecase

import (
	"mess-booking/internal/data/entity"
	"mess-booking/pkg/utils"
)

// PriceCatalog maps meal types to unit prices. Totals are computed once
// at booking creation and never recomputed afterwards.
type PriceCatalog struct {
	prices map[entity.MealType]int64
}

func NewPriceCatalog(config utils.PriceConfig) *PriceCatalog {
	return &PriceCatalog{
		prices: map[entity.MealType]int64{
			entity.MealBreakfast: config.Breakfast,
			entity.MealLunch:     config.Lunch,
			entity.MealDinner:    config.Dinner,
		},
	}
}

// Price returns the unit price for a meal type.
func (c *PriceCatalog) Price(mealType entity.MealType) (int64, bool) {
	price, ok := c.prices[mealType]
	return price, ok
}

// Total computes unit price x persons.
func (c *PriceCatalog) Total(mealType entity.MealType, persons int) (int64, bool) {
	price, ok := c.prices[mealType]
	if !ok {
		return 0, false
	}
	return price * int64(persons), true
}
