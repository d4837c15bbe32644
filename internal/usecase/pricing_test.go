package usecase

import (
	"testing"

	"mess-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestPriceCatalog(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		mealType entity.MealType
		persons  int
		want     int64
	}{
		{entity.MealBreakfast, 1, 50},
		{entity.MealBreakfast, 10, 500},
		{entity.MealLunch, 2, 160},
		{entity.MealLunch, 7, 560},
		{entity.MealDinner, 3, 210},
	}

	for _, tc := range tests {
		total, ok := catalog.Total(tc.mealType, tc.persons)
		assert.True(t, ok)
		assert.Equal(t, tc.want, total, "%s x %d", tc.mealType, tc.persons)
	}
}

func TestPriceCatalogUnknownMealType(t *testing.T) {
	catalog := testCatalog()

	_, ok := catalog.Price("brunch")
	assert.False(t, ok)

	_, ok = catalog.Total("supper", 2)
	assert.False(t, ok)
}
