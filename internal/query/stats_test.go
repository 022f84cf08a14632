package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	avg, err := Average([]float64{1, 2, 3})
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, avg, 0.0001)
}

func TestAverageEmptyIsNoData(t *testing.T) {
	_, err := Average(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestWithinRangeInclusiveBounds(t *testing.T) {
	assert.True(t, WithinRange(10, 10, 20))
	assert.True(t, WithinRange(20, 10, 20))
	assert.True(t, WithinRange(15, 10, 20))
	assert.False(t, WithinRange(9, 10, 20))
	assert.False(t, WithinRange(21, 10, 20))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Chicken Curry", "curry"))
	assert.True(t, ContainsFold("Chicken Curry", "CHICK"))
	assert.False(t, ContainsFold("Chicken Curry", "beef"))
	// Empty needle matches everything.
	assert.True(t, ContainsFold("anything", ""))
	assert.True(t, ContainsFold("", ""))
}

func TestAnyContainsFold(t *testing.T) {
	items := []string{"flour", "Brown Sugar", "eggs"}
	assert.True(t, AnyContainsFold(items, "sugar"))
	assert.False(t, AnyContainsFold(items, "butter"))
	// Element-wise: a needle spanning two adjacent elements never matches.
	assert.False(t, AnyContainsFold(items, "flourBrown"))
}

func TestNormalizeIngredient(t *testing.T) {
	assert.Equal(t, "sugar", NormalizeIngredient("Sugar"))
	assert.Equal(t, "sugar", NormalizeIngredient("sugar2"))
	assert.Equal(t, "sugar", NormalizeIngredient("SUGAR123"))
	assert.Equal(t, "", NormalizeIngredient("42"))
}

func TestCountDistinctNormalizesBeforeDedup(t *testing.T) {
	values := []string{"Sugar", "sugar2", "SUGAR", "Flour", "flour"}
	assert.Equal(t, 2, CountDistinct(values, NormalizeIngredient))
}

func TestCountDistinctWithoutNormalize(t *testing.T) {
	values := []string{"a", "b", "a"}
	assert.Equal(t, 2, CountDistinct(values, nil))
}
