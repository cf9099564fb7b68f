package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilters_ToValues_OnlyCategory(t *testing.T) {
	// Setup
	filters := SearchFilters{Category: "shoes"}

	// Act
	q := filters.ToValues()

	// Assert: exactly one filter parameter
	if len(q) != 1 {
		t.Errorf("Expected exactly 1 parameter, got %d (%v)", len(q), q)
	}
	assert.Equal(t, "shoes", q.Get("category"))
}

func TestSearchFilters_ToValues_Empty(t *testing.T) {
	q := SearchFilters{}.ToValues()

	if len(q) != 0 {
		t.Errorf("Expected no parameters for zero filters, got %v", q)
	}
	assert.True(t, SearchFilters{}.IsZero())
}

func TestSearchFilters_ToValues_PriceBounds(t *testing.T) {
	min := 10.5
	max := 99.0
	filters := SearchFilters{MinPrice: &min, MaxPrice: &max}

	q := filters.ToValues()

	assert.Equal(t, "10.5", q.Get("min_price"))
	assert.Equal(t, "99", q.Get("max_price"))
	if _, ok := q["category"]; ok {
		t.Error("category must be omitted when unset")
	}
}

func TestSearchFilters_ToValues_Availability(t *testing.T) {
	q := SearchFilters{Availability: "in stock"}.ToValues()

	assert.Equal(t, "in stock", q.Get("availability"))
}
