package nlp

import (
	"testing"

	"github.com/amoghbhat/spence/internal/model"
	"github.com/stretchr/testify/assert"
)

func testCategories() []model.Category {
	return []model.Category{
		{Name: "Food & Dining", Keywords: []string{"food", "coffee", "lunch", "pizza", "restaurant"}},
		{Name: "Transport", Keywords: []string{"taxi", "uber", "fuel", "bus", "parking"}},
		{Name: "Shopping", Keywords: []string{"clothes", "shoes", "amazon", "groceries"}},
		{Name: "Entertainment", Keywords: []string{"movie", "netflix", "game", "subscription"}},
	}
}

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{
			name:        "single keyword hit",
			description: "coffee",
			want:        "Food & Dining",
		},
		{
			name:        "case insensitive",
			description: "UBER to airport",
			want:        "Transport",
		},
		{
			name:        "keyword inside longer description",
			description: "monthly netflix plan",
			want:        "Entertainment",
		},
		{
			name:        "more hits wins",
			description: "pizza lunch at the restaurant",
			want:        "Food & Dining",
		},
		{
			name:        "no keyword falls back",
			description: "mystery purchase",
			want:        model.FallbackCategory,
		},
		{
			name:        "empty description falls back",
			description: "",
			want:        model.FallbackCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchCategory(tt.description, testCategories()))
		})
	}
}

func TestMatchCategory_TieKeepsListOrder(t *testing.T) {
	categories := []model.Category{
		{Name: "First", Keywords: []string{"shared"}},
		{Name: "Second", Keywords: []string{"shared"}},
	}

	// One hit each; the earlier candidate must win.
	assert.Equal(t, "First", MatchCategory("shared thing", categories))
}

func TestMatchCategory_NoCategories(t *testing.T) {
	assert.Equal(t, model.FallbackCategory, MatchCategory("coffee", nil))
}
