package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCost(t *testing.T) {
	t.Run("plain decimal", func(t *testing.T) {
		assert.True(t, decimal.NewFromFloat(450.50).Equal(ParseCost("450.50")))
	})

	t.Run("integer literal", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(200).Equal(ParseCost("200")))
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		assert.True(t, decimal.NewFromInt(75).Equal(ParseCost("  75  ")))
	})

	t.Run("formula yields zero", func(t *testing.T) {
		assert.True(t, ParseCost("sqft * 12.5").IsZero())
	})

	t.Run("empty string yields zero", func(t *testing.T) {
		assert.True(t, ParseCost("").IsZero())
	})

	t.Run("currency prefix yields zero", func(t *testing.T) {
		assert.True(t, ParseCost("$450").IsZero())
	})
}

func TestTotalCost(t *testing.T) {
	total := TotalCost(decimal.NewFromInt(450), decimal.NewFromInt(250))
	assert.True(t, decimal.NewFromInt(700).Equal(total))
}

func TestTotalWithMarkup(t *testing.T) {
	t.Run("ten percent markup", func(t *testing.T) {
		total := TotalWithMarkup(decimal.NewFromInt(450), decimal.NewFromInt(250), decimal.NewFromInt(10))
		assert.True(t, decimal.NewFromInt(770).Equal(total), "got %s", total)
	})

	t.Run("zero markup equals total cost", func(t *testing.T) {
		total := TotalWithMarkup(decimal.NewFromInt(100), decimal.NewFromInt(50), decimal.Zero)
		assert.True(t, decimal.NewFromInt(150).Equal(total))
	})

	t.Run("fractional markup", func(t *testing.T) {
		total := TotalWithMarkup(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromFloat(12.5))
		assert.True(t, decimal.NewFromFloat(112.5).Equal(total))
	})
}
