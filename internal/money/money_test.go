package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	def := decimal.NewFromInt(7)

	assert.True(t, Parse("12.50", def).Equal(decimal.RequireFromString("12.50")))
	assert.True(t, Parse("  3 ", def).Equal(decimal.NewFromInt(3)))

	// Blank and garbage fall back to the default
	assert.True(t, Parse("", def).Equal(def))
	assert.True(t, Parse("   ", def).Equal(def))
	assert.True(t, Parse("abc", def).Equal(def))
	assert.True(t, Parse("12,50", def).Equal(def))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.13", Round2(decimal.RequireFromString("10.125")).StringFixed(2))
	assert.Equal(t, "10.12", Round2(decimal.RequireFromString("10.124")).StringFixed(2))
	assert.Equal(t, "5.00", Round2(decimal.NewFromInt(5)).StringFixed(2))
}

func TestClampPct(t *testing.T) {
	assert.True(t, ClampPct(decimal.NewFromInt(-10)).Equal(decimal.Zero))
	assert.True(t, ClampPct(decimal.NewFromInt(0)).Equal(decimal.Zero))
	assert.True(t, ClampPct(decimal.NewFromInt(55)).Equal(decimal.NewFromInt(55)))
	assert.True(t, ClampPct(decimal.NewFromInt(100)).Equal(Hundred))
	assert.True(t, ClampPct(decimal.NewFromInt(999)).Equal(Hundred))
}
