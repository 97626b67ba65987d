package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalculator() *Calculator {
	return NewCalculator(0.18, []Discount{
		{Code: "WELCOME10", Amount: decimal.NewFromFloat(0.10), MinPurchase: 0},
		{Code: "FREESHIP", Amount: decimal.NewFromInt(100), Fixed: true, MinPurchase: 5000},
	})
}

func TestSummarizeBreakdown(t *testing.T) {
	l := NewLedger(10)
	l.Add("IR-001", 2) // 2 x 1300 = 2600

	summary := testCalculator().Summarize(l, testResolver(), "", nil)

	require.Len(t, summary.Lines, 1)
	assert.Equal(t, int64(2600), summary.Lines[0].Subtotal)
	assert.Equal(t, "2600", summary.Subtotal)
	assert.Equal(t, "468", summary.Tax) // 18% of 2600
	assert.Equal(t, "3068", summary.Total)
	assert.Equal(t, 2, summary.Count)
}

func TestSummarizePercentageDiscount(t *testing.T) {
	l := NewLedger(10)
	l.Add("IR-001", 2) // 2600

	summary := testCalculator().Summarize(l, testResolver(), "welcome10", nil)

	assert.Equal(t, "260", summary.Discount, "codes are case-insensitive")
	assert.Equal(t, "421.2", summary.Tax) // 18% of 2340
	assert.Equal(t, "2761.2", summary.Total)
	assert.Empty(t, summary.Warning)
}

func TestSummarizeFixedDiscountBelowMinimum(t *testing.T) {
	l := NewLedger(10)
	l.Add("IR-001", 1) // 1300, below the 5000 minimum

	summary := testCalculator().Summarize(l, testResolver(), "FREESHIP", nil)

	assert.Empty(t, summary.Discount)
	assert.Equal(t, "cart total below discount minimum", summary.Warning)
}

func TestSummarizeUnknownDiscountWarns(t *testing.T) {
	l := NewLedger(10)
	l.Add("IR-001", 1)

	summary := testCalculator().Summarize(l, testResolver(), "NOPE", nil)

	assert.Empty(t, summary.Discount)
	assert.Equal(t, "unknown discount code", summary.Warning)
}

func TestSummarizeShipping(t *testing.T) {
	l := NewLedger(10)
	l.Add("IR-002", 1) // 3450

	ship := &Shipping{Name: "Express Shipping", Price: 250, Days: "2-3"}
	summary := testCalculator().Summarize(l, testResolver(), "", ship)

	assert.Equal(t, "250", summary.Shipping)
	assert.Equal(t, "4321", summary.Total) // 3450 + 621 tax + 250
}

func TestSummarizeSkipsStaleLines(t *testing.T) {
	l := NewLedger(10)
	l.Add("gone", 3)

	summary := testCalculator().Summarize(l, testResolver(), "", nil)

	assert.Empty(t, summary.Lines)
	assert.Equal(t, "0", summary.Subtotal)
	assert.Equal(t, "0", summary.Total)
}
