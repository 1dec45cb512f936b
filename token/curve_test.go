package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceAt_FlatCurve(t *testing.T) {
	t.Parallel()
	c := DefaultCurve

	assert.Equal(t, 100.0, c.PriceAt(0))
	assert.Equal(t, 100.0, c.PriceAt(500_000))
	assert.Equal(t, 100.0, c.PriceAt(c.MaxSupply))
}

func TestPriceAt_SteppedCurve(t *testing.T) {
	t.Parallel()
	c := Curve{MinPrice: 100, MaxPrice: 200, Steps: 2, MaxSupply: 1000, Royalty: 0}

	assert.Equal(t, 100.0, c.PriceAt(0))
	// Interpolated halfway through the first step.
	assert.InDelta(t, 150.0, c.PriceAt(250), 1e-9)
	assert.InDelta(t, 200.0, c.PriceAt(500), 1e-9)
}

func TestBuyAmount_FlatPriceWithRoyalty(t *testing.T) {
	t.Parallel()
	c := DefaultCurve

	// 100 reserve, 3% royalty off the top, 100 per token.
	assert.InDelta(t, 0.97, c.BuyAmount(100, 0), 1e-9)
	assert.InDelta(t, 9.7, c.BuyAmount(1000, 0), 1e-9)
}

func TestBuyAmount_Guards(t *testing.T) {
	t.Parallel()
	c := DefaultCurve

	assert.Zero(t, c.BuyAmount(0, 0))
	assert.Zero(t, c.BuyAmount(-10, 0))
	assert.Zero(t, c.BuyAmount(100, c.MaxSupply))
}

func TestBuyAmount_ClampsAtMaxSupply(t *testing.T) {
	t.Parallel()
	c := Curve{MinPrice: 1, MaxPrice: 1, Steps: 1, MaxSupply: 10, Royalty: 0}

	// Paying for far more than the ceiling allows mints only the remainder.
	assert.InDelta(t, 2.0, c.BuyAmount(1000, 8), 1e-9)
}

func TestSellReturn_FlatPriceWithRoyalty(t *testing.T) {
	t.Parallel()
	c := DefaultCurve

	// 1 token at 100 each, minus 3% royalty on the way out.
	assert.InDelta(t, 97.0, c.SellReturn(1, 10), 1e-9)
}

func TestSellReturn_Guards(t *testing.T) {
	t.Parallel()
	c := DefaultCurve

	assert.Zero(t, c.SellReturn(0, 10))
	assert.Zero(t, c.SellReturn(-1, 10))
	assert.Zero(t, c.SellReturn(1, 0))
}

func TestSellReturn_ClampsToSupply(t *testing.T) {
	t.Parallel()
	c := Curve{MinPrice: 1, MaxPrice: 1, Steps: 1, MaxSupply: 100, Royalty: 0}

	// Selling more than exists burns only what exists.
	assert.InDelta(t, 5.0, c.SellReturn(50, 5), 1e-9)
}

func TestBuySell_RoundTripLosesOnlyRoyalty(t *testing.T) {
	t.Parallel()
	c := Curve{MinPrice: 100, MaxPrice: 100, Steps: 1, MaxSupply: 1_000_000, Royalty: 0}

	minted := c.BuyAmount(250, 0)
	back := c.SellReturn(minted, minted)
	assert.InDelta(t, 250.0, back, 1e-6)
}
