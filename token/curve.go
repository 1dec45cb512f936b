package token

import "math"

// Curve is a stepwise bonding curve mapping minted supply to the
// reserve-currency price of one wager token. With Steps <= 1 (or equal
// boundary prices) the curve is flat.
type Curve struct {
	MinPrice  float64
	MaxPrice  float64
	Steps     int
	MaxSupply float64
	Royalty   float64 // fraction taken on both buy and sell, e.g. 0.03
}

// DefaultCurve mirrors the launch configuration: flat 100 reserve per token,
// 1M max supply, 3% royalty.
var DefaultCurve = Curve{
	MinPrice:  100,
	MaxPrice:  100,
	Steps:     1,
	MaxSupply: 1_000_000,
	Royalty:   0.03,
}

func (c Curve) stepSize() float64 {
	return c.MaxSupply / float64(c.Steps)
}

// PriceAt returns the per-token price at the given minted supply.
// The price is a non-decreasing step function of supply, linearly
// interpolated inside each step.
func (c Curve) PriceAt(supply float64) float64 {
	if c.Steps <= 1 || c.MinPrice == c.MaxPrice {
		return c.MinPrice
	}

	stepSize := c.stepSize()
	step := math.Min(math.Floor(supply/stepSize), float64(c.Steps-1))

	priceRange := c.MaxPrice - c.MinPrice
	stepProgress := math.Mod(supply, stepSize) / stepSize
	basePrice := c.MinPrice + priceRange*step/float64(c.Steps-1)
	nextPrice := c.MinPrice + priceRange*(step+1)/float64(c.Steps-1)

	return basePrice + (nextPrice-basePrice)*stepProgress
}

// BuyAmount returns how many tokens a reserve payment mints starting from
// currentSupply. The royalty comes off the reserve first, then the walk fills
// whole steps at each step's price and the final step proportionally,
// clamping at the supply ceiling.
func (c Curve) BuyAmount(reserveIn, currentSupply float64) float64 {
	if reserveIn <= 0 || currentSupply >= c.MaxSupply {
		return 0
	}

	remaining := reserveIn * (1 - c.Royalty)
	stepSize := c.stepSize()

	var minted float64
	supply := currentSupply

	for remaining > 0 && supply < c.MaxSupply {
		price := c.PriceAt(supply)
		stepEnd := math.Min(math.Ceil((supply+1)/stepSize)*stepSize, c.MaxSupply)
		if stepEnd <= supply {
			stepEnd = math.Min(supply+stepSize, c.MaxSupply)
		}
		tokensInStep := stepEnd - supply
		reserveNeeded := tokensInStep * price

		if remaining >= reserveNeeded {
			minted += tokensInStep
			remaining -= reserveNeeded
			supply = stepEnd
		} else {
			minted += remaining / price
			remaining = 0
		}
	}

	// 6-decimal truncation, matching the token's on-chain precision.
	return math.Floor(minted*1e6) / 1e6
}

// SellReturn returns the reserve paid out for burning tokens down from
// currentSupply. Mirror walk of BuyAmount; the royalty applies to the
// computed return.
func (c Curve) SellReturn(tokensOut, currentSupply float64) float64 {
	if tokensOut <= 0 || currentSupply <= 0 {
		return 0
	}

	toSell := math.Min(tokensOut, currentSupply)
	stepSize := c.stepSize()

	var reserveReturn float64
	supply := currentSupply

	for toSell > 0 && supply > 0 {
		price := c.PriceAt(supply)
		stepStart := math.Floor(supply/stepSize) * stepSize
		if stepStart >= supply {
			stepStart = math.Max(supply-stepSize, 0)
		}
		tokensInStep := supply - stepStart

		if toSell >= tokensInStep {
			reserveReturn += tokensInStep * price
			toSell -= tokensInStep
			supply = stepStart
		} else {
			reserveReturn += toSell * price
			toSell = 0
		}
	}

	return reserveReturn * (1 - c.Royalty)
}
