package orders

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// ComputeSpreadPercentage returns the spread between the best buy and sell
// prices as a percentage of the sell price.
func ComputeSpreadPercentage(buyPrice, sellPrice decimal.Decimal) decimal.Decimal {
	if sellPrice.Sign() == 0 {
		return decimal.Zero
	}
	return sellPrice.Sub(buyPrice).Div(sellPrice).Mul(hundred)
}

// PricesFromSpread recomputes symmetric buy/sell prices that realize the
// requested spread percentage around the current pair of prices.
// Increment = (BuyPrice - SellPrice*(1-newSpread)) / (2 - newSpread)
func PricesFromSpread(buyPrice, sellPrice, newSpreadPercentage decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	spread := newSpreadPercentage.Div(hundred)
	increment := buyPrice.Sub(sellPrice.Mul(one.Sub(spread))).Div(two.Sub(spread))
	return buyPrice.Sub(increment), sellPrice.Add(increment)
}

// OrderSizeFromInventoryBalance scales a market-maker order size by the share
// of inventory held on the relevant side.
func OrderSizeFromInventoryBalance(amount, inventoryBalance decimal.Decimal, isBuy bool) decimal.Decimal {
	if isBuy {
		return amount.Mul(two).Mul(inventoryBalance)
	}
	return amount.Mul(two).Mul(one.Sub(inventoryBalance))
}
