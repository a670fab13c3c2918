package tokens

import "github.com/shopspring/decimal"

// TokenAmountInUnits converts an amount in the token's native integer units to
// a display string with displayDecimals places. Rounding is always toward zero
// so the UI never shows more than the wallet actually holds.
func TokenAmountInUnits(amount decimal.Decimal, decimals, displayDecimals int32) string {
	units := amount.Shift(-decimals)
	return units.RoundFloor(displayDecimals).StringFixed(displayDecimals)
}

// TokenAmountInUnitsDec converts native integer units to whole-token units
// without any display rounding.
func TokenAmountInUnitsDec(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(-decimals)
}

// UnitsInTokenAmount converts whole-token units into the token's native
// integer units.
func UnitsInTokenAmount(units decimal.Decimal, decimals int32) decimal.Decimal {
	return units.Shift(decimals)
}
