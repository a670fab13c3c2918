package orders

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeSpreadPercentage(t *testing.T) {
	cases := []struct {
		name string
		buy  string
		sell string
		want string
	}{
		{"TenPercent", "90", "100", "10"},
		{"ZeroSpread", "100", "100", "0"},
		{"ZeroSellPrice", "90", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeSpreadPercentage(dec(tc.buy), dec(tc.sell))
			if !got.Equal(dec(tc.want)) {
				t.Errorf("spread of %s/%s: expected %s, got %s", tc.buy, tc.sell, tc.want, got)
			}
		})
	}
}

func TestPricesFromSpreadPreservesMidpoint(t *testing.T) {
	buy := dec("95")
	sell := dec("100")

	newBuy, newSell := PricesFromSpread(buy, sell, dec("10"))

	if !ComputeSpreadPercentage(newBuy, newSell).Round(10).Equal(dec("10")) {
		t.Errorf("expected 10%% spread, got %s", ComputeSpreadPercentage(newBuy, newSell))
	}
	if !newBuy.Add(newSell).Equal(buy.Add(sell)) {
		t.Errorf("price sum changed: %s vs %s", newBuy.Add(newSell), buy.Add(sell))
	}
}

func TestOrderSizeFromInventoryBalance(t *testing.T) {
	amount := dec("10")
	half := dec("0.5")

	if got := OrderSizeFromInventoryBalance(amount, half, true); !got.Equal(amount) {
		t.Errorf("balanced inventory buy: expected %s, got %s", amount, got)
	}
	if got := OrderSizeFromInventoryBalance(amount, half, false); !got.Equal(amount) {
		t.Errorf("balanced inventory sell: expected %s, got %s", amount, got)
	}

	heavy := dec("0.8")
	buy := OrderSizeFromInventoryBalance(amount, heavy, true)
	sell := OrderSizeFromInventoryBalance(amount, heavy, false)
	if !buy.Equal(dec("16")) || !sell.Equal(dec("4")) {
		t.Errorf("skewed inventory: expected 16/4, got %s/%s", buy, sell)
	}
	if !buy.Add(sell).Equal(amount.Mul(decimal.NewFromInt(2))) {
		t.Errorf("sizes must sum to twice the base amount")
	}
}
