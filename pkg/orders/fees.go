package orders

import (
	"strings"

	"github.com/shopspring/decimal"
)

// protocolFeeMultiplier is the per-fill gas multiple the exchange charges as a
// protocol fee, independent of order size.
const protocolFeeMultiplier = 70000

var protocolFeeMultiplierDec = decimal.NewFromInt(protocolFeeMultiplier)

// WorstCaseProtocolFee returns the protocol fee in wei for filling the selected
// orders at the given gas price. The fee is charged per on-chain order fill, so
// it scales with the number of orders, not the requested amount.
func WorstCaseProtocolFee(selected []*SignedOrder, gasPrice decimal.Decimal) decimal.Decimal {
	return gasPrice.Mul(protocolFeeMultiplierDec).Mul(decimal.NewFromInt(int64(len(selected))))
}

// AffiliateFeeAmount computes the affiliate fee collected on a forwarder
// submission. The result is rounded up so the contract never receives less
// than the fee sweep requires.
func AffiliateFeeAmount(ethRequired, protocolFee, feePercentage decimal.Decimal) decimal.Decimal {
	return ethRequired.Add(protocolFee).Mul(feePercentage).Ceil()
}

// forwarderProtocolFeeBuffer pads the protocol fee sent along with a
// forwarder submission; the surplus is refunded by the contract.
var forwarderProtocolFeeBuffer = decimal.RequireFromString("1.3")

// ForwarderNativeRequirement is the total native amount a forwarder
// submission must carry: the quote spend itself, a padded protocol fee, the
// affiliate fee, and any taker fees denominated in the wrapped-native asset.
func ForwarderNativeRequirement(result MatchResult, gasPrice, feePercentage decimal.Decimal, wrappedAssetData string) decimal.Decimal {
	spent := decimal.Zero
	for _, amount := range result.Amounts {
		spent = spent.Add(amount)
	}
	protocolFee := WorstCaseProtocolFee(result.Orders, gasPrice)
	affiliateFee := AffiliateFeeAmount(spent, protocolFee, feePercentage)
	takerFee := TakerFeeInAsset(result.Orders, wrappedAssetData)
	return spent.Add(protocolFee.Mul(forwarderProtocolFeeBuffer)).Add(affiliateFee).Add(takerFee)
}

// TakerFeeInAsset sums the taker fees of the selected orders that are
// denominated in the given fee asset.
func TakerFeeInAsset(selected []*SignedOrder, feeAssetData string) decimal.Decimal {
	needle := strings.ToLower(feeAssetData)
	total := decimal.Zero
	for _, order := range selected {
		if order.TakerFee.Dec().Sign() > 0 && strings.ToLower(order.TakerFeeAssetData) == needle {
			total = total.Add(order.TakerFee.Dec())
		}
	}
	return total
}
