package steps

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	sdkerrors "github.com/saismm9810/DEX/pkg/errors"
	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/tokens"
)

// BuySellLimitSteps plans the transactions required before a limit order can
// be submitted: unlock the spendable token (quote on buys, base on sells),
// unlock a distinct maker-fee asset, wrap native currency when a wrapped-token
// side lacks balance, then submit. Step order is fixed: approvals precede
// balance-changing wraps so each transaction's precondition is already settled
// when it is sent.
func BuySellLimitSteps(
	baseToken, quoteToken tokens.Token,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
	amount, price decimal.Decimal,
	side orders.Side,
	fee orders.FeeData,
) ([]Step, error) {
	var plan []Step

	tokenToUnlock := quoteToken
	if side == orders.Sell {
		tokenToUnlock = baseToken
	}
	unlockStep, err := unlockTokenStepIfNeeded(tokenToUnlock, tokenBalances, wrappedBalance)
	if err != nil {
		return nil, err
	}
	if unlockStep != nil {
		plan = append(plan, *unlockStep)
	}

	if fee.MakerFee.Sign() > 0 {
		feeTokenAddr, err := tokens.DecodeERC20AssetData(fee.MakerFeeAssetData)
		if err != nil {
			return nil, err
		}
		if unlockStep == nil || unlockStep.Token.Address != feeTokenAddr {
			feeUnlockStep, err := unlockFeeAssetStepIfNeeded(append(tokenBalances, wrappedBalance), feeTokenAddr)
			if err != nil {
				return nil, err
			}
			if feeUnlockStep != nil {
				plan = append(plan, *feeUnlockStep)
			}
		}
	}

	if baseToken.IsWrappedNative() || quoteToken.IsWrappedNative() {
		feeBalance := decimal.Zero
		if fee.MakerFee.Sign() > 0 {
			if feeTokenAddr, err := tokens.DecodeERC20AssetData(fee.MakerFeeAssetData); err == nil &&
				feeTokenAddr == wrappedBalance.Token.Address {
				feeBalance = fee.MakerFee
			}
		}
		wrapStep := wrapNativeStepIfNeeded(amount, price, side, wrappedBalance, nil, feeBalance, quoteToken.IsWrappedNative())
		if wrapStep != nil {
			plan = append(plan, *wrapStep)
		}
	}

	plan = append(plan, BuySellLimit{
		Amount: amount,
		Price:  price,
		Side:   side,
		Token:  baseToken,
	})
	return plan, nil
}

// BuySellLimitMatchingSteps plans the transactions for filling standing orders
// that match a limit price. The unlock step is skipped on buys when the quote
// is the wrapped-native token and the plain native balance covers the cost,
// since the forwarder spends native currency directly. The fee asset is taken
// from the first order to fill, assuming the whole fill set shares it.
func BuySellLimitMatchingSteps(
	baseToken, quoteToken tokens.Token,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
	nativeBalance decimal.Decimal,
	amount, price, averagePrice decimal.Decimal,
	side orders.Side,
	ordersToFill []*orders.SignedOrder,
) ([]Step, error) {
	plan, unlockStep, err := matchingFlowPrefix(
		baseToken, quoteToken, tokenBalances, wrappedBalance, nativeBalance,
		amount.Mul(price), side,
	)
	if err != nil {
		return nil, err
	}

	plan, err = appendTakerFeeUnlock(plan, unlockStep, tokenBalances, wrappedBalance, ordersToFill)
	if err != nil {
		return nil, err
	}

	if quoteToken.IsWrappedNative() {
		wrapStep := wrapNativeStepIfNeeded(amount, price, side, wrappedBalance, &nativeBalance, decimal.Zero, true)
		if wrapStep != nil {
			plan = append(plan, *wrapStep)
		}
	}

	plan = append(plan, BuySellLimitMatching{
		Amount:       amount,
		Price:        price,
		AveragePrice: averagePrice,
		Side:         side,
		Token:        baseToken,
	})
	return plan, nil
}

// BuySellMarketSteps plans the transactions for a market fill of standing
// orders, with the same native-currency short-circuit and first-order fee
// assumption as the limit-matching flow.
func BuySellMarketSteps(
	baseToken, quoteToken tokens.Token,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
	nativeBalance decimal.Decimal,
	amount, price decimal.Decimal,
	side orders.Side,
	ordersToFill []*orders.SignedOrder,
) ([]Step, error) {
	plan, unlockStep, err := matchingFlowPrefix(
		baseToken, quoteToken, tokenBalances, wrappedBalance, nativeBalance,
		amount.Mul(price), side,
	)
	if err != nil {
		return nil, err
	}

	plan, err = appendTakerFeeUnlock(plan, unlockStep, tokenBalances, wrappedBalance, ordersToFill)
	if err != nil {
		return nil, err
	}

	if quoteToken.IsWrappedNative() {
		wrapStep := wrapNativeStepIfNeeded(amount, price, side, wrappedBalance, &nativeBalance, decimal.Zero, true)
		if wrapStep != nil {
			plan = append(plan, *wrapStep)
		}
	}

	plan = append(plan, BuySellMarket{
		Amount:  amount,
		Side:    side,
		Token:   baseToken,
		Context: ContextOrder,
	})
	return plan, nil
}

// matchingFlowPrefix computes the shared unlock prefix of the market and
// limit-matching flows. nativeCost is the native amount the forwarder path
// would spend instead of the wrapped token.
func matchingFlowPrefix(
	baseToken, quoteToken tokens.Token,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
	nativeBalance decimal.Decimal,
	nativeCost decimal.Decimal,
	side orders.Side,
) ([]Step, *ToggleTokenLock, error) {
	isBuy := side == orders.Buy
	tokenToUnlock := quoteToken
	if !isBuy {
		tokenToUnlock = baseToken
	}

	unlockStep, err := unlockTokenStepIfNeeded(tokenToUnlock, tokenBalances, wrappedBalance)
	if err != nil {
		return nil, nil, err
	}

	var plan []Step
	if unlockStep != nil {
		// Sells always need the allowance. Buys need it unless the quote is the
		// wrapped-native token and the plain native balance covers the cost,
		// in which case the forwarder path spends native currency directly.
		needed := !isBuy ||
			!tokenToUnlock.IsWrappedNative() ||
			nativeBalance.LessThan(nativeCost)
		if needed {
			plan = append(plan, *unlockStep)
		}
	}
	return plan, unlockStep, nil
}

// appendTakerFeeUnlock adds an unlock step for the taker-fee asset of the
// first order to fill. Orders in one fill set are assumed to share a fee
// asset; the relayer constructs them that way.
func appendTakerFeeUnlock(
	plan []Step,
	unlockStep *ToggleTokenLock,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
	ordersToFill []*orders.SignedOrder,
) ([]Step, error) {
	if len(ordersToFill) == 0 {
		return plan, nil
	}
	first := ordersToFill[0]
	if first.TakerFee.Dec().Sign() <= 0 {
		return plan, nil
	}

	feeTokenAddr, err := tokens.DecodeERC20AssetData(first.TakerFeeAssetData)
	if err != nil {
		return nil, err
	}
	if unlockStep != nil && unlockStep.Token.Address == feeTokenAddr {
		return plan, nil
	}
	feeUnlockStep, err := unlockFeeAssetStepIfNeeded(append(tokenBalances, wrappedBalance), feeTokenAddr)
	if err != nil {
		return nil, err
	}
	if feeUnlockStep != nil {
		plan = append(plan, *feeUnlockStep)
	}
	return plan, nil
}

// unlockTokenStepIfNeeded returns a ToggleTokenLock step when the balance
// record for token shows no allowance, or nil when it is already unlocked.
func unlockTokenStepIfNeeded(
	token tokens.Token,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
) (*ToggleTokenLock, error) {
	balance, err := findBalance(token.Address, tokenBalances, wrappedBalance)
	if err != nil {
		return nil, err
	}
	if balance.IsUnlocked {
		return nil, nil
	}
	return &ToggleTokenLock{
		Token:      balance.Token,
		IsUnlocked: false,
		Context:    ContextOrder,
	}, nil
}

// unlockFeeAssetStepIfNeeded is the same check addressed by fee-asset address.
// A fee asset absent from the balance list is a configuration bug and fatal.
func unlockFeeAssetStepIfNeeded(
	tokenBalances []tokens.TokenBalance,
	feeTokenAddr common.Address,
) (*ToggleTokenLock, error) {
	for _, balance := range tokenBalances {
		if balance.Token.Address != feeTokenAddr {
			continue
		}
		if balance.IsUnlocked {
			return nil, nil
		}
		return &ToggleTokenLock{
			Token:      balance.Token,
			IsUnlocked: false,
			Context:    ContextOrder,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", sdkerrors.ErrUnknownFeeToken, feeTokenAddr.Hex())
}

func findBalance(
	addr common.Address,
	tokenBalances []tokens.TokenBalance,
	wrappedBalance tokens.TokenBalance,
) (tokens.TokenBalance, error) {
	if addr == wrappedBalance.Token.Address {
		return wrappedBalance, nil
	}
	for _, balance := range tokenBalances {
		if balance.Token.Address == addr {
			return balance, nil
		}
	}
	return tokens.TokenBalance{}, fmt.Errorf("%w: %s", sdkerrors.ErrUnknownFeeToken, addr.Hex())
}

// wrapNativeStepIfNeeded computes the wrapped-native requirement of a trade
// (amount*price plus any wrapped-denominated fee when the wrapped token is the
// quote, the plain amount when it is the base) and plans a wrap to exactly
// that target when the wrapped balance falls short. A non-nil nativeBalance
// that covers the requirement suppresses the wrap: the forwarder path spends
// native currency without wrapping.
func wrapNativeStepIfNeeded(
	amount, price decimal.Decimal,
	side orders.Side,
	wrappedBalance tokens.TokenBalance,
	nativeBalance *decimal.Decimal,
	feeBalance decimal.Decimal,
	wrappedIsQuote bool,
) *WrapNative {
	// Wrapped quote is only spent on buys; wrapped base only on sells.
	if side == orders.Sell && wrappedIsQuote {
		return nil
	}
	if side == orders.Buy && !wrappedIsQuote {
		return nil
	}

	required := amount
	if wrappedIsQuote {
		required = amount.Mul(price)
	}
	required = required.Add(feeBalance)

	if wrappedBalance.Balance.GreaterThanOrEqual(required) {
		return nil
	}
	if nativeBalance != nil && nativeBalance.GreaterThan(required) {
		return nil
	}

	return &WrapNative{
		CurrentBalance: wrappedBalance.Balance,
		TargetBalance:  required,
		Context:        ContextOrder,
	}
}
