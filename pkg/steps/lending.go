package steps

import (
	"github.com/shopspring/decimal"

	"github.com/saismm9810/DEX/pkg/lending"
	"github.com/saismm9810/DEX/pkg/tokens"
)

// LendingTokenSteps plans a deposit into a lending protocol. Native-currency
// deposits draw the shortfall out of the wrapped balance when the plain
// balance cannot cover the amount; token deposits unlock the protocol spender
// when needed.
func LendingTokenSteps(
	defiToken lending.DefiToken,
	token tokens.Token,
	wrappedBalance, nativeBalance, amount decimal.Decimal,
	isNative bool,
	protocol lending.Protocol,
) []Step {
	var plan []Step
	if isNative {
		if wrapStep := wrapShortfallStepIfNeeded(wrappedBalance, nativeBalance, amount); wrapStep != nil {
			plan = append(plan, *wrapStep)
		}
	} else if unlockStep := unlockLendingTokenStepIfNeeded(defiToken, token, protocol); unlockStep != nil {
		plan = append(plan, *unlockStep)
	}

	plan = append(plan, LendingToken{
		Amount:    amount,
		Token:     token,
		DefiToken: defiToken,
		Protocol:  protocol,
		IsNative:  isNative,
	})
	return plan
}

// BorrowTokenSteps plans a borrow. Borrowing transfers protocol funds to the
// user, so no allowance is required; only a native shortfall wrap may precede
// the borrow.
func BorrowTokenSteps(
	defiToken lending.DefiToken,
	token tokens.Token,
	wrappedBalance, nativeBalance, amount decimal.Decimal,
	isNative bool,
	protocol lending.Protocol,
) []Step {
	var plan []Step
	if isNative {
		if wrapStep := wrapShortfallStepIfNeeded(wrappedBalance, nativeBalance, amount); wrapStep != nil {
			plan = append(plan, *wrapStep)
		}
	}

	plan = append(plan, BorrowToken{
		Amount:    amount,
		Token:     token,
		DefiToken: defiToken,
		Protocol:  protocol,
		IsNative:  isNative,
	})
	return plan
}

// RepayTokenSteps plans a repayment, which needs the same spender allowance as
// a deposit.
func RepayTokenSteps(
	defiToken lending.DefiToken,
	token tokens.Token,
	wrappedBalance, nativeBalance, amount decimal.Decimal,
	isNative bool,
	protocol lending.Protocol,
) []Step {
	var plan []Step
	if isNative {
		if wrapStep := wrapShortfallStepIfNeeded(wrappedBalance, nativeBalance, amount); wrapStep != nil {
			plan = append(plan, *wrapStep)
		}
	} else if unlockStep := unlockLendingTokenStepIfNeeded(defiToken, token, protocol); unlockStep != nil {
		plan = append(plan, *unlockStep)
	}

	plan = append(plan, RepayToken{
		Amount:    amount,
		Token:     token,
		DefiToken: defiToken,
		Protocol:  protocol,
		IsNative:  isNative,
	})
	return plan
}

// wrapShortfallStepIfNeeded frees the native shortfall by unwrapping it from
// the wrapped balance, targeting exactly the current balance less the
// shortfall.
func wrapShortfallStepIfNeeded(wrappedBalance, nativeBalance, amount decimal.Decimal) *WrapNative {
	if amount.LessThanOrEqual(nativeBalance) {
		return nil
	}
	return &WrapNative{
		CurrentBalance: wrappedBalance,
		TargetBalance:  wrappedBalance.Sub(amount.Sub(nativeBalance)),
		Context:        ContextStandalone,
	}
}

// unlockLendingTokenStepIfNeeded plans an allowance toward the protocol
// spender when the defi token handle reports none.
func unlockLendingTokenStepIfNeeded(
	defiToken lending.DefiToken,
	token tokens.Token,
	protocol lending.Protocol,
) *ToggleTokenLock {
	if defiToken.IsUnlocked {
		return nil
	}
	return &ToggleTokenLock{
		Token:      token,
		Spender:    lending.SpenderAddress(protocol, defiToken),
		IsUnlocked: false,
		Context:    ContextLending,
	}
}
