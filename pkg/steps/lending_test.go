package steps

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/saismm9810/DEX/pkg/lending"
)

func makeDefiToken(unlocked bool) lending.DefiToken {
	return lending.DefiToken{
		Address:    common.HexToAddress("0xfc1e690f61efd961294b3e1ce3313fbd8aa4f85d"),
		Token:      daiToken,
		IsUnlocked: unlocked,
	}
}

func TestLendingStepsUnlockedToken(t *testing.T) {
	plan := LendingTokenSteps(makeDefiToken(true), daiToken, dec("0"), dec("0"), dec("10"), false, lending.ProtocolAave)
	assertKinds(t, plan, KindLendingToken)

	deposit := plan[0].(LendingToken)
	if !deposit.Amount.Equal(dec("10")) || deposit.IsNative {
		t.Errorf("unexpected deposit step: %+v", deposit)
	}
}

func TestLendingStepsLockedToken(t *testing.T) {
	plan := LendingTokenSteps(makeDefiToken(false), daiToken, dec("0"), dec("0"), dec("10"), false, lending.ProtocolAave)
	assertKinds(t, plan, KindToggleTokenLock, KindLendingToken)

	unlock := plan[0].(ToggleTokenLock)
	if unlock.Spender != lending.AaveLendingPoolCoreAddress {
		t.Errorf("expected lending pool core spender, got %s", unlock.Spender.Hex())
	}
	if unlock.Context != ContextLending {
		t.Errorf("expected lending context, got %s", unlock.Context)
	}
}

func TestLendingStepsBzxSpenderIsDefiToken(t *testing.T) {
	defi := makeDefiToken(false)
	plan := LendingTokenSteps(defi, daiToken, dec("0"), dec("0"), dec("10"), false, lending.ProtocolBzx)
	assertKinds(t, plan, KindToggleTokenLock, KindLendingToken)

	if unlock := plan[0].(ToggleTokenLock); unlock.Spender != defi.Address {
		t.Errorf("expected defi token spender, got %s", unlock.Spender.Hex())
	}
}

func TestLendingStepsNativeShortfallUnwrap(t *testing.T) {
	// Depositing 10 with only 4 native unwraps the 6 shortfall, taking the
	// wrapped balance from 10 down to 4.
	plan := LendingTokenSteps(makeDefiToken(true), wethToken, dec("10"), dec("4"), dec("10"), true, lending.ProtocolAave)
	assertKinds(t, plan, KindWrapNative, KindLendingToken)

	wrap := plan[0].(WrapNative)
	if !wrap.TargetBalance.Equal(dec("4")) {
		t.Errorf("expected target 4, got %s", wrap.TargetBalance)
	}
	if wrap.Context != ContextStandalone {
		t.Errorf("expected standalone context, got %s", wrap.Context)
	}
}

func TestLendingStepsNativeCoveredNoWrap(t *testing.T) {
	plan := LendingTokenSteps(makeDefiToken(true), wethToken, dec("0"), dec("10"), dec("10"), true, lending.ProtocolAave)
	assertKinds(t, plan, KindLendingToken)
}

func TestBorrowStepsNeverUnlock(t *testing.T) {
	// Borrowing pulls funds from the pool, so even a locked token plans no
	// unlock step.
	plan := BorrowTokenSteps(makeDefiToken(false), daiToken, dec("0"), dec("0"), dec("10"), false, lending.ProtocolAave)
	assertKinds(t, plan, KindBorrowToken)
}

func TestBorrowStepsNativeShortfallUnwrap(t *testing.T) {
	plan := BorrowTokenSteps(makeDefiToken(false), wethToken, dec("12"), dec("2"), dec("10"), true, lending.ProtocolAave)
	assertKinds(t, plan, KindWrapNative, KindBorrowToken)

	if wrap := plan[0].(WrapNative); !wrap.TargetBalance.Equal(dec("4")) {
		t.Errorf("expected target 4, got %s", wrap.TargetBalance)
	}
}

func TestRepayStepsLockedToken(t *testing.T) {
	plan := RepayTokenSteps(makeDefiToken(false), daiToken, dec("0"), dec("0"), dec("10"), false, lending.ProtocolAave)
	assertKinds(t, plan, KindToggleTokenLock, KindRepayToken)
}

func TestRepayStepsNativeShortfallUnwrap(t *testing.T) {
	plan := RepayTokenSteps(makeDefiToken(true), wethToken, dec("9"), dec("2"), dec("10"), true, lending.ProtocolAave)
	assertKinds(t, plan, KindWrapNative, KindRepayToken)

	// Shortfall of 8 drawn from the 9 already wrapped.
	if wrap := plan[0].(WrapNative); !wrap.TargetBalance.Equal(dec("1")) {
		t.Errorf("expected target 1, got %s", wrap.TargetBalance)
	}
}
