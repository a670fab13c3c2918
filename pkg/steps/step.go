// Package steps builds ordered transaction plans for trade and lending
// intents: which unlock, wrap and submission transactions must run, in which
// order, given the wallet's current balance and allowance snapshot.
package steps

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/saismm9810/DEX/pkg/lending"
	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/tokens"
)

// Kind tags the concrete type of a Step.
type Kind int

const (
	KindToggleTokenLock Kind = iota
	KindWrapNative
	KindBuySellLimit
	KindBuySellLimitMatching
	KindBuySellMarket
	KindLendingToken
	KindBorrowToken
	KindRepayToken
)

func (k Kind) String() string {
	switch k {
	case KindToggleTokenLock:
		return "toggle-token-lock"
	case KindWrapNative:
		return "wrap-native"
	case KindBuySellLimit:
		return "buy-sell-limit"
	case KindBuySellLimitMatching:
		return "buy-sell-limit-matching"
	case KindBuySellMarket:
		return "buy-sell-market"
	case KindLendingToken:
		return "lending-token"
	case KindBorrowToken:
		return "borrow-token"
	case KindRepayToken:
		return "repay-token"
	default:
		return "unknown"
	}
}

// Context records which flow produced a step, for grouping in the executor UI.
type Context string

const (
	ContextOrder      Context = "order"
	ContextLending    Context = "lending"
	ContextStandalone Context = "standalone"
)

// Step is one required action in a transaction plan. The set of
// implementations is closed; executors must switch exhaustively on Kind.
// Steps are immutable once constructed and must run strictly in plan order.
type Step interface {
	Kind() Kind
	isStep()
}

// ToggleTokenLock grants (or revokes) a spend allowance for Token. A zero
// Spender targets the exchange proxy; lending flows set the protocol spender.
type ToggleTokenLock struct {
	Token      tokens.Token
	Spender    common.Address
	IsUnlocked bool
	Context    Context
}

func (ToggleTokenLock) Kind() Kind { return KindToggleTokenLock }
func (ToggleTokenLock) isStep()    {}

// WrapNative moves the wrapped-native balance to TargetBalance, wrapping
// native currency when the target is above the current balance and unwrapping
// when it is below.
type WrapNative struct {
	CurrentBalance decimal.Decimal
	TargetBalance  decimal.Decimal
	Context        Context
}

func (WrapNative) Kind() Kind { return KindWrapNative }
func (WrapNative) isStep()    {}

// BuySellLimit submits a signed limit order to the relayer.
type BuySellLimit struct {
	Amount decimal.Decimal
	Price  decimal.Decimal
	Side   orders.Side
	Token  tokens.Token
}

func (BuySellLimit) Kind() Kind { return KindBuySellLimit }
func (BuySellLimit) isStep()    {}

// BuySellLimitMatching fills standing orders that match a limit price.
type BuySellLimitMatching struct {
	Amount       decimal.Decimal
	Price        decimal.Decimal
	AveragePrice decimal.Decimal
	Side         orders.Side
	Token        tokens.Token
}

func (BuySellLimitMatching) Kind() Kind { return KindBuySellLimitMatching }
func (BuySellLimitMatching) isStep()    {}

// BuySellMarket fills standing orders at market.
type BuySellMarket struct {
	Amount  decimal.Decimal
	Side    orders.Side
	Token   tokens.Token
	Context Context
}

func (BuySellMarket) Kind() Kind { return KindBuySellMarket }
func (BuySellMarket) isStep()    {}

// LendingToken deposits an asset into a lending protocol.
type LendingToken struct {
	Amount    decimal.Decimal
	Token     tokens.Token
	DefiToken lending.DefiToken
	Protocol  lending.Protocol
	IsNative  bool
}

func (LendingToken) Kind() Kind { return KindLendingToken }
func (LendingToken) isStep()    {}

// BorrowToken draws an asset from a lending protocol against collateral.
type BorrowToken struct {
	Amount    decimal.Decimal
	Token     tokens.Token
	DefiToken lending.DefiToken
	Protocol  lending.Protocol
	IsNative  bool
}

func (BorrowToken) Kind() Kind { return KindBorrowToken }
func (BorrowToken) isStep()    {}

// RepayToken repays a borrow position on a lending protocol.
type RepayToken struct {
	Amount    decimal.Decimal
	Token     tokens.Token
	DefiToken lending.DefiToken
	Protocol  lending.Protocol
	IsNative  bool
}

func (RepayToken) Kind() Kind { return KindRepayToken }
func (RepayToken) isStep()    {}
