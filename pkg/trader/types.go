package trader

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saismm9810/DEX/pkg/lending"
	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/steps"
	"github.com/saismm9810/DEX/pkg/tokens"
)

// BalanceProvider supplies the account state the planners need. Implementations
// read the chain or a cached snapshot; the engine never re-validates what they
// return.
type BalanceProvider interface {
	TokenBalances(ctx context.Context) ([]tokens.TokenBalance, error)
	WrappedNativeBalance(ctx context.Context) (tokens.TokenBalance, error)
	NativeBalance(ctx context.Context) (decimal.Decimal, error)
}

// StepExecutor settles one planned step on chain. Execution order is the plan
// order; the engine stops at the first error.
type StepExecutor interface {
	Execute(ctx context.Context, step steps.Step) error
}

// TradeRequest describes a buy or sell of the base token against the quote.
// Amount and Price are native-unit values.
type TradeRequest struct {
	BaseToken  tokens.Token
	QuoteToken tokens.Token
	Amount     decimal.Decimal
	Price      decimal.Decimal
	Side       orders.Side
}

// LendingRequest describes a deposit, borrow, or repayment against a protocol.
type LendingRequest struct {
	DefiToken lending.DefiToken
	Token     tokens.Token
	Amount    decimal.Decimal
	IsNative  bool
	Protocol  lending.Protocol
}

// TradeReport is the settled outcome of one trade submission.
type TradeReport struct {
	Plan  []steps.Step
	Match orders.MatchResult
	// Matched is true when the order crossed the book and was planned as a
	// fill instead of a resting limit order.
	Matched bool
}

// NotificationKind labels a settled submission.
type NotificationKind int

const (
	NotificationLimitPlaced NotificationKind = iota
	NotificationMarketTrade
	NotificationLendingDeposit
	NotificationBorrow
	NotificationRepay
)

func (k NotificationKind) String() string {
	switch k {
	case NotificationLimitPlaced:
		return "limit-placed"
	case NotificationMarketTrade:
		return "market-trade"
	case NotificationLendingDeposit:
		return "lending-deposit"
	case NotificationBorrow:
		return "borrow"
	case NotificationRepay:
		return "repay"
	default:
		return "unknown"
	}
}

// Notification records one settled submission for the activity feed.
type Notification struct {
	Kind      NotificationKind
	Token     tokens.Token
	Amount    decimal.Decimal
	Side      orders.Side
	Timestamp time.Time
}
