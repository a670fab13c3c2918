// Package trader wires the relayer, account balances, and the step planners
// into one submission flow: fetch, match, plan, execute.
package trader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	sdkerrors "github.com/saismm9810/DEX/pkg/errors"
	"github.com/saismm9810/DEX/pkg/lending"
	"github.com/saismm9810/DEX/pkg/logger"
	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/relayer"
	"github.com/saismm9810/DEX/pkg/steps"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/types"
)

// Engine contains the end-to-end fetch/match/plan/execute flow.
type Engine struct {
	relayer  relayer.Client
	balances BalanceProvider
	executor StepExecutor
	cfg      Config

	mu            sync.Mutex
	notifications []Notification
}

func NewEngine(relayerClient relayer.Client, balances BalanceProvider, executor StepExecutor, cfg Config) (*Engine, error) {
	if relayerClient == nil {
		return nil, fmt.Errorf("relayer client is required")
	}
	if balances == nil {
		return nil, fmt.Errorf("balance provider is required")
	}
	if executor == nil {
		return nil, fmt.Errorf("step executor is required")
	}
	cfg = cfg.MergeEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{relayer: relayerClient, balances: balances, executor: executor, cfg: cfg}, nil
}

// PlaceLimitOrder submits a limit order. When the order crosses standing book
// orders at or better than the limit price it is planned as a fill of those
// orders instead of a resting order.
func (e *Engine) PlaceLimitOrder(ctx context.Context, req TradeRequest) (*TradeReport, error) {
	if err := e.validateTrade(req, true); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	snap, err := e.snapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	match := orders.BuildLimitMatchingFill(req.Side, req.Amount, req.Price, snap.book)
	if len(match.Orders) > 0 {
		return e.placeLimitMatching(ctx, req, snap, match)
	}

	config, err := e.relayer.OrderConfig(ctx, e.orderConfigRequest(req))
	if err != nil {
		return nil, fmt.Errorf("fetch order config: %w", err)
	}

	plan, err := steps.BuySellLimitSteps(
		req.BaseToken, req.QuoteToken, snap.tokenBalances, snap.wrappedBalance,
		req.Amount, req.Price, req.Side, config.FeeData(),
	)
	if err != nil {
		return nil, err
	}
	if err := e.runPlan(ctx, plan); err != nil {
		return nil, err
	}

	e.notify(Notification{
		Kind:   NotificationLimitPlaced,
		Token:  req.BaseToken,
		Amount: req.Amount,
		Side:   req.Side,
	})
	return &TradeReport{Plan: plan}, nil
}

func (e *Engine) placeLimitMatching(ctx context.Context, req TradeRequest, snap *accountSnapshot, match orders.MatchResult) (*TradeReport, error) {
	averagePrice := orders.AveragePrice(req.Side, match)
	plan, err := steps.BuySellLimitMatchingSteps(
		req.BaseToken, req.QuoteToken, snap.tokenBalances, snap.wrappedBalance, snap.nativeBalance,
		req.Amount, req.Price, averagePrice, req.Side, match.Orders,
	)
	if err != nil {
		return nil, err
	}
	if err := e.runPlan(ctx, plan); err != nil {
		return nil, err
	}

	e.notify(Notification{
		Kind:   NotificationMarketTrade,
		Token:  req.BaseToken,
		Amount: req.Amount.Sub(match.Remaining),
		Side:   req.Side,
	})
	return &TradeReport{Plan: plan, Match: match, Matched: true}, nil
}

// PlaceMarketOrder fills the requested base amount against the book. A book
// that cannot cover the amount is a hard failure before any step runs.
func (e *Engine) PlaceMarketOrder(ctx context.Context, req TradeRequest) (*TradeReport, error) {
	if err := e.validateTrade(req, false); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	snap, err := e.snapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	match := orders.BuildMarketFill(req.Side, req.Amount, snap.book)
	if !match.CanBeFilled {
		return nil, fmt.Errorf("%w: %s remaining", sdkerrors.ErrInsufficientOrders, match.Remaining)
	}

	price := orders.AveragePrice(req.Side, match)
	plan, err := steps.BuySellMarketSteps(
		req.BaseToken, req.QuoteToken, snap.tokenBalances, snap.wrappedBalance, snap.nativeBalance,
		req.Amount, price, req.Side, match.Orders,
	)
	if err != nil {
		return nil, err
	}
	if err := e.runPlan(ctx, plan); err != nil {
		return nil, err
	}

	e.notify(Notification{
		Kind:   NotificationMarketTrade,
		Token:  req.BaseToken,
		Amount: req.Amount,
		Side:   req.Side,
	})
	report := &TradeReport{Plan: plan, Match: match, Matched: true}
	if req.Side == orders.Buy && req.QuoteToken.IsWrappedNative() {
		required := orders.ForwarderNativeRequirement(
			match, e.cfg.GasPrice, e.cfg.AffiliateFeePct,
			tokens.EncodeERC20AssetData(req.QuoteToken.Address),
		)
		logger.Debug("forwarder native requirement: %s", required)
	}
	return report, nil
}

// Lend deposits into a lending protocol.
func (e *Engine) Lend(ctx context.Context, req LendingRequest) ([]steps.Step, error) {
	return e.runLendingFlow(ctx, req, steps.LendingTokenSteps, NotificationLendingDeposit)
}

// Borrow draws from a lending protocol.
func (e *Engine) Borrow(ctx context.Context, req LendingRequest) ([]steps.Step, error) {
	return e.runLendingFlow(ctx, req, steps.BorrowTokenSteps, NotificationBorrow)
}

// Repay settles a borrow position.
func (e *Engine) Repay(ctx context.Context, req LendingRequest) ([]steps.Step, error) {
	return e.runLendingFlow(ctx, req, steps.RepayTokenSteps, NotificationRepay)
}

type lendingPlanner func(
	defiToken lending.DefiToken, token tokens.Token,
	wrappedBalance, nativeBalance, amount decimal.Decimal,
	isNative bool, protocol lending.Protocol,
) []steps.Step

func (e *Engine) runLendingFlow(ctx context.Context, req LendingRequest, plannerFn lendingPlanner, kind NotificationKind) ([]steps.Step, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be > 0")
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	wrapped, err := e.balances.WrappedNativeBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch wrapped balance: %w", err)
	}
	native, err := e.balances.NativeBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch native balance: %w", err)
	}

	plan := plannerFn(req.DefiToken, req.Token, wrapped.Balance, native, req.Amount, req.IsNative, req.Protocol)
	if err := e.runPlan(ctx, plan); err != nil {
		return nil, err
	}

	e.notify(Notification{Kind: kind, Token: req.Token, Amount: req.Amount})
	return plan, nil
}

// Notifications returns a copy of the settled submission feed, newest last.
func (e *Engine) Notifications() []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

type accountSnapshot struct {
	tokenBalances  []tokens.TokenBalance
	wrappedBalance tokens.TokenBalance
	nativeBalance  decimal.Decimal
	book           []orders.OpenOrder
}

// snapshot pulls balances and the fill-priority book side for the request:
// asks for buys, bids for sells, both already price-sorted by the relayer.
func (e *Engine) snapshot(ctx context.Context, req TradeRequest) (*accountSnapshot, error) {
	tokenBalances, err := e.balances.TokenBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch token balances: %w", err)
	}
	wrapped, err := e.balances.WrappedNativeBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch wrapped balance: %w", err)
	}
	native, err := e.balances.NativeBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch native balance: %w", err)
	}

	book, err := e.relayer.OrderBook(ctx, &relayer.OrderBookRequest{
		BaseAssetData:  tokens.EncodeERC20AssetData(req.BaseToken.Address),
		QuoteAssetData: tokens.EncodeERC20AssetData(req.QuoteToken.Address),
		PerPage:        e.cfg.BookDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch order book: %w", err)
	}

	records := book.Asks
	if req.Side == orders.Sell {
		records = book.Bids
	}
	open, err := relayer.OpenOrders(records, req.BaseToken)
	if err != nil {
		return nil, err
	}

	return &accountSnapshot{
		tokenBalances:  tokenBalances,
		wrappedBalance: wrapped,
		nativeBalance:  native,
		book:           open,
	}, nil
}

func (e *Engine) validateTrade(req TradeRequest, needsPrice bool) error {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be > 0")
	}
	if req.Amount.GreaterThan(e.cfg.MaxPerTradeBase) {
		return fmt.Errorf("amount %s exceeds per-trade cap %s", req.Amount, e.cfg.MaxPerTradeBase)
	}
	if needsPrice && req.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("price must be > 0")
	}
	if req.BaseToken.Address == req.QuoteToken.Address {
		return fmt.Errorf("base and quote tokens must differ")
	}
	return nil
}

func (e *Engine) orderConfigRequest(req TradeRequest) *relayer.OrderConfigRequest {
	baseAsset := tokens.EncodeERC20AssetData(req.BaseToken.Address)
	quoteAsset := tokens.EncodeERC20AssetData(req.QuoteToken.Address)
	quoteAmount := req.Amount.Mul(req.Price)

	out := &relayer.OrderConfigRequest{
		MakerAssetData: quoteAsset,
		TakerAssetData: baseAsset,
	}
	out.MakerAssetAmount = decimalToWire(quoteAmount)
	out.TakerAssetAmount = decimalToWire(req.Amount)
	if req.Side == orders.Sell {
		out.MakerAssetData, out.TakerAssetData = baseAsset, quoteAsset
		out.MakerAssetAmount = decimalToWire(req.Amount)
		out.TakerAssetAmount = decimalToWire(quoteAmount)
	}
	return out
}

func decimalToWire(d decimal.Decimal) types.Decimal {
	return types.Decimal(d)
}

// runPlan executes the plan strictly in order and abandons the remainder on
// the first failure.
func (e *Engine) runPlan(ctx context.Context, plan []steps.Step) error {
	if e.cfg.DryRun || !e.cfg.AllowExecution {
		return fmt.Errorf("%w (dry-run=%t allow-execution=%t)", sdkerrors.ErrExecutionDisabled, e.cfg.DryRun, e.cfg.AllowExecution)
	}
	for i, step := range plan {
		logger.Debug("executing step %d/%d: %s", i+1, len(plan), step.Kind())
		if err := e.executor.Execute(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s) failed: %w", i+1, step.Kind(), err)
		}
	}
	return nil
}

func (e *Engine) notify(n Notification) {
	n.Timestamp = time.Now()
	e.mu.Lock()
	e.notifications = append(e.notifications, n)
	e.mu.Unlock()
}
