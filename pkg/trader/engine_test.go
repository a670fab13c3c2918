package trader

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	sdkerrors "github.com/saismm9810/DEX/pkg/errors"
	"github.com/saismm9810/DEX/pkg/lending"
	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/relayer"
	"github.com/saismm9810/DEX/pkg/steps"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/types"
)

var (
	wethToken = tokens.Token{
		Address:       common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"),
		Symbol:        "weth",
		Decimals:      18,
		WrappedNative: true,
	}
	zrxToken = tokens.Token{
		Address:  common.HexToAddress("0xe41d2489571d322189246dafa5ebde1f4699f498"),
		Symbol:   "zrx",
		Decimals: 18,
	}
)

func dec(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

// askRecord is a standing sell of base: maker gives base, takes quote.
func askRecord(baseAmount, quoteAmount string) relayer.OrderRecord {
	return relayer.OrderRecord{
		Order: &orders.SignedOrder{
			MakerAssetAmount: types.Decimal(dec(baseAmount)),
			TakerAssetAmount: types.Decimal(dec(quoteAmount)),
			MakerAssetData:   tokens.EncodeERC20AssetData(zrxToken.Address),
			TakerAssetData:   tokens.EncodeERC20AssetData(wethToken.Address),
		},
		MetaData: relayer.OrderMetaData{
			OrderHash:                         "0xask",
			RemainingFillableTakerAssetAmount: types.Decimal(dec(quoteAmount)),
		},
	}
}

type fakeRelayer struct {
	book        *relayer.OrderBook
	config      *relayer.OrderConfig
	configCalls int
	submitted   []*orders.SignedOrder
}

func (f *fakeRelayer) OrderBook(ctx context.Context, req *relayer.OrderBookRequest) (*relayer.OrderBook, error) {
	if f.book == nil {
		return &relayer.OrderBook{}, nil
	}
	return f.book, nil
}

func (f *fakeRelayer) Orders(ctx context.Context, req *relayer.OrdersRequest) ([]relayer.OrderRecord, error) {
	return nil, nil
}

func (f *fakeRelayer) OrderByHash(ctx context.Context, orderHash string) (*relayer.OrderRecord, error) {
	return nil, nil
}

func (f *fakeRelayer) OrderConfig(ctx context.Context, req *relayer.OrderConfigRequest) (*relayer.OrderConfig, error) {
	f.configCalls++
	if f.config == nil {
		return &relayer.OrderConfig{}, nil
	}
	return f.config, nil
}

func (f *fakeRelayer) SubmitOrder(ctx context.Context, order *orders.SignedOrder) error {
	f.submitted = append(f.submitted, order)
	return nil
}

type fakeBalances struct {
	tokenBalances []tokens.TokenBalance
	wrapped       tokens.TokenBalance
	native        decimal.Decimal
}

func (f *fakeBalances) TokenBalances(ctx context.Context) ([]tokens.TokenBalance, error) {
	return f.tokenBalances, nil
}

func (f *fakeBalances) WrappedNativeBalance(ctx context.Context) (tokens.TokenBalance, error) {
	return f.wrapped, nil
}

func (f *fakeBalances) NativeBalance(ctx context.Context) (decimal.Decimal, error) {
	return f.native, nil
}

type recordingExecutor struct {
	executed []steps.Kind
	failAt   int
}

func (r *recordingExecutor) Execute(ctx context.Context, step steps.Step) error {
	if r.failAt > 0 && len(r.executed)+1 == r.failAt {
		return fmt.Errorf("boom")
	}
	r.executed = append(r.executed, step.Kind())
	return nil
}

func executableConfig() Config {
	cfg := DefaultConfig()
	cfg.DryRun = false
	cfg.AllowExecution = true
	return cfg
}

func defaultBalances() *fakeBalances {
	return &fakeBalances{
		tokenBalances: []tokens.TokenBalance{
			{Token: zrxToken, Balance: dec("100000000000000000000"), IsUnlocked: true},
		},
		wrapped: tokens.TokenBalance{Token: wethToken, Balance: dec("5000000000000000000"), IsUnlocked: true},
		native:  decimal.Zero,
	}
}

func TestMarketOrderFillsBook(t *testing.T) {
	rel := &fakeRelayer{book: &relayer.OrderBook{
		Asks: []relayer.OrderRecord{askRecord("10000000000000000000", "5000000000000000000")},
	}}
	exec := &recordingExecutor{}
	engine, err := NewEngine(rel, defaultBalances(), exec, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	report, err := engine.PlaceMarketOrder(context.Background(), TradeRequest{
		BaseToken:  zrxToken,
		QuoteToken: wethToken,
		Amount:     dec("10000000000000000000"),
		Side:       orders.Buy,
	})
	if err != nil {
		t.Fatalf("PlaceMarketOrder failed: %v", err)
	}
	if !report.Match.CanBeFilled {
		t.Error("expected fillable match")
	}
	if len(exec.executed) != 1 || exec.executed[0] != steps.KindBuySellMarket {
		t.Errorf("unexpected executed steps: %v", exec.executed)
	}

	notes := engine.Notifications()
	if len(notes) != 1 || notes[0].Kind != NotificationMarketTrade {
		t.Errorf("unexpected notifications: %+v", notes)
	}
}

func TestMarketOrderInsufficientLiquidity(t *testing.T) {
	rel := &fakeRelayer{book: &relayer.OrderBook{
		Asks: []relayer.OrderRecord{askRecord("10000000000000000000", "5000000000000000000")},
	}}
	exec := &recordingExecutor{}
	engine, err := NewEngine(rel, defaultBalances(), exec, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	_, err = engine.PlaceMarketOrder(context.Background(), TradeRequest{
		BaseToken:  zrxToken,
		QuoteToken: wethToken,
		Amount:     dec("20000000000000000000"),
		Side:       orders.Buy,
	})
	if !errors.Is(err, sdkerrors.ErrInsufficientOrders) {
		t.Fatalf("expected ErrInsufficientOrders, got %v", err)
	}
	if len(exec.executed) != 0 {
		t.Errorf("no steps should run on a dead match, got %v", exec.executed)
	}
}

func TestLimitOrderRestsWhenNotCrossing(t *testing.T) {
	rel := &fakeRelayer{book: &relayer.OrderBook{
		Asks: []relayer.OrderRecord{askRecord("10000000000000000000", "5000000000000000000")},
	}}
	exec := &recordingExecutor{}
	engine, err := NewEngine(rel, defaultBalances(), exec, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// The book asks 0.5; bidding 0.4 cannot cross and must rest.
	report, err := engine.PlaceLimitOrder(context.Background(), TradeRequest{
		BaseToken:  zrxToken,
		QuoteToken: wethToken,
		Amount:     dec("10000000000000000000"),
		Price:      dec("0.4"),
		Side:       orders.Buy,
	})
	if err != nil {
		t.Fatalf("PlaceLimitOrder failed: %v", err)
	}
	if report.Matched {
		t.Error("expected resting order, got a matched fill")
	}
	if rel.configCalls != 1 {
		t.Errorf("expected one order config fetch, got %d", rel.configCalls)
	}
	if len(exec.executed) != 1 || exec.executed[0] != steps.KindBuySellLimit {
		t.Errorf("unexpected executed steps: %v", exec.executed)
	}

	notes := engine.Notifications()
	if len(notes) != 1 || notes[0].Kind != NotificationLimitPlaced {
		t.Errorf("unexpected notifications: %+v", notes)
	}
}

func TestLimitOrderMatchesWhenCrossing(t *testing.T) {
	rel := &fakeRelayer{book: &relayer.OrderBook{
		Asks: []relayer.OrderRecord{askRecord("10000000000000000000", "5000000000000000000")},
	}}
	exec := &recordingExecutor{}
	engine, err := NewEngine(rel, defaultBalances(), exec, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	report, err := engine.PlaceLimitOrder(context.Background(), TradeRequest{
		BaseToken:  zrxToken,
		QuoteToken: wethToken,
		Amount:     dec("10000000000000000000"),
		Price:      dec("0.5"),
		Side:       orders.Buy,
	})
	if err != nil {
		t.Fatalf("PlaceLimitOrder failed: %v", err)
	}
	if !report.Matched {
		t.Error("expected matched fill")
	}
	if rel.configCalls != 0 {
		t.Errorf("matching flow must not fetch order config, got %d calls", rel.configCalls)
	}
	if len(exec.executed) != 1 || exec.executed[0] != steps.KindBuySellLimitMatching {
		t.Errorf("unexpected executed steps: %v", exec.executed)
	}
}

func TestExecutionDisabledByDefault(t *testing.T) {
	rel := &fakeRelayer{book: &relayer.OrderBook{
		Asks: []relayer.OrderRecord{askRecord("10000000000000000000", "5000000000000000000")},
	}}
	exec := &recordingExecutor{}
	engine, err := NewEngine(rel, defaultBalances(), exec, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	_, err = engine.PlaceMarketOrder(context.Background(), TradeRequest{
		BaseToken:  zrxToken,
		QuoteToken: wethToken,
		Amount:     dec("10000000000000000000"),
		Side:       orders.Buy,
	})
	if !errors.Is(err, sdkerrors.ErrExecutionDisabled) {
		t.Fatalf("expected ErrExecutionDisabled, got %v", err)
	}
	if len(exec.executed) != 0 {
		t.Errorf("no steps should run while execution is disabled, got %v", exec.executed)
	}
}

func TestPlanAbortsOnFirstFailure(t *testing.T) {
	rel := &fakeRelayer{book: &relayer.OrderBook{
		Asks: []relayer.OrderRecord{askRecord("10000000000000000000", "5000000000000000000")},
	}}
	balances := defaultBalances()
	balances.wrapped.IsUnlocked = false
	exec := &recordingExecutor{failAt: 1}
	engine, err := NewEngine(rel, balances, exec, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// Locked wrapped quote plans an unlock before the fill; failing it must
	// abandon the fill step.
	_, err = engine.PlaceMarketOrder(context.Background(), TradeRequest{
		BaseToken:  zrxToken,
		QuoteToken: wethToken,
		Amount:     dec("10000000000000000000"),
		Side:       orders.Buy,
	})
	if err == nil {
		t.Fatal("expected step failure to surface")
	}
	if len(exec.executed) != 0 {
		t.Errorf("remainder must be abandoned, got %v", exec.executed)
	}

	if len(engine.Notifications()) != 0 {
		t.Error("failed submissions must not notify")
	}
}

func TestTradeValidation(t *testing.T) {
	engine, err := NewEngine(&fakeRelayer{}, defaultBalances(), &recordingExecutor{}, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()

	if _, err := engine.PlaceMarketOrder(ctx, TradeRequest{BaseToken: zrxToken, QuoteToken: wethToken, Amount: decimal.Zero, Side: orders.Buy}); err == nil {
		t.Error("expected error for zero amount")
	}
	if _, err := engine.PlaceLimitOrder(ctx, TradeRequest{BaseToken: zrxToken, QuoteToken: wethToken, Amount: dec("1"), Price: decimal.Zero, Side: orders.Buy}); err == nil {
		t.Error("expected error for zero price")
	}
	if _, err := engine.PlaceMarketOrder(ctx, TradeRequest{BaseToken: zrxToken, QuoteToken: zrxToken, Amount: dec("1"), Side: orders.Buy}); err == nil {
		t.Error("expected error for identical pair")
	}

	cfg := executableConfig()
	cfg.MaxPerTradeBase = dec("5")
	capped, err := NewEngine(&fakeRelayer{}, defaultBalances(), &recordingExecutor{}, cfg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if _, err := capped.PlaceMarketOrder(ctx, TradeRequest{BaseToken: zrxToken, QuoteToken: wethToken, Amount: dec("6"), Side: orders.Buy}); err == nil {
		t.Error("expected error above the per-trade cap")
	}
}

func TestLendingFlows(t *testing.T) {
	defi := lending.DefiToken{
		Address:    common.HexToAddress("0xfc1e690f61efd961294b3e1ce3313fbd8aa4f85d"),
		Token:      zrxToken,
		IsUnlocked: false,
	}
	exec := &recordingExecutor{}
	engine, err := NewEngine(&fakeRelayer{}, defaultBalances(), exec, executableConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	ctx := context.Background()
	req := LendingRequest{DefiToken: defi, Token: zrxToken, Amount: dec("10"), Protocol: lending.ProtocolAave}

	plan, err := engine.Lend(ctx, req)
	if err != nil {
		t.Fatalf("Lend failed: %v", err)
	}
	if len(plan) != 2 || plan[0].Kind() != steps.KindToggleTokenLock || plan[1].Kind() != steps.KindLendingToken {
		t.Errorf("unexpected lend plan: %v", plan)
	}

	plan, err = engine.Borrow(ctx, req)
	if err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	if len(plan) != 1 || plan[0].Kind() != steps.KindBorrowToken {
		t.Errorf("unexpected borrow plan: %v", plan)
	}

	plan, err = engine.Repay(ctx, req)
	if err != nil {
		t.Fatalf("Repay failed: %v", err)
	}
	if len(plan) != 2 || plan[1].Kind() != steps.KindRepayToken {
		t.Errorf("unexpected repay plan: %v", plan)
	}

	notes := engine.Notifications()
	if len(notes) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notes))
	}
	if notes[0].Kind != NotificationLendingDeposit || notes[1].Kind != NotificationBorrow || notes[2].Kind != NotificationRepay {
		t.Errorf("unexpected notification kinds: %+v", notes)
	}
}
