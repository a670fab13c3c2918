package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	dex "github.com/saismm9810/DEX"
	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/steps"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/trader"
)

func main() {
	var (
		base    = flag.String("base", "ZRX", "Base token symbol")
		quote   = flag.String("quote", "WETH", "Quote token symbol")
		side    = flag.String("side", "buy", "Trade side: buy or sell")
		amount  = flag.String("amount", "1", "Trade amount in whole base tokens")
		price   = flag.String("price", "", "Limit price in quote per base; omit for a market order")
		balance = flag.String("balance", "0", "Spendable balance of the trade token, whole tokens")
		wrapped = flag.String("wrapped", "0", "Wrapped-native balance, whole tokens")
		native  = flag.String("native", "0", "Native currency balance, whole tokens")
		execute = flag.Bool("execute", false, "Enable live step execution (default false)")
		yes     = flag.Bool("yes", false, "Skip interactive confirmation when --execute is set")
		relayer = flag.String("relayer", "", "Relayer base URL override")
	)
	flag.Parse()

	tradeSide, err := orders.ParseSide(*side)
	if err != nil {
		log.Fatalf("bad --side: %v", err)
	}

	opts := []dex.Option{}
	if *relayer != "" {
		opts = append(opts, dex.WithRelayerURL(*relayer))
	}
	client, err := dex.NewClientE(opts...)
	if err != nil {
		log.Fatalf("create client failed: %v", err)
	}
	defer client.Close()

	baseToken, err := client.Registry.TokenBySymbol(*base)
	if err != nil {
		log.Fatalf("unknown base token: %v", err)
	}
	quoteToken, err := client.Registry.TokenBySymbol(*quote)
	if err != nil {
		log.Fatalf("unknown quote token: %v", err)
	}

	tradeToken := baseToken
	if tradeSide == orders.Buy {
		tradeToken = quoteToken
	}
	balances := &staticBalances{
		tokens: []tokens.TokenBalance{{
			Token:      tradeToken,
			Balance:    units(*balance, tradeToken.Decimals),
			IsUnlocked: true,
		}},
		wrapped: tokens.TokenBalance{
			Token:      client.Registry.WrappedNativeToken(),
			Balance:    units(*wrapped, 18),
			IsUnlocked: true,
		},
		native: units(*native, 18),
	}

	cfg := trader.DefaultConfig()
	cfg.AllowExecution = true
	cfg.DryRun = false
	engine, err := client.NewTrader(balances, &printExecutor{live: *execute}, cfg)
	if err != nil {
		log.Fatalf("create engine failed: %v", err)
	}

	req := trader.TradeRequest{
		BaseToken:  baseToken,
		QuoteToken: quoteToken,
		Amount:     units(*amount, baseToken.Decimals),
		Side:       tradeSide,
	}
	if *price != "" {
		req.Price = decimal.RequireFromString(*price)
	}

	fmt.Printf("Trade: side=%s pair=%s/%s amount=%s\n", tradeSide, baseToken.Symbol, quoteToken.Symbol, *amount)
	if *execute && !*yes {
		if !confirm("Execute steps live? [y/N]: ") {
			fmt.Println("Canceled.")
			return
		}
	}

	ctx := context.Background()
	var report *trader.TradeReport
	if *price == "" {
		report, err = engine.PlaceMarketOrder(ctx, req)
	} else {
		report, err = engine.PlaceLimitOrder(ctx, req)
	}
	if err != nil {
		log.Fatalf("trade failed: %v", err)
	}

	fmt.Printf("\nPlan settled: steps=%d matched=%v\n", len(report.Plan), report.Matched)
	if report.Matched {
		avg := orders.AveragePrice(tradeSide, report.Match)
		fmt.Printf("Filled %d orders, average price %s\n", len(report.Match.Orders), avg.StringFixed(6))
	}
	for _, n := range engine.Notifications() {
		fmt.Printf("[%s] %s %s %s\n",
			n.Kind,
			n.Side,
			tokens.TokenAmountInUnits(n.Amount, n.Token.Decimals, n.Token.DisplayDecimals),
			n.Token.Symbol,
		)
	}
	if !*execute {
		fmt.Println("Dry run mode: no transactions sent. Use --execute to settle live.")
	}
}

// staticBalances serves the account state given on the command line. The tool
// never reads the chain.
type staticBalances struct {
	tokens  []tokens.TokenBalance
	wrapped tokens.TokenBalance
	native  decimal.Decimal
}

func (b *staticBalances) TokenBalances(context.Context) ([]tokens.TokenBalance, error) {
	return b.tokens, nil
}

func (b *staticBalances) WrappedNativeBalance(context.Context) (tokens.TokenBalance, error) {
	return b.wrapped, nil
}

func (b *staticBalances) NativeBalance(context.Context) (decimal.Decimal, error) {
	return b.native, nil
}

// printExecutor logs each step as it runs. Without --execute it only reports
// what a live run would do; actual settlement needs a signer wired in.
type printExecutor struct {
	live bool
}

func (e *printExecutor) Execute(_ context.Context, step steps.Step) error {
	prefix := "would execute"
	if e.live {
		prefix = "executing"
	}
	switch s := step.(type) {
	case steps.ToggleTokenLock:
		fmt.Printf("  %s: unlock %s for %s\n", prefix, s.Token.Symbol, s.Spender.Hex())
	case steps.WrapNative:
		fmt.Printf("  %s: move wrapped balance %s -> %s\n", prefix, s.CurrentBalance, s.TargetBalance)
	case steps.BuySellLimit:
		fmt.Printf("  %s: place limit %s %s %s @ %s\n", prefix, s.Side, s.Amount, s.Token.Symbol, s.Price)
	case steps.BuySellLimitMatching:
		fmt.Printf("  %s: match limit %s %s %s avg %s\n", prefix, s.Side, s.Amount, s.Token.Symbol, s.AveragePrice)
	case steps.BuySellMarket:
		fmt.Printf("  %s: market %s %s %s\n", prefix, s.Side, s.Amount, s.Token.Symbol)
	case steps.LendingToken:
		fmt.Printf("  %s: deposit %s %s into %s\n", prefix, s.Amount, s.Token.Symbol, s.Protocol)
	case steps.BorrowToken:
		fmt.Printf("  %s: borrow %s %s from %s\n", prefix, s.Amount, s.Token.Symbol, s.Protocol)
	case steps.RepayToken:
		fmt.Printf("  %s: repay %s %s to %s\n", prefix, s.Amount, s.Token.Symbol, s.Protocol)
	default:
		return fmt.Errorf("unhandled step kind %s", step.Kind())
	}
	return nil
}

func units(raw string, decimals int32) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("bad decimal %q: %v", raw, err)
	}
	return tokens.UnitsInTokenAmount(d, decimals)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	r := bufio.NewReader(os.Stdin)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
