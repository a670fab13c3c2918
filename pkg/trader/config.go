package trader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config controls sizing, book depth, and execution behavior.
type Config struct {
	RequestTimeout  time.Duration
	BookDepth       int
	MaxPerTradeBase decimal.Decimal
	GasPrice        decimal.Decimal
	AffiliateFeePct decimal.Decimal
	DryRun          bool
	AllowExecution  bool
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout:  12 * time.Second,
		BookDepth:       100,
		MaxPerTradeBase: decimal.RequireFromString("1000000000000000000000"),
		GasPrice:        decimal.RequireFromString("8000000000"),
		AffiliateFeePct: decimal.Zero,
		DryRun:          true,
		AllowExecution:  false,
	}
}

func (c Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be > 0")
	}
	if c.BookDepth <= 0 {
		return fmt.Errorf("book depth must be > 0")
	}
	if c.MaxPerTradeBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("max per trade must be > 0")
	}
	if c.GasPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("gas price must be > 0")
	}
	if c.AffiliateFeePct.LessThan(decimal.Zero) || c.AffiliateFeePct.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("affiliate fee percentage must be in [0, 1)")
	}
	return nil
}

// MergeEnv allows easy ops without recompiling.
func (c Config) MergeEnv() Config {
	if v := strings.TrimSpace(os.Getenv("TRADER_REQUEST_TIMEOUT_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.RequestTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := strings.TrimSpace(os.Getenv("TRADER_BOOK_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.BookDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("TRADER_MAX_PER_TRADE_BASE")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThan(decimal.Zero) {
			c.MaxPerTradeBase = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("TRADER_GAS_PRICE_WEI")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThan(decimal.Zero) {
			c.GasPrice = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("TRADER_DRY_RUN")); v != "" {
		c.DryRun = strings.EqualFold(v, "1") || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
	}
	if v := strings.TrimSpace(os.Getenv("TRADER_ALLOW_EXECUTION")); v != "" {
		c.AllowExecution = strings.EqualFold(v, "1") || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
	}
	return c
}
