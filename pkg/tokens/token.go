// Package tokens models the listed assets of the exchange: immutable token
// reference data, per-wallet balance snapshots, and the registry used to
// resolve symbols, addresses and 0x asset data.
package tokens

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token is immutable reference data for a listed ERC20 asset. It is created at
// configuration load and never mutated during planning.
type Token struct {
	Address         common.Address
	Symbol          string
	Name            string
	Decimals        int32
	DisplayDecimals int32
	// WrappedNative marks the wrapped representation of the chain's native
	// currency (WETH on mainnet).
	WrappedNative bool
}

// TokenBalance is a read-only snapshot of the wallet's holdings of one token
// and whether a spend allowance has been granted to the exchange contract.
type TokenBalance struct {
	Token      Token
	Balance    decimal.Decimal
	IsUnlocked bool
}

// IsWrappedNative reports whether the token wraps the native currency.
func (t Token) IsWrappedNative() bool {
	return t.WrappedNative
}
