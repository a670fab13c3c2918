// Package lending models third-party lending protocols the exchange fronts:
// protocol identity, the protocol-side token handle, and the spender contract
// that must be granted an allowance before deposits or repayments.
package lending

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/saismm9810/DEX/pkg/tokens"
)

// Protocol identifies a supported lending protocol.
type Protocol int

const (
	ProtocolAave Protocol = iota
	ProtocolBzx
)

func (p Protocol) String() string {
	switch p {
	case ProtocolAave:
		return "aave"
	case ProtocolBzx:
		return "bzx"
	default:
		return fmt.Sprintf("protocol(%d)", int(p))
	}
}

// AaveLendingPoolCoreAddress is the spender requiring an ERC20 allowance for
// Aave v1 deposits and repayments.
var AaveLendingPoolCoreAddress = common.HexToAddress("0x3dfd23A6c5E8BbcFc9581d2E864a68feb6a076d3")

// DefiToken is the protocol-side token handle for an underlying asset (aToken,
// iToken). IsUnlocked tracks the allowance toward the protocol spender, not the
// exchange contract.
type DefiToken struct {
	Address       common.Address
	Token         tokens.Token
	Balance       decimal.Decimal
	BorrowBalance decimal.Decimal
	IsUnlocked    bool
}

// SpenderAddress returns the contract that must be approved before lending or
// repaying through the protocol. Aave routes allowances through its lending
// pool core; other protocols pull directly through the defi token contract.
func SpenderAddress(protocol Protocol, defiToken DefiToken) common.Address {
	switch protocol {
	case ProtocolAave:
		return AaveLendingPoolCoreAddress
	default:
		return defiToken.Address
	}
}
