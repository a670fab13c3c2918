// Package orders models signed exchange orders and implements the greedy
// market/limit matching used to select fills for a requested amount.
package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saismm9810/DEX/pkg/types"
)

// Side is the direction of a trade relative to the base token.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// ParseSide converts a string into a Side.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return Buy, fmt.Errorf("side must be buy or sell, got %q", raw)
	}
}

// SignedOrder is an immutable signed record of maker intent, as served by the
// relayer. The matcher never mutates it.
type SignedOrder struct {
	ChainID               int64         `json:"chainId"`
	ExchangeAddress       types.Address `json:"exchangeAddress"`
	MakerAddress          types.Address `json:"makerAddress"`
	TakerAddress          types.Address `json:"takerAddress"`
	FeeRecipientAddress   types.Address `json:"feeRecipientAddress"`
	SenderAddress         types.Address `json:"senderAddress"`
	MakerAssetAmount      types.Decimal `json:"makerAssetAmount"`
	TakerAssetAmount      types.Decimal `json:"takerAssetAmount"`
	MakerFee              types.Decimal `json:"makerFee"`
	TakerFee              types.Decimal `json:"takerFee"`
	MakerAssetData        string        `json:"makerAssetData"`
	TakerAssetData        string        `json:"takerAssetData"`
	MakerFeeAssetData     string        `json:"makerFeeAssetData"`
	TakerFeeAssetData     string        `json:"takerFeeAssetData"`
	Salt                  types.U256    `json:"salt"`
	ExpirationTimeSeconds types.U256    `json:"expirationTimeSeconds"`
	Signature             string        `json:"signature"`
}

// OpenOrder is a standing book order decorated with fill progress and its
// price in quote per base. Size and Filled are base-token native units.
type OpenOrder struct {
	Raw    *SignedOrder
	Side   Side
	Size   decimal.Decimal
	Filled decimal.Decimal
	Price  decimal.Decimal
}

// Available returns the base amount still fillable on the order.
func (o OpenOrder) Available() decimal.Decimal {
	return o.Size.Sub(o.Filled)
}

// FeeData carries the fee amounts and fee-asset identities a new order will be
// charged with, as configured by the relayer.
type FeeData struct {
	MakerFee          decimal.Decimal
	TakerFee          decimal.Decimal
	MakerFeeAssetData string
	TakerFeeAssetData string
}
