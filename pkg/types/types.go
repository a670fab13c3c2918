// Package types holds shared wire-level scalar types used by the relayer API.
package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// U256 wraps a big.Int that the relayer serializes as a decimal string.
type U256 struct {
	*big.Int
}

// MarshalJSON encodes the integer as a quoted decimal string.
func (u U256) MarshalJSON() ([]byte, error) {
	if u.Int == nil {
		return []byte(`"0"`), nil
	}
	return json.Marshal(u.Int.String())
}

// UnmarshalJSON accepts both quoted and bare decimal integers.
func (u *U256) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		u.Int = big.NewInt(0)
		return nil
	}
	parsed, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return fmt.Errorf("invalid u256 value %q", raw)
	}
	u.Int = parsed
	return nil
}

// Decimal is a shopspring decimal serialized as a JSON string.
type Decimal decimal.Decimal

// Dec returns the underlying decimal value.
func (d Decimal) Dec() decimal.Decimal {
	return decimal.Decimal(d)
}

func (d Decimal) String() string {
	return decimal.Decimal(d).String()
}

// MarshalJSON encodes the decimal as a quoted string to preserve precision.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(decimal.Decimal(d).String())
}

// UnmarshalJSON accepts quoted and bare decimal numbers.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = Decimal(decimal.Zero)
		return nil
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid decimal value %q: %w", raw, err)
	}
	*d = Decimal(parsed)
	return nil
}

// Address is a checksummed Ethereum address with JSON support.
type Address struct {
	common.Address
}

// MarshalJSON encodes the address in EIP-55 checksum form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Address.Hex())
}

// UnmarshalJSON accepts any 0x-prefixed hex address.
func (a *Address) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if !common.IsHexAddress(raw) {
		return fmt.Errorf("invalid address %q", raw)
	}
	a.Address = common.HexToAddress(raw)
	return nil
}

// Error is the generic error envelope returned by relayer services.
type Error struct {
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code != "" {
		return fmt.Sprintf("relayer error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("relayer error %d: %s", e.Status, e.Message)
}
