package tokens

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	sdkerrors "github.com/saismm9810/DEX/pkg/errors"
)

// Registry resolves listed tokens by symbol, address or asset data. It is
// constructed once from configuration and passed explicitly to planner call
// sites; the wrapped-native token is held apart from the listed set the same
// way the exchange treats it.
type Registry struct {
	tokens        []Token
	wrappedNative Token
}

// NewRegistry builds a registry from token metadata. Exactly the tokens not
// flagged as wrapped-native form the listed set; the metadata must contain the
// wrapped-native token or the registry cannot plan wrap steps.
func NewRegistry(metadata []Token) (*Registry, error) {
	r := &Registry{}
	found := false
	for _, t := range metadata {
		if t.WrappedNative {
			r.wrappedNative = t
			found = true
			continue
		}
		r.tokens = append(r.tokens, t)
	}
	if !found {
		return nil, fmt.Errorf("registry requires the wrapped native token")
	}
	return r, nil
}

// UpdateTokens replaces the listed token set, keeping the wrapped-native token.
func (r *Registry) UpdateTokens(metadata []Token) {
	listed := make([]Token, 0, len(metadata))
	for _, t := range metadata {
		if t.WrappedNative {
			continue
		}
		listed = append(listed, t)
	}
	r.tokens = listed
}

// AddToken appends a newly listed token.
func (r *Registry) AddToken(t Token) {
	r.tokens = append(r.tokens, t)
}

// Tokens returns the listed tokens, excluding the wrapped-native token.
func (r *Registry) Tokens() []Token {
	return r.tokens
}

// WrappedNativeToken returns the wrapped representation of the native currency.
func (r *Registry) WrappedNativeToken() Token {
	return r.wrappedNative
}

// TokenBySymbol resolves a token by its lower-cased symbol.
func (r *Registry) TokenBySymbol(symbol string) (Token, error) {
	needle := strings.ToLower(symbol)
	if needle == strings.ToLower(r.wrappedNative.Symbol) {
		return r.wrappedNative, nil
	}
	for _, t := range r.tokens {
		if strings.ToLower(t.Symbol) == needle {
			return t, nil
		}
	}
	return Token{}, fmt.Errorf("%w: symbol %s", sdkerrors.ErrTokenNotFound, symbol)
}

// TokenByAddress resolves a token by its on-chain address.
func (r *Registry) TokenByAddress(addr common.Address) (Token, error) {
	if addr == r.wrappedNative.Address {
		return r.wrappedNative, nil
	}
	for _, t := range r.tokens {
		if t.Address == addr {
			return t, nil
		}
	}
	return Token{}, fmt.Errorf("%w: address %s", sdkerrors.ErrTokenNotFound, addr.Hex())
}

// TokenByAssetData resolves a token from ERC20 asset data.
func (r *Registry) TokenByAssetData(assetData string) (Token, error) {
	addr, err := DecodeERC20AssetData(assetData)
	if err != nil {
		return Token{}, err
	}
	return r.TokenByAddress(addr)
}

// WrappedNativeAssetData returns the asset data of the wrapped-native token.
func (r *Registry) WrappedNativeAssetData() string {
	return EncodeERC20AssetData(r.wrappedNative.Address)
}

// IsKnownAddress reports whether the address belongs to a listed token.
func (r *Registry) IsKnownAddress(addr common.Address) bool {
	_, err := r.TokenByAddress(addr)
	return err == nil
}

// IsKnownSymbol reports whether the symbol belongs to a listed token.
func (r *Registry) IsKnownSymbol(symbol string) bool {
	_, err := r.TokenBySymbol(symbol)
	return err == nil
}

// FindToken resolves a symbol or hex address, returning nil when unknown.
func (r *Registry) FindToken(data string) *Token {
	if data == "" {
		return nil
	}
	if t, err := r.TokenBySymbol(data); err == nil {
		return &t
	}
	if common.IsHexAddress(data) {
		if t, err := r.TokenByAddress(common.HexToAddress(data)); err == nil {
			return &t
		}
	}
	return nil
}
