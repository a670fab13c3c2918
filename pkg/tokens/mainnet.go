package tokens

import "github.com/ethereum/go-ethereum/common"

// MainnetTokens is the default mainnet listing used when no token
// configuration is supplied.
func MainnetTokens() []Token {
	return []Token{
		{
			Address:         common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
			Symbol:          "weth",
			Name:            "Wrapped Ether",
			Decimals:        18,
			DisplayDecimals: 4,
			WrappedNative:   true,
		},
		{
			Address:         common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"),
			Symbol:          "dai",
			Name:            "Dai Stablecoin",
			Decimals:        18,
			DisplayDecimals: 2,
		},
		{
			Address:         common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
			Symbol:          "usdc",
			Name:            "USD Coin",
			Decimals:        6,
			DisplayDecimals: 2,
		},
		{
			Address:         common.HexToAddress("0xE41d2489571d322189246DaFA5ebDe1F4699F498"),
			Symbol:          "zrx",
			Name:            "0x Protocol Token",
			Decimals:        18,
			DisplayDecimals: 2,
		},
		{
			Address:         common.HexToAddress("0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2"),
			Symbol:          "mkr",
			Name:            "Maker",
			Decimals:        18,
			DisplayDecimals: 2,
		},
		{
			Address:         common.HexToAddress("0x514910771AF9Ca656af840dff83E8264EcF986CA"),
			Symbol:          "link",
			Name:            "ChainLink Token",
			Decimals:        18,
			DisplayDecimals: 2,
		},
	}
}

// DefaultRegistry builds a registry over the default mainnet listing.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(MainnetTokens())
}
