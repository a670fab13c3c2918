package dex

import (
	"time"

	"github.com/saismm9810/DEX/pkg/relayer"
	"github.com/saismm9810/DEX/pkg/relayer/ws"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/transport"
)

// BaseURLs defines per-service base endpoints.
type BaseURLs struct {
	Relayer   string
	RelayerWS string
}

// Config holds shared SDK configuration.
type Config struct {
	BaseURLs        BaseURLs
	HTTPClient      transport.Doer
	UserAgent       string
	Timeout         time.Duration
	Tokens          []tokens.Token
	RelayerWSConfig ws.ClientConfig
}

// DefaultConfig returns default service endpoints and the mainnet token
// listing.
func DefaultConfig() Config {
	return Config{
		BaseURLs: BaseURLs{
			Relayer:   relayer.BaseURL,
			RelayerWS: ws.BaseURL,
		},
		UserAgent: "github.com/saismm9810/DEX",
		Timeout:   30 * time.Second,
		Tokens:    tokens.MainnetTokens(),
		// Keep env-driven reconnect behavior at the root client level.
		RelayerWSConfig: ws.ClientConfigFromEnv(),
	}
}
