package dex

import (
	"time"

	"github.com/saismm9810/DEX/pkg/relayer"
	"github.com/saismm9810/DEX/pkg/relayer/ws"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/transport"
)

// Option mutates the client during construction.
type Option func(*Client)

// WithBaseURLs overrides every service endpoint at once.
func WithBaseURLs(urls BaseURLs) Option {
	return func(c *Client) { c.Config.BaseURLs = urls }
}

// WithRelayerURL overrides the relayer REST endpoint.
func WithRelayerURL(url string) Option {
	return func(c *Client) { c.Config.BaseURLs.Relayer = url }
}

// WithRelayerWSURL overrides the relayer WebSocket endpoint.
func WithRelayerWSURL(url string) Option {
	return func(c *Client) { c.Config.BaseURLs.RelayerWS = url }
}

// WithHTTPClient supplies a custom HTTP client for every REST sub-client.
func WithHTTPClient(doer transport.Doer) Option {
	return func(c *Client) { c.Config.HTTPClient = doer }
}

// WithUserAgent overrides the User-Agent header on outgoing requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.Config.UserAgent = ua }
}

// WithTimeout sets the default HTTP client timeout. Ignored when a custom
// HTTP client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.Config.Timeout = timeout }
}

// WithTokens overrides the token listing the registry is built from.
func WithTokens(listing []tokens.Token) Option {
	return func(c *Client) { c.Config.Tokens = listing }
}

// WithRelayerWSConfig overrides the WebSocket reconnect settings.
func WithRelayerWSConfig(cfg ws.ClientConfig) Option {
	return func(c *Client) { c.Config.RelayerWSConfig = cfg }
}

// WithRelayer injects a pre-built relayer client.
func WithRelayer(client relayer.Client) Option {
	return func(c *Client) { c.Relayer = client }
}

// WithRelayerWS injects a pre-built relayer WebSocket client.
func WithRelayerWS(client ws.Client) Option {
	return func(c *Client) { c.RelayerWS = client }
}

// WithRegistry injects a pre-built token registry.
func WithRegistry(registry *tokens.Registry) Option {
	return func(c *Client) { c.Registry = registry }
}
