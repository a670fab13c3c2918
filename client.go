// Package dex is the root client of the exchange SDK. It aggregates the
// relayer REST and WebSocket clients and the token registry behind one shared
// configuration, and builds trading engines bound to them.
package dex

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saismm9810/DEX/pkg/relayer"
	"github.com/saismm9810/DEX/pkg/relayer/ws"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/trader"
	"github.com/saismm9810/DEX/pkg/transport"
)

// Client aggregates service clients behind a shared configuration.
type Client struct {
	Config Config

	Relayer   relayer.Client
	RelayerWS ws.Client
	Registry  *tokens.Registry

	InitErrors []error
}

// InitError records a non-fatal client initialization failure for a sub-service.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s client: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewClient creates a new root client with optional overrides.
func NewClient(opts ...Option) *Client {
	c, _ := newClient(false, opts...)
	return c
}

// NewClientE creates a new root client and returns an aggregated error if any
// sub-client fails to initialize.
func NewClientE(opts ...Option) (*Client, error) {
	return newClient(true, opts...)
}

func newClient(strict bool, opts ...Option) (*Client, error) {
	c := &Client{Config: DefaultConfig()}

	for _, opt := range opts {
		opt(c)
	}

	if c.Config.HTTPClient == nil && c.Config.Timeout > 0 {
		c.Config.HTTPClient = &http.Client{Timeout: c.Config.Timeout}
	}

	if c.Relayer == nil {
		relayerTransport := transport.NewClient(c.Config.HTTPClient, c.Config.BaseURLs.Relayer)
		relayerTransport.SetUserAgent(c.Config.UserAgent)
		c.Relayer = relayer.NewClient(relayerTransport)
	}
	if c.RelayerWS == nil {
		wsURL := c.Config.BaseURLs.RelayerWS
		if wsURL == "" {
			wsURL = ws.BaseURL
		}
		wsClient, err := ws.NewClientWithConfig(wsURL, c.Config.RelayerWSConfig)
		if err != nil {
			c.InitErrors = append(c.InitErrors, &InitError{Component: "relayer_ws", Err: err})
		} else {
			c.RelayerWS = wsClient
		}
	}
	if c.Registry == nil {
		registry, err := tokens.NewRegistry(c.Config.Tokens)
		if err != nil {
			c.InitErrors = append(c.InitErrors, &InitError{Component: "registry", Err: err})
		} else {
			c.Registry = registry
		}
	}

	if strict && len(c.InitErrors) > 0 {
		return c, errors.Join(c.InitErrors...)
	}
	return c, nil
}

// NewTrader builds a trading engine bound to this client's relayer. The
// balance provider and step executor carry the account and signing concerns
// the SDK stays agnostic of.
func (c *Client) NewTrader(balances trader.BalanceProvider, executor trader.StepExecutor, cfg trader.Config) (*trader.Engine, error) {
	return trader.NewEngine(c.Relayer, balances, executor, cfg)
}

// Close shuts down the clients holding live connections.
func (c *Client) Close() error {
	if c == nil || c.RelayerWS == nil {
		return nil
	}
	return c.RelayerWS.Close()
}
