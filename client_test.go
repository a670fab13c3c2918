package dex

import (
	"testing"

	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/trader"
)

func TestNewClientWithOptions(t *testing.T) {
	c := NewClient(
		WithUserAgent("test-ua"),
		WithRelayerURL("http://relayer.test/v3"),
		WithRelayerWSURL("ws://relayer.test"),
	)
	if c.Config.UserAgent != "test-ua" {
		t.Errorf("WithUserAgent failed")
	}
	if c.Config.BaseURLs.Relayer != "http://relayer.test/v3" {
		t.Errorf("WithRelayerURL failed")
	}
	if c.Relayer == nil {
		t.Error("relayer client not initialized")
	}
	if c.Registry == nil {
		t.Error("registry not initialized")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNewClientEReportsInitErrors(t *testing.T) {
	// A listing without the wrapped-native token cannot build a registry.
	_, err := NewClientE(
		WithTokens([]tokens.Token{{Symbol: "dai", Decimals: 18}}),
		WithRelayerWSURL("ws://relayer.test"),
	)
	if err == nil {
		t.Fatal("expected init error for bad token listing")
	}
}

func TestNewClientBadWSURL(t *testing.T) {
	c := NewClient(WithRelayerWSURL("http://not-a-ws-url"))
	if c.RelayerWS != nil {
		t.Error("expected nil ws client on bad URL")
	}
	if len(c.InitErrors) == 0 {
		t.Error("expected recorded init error")
	}
}

func TestNewTrader(t *testing.T) {
	c := NewClient(WithRelayerWSURL("ws://relayer.test"))
	defer c.Close()

	if _, err := c.NewTrader(nil, nil, trader.DefaultConfig()); err == nil {
		t.Error("expected error for missing balance provider")
	}
}
