// Package ws implements the relayer WebSocket client. The relayer pushes
// order creations and fill updates over a single "orders" channel; each
// subscription narrows the stream to one trading pair.
package ws

// BaseURL is the default relayer WebSocket endpoint.
const BaseURL = "ws://localhost:3000"

// ConnectionState reports whether the client currently holds a live socket.
type ConnectionState int

const (
	ConnectionDisconnected ConnectionState = iota
	ConnectionConnected
)

// Client defines the interface for the relayer order update stream.
type Client interface {
	// SubscribeBookUpdates streams order updates for the pair identified by
	// maker and taker asset data. Empty asset data subscribes to every pair.
	SubscribeBookUpdates(makerAssetData, takerAssetData string) (*BookSubscription, error)
	// ConnectionState reports the current socket state.
	ConnectionState() ConnectionState
	// SubscriptionCount returns the number of live subscriptions.
	SubscriptionCount() int
	// Close tears down the socket and closes every subscription channel.
	Close() error
}
