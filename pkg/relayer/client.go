// Package relayer provides the client for the standard relayer HTTP API. The
// relayer serves the shared order book, accepts signed orders, and publishes
// the fee schedule new orders must carry.
package relayer

import (
	"context"

	"github.com/saismm9810/DEX/pkg/orders"
)

// BaseURL is the default relayer endpoint.
const BaseURL = "http://localhost:3000/v3"

// Client defines the interface for the relayer order book service.
type Client interface {
	// -- Order Book --

	// OrderBook retrieves the bid and ask sides for one trading pair. Bids
	// are sorted best price first, asks cheapest first.
	OrderBook(ctx context.Context, req *OrderBookRequest) (*OrderBook, error)
	// Orders retrieves orders matching the request filters across all pairs.
	Orders(ctx context.Context, req *OrdersRequest) ([]OrderRecord, error)
	// OrderByHash retrieves a single order by its hash.
	OrderByHash(ctx context.Context, orderHash string) (*OrderRecord, error)

	// -- Submission --

	// OrderConfig returns the fee fields the relayer requires on a new order
	// for the given maker intent.
	OrderConfig(ctx context.Context, req *OrderConfigRequest) (*OrderConfig, error)
	// SubmitOrder posts a signed order to the relayer book.
	SubmitOrder(ctx context.Context, order *orders.SignedOrder) error
}
