package relayer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/transport"
)

type clientImpl struct {
	httpClient *transport.Client
}

// NewClient creates a relayer client on top of a configured transport.
func NewClient(httpClient *transport.Client) Client {
	return &clientImpl{httpClient: httpClient}
}

func (c *clientImpl) OrderBook(ctx context.Context, req *OrderBookRequest) (*OrderBook, error) {
	if req == nil || req.BaseAssetData == "" || req.QuoteAssetData == "" {
		return nil, fmt.Errorf("order book request needs base and quote asset data")
	}

	query := url.Values{}
	query.Set("baseAssetData", req.BaseAssetData)
	query.Set("quoteAssetData", req.QuoteAssetData)
	if req.PerPage > 0 {
		query.Set("perPage", strconv.Itoa(req.PerPage))
	}

	var resp struct {
		Bids recordPage `json:"bids"`
		Asks recordPage `json:"asks"`
	}
	if err := c.httpClient.GetJSON(ctx, "/orderbook", query, &resp); err != nil {
		return nil, err
	}
	return &OrderBook{Bids: resp.Bids.Records, Asks: resp.Asks.Records}, nil
}

func (c *clientImpl) Orders(ctx context.Context, req *OrdersRequest) ([]OrderRecord, error) {
	query := url.Values{}
	if req != nil {
		if req.MakerAddress != "" {
			query.Set("makerAddress", req.MakerAddress)
		}
		if req.MakerAssetData != "" {
			query.Set("makerAssetData", req.MakerAssetData)
		}
		if req.TakerAssetData != "" {
			query.Set("takerAssetData", req.TakerAssetData)
		}
		if req.PerPage > 0 {
			query.Set("perPage", strconv.Itoa(req.PerPage))
		}
	}

	var resp recordPage
	if err := c.httpClient.GetJSON(ctx, "/orders", query, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *clientImpl) OrderByHash(ctx context.Context, orderHash string) (*OrderRecord, error) {
	if orderHash == "" {
		return nil, fmt.Errorf("order hash is required")
	}
	var record OrderRecord
	if err := c.httpClient.GetJSON(ctx, "/order/"+orderHash, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *clientImpl) OrderConfig(ctx context.Context, req *OrderConfigRequest) (*OrderConfig, error) {
	if req == nil {
		return nil, fmt.Errorf("order config request is required")
	}
	var config OrderConfig
	if err := c.httpClient.PostJSON(ctx, "/order_config", req, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *clientImpl) SubmitOrder(ctx context.Context, order *orders.SignedOrder) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return c.httpClient.PostJSON(ctx, "/order", order, nil)
}
