package relayer

import (
	"fmt"

	"github.com/saismm9810/DEX/pkg/orders"
	"github.com/saismm9810/DEX/pkg/tokens"
	"github.com/saismm9810/DEX/pkg/types"
)

// OrderMetaData is the relayer-side bookkeeping attached to a stored order.
// RemainingFillableTakerAssetAmount is in taker-asset native units.
type OrderMetaData struct {
	OrderHash                         string        `json:"orderHash"`
	RemainingFillableTakerAssetAmount types.Decimal `json:"remainingFillableTakerAssetAmount"`
}

// OrderRecord pairs a signed order with its relayer metadata.
type OrderRecord struct {
	Order    *orders.SignedOrder `json:"order"`
	MetaData OrderMetaData       `json:"metaData"`
}

// recordPage is the paginated envelope the relayer wraps record lists in.
type recordPage struct {
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"perPage"`
	Records []OrderRecord `json:"records"`
}

// OrderBook holds both sides of a trading pair.
type OrderBook struct {
	Bids []OrderRecord
	Asks []OrderRecord
}

// OrderBookRequest selects a trading pair by asset data.
type OrderBookRequest struct {
	BaseAssetData  string
	QuoteAssetData string
	PerPage        int
}

// OrdersRequest filters the relayer order listing. Zero-valued fields are
// omitted from the query.
type OrdersRequest struct {
	MakerAddress   string
	MakerAssetData string
	TakerAssetData string
	PerPage        int
}

// OrderConfigRequest carries the maker intent fields the relayer prices.
type OrderConfigRequest struct {
	MakerAddress          string        `json:"makerAddress"`
	TakerAddress          string        `json:"takerAddress"`
	MakerAssetAmount      types.Decimal `json:"makerAssetAmount"`
	TakerAssetAmount      types.Decimal `json:"takerAssetAmount"`
	MakerAssetData        string        `json:"makerAssetData"`
	TakerAssetData        string        `json:"takerAssetData"`
	ExchangeAddress       string        `json:"exchangeAddress"`
	ExpirationTimeSeconds types.U256    `json:"expirationTimeSeconds"`
}

// OrderConfig is the relayer's fee schedule for a prospective order.
type OrderConfig struct {
	SenderAddress       types.Address `json:"senderAddress"`
	FeeRecipientAddress types.Address `json:"feeRecipientAddress"`
	MakerFee            types.Decimal `json:"makerFee"`
	TakerFee            types.Decimal `json:"takerFee"`
	MakerFeeAssetData   string        `json:"makerFeeAssetData"`
	TakerFeeAssetData   string        `json:"takerFeeAssetData"`
}

// FeeData converts the relayer schedule into the planner's fee input.
func (c *OrderConfig) FeeData() orders.FeeData {
	return orders.FeeData{
		MakerFee:          c.MakerFee.Dec(),
		TakerFee:          c.TakerFee.Dec(),
		MakerFeeAssetData: c.MakerFeeAssetData,
		TakerFeeAssetData: c.TakerFeeAssetData,
	}
}

// SignedOrders strips the relayer metadata from a record list.
func SignedOrders(records []OrderRecord) []*orders.SignedOrder {
	out := make([]*orders.SignedOrder, len(records))
	for i, record := range records {
		out[i] = record.Order
	}
	return out
}

// OpenOrders decorates records with side, size, fill progress and price
// relative to baseToken. An order whose taker asset is the base token buys
// the base; one whose maker asset is the base token sells it. Sizes are in
// base-token native units and prices in quote per base.
func OpenOrders(records []OrderRecord, baseToken tokens.Token) ([]orders.OpenOrder, error) {
	baseAssetData := tokens.EncodeERC20AssetData(baseToken.Address)
	out := make([]orders.OpenOrder, 0, len(records))
	for _, record := range records {
		open, err := openOrder(record, baseAssetData)
		if err != nil {
			return nil, err
		}
		out = append(out, open)
	}
	return out, nil
}

func openOrder(record OrderRecord, baseAssetData string) (orders.OpenOrder, error) {
	order := record.Order
	remaining := record.MetaData.RemainingFillableTakerAssetAmount.Dec()
	makerAmount := order.MakerAssetAmount.Dec()
	takerAmount := order.TakerAssetAmount.Dec()
	if makerAmount.Sign() <= 0 || takerAmount.Sign() <= 0 {
		return orders.OpenOrder{}, fmt.Errorf("order %s has a non-positive asset amount", record.MetaData.OrderHash)
	}

	switch {
	case order.TakerAssetData == baseAssetData:
		// Maker buys the base: taker side is base, remaining is base.
		return orders.OpenOrder{
			Raw:    order,
			Side:   orders.Buy,
			Size:   takerAmount,
			Filled: takerAmount.Sub(remaining),
			Price:  makerAmount.Div(takerAmount),
		}, nil
	case order.MakerAssetData == baseAssetData:
		// Maker sells the base: remaining is quote, converted through the
		// order ratio.
		remainingBase := remaining.Mul(makerAmount).Div(takerAmount)
		return orders.OpenOrder{
			Raw:    order,
			Side:   orders.Sell,
			Size:   makerAmount,
			Filled: makerAmount.Sub(remainingBase),
			Price:  takerAmount.Div(makerAmount),
		}, nil
	default:
		return orders.OpenOrder{}, fmt.Errorf("order %s does not trade the base asset", record.MetaData.OrderHash)
	}
}
