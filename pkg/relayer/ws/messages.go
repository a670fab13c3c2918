package ws

import (
	"encoding/json"

	"github.com/saismm9810/DEX/pkg/relayer"
)

// ordersChannel is the only channel the relayer WebSocket API exposes.
const ordersChannel = "orders"

const (
	subscribeType = "subscribe"
	updateType    = "update"
)

// requestPayload narrows a subscription to one trading pair. Empty fields
// subscribe to the whole book.
type requestPayload struct {
	MakerAssetData string `json:"makerAssetData,omitempty"`
	TakerAssetData string `json:"takerAssetData,omitempty"`
}

type wireRequest struct {
	Type      string          `json:"type"`
	Channel   string          `json:"channel"`
	RequestID string          `json:"requestId"`
	Payload   *requestPayload `json:"payload,omitempty"`
}

type wireMessage struct {
	Type      string          `json:"type"`
	Channel   string          `json:"channel"`
	RequestID string          `json:"requestId"`
	Payload   json.RawMessage `json:"payload"`
}

// BookUpdate is one batch of created or changed orders pushed by the relayer.
type BookUpdate struct {
	Records []relayer.OrderRecord
}
