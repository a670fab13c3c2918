package ws

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	sdkerrors "github.com/saismm9810/DEX/pkg/errors"
	"github.com/saismm9810/DEX/pkg/logger"
	"github.com/saismm9810/DEX/pkg/relayer"
)

const defaultStreamBuffer = 100

type clientImpl struct {
	url       string
	conn      *websocket.Conn
	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
	closing   atomic.Bool
	state     int32

	reconnect      bool
	reconnectDelay time.Duration
	reconnectMax   int
	pingInterval   time.Duration

	subMu  sync.Mutex
	subs   map[string]*subscriptionEntry
	nextID uint64
}

type subscriptionEntry struct {
	id        string
	payload   requestPayload
	ch        chan BookUpdate
	closed    atomic.Bool
	closeOnce sync.Once
}

func (s *subscriptionEntry) trySend(update BookUpdate) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- update:
	default:
		logger.Warn("relayer ws subscription %s lagging, dropped %d records", s.id, len(update.Records))
	}
}

func (s *subscriptionEntry) close() {
	if s.closed.Swap(true) {
		return
	}
	s.closeOnce.Do(func() { close(s.ch) })
}

// BookSubscription is a live order update stream for one pair.
type BookSubscription struct {
	entry  *subscriptionEntry
	client *clientImpl
}

// Updates returns the channel the relayer pushes matching order batches on.
// The channel is closed when the subscription or the client is closed.
func (s *BookSubscription) Updates() <-chan BookUpdate {
	return s.entry.ch
}

// Close removes the subscription and closes the update channel.
func (s *BookSubscription) Close() {
	s.client.removeSubscription(s.entry)
}

// NewClient connects to the relayer WebSocket endpoint with env-driven
// reconnect settings.
func NewClient(rawURL string) (Client, error) {
	return NewClientWithConfig(rawURL, ClientConfigFromEnv())
}

// NewClientWithConfig creates a relayer WS client with explicit reconnect and
// heartbeat settings.
func NewClientWithConfig(rawURL string, cfg ClientConfig) (Client, error) {
	if err := validateWSURL(rawURL); err != nil {
		return nil, err
	}
	cfg = cfg.normalize()

	c := &clientImpl{
		url:            rawURL,
		done:           make(chan struct{}),
		subs:           make(map[string]*subscriptionEntry),
		reconnect:      cfg.Reconnect,
		reconnectDelay: cfg.ReconnectDelay,
		reconnectMax:   cfg.ReconnectMax,
		pingInterval:   cfg.PingInterval,
	}

	go c.run()
	go c.pingLoop()

	return c, nil
}

func validateWSURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch parsed.Scheme {
	case "ws", "wss":
	default:
		return errors.New("relayer ws URL must use ws:// or wss://")
	}
	if parsed.Host == "" {
		return errors.New("relayer ws URL host is required")
	}
	return nil
}

func (c *clientImpl) SubscribeBookUpdates(makerAssetData, takerAssetData string) (*BookSubscription, error) {
	if c.closing.Load() {
		return nil, sdkerrors.ErrInvalidSubscription
	}
	payload := requestPayload{MakerAssetData: makerAssetData, TakerAssetData: takerAssetData}

	c.subMu.Lock()
	c.nextID++
	entry := &subscriptionEntry{
		id:      strconv.FormatUint(c.nextID, 10),
		payload: payload,
		ch:      make(chan BookUpdate, defaultStreamBuffer),
	}
	c.subs[entry.id] = entry
	c.subMu.Unlock()

	// A send failure is not fatal here: the reconnect loop replays every
	// live subscription once the socket is back.
	if err := c.sendSubscribe(entry); err != nil {
		logger.Debug("relayer ws subscribe deferred: %v", err)
	}
	return &BookSubscription{entry: entry, client: c}, nil
}

func (c *clientImpl) sendSubscribe(entry *subscriptionEntry) error {
	req := wireRequest{
		Type:      subscribeType,
		Channel:   ordersChannel,
		RequestID: entry.id,
	}
	if entry.payload != (requestPayload{}) {
		payload := entry.payload
		req.Payload = &payload
	}
	return c.writeJSON(req)
}

func (c *clientImpl) removeSubscription(entry *subscriptionEntry) {
	c.subMu.Lock()
	delete(c.subs, entry.id)
	c.subMu.Unlock()
	entry.close()
}

func (c *clientImpl) connect() error {
	c.closeConn()
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		atomic.StoreInt32(&c.state, int32(ConnectionDisconnected))
		return err
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	atomic.StoreInt32(&c.state, int32(ConnectionConnected))
	return nil
}

func (c *clientImpl) run() {
	attempts := 0
	for {
		if c.closing.Load() {
			c.terminate()
			return
		}
		if err := c.connect(); err != nil {
			if !c.shouldReconnect(attempts) {
				c.terminate()
				return
			}
			attempts++
			time.Sleep(c.reconnectDelay)
			continue
		}

		attempts = 0
		c.resubscribeAll()

		if err := c.readLoop(); err != nil {
			if c.closing.Load() || !c.shouldReconnect(attempts) {
				c.terminate()
				return
			}
			attempts++
			time.Sleep(c.reconnectDelay)
		}
	}
}

// terminate ends the run loop for good. Subscription channels are closed so
// consumers ranging over them unblock once no reconnect will ever happen.
func (c *clientImpl) terminate() {
	c.closeAllSubscriptions()
	c.signalDone()
}

func (c *clientImpl) closeAllSubscriptions() {
	c.subMu.Lock()
	entries := make([]*subscriptionEntry, 0, len(c.subs))
	for id, entry := range c.subs {
		entries = append(entries, entry)
		delete(c.subs, id)
	}
	c.subMu.Unlock()
	for _, entry := range entries {
		entry.close()
	}
}

func (c *clientImpl) shouldReconnect(attempts int) bool {
	if !c.reconnect {
		return false
	}
	if c.reconnectMax == 0 {
		return true
	}
	return attempts < c.reconnectMax
}

func (c *clientImpl) pingLoop() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			conn := c.conn
			var err error
			if conn != nil {
				err = conn.WriteMessage(websocket.PingMessage, nil)
			}
			c.mu.Unlock()
			if err != nil {
				atomic.StoreInt32(&c.state, int32(ConnectionDisconnected))
			}
		}
	}
}

func (c *clientImpl) readLoop() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("connection not established")
	}
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !c.closing.Load() {
				logger.Error("relayer ws read error: %v", err)
			}
			atomic.StoreInt32(&c.state, int32(ConnectionDisconnected))
			return err
		}

		var msg wireMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("relayer ws dropped malformed message: %v", err)
			continue
		}
		if msg.Type != updateType || msg.Channel != ordersChannel {
			continue
		}

		var records []relayer.OrderRecord
		if err := json.Unmarshal(msg.Payload, &records); err != nil {
			logger.Debug("relayer ws dropped malformed payload: %v", err)
			continue
		}
		c.dispatch(msg.RequestID, BookUpdate{Records: records})
	}
}

func (c *clientImpl) dispatch(requestID string, update BookUpdate) {
	c.subMu.Lock()
	entry := c.subs[requestID]
	c.subMu.Unlock()
	if entry != nil {
		entry.trySend(update)
	}
}

func (c *clientImpl) resubscribeAll() {
	c.subMu.Lock()
	entries := make([]*subscriptionEntry, 0, len(c.subs))
	for _, entry := range c.subs {
		entries = append(entries, entry)
	}
	c.subMu.Unlock()

	for _, entry := range entries {
		if err := c.sendSubscribe(entry); err != nil {
			logger.Error("relayer ws resubscribe %s failed: %v", entry.id, err)
		}
	}
}

func (c *clientImpl) ConnectionState() ConnectionState {
	return ConnectionState(atomic.LoadInt32(&c.state))
}

func (c *clientImpl) SubscriptionCount() int {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	return len(c.subs)
}

func (c *clientImpl) Close() error {
	c.closing.Store(true)
	atomic.StoreInt32(&c.state, int32(ConnectionDisconnected))
	c.closeConn()
	c.terminate()
	return nil
}

func (c *clientImpl) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New("connection not established")
	}
	return c.conn.WriteJSON(v)
}

func (c *clientImpl) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func (c *clientImpl) signalDone() {
	c.closeOnce.Do(func() { close(c.done) })
}
