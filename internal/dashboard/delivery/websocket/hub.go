package websocket

import (
	"encoding/json"
	"strings"
	"sync"

	"golang-stock-sentiment/internal/dashboard/dto"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/google/uuid"
)

const defaultSendBuffer = 256

// Client is one WebSocket connection registered in the hub.
type Client struct {
	id   string
	hub  *Hub
	send chan dto.WSMessage

	mu      sync.Mutex
	symbols map[string]struct{}
	closed  bool
}

// ID returns the client's connection id.
func (c *Client) ID() string {
	return c.id
}

// Send returns the channel of messages queued for the client.
func (c *Client) Send() <-chan dto.WSMessage {
	return c.send
}

func (c *Client) subscribe(symbol string) {
	c.mu.Lock()
	c.symbols[symbol] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) unsubscribe(symbol string) {
	c.mu.Lock()
	delete(c.symbols, symbol)
	c.mu.Unlock()
}

// wants reports whether the client receives updates of symbol. A client without
// subscriptions receives every symbol.
func (c *Client) wants(symbol string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.symbols) == 0 {
		return true
	}
	_, ok := c.symbols[symbol]
	return ok
}

// enqueue queues msg without blocking. It returns false when the client is closed or its buffer is full.
func (c *Client) enqueue(msg dto.WSMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub tracks the connected clients and fans out sentiment updates.
type Hub struct {
	logger     *logger.Logger
	sendBuffer int
	isActive   func(symbol string) bool

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub creates a hub. isActive tells which symbols clients may subscribe to.
func NewHub(log *logger.Logger, sendBuffer int, isActive func(symbol string) bool) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		logger:     log,
		sendBuffer: sendBuffer,
		isActive:   isActive,
		clients:    make(map[*Client]struct{}),
	}
}

// NewClient allocates a client with a fresh id. It is not registered yet.
func (h *Hub) NewClient() *Client {
	return &Client{
		id:      uuid.NewString(),
		hub:     h,
		send:    make(chan dto.WSMessage, h.sendBuffer),
		symbols: make(map[string]struct{}),
	}
}

// Register adds the client and greets it with a connected message.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	c.enqueue(dto.WSMessage{Type: dto.WSTypeConnected, Data: map[string]string{"client_id": c.id}})
	h.logger.Info("WebSocket client connected", logger.StringField("client_id", c.id), logger.IntField("clients", count))
}

// Unregister removes the client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		c.close()
		h.logger.Info("WebSocket client disconnected", logger.StringField("client_id", c.id), logger.IntField("clients", count))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastSentiment sends the update to the clients interested in its symbol and
// returns how many accepted it.
func (h *Hub) BroadcastSentiment(update dto.SentimentUpdate) int {
	msg := dto.WSMessage{Type: dto.WSTypeSentimentUpdate, Data: update}
	return h.deliver(msg, func(c *Client) bool { return c.wants(update.Symbol) })
}

// deliver drops clients whose buffer is full.
func (h *Hub) deliver(msg dto.WSMessage, match func(*Client) bool) int {
	var delivered int
	var slow []*Client

	h.mu.RLock()
	for c := range h.clients {
		if !match(c) {
			continue
		}
		if c.enqueue(msg) {
			delivered++
		} else {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow WebSocket client", logger.StringField("client_id", c.id))
		h.Unregister(c)
	}
	return delivered
}

// HandleMessage processes one inbound client message.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.enqueue(dto.WSMessage{Type: dto.WSTypeError, Data: "invalid message"})
		return
	}

	switch msg.Type {
	case dto.WSTypePing:
		c.enqueue(dto.WSMessage{Type: dto.WSTypePong})
	case dto.WSTypeSubscribe, dto.WSTypeUnsubscribe:
		var sub dto.WSSubscription
		if len(msg.Data) > 0 {
			_ = json.Unmarshal(msg.Data, &sub)
		}
		symbol := strings.ToUpper(strings.TrimSpace(sub.Symbol))
		if symbol == "" {
			c.enqueue(dto.WSMessage{Type: dto.WSTypeError, Data: "symbol is required"})
			return
		}
		if msg.Type == dto.WSTypeUnsubscribe {
			c.unsubscribe(symbol)
			c.enqueue(dto.WSMessage{Type: dto.WSTypeUnsubscribed, Data: dto.WSSubscription{Symbol: symbol}})
			return
		}
		if h.isActive != nil && !h.isActive(symbol) {
			c.enqueue(dto.WSMessage{Type: dto.WSTypeError, Data: "symbol is not tracked"})
			return
		}
		c.subscribe(symbol)
		c.enqueue(dto.WSMessage{Type: dto.WSTypeSubscribed, Data: dto.WSSubscription{Symbol: symbol}})
	default:
		h.logger.Debug("Unknown WebSocket message type",
			logger.StringField("client_id", c.id),
			logger.StringField("type", utils.SanitizeLogValue(msg.Type)))
		c.enqueue(dto.WSMessage{Type: dto.WSTypeError, Data: "unknown message type"})
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}
