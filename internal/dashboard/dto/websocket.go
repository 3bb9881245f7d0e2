package dto

import "time"

const (
	WSTypeConnected       = "connected"
	WSTypeSubscribe       = "subscribe"
	WSTypeSubscribed      = "subscribed"
	WSTypeUnsubscribe     = "unsubscribe"
	WSTypeUnsubscribed    = "unsubscribed"
	WSTypePing            = "ping"
	WSTypePong            = "pong"
	WSTypeError           = "error"
	WSTypeSentimentUpdate = "sentiment_update"
)

// WSMessage is a message sent over WebSocket connections.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSSubscription is the payload of subscribe/unsubscribe messages.
type WSSubscription struct {
	Symbol string `json:"symbol"`
}

// SentimentUpdate is broadcast to WebSocket clients for every tracked symbol.
type SentimentUpdate struct {
	Symbol         string    `json:"symbol"`
	SentimentScore float64   `json:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label"`
	NewsCount      int       `json:"news_count"`
	Source         string    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
}
