package websocket

import (
	"encoding/json"
	"time"
)

const (
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
	MessageTypeFeed   = "feed"
	MessageTypeNotice = "notice"
	MessageTypeWatch  = "watch"
)

type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func NewMessage(msgType string, data interface{}) interface{} {
	return outgoingMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// WatchData asks the server to switch the feed to another conversation.
type WatchData struct {
	ConversationKey string `json:"conversation_key" validate:"required"`
}
