package ws

import (
	"encoding/json"
	"errors"
)

// ErrNoData is returned by Decode when a message carries no payload.
var ErrNoData = errors.New("message has no data")

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Decode unmarshals the message payload into v.
func (m Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return ErrNoData
	}
	return json.Unmarshal(m.Data, v)
}

// Message types - Session
const (
	TypeCreateSession = "create_session"
	TypeJoinSession   = "join_session"
	TypeLeaveSession  = "leave_session"
	TypeSessionInfo   = "session_info"
)

// Message types - Gameplay
const (
	TypePlayerInput = "player_input"
)

// Message types - System
const (
	TypeError          = "error"
	TypeServerShutdown = "server_shutdown"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
