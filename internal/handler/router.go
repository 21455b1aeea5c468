package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ugaemi/survivalad-server/internal/room"
	"github.com/ugaemi/survivalad-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	sessions *SessionHandler
	input    *InputHandler

	// clientSessions tracks client ID -> session code, shared across handlers.
	clientSessions map[string]string
	mu             sync.RWMutex
}

// NewRouter creates a new message router.
func NewRouter(rm *room.Manager) *Router {
	r := &Router{
		clientSessions: make(map[string]string),
	}
	r.sessions = NewSessionHandler(rm, r)
	r.input = NewInputHandler(rm, r)
	return r
}

// RegisterClient maps a client ID to a session code.
func (r *Router) RegisterClient(clientID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientSessions[clientID] = code
}

// UnregisterClient removes a client's session mapping.
func (r *Router) UnregisterClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clientSessions, clientID)
}

// SessionCode returns the session code for a client, or empty string if not found.
func (r *Router) SessionCode(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clientSessions[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	switch msg.Type {
	// Session messages
	case ws.TypeCreateSession:
		r.sessions.HandleCreateSession(cm.Client, msg)
	case ws.TypeJoinSession:
		r.sessions.HandleJoinSession(cm.Client, msg)
	case ws.TypeLeaveSession:
		r.sessions.HandleLeaveSession(cm.Client, msg)

	// Gameplay messages
	case ws.TypePlayerInput:
		r.input.HandlePlayerInput(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.sessions.HandleDisconnect(client)
}
