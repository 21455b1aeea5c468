package handler

import (
	"errors"
	"log/slog"

	"github.com/ugaemi/survivalad-server/internal/room"
	"github.com/ugaemi/survivalad-server/internal/ws"
)

// SessionHandler handles session lifecycle messages.
type SessionHandler struct {
	rm     *room.Manager
	router *Router
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(rm *room.Manager, router *Router) *SessionHandler {
	return &SessionHandler{
		rm:     rm,
		router: router,
	}
}

const (
	roleController = "controller"
	roleSpectator  = "spectator"
)

type sessionResponse struct {
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
}

// HandleCreateSession creates a session, makes the client its controller and
// starts the simulation.
func (h *SessionHandler) HandleCreateSession(client *ws.Client, _ ws.Message) {
	if h.router.SessionCode(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a session"))
		return
	}

	s, err := h.rm.CreateSession()
	if err != nil {
		slog.Error("failed to create session", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("could not create session"))
		return
	}
	if err := s.AddClient(client); err != nil {
		h.rm.RemoveSession(s.Code)
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterClient(client.ID, s.Code)

	resp, _ := ws.NewMessage(ws.TypeCreateSession, sessionResponse{
		Code:     s.Code,
		PlayerID: s.PlayerID(),
		Role:     roleController,
	})
	client.SendMessage(resp)

	s.Start()
	s.BroadcastMessage(s.InfoMessage())

	slog.Info("client created session", "client", client.ID, "session", s.Code)
}

type joinSessionRequest struct {
	Code string `json:"code"`
}

// HandleJoinSession attaches the client to an existing session as a spectator.
func (h *SessionHandler) HandleJoinSession(client *ws.Client, msg ws.Message) {
	var req joinSessionRequest
	if err := msg.Decode(&req); err != nil || req.Code == "" {
		client.SendMessage(ws.NewErrorMessage("code is required"))
		return
	}
	if h.router.SessionCode(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already in a session"))
		return
	}

	s := h.rm.GetSession(req.Code)
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("session not found"))
		return
	}

	if err := s.AddClient(client); err != nil {
		switch {
		case errors.Is(err, room.ErrSessionFull):
			client.SendMessage(ws.NewErrorMessage("session is full"))
		default:
			client.SendMessage(ws.NewErrorMessage("session has ended"))
		}
		return
	}
	h.router.RegisterClient(client.ID, s.Code)

	role := roleSpectator
	if s.ControllerID() == client.ID {
		role = roleController
	}
	resp, _ := ws.NewMessage(ws.TypeJoinSession, sessionResponse{
		Code:     s.Code,
		PlayerID: s.PlayerID(),
		Role:     role,
	})
	client.SendMessage(resp)

	s.BroadcastMessage(s.InfoMessage())

	slog.Info("client joined session", "client", client.ID, "session", s.Code, "role", role)
}

// HandleLeaveSession handles a client leaving its session.
func (h *SessionHandler) HandleLeaveSession(client *ws.Client, _ ws.Message) {
	if h.router.SessionCode(client.ID) == "" {
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return
	}
	h.removeClient(client)
}

// HandleDisconnect handles client disconnection.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	h.removeClient(client)
}

func (h *SessionHandler) removeClient(client *ws.Client) {
	code := h.router.SessionCode(client.ID)
	if code == "" {
		return
	}

	if s := h.rm.GetSession(code); s != nil {
		s.RemoveClient(client.ID)
		if s.IsEmpty() {
			h.rm.RemoveSession(code)
		} else {
			s.BroadcastMessage(s.InfoMessage())
		}
	}

	h.router.UnregisterClient(client.ID)
	slog.Info("client left session", "client", client.ID, "session", code)
}
