package handler

import (
	"errors"
	"log/slog"

	"github.com/ugaemi/survivalad-server/internal/geom"
	"github.com/ugaemi/survivalad-server/internal/room"
	"github.com/ugaemi/survivalad-server/internal/ws"
)

// InputHandler forwards player input to the simulation.
type InputHandler struct {
	rm     *room.Manager
	router *Router
}

// NewInputHandler creates a new input handler.
func NewInputHandler(rm *room.Manager, router *Router) *InputHandler {
	return &InputHandler{rm: rm, router: router}
}

type playerInputRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Power float64 `json:"power"`
}

// HandlePlayerInput sets the desired move direction and power. The direction
// does not need to be normalized; power is clamped to [0, 1] by the world.
func (h *InputHandler) HandlePlayerInput(client *ws.Client, msg ws.Message) {
	var req playerInputRequest
	if err := msg.Decode(&req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid input data"))
		return
	}

	s := h.rm.GetSession(h.router.SessionCode(client.ID))
	if s == nil {
		client.SendMessage(ws.NewErrorMessage("not in a session"))
		return
	}

	err := s.SetInput(client.ID, geom.V(req.X, req.Y), req.Power)
	switch {
	case err == nil:
		slog.Debug("player input", "client", client.ID, "x", req.X, "y", req.Y, "power", req.Power)
	case errors.Is(err, room.ErrNotController):
		client.SendMessage(ws.NewErrorMessage("only the controller can move the player"))
	default:
		client.SendMessage(ws.NewErrorMessage(err.Error()))
	}
}
