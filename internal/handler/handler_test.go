package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/survivalad-server/internal/game"
	"github.com/ugaemi/survivalad-server/internal/room"
	"github.com/ugaemi/survivalad-server/internal/ws"
)

func setupRouter(t *testing.T) (*Router, *room.Manager) {
	t.Helper()
	s := game.DefaultSettings()
	s.Seed = 1
	rm := room.NewManager(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(rm.StopAll)
	return NewRouter(rm), rm
}

func newTestClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan ws.Frame, 1024),
	}
}

func send(r *Router, c *ws.Client, msgType string, payload any) {
	data := []byte(`{"type":"` + msgType + `"}`)
	if payload != nil {
		msg, _ := ws.NewMessage(msgType, payload)
		data, _ = json.Marshal(msg)
	}
	r.HandleMessage(&ws.ClientMessage{Client: c, Data: data})
}

// waitForMessage returns the next JSON message of msgType, skipping snapshot
// frames and other messages.
func waitForMessage(t *testing.T, c *ws.Client, msgType string) ws.Message {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case f := <-c.Send:
			if f.Binary {
				continue
			}
			var msg ws.Message
			require.NoError(t, json.Unmarshal(f.Data, &msg))
			if msg.Type == msgType {
				return msg
			}
		case <-timeout:
			t.Fatalf("no %s message for %s", msgType, c.ID)
			return ws.Message{}
		}
	}
}

func errorText(t *testing.T, msg ws.Message) string {
	t.Helper()
	var e ws.ErrorMessage
	require.NoError(t, json.Unmarshal(msg.Data, &e))
	return e.Message
}

func createSession(t *testing.T, r *Router, c *ws.Client) sessionResponse {
	t.Helper()
	send(r, c, ws.TypeCreateSession, nil)
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(waitForMessage(t, c, ws.TypeCreateSession).Data, &resp))
	return resp
}

func TestHandleMessage_Invalid(t *testing.T) {
	r, _ := setupRouter(t)
	c := newTestClient("c1")

	r.HandleMessage(&ws.ClientMessage{Client: c, Data: []byte("not json")})
	assert.Equal(t, "invalid message format", errorText(t, waitForMessage(t, c, ws.TypeError)))

	send(r, c, "dance", nil)
	assert.Equal(t, "unknown message type: dance", errorText(t, waitForMessage(t, c, ws.TypeError)))
}

func TestHandleCreateSession(t *testing.T) {
	r, rm := setupRouter(t)
	c := newTestClient("c1")

	resp := createSession(t, r, c)

	assert.Equal(t, roleController, resp.Role)
	assert.NotEmpty(t, resp.PlayerID)
	assert.Equal(t, resp.Code, r.SessionCode("c1"))

	s := rm.GetSession(resp.Code)
	require.NotNil(t, s)
	assert.Equal(t, room.StateRunning, s.State())
	assert.Equal(t, "c1", s.ControllerID())

	var info room.Info
	require.NoError(t, json.Unmarshal(waitForMessage(t, c, ws.TypeSessionInfo).Data, &info))
	assert.Equal(t, resp.Code, info.Code)

	t.Run("snapshots are streamed", func(t *testing.T) {
		timeout := time.After(time.Second)
		for {
			select {
			case f := <-c.Send:
				if !f.Binary {
					continue
				}
				snap, err := room.DecodeSnapshot(f.Data)
				require.NoError(t, err)
				assert.Equal(t, resp.PlayerID, snap.Player.ID)
				return
			case <-timeout:
				t.Fatal("no snapshot frame")
			}
		}
	})

	t.Run("cannot create twice", func(t *testing.T) {
		send(r, c, ws.TypeCreateSession, nil)
		assert.Equal(t, "already in a session", errorText(t, waitForMessage(t, c, ws.TypeError)))
		assert.Equal(t, 1, rm.SessionCount())
	})
}

func TestHandleJoinSession(t *testing.T) {
	r, rm := setupRouter(t)
	host := newTestClient("host")
	code := createSession(t, r, host).Code

	guest := newTestClient("guest")
	send(r, guest, ws.TypeJoinSession, joinSessionRequest{Code: code})

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(waitForMessage(t, guest, ws.TypeJoinSession).Data, &resp))
	assert.Equal(t, code, resp.Code)
	assert.Equal(t, roleSpectator, resp.Role)
	assert.Equal(t, []string{"host", "guest"}, rm.GetSession(code).ClientIDs())

	var info room.Info
	require.NoError(t, json.Unmarshal(waitForMessage(t, host, ws.TypeSessionInfo).Data, &info))
	assert.Equal(t, "host", info.Controller)
}

func TestHandleJoinSession_Errors(t *testing.T) {
	r, rm := setupRouter(t)
	host := newTestClient("host")
	code := createSession(t, r, host).Code

	tests := []struct {
		name     string
		payload  any
		expected string
	}{
		{name: "missing code", payload: map[string]string{}, expected: "code is required"},
		{name: "unknown code", payload: joinSessionRequest{Code: "ZZZZ1"}, expected: "session not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient("c-" + tt.name)
			send(r, c, ws.TypeJoinSession, tt.payload)
			assert.Equal(t, tt.expected, errorText(t, waitForMessage(t, c, ws.TypeError)))
		})
	}

	t.Run("full session", func(t *testing.T) {
		s := rm.GetSession(code)
		for i := s.ClientCount(); i < room.MaxClients; i++ {
			require.NoError(t, s.AddClient(newTestClient("filler")))
		}
		c := newTestClient("late")
		send(r, c, ws.TypeJoinSession, joinSessionRequest{Code: code})
		assert.Equal(t, "session is full", errorText(t, waitForMessage(t, c, ws.TypeError)))
		assert.Empty(t, r.SessionCode("late"))
	})

	t.Run("already in a session", func(t *testing.T) {
		send(r, host, ws.TypeJoinSession, joinSessionRequest{Code: code})
		assert.Equal(t, "already in a session", errorText(t, waitForMessage(t, host, ws.TypeError)))
	})
}

func TestHandlePlayerInput(t *testing.T) {
	r, rm := setupRouter(t)
	host := newTestClient("host")
	code := createSession(t, r, host).Code
	guest := newTestClient("guest")
	send(r, guest, ws.TypeJoinSession, joinSessionRequest{Code: code})
	waitForMessage(t, guest, ws.TypeJoinSession)

	start := rm.GetSession(code).Snapshot().Player.X
	send(r, host, ws.TypePlayerInput, playerInputRequest{X: -1, Y: 0, Power: 1})

	assert.Eventually(t, func() bool {
		return rm.GetSession(code).Snapshot().Player.X < start
	}, time.Second, 10*time.Millisecond, "player moves left")

	t.Run("spectators cannot steer", func(t *testing.T) {
		send(r, guest, ws.TypePlayerInput, playerInputRequest{X: 1, Power: 1})
		assert.Equal(t, "only the controller can move the player", errorText(t, waitForMessage(t, guest, ws.TypeError)))
	})

	t.Run("outside a session", func(t *testing.T) {
		c := newTestClient("loner")
		send(r, c, ws.TypePlayerInput, playerInputRequest{X: 1, Power: 1})
		assert.Equal(t, "not in a session", errorText(t, waitForMessage(t, c, ws.TypeError)))
	})

	t.Run("malformed input", func(t *testing.T) {
		r.HandleMessage(&ws.ClientMessage{Client: host, Data: []byte(`{"type":"player_input","data":{"x":"left"}}`)})
		assert.Equal(t, "invalid input data", errorText(t, waitForMessage(t, host, ws.TypeError)))
	})
}

func TestHandleLeaveSession(t *testing.T) {
	r, rm := setupRouter(t)
	host := newTestClient("host")
	code := createSession(t, r, host).Code
	guest := newTestClient("guest")
	send(r, guest, ws.TypeJoinSession, joinSessionRequest{Code: code})
	waitForMessage(t, guest, ws.TypeJoinSession)
	s := rm.GetSession(code)

	send(r, host, ws.TypeLeaveSession, nil)

	assert.Empty(t, r.SessionCode("host"))
	assert.Equal(t, "guest", s.ControllerID(), "control passes to the next client")
	assert.Equal(t, room.StateRunning, s.State())

	send(r, host, ws.TypeLeaveSession, nil)
	assert.Equal(t, "not in a session", errorText(t, waitForMessage(t, host, ws.TypeError)))

	r.HandleDisconnect(guest)

	assert.Empty(t, r.SessionCode("guest"))
	assert.Nil(t, rm.GetSession(code), "empty sessions are removed")
	assert.Equal(t, room.StateEnded, s.State())
}
