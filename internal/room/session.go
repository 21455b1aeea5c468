package room

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ugaemi/survivalad-server/internal/game"
	"github.com/ugaemi/survivalad-server/internal/geom"
	"github.com/ugaemi/survivalad-server/internal/ws"
)

// MaxClients caps the controller plus spectators attached to one session.
const MaxClients = 8

var (
	ErrSessionFull   = errors.New("session is full")
	ErrSessionEnded  = errors.New("session has ended")
	ErrNotController = errors.New("client does not control the player")
	ErrNotInSession  = errors.New("client is not in this session")
)

// Session is one running world and the clients watching it. The first client
// controls the player; the rest spectate. Control passes to the next client in
// join order when the controller leaves.
type Session struct {
	Code string
	Seed int64

	world   *game.World
	state   SessionState
	clients []*ws.Client
	log     *slog.Logger

	stopCh chan struct{}
	mu     sync.RWMutex
}

// NewSession builds the world for a session and runs its initial spawn.
func NewSession(code string, settings game.Settings, seed int64, log *slog.Logger) *Session {
	log = log.With("session", code)
	w := game.NewWorld(settings, rand.New(rand.NewSource(seed)), log)
	spawned := w.Start()
	log.Info("session created", "seed", seed, "monsters", spawned)

	return &Session{
		Code:  code,
		Seed:  seed,
		world: w,
		state: StateWaiting,
		log:   log,
	}
}

// AddClient attaches a client. The first client becomes the controller.
func (s *Session) AddClient(client *ws.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEnded {
		return ErrSessionEnded
	}
	if len(s.clients) >= MaxClients {
		return ErrSessionFull
	}
	s.clients = append(s.clients, client)
	return nil
}

// RemoveClient detaches a client and returns whether it was attached. If the
// controller leaves, the player stops and the next client takes over.
func (s *Session) RemoveClient(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.clients {
		if c.ID != clientID {
			continue
		}
		s.clients = append(s.clients[:i], s.clients[i+1:]...)
		if i == 0 {
			s.world.SetInput(geom.Vec2{}, 0)
			if len(s.clients) > 0 {
				s.log.Info("control transferred", "client", s.clients[0].ID)
			}
		}
		return true
	}
	return false
}

// ControllerID returns the ID of the controlling client, or "".
func (s *Session) ControllerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controllerID()
}

// controllerID requires s.mu.
func (s *Session) controllerID() string {
	if len(s.clients) == 0 {
		return ""
	}
	return s.clients[0].ID
}

// ClientIDs returns attached client IDs in join order.
func (s *Session) ClientIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.clients))
	for _, c := range s.clients {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasClient reports whether the client is attached to the session.
func (s *Session) HasClient(clientID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == clientID {
			return true
		}
	}
	return false
}

// ClientCount returns the number of attached clients.
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// IsEmpty returns true if no client is attached.
func (s *Session) IsEmpty() bool {
	return s.ClientCount() == 0
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// PlayerID returns the ID of the simulated player.
func (s *Session) PlayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world.Player.ID
}

// SetInput applies movement input from the controlling client.
func (s *Session) SetInput(clientID string, dir geom.Vec2, power float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEnded {
		return ErrSessionEnded
	}
	if clientID != s.controllerID() {
		return ErrNotController
	}
	s.world.SetInput(dir, power)
	return nil
}

// Start runs the tick loop in its own goroutine. Calling Start on a running or
// ended session does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateWaiting {
		return
	}
	s.state = StateRunning
	s.stopCh = make(chan struct{})
	go s.loop(s.stopCh)
	s.log.Info("session started")
}

// Stop ends the session: the loop exits and pending world tasks are cancelled.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return
	}
	if s.stopCh != nil {
		close(s.stopCh)
	}
	s.state = StateEnded
	s.world.Close()
	s.mu.Unlock()

	s.BroadcastMessage(s.InfoMessage())
	s.log.Info("session ended")
}

func (s *Session) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, ok := s.Step(); !ok {
				return
			}
		}
	}
}

// Step advances the world by one tick and streams the resulting snapshot to
// every attached client. It returns false once the session has ended.
func (s *Session) Step() (game.Snapshot, bool) {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return game.Snapshot{}, false
	}
	s.world.Tick(game.TickInterval)
	snap := s.world.Snapshot()
	s.mu.Unlock()

	data, err := EncodeSnapshot(snap)
	if err != nil {
		s.log.Error("failed to encode snapshot", "tick", snap.Tick, "error", err)
		return snap, true
	}
	s.BroadcastBinary(data)
	return snap, true
}

// Snapshot returns the current world state without ticking.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world.Snapshot()
}

// EncodeSnapshot serializes a snapshot for a binary frame.
func EncodeSnapshot(snap game.Snapshot) ([]byte, error) {
	return msgpack.Marshal(&snap)
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (game.Snapshot, error) {
	var snap game.Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}

// BroadcastMessage sends a JSON message to every attached client.
func (s *Session) BroadcastMessage(msg ws.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		c.SendMessage(msg)
	}
}

// BroadcastBinary sends a binary frame to every attached client.
func (s *Session) BroadcastBinary(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		c.SendBinary(data)
	}
}

// Info is the session_info payload.
type Info struct {
	Code       string   `json:"code"`
	State      string   `json:"state"`
	PlayerID   string   `json:"player_id"`
	Controller string   `json:"controller"`
	Clients    []string `json:"clients"`
	Tick       uint64   `json:"tick"`
}

// Info returns a summary of the session for clients.
func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.clients))
	for _, c := range s.clients {
		ids = append(ids, c.ID)
	}
	return Info{
		Code:       s.Code,
		State:      s.state.String(),
		PlayerID:   s.world.Player.ID,
		Controller: s.controllerID(),
		Clients:    ids,
		Tick:       s.world.TickCount(),
	}
}

// InfoMessage wraps Info in a session_info message.
func (s *Session) InfoMessage() ws.Message {
	msg, _ := ws.NewMessage(ws.TypeSessionInfo, s.Info())
	return msg
}
