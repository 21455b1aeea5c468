package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/ugaemi/survivalad-server/internal/geom"
	"github.com/ugaemi/survivalad-server/internal/sched"
)

// World is the simulation context for one level. Every component that needs
// another reaches it through World. World is not safe for concurrent use.
type World struct {
	Resolver *Resolver
	Player   *Player
	Monsters *MonsterDirector
	Items    *ItemDirector
	Zone     *UpgradeZone
	Gate     *Gate

	settings   Settings
	log        *slog.Logger
	rng        *rand.Rand
	clock      *sched.Scheduler
	bounds     geom.Rect
	playerHalf float64

	tick       uint64
	events     []Event
	lastEvents []Event
	closed     bool
}

// NewWorld wires a level from settings. Missing geometry is logged once as a
// warning; the parts that depend on it then do nothing.
func NewWorld(s Settings, rng *rand.Rand, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	actorSize := s.World.ActorSize
	if actorSize <= 0 {
		actorSize = DefaultActorSize
	}

	w := &World{
		settings:   s,
		log:        log,
		rng:        rng,
		clock:      sched.New(),
		bounds:     s.World.Map.Normalized(),
		playerHalf: actorSize/2 + s.Player.BoundaryPadding,
	}

	if w.bounds.Empty() {
		log.Warn("world map has no area, player will be pinned to its center")
	}
	if len(s.World.Fences) == 0 {
		log.Warn("no fences configured, player movement is unobstructed")
	}

	w.Resolver = NewResolver(s.World.Fences, actorSize)
	w.Player = NewPlayer(s.Player, s.World.PlayerStart)
	w.Items = NewItemDirector(s.Items, log)
	w.Monsters = NewMonsterDirector(s.Monsters, s.World.HuntingArea, w.clock, rng, log, w.emit)
	if s.Zone != nil {
		w.Zone = NewUpgradeZone(*s.Zone)
	}
	if s.Gate != nil {
		w.Gate = NewGate(*s.Gate)
	}
	return w
}

// Start performs the initial monster spawn and returns how many spawned.
func (w *World) Start() int {
	return w.Monsters.InitialSpawn()
}

// SetInput forwards the input collaborator's move request to the player.
func (w *World) SetInput(dir geom.Vec2, power float64) {
	w.Player.SetInput(dir, power)
}

// Tick advances the simulation by dt and returns the events produced since the
// previous tick.
//
// Order: player movement and attack selection, then due scheduled tasks
// (attack hits, respawns, zone deliveries), then monster AI in insertion order,
// then the upgrade zone and gate.
func (w *World) Tick(dt time.Duration) []Event {
	if w.closed {
		return nil
	}
	w.tick++
	w.clock.Advance(dt)
	secs := dt.Seconds()

	w.updatePlayer(secs)
	w.clock.RunDue()

	player := w.Player.Pos
	for _, m := range w.Monsters.Active() {
		m.Update(player, secs, w.rng)
	}

	w.updateZone(secs)
	w.updateGate()

	w.lastEvents = w.events
	w.events = nil
	return w.lastEvents
}

// Close cancels every pending task. The world does not tick afterwards.
func (w *World) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.Monsters.Close()
	w.clock.CancelAll()
}

// Closed reports whether Close has been called.
func (w *World) Closed() bool {
	return w.closed
}

// Now returns simulated time since the world was created.
func (w *World) Now() time.Duration {
	return w.clock.Now()
}

// TickCount returns the number of ticks run so far.
func (w *World) TickCount() uint64 {
	return w.tick
}

// PendingTasks returns the number of scheduled tasks that have not run.
func (w *World) PendingTasks() int {
	return w.clock.Pending()
}

// Bounds returns the rect the player is confined to.
func (w *World) Bounds() geom.Rect {
	return w.bounds
}

// ActiveMonsters returns the active monsters. The slice is valid for the
// current tick only.
func (w *World) ActiveMonsters() []*Monster {
	return w.Monsters.Active()
}

// ActiveItems returns the items lying in the world. The slice is valid for the
// current tick only.
func (w *World) ActiveItems() []*Item {
	return w.Items.Active()
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}
