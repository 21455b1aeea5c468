package game

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/ugaemi/survivalad-server/internal/geom"
	"github.com/ugaemi/survivalad-server/internal/pool"
	"github.com/ugaemi/survivalad-server/internal/sched"
)

var (
	ErrCapReached     = errors.New("monster cap reached")
	ErrRegionNotReady = errors.New("hunting region not ready")
	ErrDirectorClosed = errors.New("monster director closed")
)

// MonsterDirector keeps the monster population at its cap: it spawns monsters
// inside the hunting region and schedules one replacement per despawn.
type MonsterDirector struct {
	settings MonsterSettings
	monsters *pool.Pool[*Monster]
	bars     *pool.Pool[*HealthBar]

	region    geom.Rect
	hasRegion bool

	clock  *sched.Scheduler
	rng    *rand.Rand
	log    *slog.Logger
	emit   func(Event)
	closed bool
}

// NewMonsterDirector creates a director. A nil region leaves the director not
// ready until SetHuntingRegion is called; spawns fail with ErrRegionNotReady
// meanwhile.
func NewMonsterDirector(s MonsterSettings, region *geom.Rect, clock *sched.Scheduler, rng *rand.Rand, log *slog.Logger, emit func(Event)) *MonsterDirector {
	d := &MonsterDirector{
		settings: s,
		monsters: pool.New(newMonster),
		bars:     pool.New(newHealthBar),
		clock:    clock,
		rng:      rng,
		log:      log,
		emit:     emit,
	}
	if region != nil {
		d.SetHuntingRegion(*region)
	} else {
		log.Warn("hunting area is not set, monsters will not spawn until it is")
	}
	return d
}

// SetHuntingRegion establishes the region monsters spawn and roam in.
func (d *MonsterDirector) SetHuntingRegion(r geom.Rect) {
	d.region = r.Normalized()
	d.hasRegion = true
	d.log.Info("hunting area ready", "x", d.region.X, "y", d.region.Y, "w", d.region.W, "h", d.region.H)
}

// Ready reports whether a hunting region has been established.
func (d *MonsterDirector) Ready() bool {
	return d.hasRegion
}

// Region returns the hunting region and whether it is set.
func (d *MonsterDirector) Region() (geom.Rect, bool) {
	return d.region, d.hasRegion
}

// Spawn activates one monster at a random point in the hunting region.
func (d *MonsterDirector) Spawn() (*Monster, error) {
	if d.closed {
		return nil, ErrDirectorClosed
	}
	if d.monsters.ActiveCount() >= d.settings.MaxMonsters {
		return nil, ErrCapReached
	}
	if !d.hasRegion {
		d.log.Debug("spawn skipped", "reason", ErrRegionNotReady)
		return nil, ErrRegionNotReady
	}

	m, _ := d.monsters.Acquire()
	speed := d.settings.BaseSpeed + (d.rng.Float64()-0.5)*d.settings.SpeedVariance
	m.reset(d.region.RandomPoint(d.rng), speed, d.settings.MaxHP, d.settings.DetectionRange, d.region)

	bar, _ := d.bars.Acquire()
	bar.OwnerID = m.ID
	bar.Update(m.HP, m.MaxHP)
	m.Bar = bar

	d.emit(Event{Type: EventMonsterSpawned, ActorID: m.ID, Pos: m.Pos})
	return m, nil
}

// InitialSpawn fills the population up to the cap and returns how many spawned.
func (d *MonsterDirector) InitialSpawn() int {
	n := 0
	for i := 0; i < d.settings.MaxMonsters; i++ {
		if _, err := d.Spawn(); err != nil {
			break
		}
		n++
	}
	d.log.Info("initial spawn", "monsters", n, "cap", d.settings.MaxMonsters)
	return n
}

// Despawn deactivates a monster and schedules exactly one replacement spawn
// after the respawn delay. It returns false if the monster was not active.
func (d *MonsterDirector) Despawn(m *Monster) bool {
	if m == nil || !d.monsters.Release(m) {
		return false
	}
	m.Alive = false
	m.Moving = false
	d.releaseBar(m)

	if d.closed {
		return true
	}
	d.clock.After(d.settings.RespawnDelay, ownerMonsters, func() {
		if _, err := d.Spawn(); err != nil {
			// A slot that cannot be filled when the delay elapses is dropped.
			d.log.Debug("respawn dropped", "error", err)
		}
	})
	return true
}

func (d *MonsterDirector) releaseBar(m *Monster) {
	if m.Bar == nil {
		return
	}
	m.Bar.OwnerID = ""
	d.bars.Release(m.Bar)
	m.Bar = nil
}

// IsActive reports whether m is currently in the active set.
func (d *MonsterDirector) IsActive(m *Monster) bool {
	return m != nil && d.monsters.IsActive(m)
}

// Active returns the active monsters in insertion order.
func (d *MonsterDirector) Active() []*Monster {
	return d.monsters.Active()
}

// ActiveCount reports how many monsters are alive.
func (d *MonsterDirector) ActiveCount() int { return d.monsters.ActiveCount() }

// FreeCount reports how many monsters wait in the pool.
func (d *MonsterDirector) FreeCount() int { return d.monsters.FreeCount() }

// ActiveBars counts health bars currently attached to monsters.
func (d *MonsterDirector) ActiveBars() int { return d.bars.ActiveCount() }

// PendingRespawns counts scheduled replacement spawns.
func (d *MonsterDirector) PendingRespawns() int {
	return d.clock.PendingFor(ownerMonsters)
}

// Cap returns the population cap.
func (d *MonsterDirector) Cap() int { return d.settings.MaxMonsters }

// Close cancels pending respawns. Later despawns schedule nothing.
func (d *MonsterDirector) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if n := d.clock.CancelOwner(ownerMonsters); n > 0 {
		d.log.Debug("pending respawns cancelled", "count", n)
	}
}
