package game

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ugaemi/survivalad-server/internal/geom"
	"github.com/ugaemi/survivalad-server/internal/pool"
)

type ItemOwner int

const (
	OwnerWorld ItemOwner = iota
	OwnerPlayer
	OwnerZone
)

// String returns the lowercase owner name.
func (o ItemOwner) String() string {
	switch o {
	case OwnerWorld:
		return "world"
	case OwnerPlayer:
		return "player"
	case OwnerZone:
		return "zone"
	default:
		return "unknown"
	}
}

// Item is a dropped pickup. It stays pool-active while anyone owns it.
type Item struct {
	ID    string
	Pos   geom.Vec2
	Owner ItemOwner
}

func newItem() *Item {
	return &Item{ID: uuid.New().String()}
}

// ItemDirector owns the item pool. Items are never repopulated automatically.
type ItemDirector struct {
	pool *pool.Pool[*Item]
	log  *slog.Logger
}

// NewItemDirector creates the item pool and prewarms it so drops during play do
// not construct new items.
func NewItemDirector(s ItemSettings, log *slog.Logger) *ItemDirector {
	p := pool.New(newItem)
	p.Prewarm(s.Prewarm)
	return &ItemDirector{pool: p, log: log}
}

// Spawn places an item in the world at pos.
func (d *ItemDirector) Spawn(pos geom.Vec2) *Item {
	it, created := d.pool.Acquire()
	if created {
		d.log.Debug("item pool exhausted, constructed new item", "item", it.ID, "pool_size", d.pool.Size())
	}
	it.Pos = pos
	it.Owner = OwnerWorld
	return it
}

// Despawn returns a world or zone item to the pool. Carried items stay with
// the player; it returns false for them and for inactive items.
func (d *ItemDirector) Despawn(it *Item) bool {
	if it == nil || it.Owner == OwnerPlayer {
		return false
	}
	return d.pool.Release(it)
}

// Collect hands a world item to the player.
func (d *ItemDirector) Collect(it *Item) bool {
	if it == nil || !d.pool.IsActive(it) || it.Owner != OwnerWorld {
		return false
	}
	it.Owner = OwnerPlayer
	return true
}

// Deliver marks a carried item as on its way into the upgrade zone.
func (d *ItemDirector) Deliver(it *Item) bool {
	if it == nil || !d.pool.IsActive(it) || it.Owner != OwnerPlayer {
		return false
	}
	it.Owner = OwnerZone
	return true
}

// Active returns the items lying in the world, in spawn order.
func (d *ItemDirector) Active() []*Item {
	all := d.pool.Active()
	out := all[:0]
	for _, it := range all {
		if it.Owner == OwnerWorld {
			out = append(out, it)
		}
	}
	return out
}

// IsActive reports whether the item is in use by anyone.
func (d *ItemDirector) IsActive(it *Item) bool {
	return d.pool.IsActive(it)
}

// ActiveCount counts every in-use item, carried ones included.
func (d *ItemDirector) ActiveCount() int { return d.pool.ActiveCount() }

// FreeCount reports how many items wait in the pool.
func (d *ItemDirector) FreeCount() int { return d.pool.FreeCount() }
