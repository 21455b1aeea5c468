package game

import (
	"github.com/ugaemi/survivalad-server/internal/geom"
)

// UpgradeZone consumes carried items while the player stands in it. Every
// RequiredItems deliveries raise the player's attack damage and the next
// requirement.
type UpgradeZone struct {
	Pos      geom.Vec2
	Radius   float64
	Required int
	Current  int
	Level    int

	settings     ZoneSettings
	consumeTimer float64
}

// NewUpgradeZone creates a level 0 zone.
func NewUpgradeZone(s ZoneSettings) *UpgradeZone {
	return &UpgradeZone{
		Pos:      s.Pos,
		Radius:   s.Radius,
		Required: s.RequiredItems,
		settings: s,
	}
}

func (w *World) updateZone(dt float64) {
	z := w.Zone
	p := w.Player
	if z == nil || geom.Dist(z.Pos, p.Pos) > z.Radius {
		return
	}
	if p.StackSize() == 0 || z.Current >= z.Required {
		return
	}

	z.consumeTimer += dt
	if z.consumeTimer <= z.settings.ConsumeInterval.Seconds() {
		return
	}
	z.consumeTimer = 0

	it, ok := p.PopItem()
	if !ok {
		return
	}
	if !w.Items.Deliver(it) {
		w.log.Warn("dropped stack item not owned by player", "item", it.ID, "owner", it.Owner)
		return
	}
	w.clock.After(z.settings.DeliveryDelay, ownerZone, func() {
		w.deliverItem(it)
	})
}

func (w *World) deliverItem(it *Item) {
	z := w.Zone
	if !w.Items.Despawn(it) {
		return
	}
	z.Current++
	w.emit(Event{Type: EventItemDelivered, ActorID: it.ID, Pos: z.Pos, Value: z.Current})

	if z.Current < z.Required {
		return
	}
	w.Player.AttackDamage += z.settings.DamageBonus
	z.Current = 0
	z.Required += z.settings.RequirementStep
	z.Level++
	w.emit(Event{Type: EventUpgrade, ActorID: w.Player.ID, Pos: z.Pos, Value: w.Player.AttackDamage})
	w.log.Info("upgrade complete", "level", z.Level, "damage", w.Player.AttackDamage, "next_required", z.Required)
}

// Gate slides open when the player comes near. It has no collision geometry.
type Gate struct {
	Pos           geom.Vec2
	TriggerRadius float64
	Open          bool
}

// NewGate creates an unopened gate.
func NewGate(s GateSettings) *Gate {
	return &Gate{Pos: s.Pos, TriggerRadius: s.TriggerRadius}
}

// Update opens or closes the gate and reports whether its state changed.
func (g *Gate) Update(player geom.Vec2) bool {
	near := geom.Dist(g.Pos, player) < g.TriggerRadius
	if near == g.Open {
		return false
	}
	g.Open = near
	return true
}

func (w *World) updateGate() {
	g := w.Gate
	if g == nil || !g.Update(w.Player.Pos) {
		return
	}
	t := EventGateClosed
	if g.Open {
		t = EventGateOpened
	}
	w.emit(Event{Type: t, Pos: g.Pos})
}
