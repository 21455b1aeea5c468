package game

import (
	"math"

	"github.com/google/uuid"

	"github.com/ugaemi/survivalad-server/internal/geom"
)

// Input is the desired movement supplied by the input collaborator each tick.
type Input struct {
	Dir   geom.Vec2
	Power float64
}

type Player struct {
	ID        string
	Pos       geom.Vec2
	Facing    int
	Alive     bool
	Moving    bool
	Attacking bool

	MoveSpeed      float64
	AttackRange    float64
	AttackDamage   int
	AttackCooldown float64 // seconds
	CollectRadius  float64

	// AttackTarget is the monster the current attack is aimed at, or "".
	AttackTarget string
	Stack        []*Item

	input       Input
	attackTimer float64
}

// NewPlayer creates a player at start with an empty stack.
func NewPlayer(s PlayerSettings, start geom.Vec2) *Player {
	return &Player{
		ID:             uuid.New().String(),
		Pos:            start,
		Facing:         1,
		Alive:          true,
		MoveSpeed:      s.MoveSpeed,
		AttackRange:    s.AttackRange,
		AttackDamage:   s.AttackDamage,
		AttackCooldown: s.AttackCooldown.Seconds(),
		CollectRadius:  s.CollectRadius,
	}
}

// SetInput stores the desired move direction and power. The direction is
// normalized and power is clamped to [0, 1].
func (p *Player) SetInput(dir geom.Vec2, power float64) {
	if math.IsNaN(power) {
		power = 0
	}
	p.input = Input{
		Dir:   dir.Normalize(),
		Power: geom.Clamp(power, 0, 1),
	}
}

// Input returns the last input set on the player.
func (p *Player) Input() Input {
	return p.input
}

// PopItem removes the top item from the carried stack. It returns false when
// the stack is empty.
func (p *Player) PopItem() (*Item, bool) {
	n := len(p.Stack)
	if n == 0 {
		return nil, false
	}
	it := p.Stack[n-1]
	p.Stack[n-1] = nil
	p.Stack = p.Stack[:n-1]
	return it, true
}

// StackSize reports how many items the player carries.
func (p *Player) StackSize() int {
	return len(p.Stack)
}

func (p *Player) face(dx float64) {
	if math.Abs(dx) > FacingDeadZone {
		p.Facing = geom.Sign(dx)
	}
}

// updatePlayer moves the player, triggers attacks, and collects items. An
// attack in progress freezes the player until it recovers.
func (w *World) updatePlayer(dt float64) {
	p := w.Player
	if p.Attacking {
		return
	}

	var move geom.Vec2
	if p.input.Power > 0 {
		move = p.input.Dir.Scale(p.MoveSpeed * p.input.Power * dt)
		move = w.Resolver.ResolveMove(p.Pos, move)
		p.Pos = p.Pos.Add(move)
		if move.X != 0 {
			p.Facing = geom.Sign(move.X)
		}
	}
	p.Pos = geom.ClampInto(w.bounds, p.Pos, w.playerHalf)
	p.Moving = !move.IsZero()

	p.attackTimer += dt
	if p.attackTimer >= p.AttackCooldown {
		if target := w.NearestMonster(p.Pos, p.AttackRange); target != nil {
			w.startAttack(target)
		}
	}

	w.collectItems()
}

// NearestMonster returns the closest active monster within maxRange of pos.
// Monsters are scanned in insertion order and the first one found wins a tie.
func (w *World) NearestMonster(pos geom.Vec2, maxRange float64) *Monster {
	var best *Monster
	bestDistSq := maxRange * maxRange
	for _, m := range w.Monsters.Active() {
		d := geom.DistSq(pos, m.Pos)
		if d > maxRange*maxRange {
			continue
		}
		if best == nil || d < bestDistSq {
			best = m
			bestDistSq = d
		}
	}
	return best
}

// startAttack locks the player into an attack. The hit lands after the hit
// delay if the same monster is still alive; the player recovers after the
// recover delay on top of that.
func (w *World) startAttack(m *Monster) {
	p := w.Player
	p.Attacking = true
	p.Moving = false
	p.attackTimer = 0
	p.AttackTarget = m.ID
	p.face(m.Pos.X - p.Pos.X)
	w.emit(Event{Type: EventPlayerAttack, ActorID: m.ID, Pos: m.Pos})

	gen := m.generation
	hitDelay := w.settings.Player.AttackHitDelay
	w.clock.After(hitDelay, ownerPlayer, func() {
		if m.generation != gen {
			return
		}
		w.ApplyDamage(m, p.AttackDamage)
	})
	w.clock.After(hitDelay+w.settings.Player.AttackRecover, ownerPlayer, func() {
		p.Attacking = false
		p.AttackTarget = ""
	})
}

// collectItems picks up every world item within the collect radius.
func (w *World) collectItems() {
	p := w.Player
	items := w.Items.Active()
	r2 := p.CollectRadius * p.CollectRadius
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if geom.DistSq(p.Pos, it.Pos) >= r2 {
			continue
		}
		if !w.Items.Collect(it) {
			continue
		}
		p.Stack = append(p.Stack, it)
		w.emit(Event{Type: EventItemCollected, ActorID: it.ID, Pos: it.Pos, Value: len(p.Stack)})
	}
}
