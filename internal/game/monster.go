package game

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/ugaemi/survivalad-server/internal/geom"
)

type AIState int

const (
	StatePatrolIdle AIState = iota
	StatePatrolMoving
	StateChase
)

// String returns the lowercase state name.
func (s AIState) String() string {
	switch s {
	case StatePatrolIdle:
		return "patrol_idle"
	case StatePatrolMoving:
		return "patrol_moving"
	case StateChase:
		return "chase"
	default:
		return "unknown"
	}
}

// Monster is a hostile actor confined to its hunting region. Monsters are pooled;
// reset re-initializes every mutable field on reuse.
type Monster struct {
	ID             string
	Pos            geom.Vec2
	Facing         int
	Alive          bool
	HP             int
	MaxHP          int
	Speed          float64
	DetectionRange float64
	State          AIState
	Moving         bool
	IdleTimer      float64
	Bar            *HealthBar

	region          geom.Rect
	patrolTarget    geom.Vec2
	hasPatrolTarget bool
	generation      uint64
}

func newMonster() *Monster {
	return &Monster{
		ID:     uuid.New().String(),
		Facing: 1,
	}
}

func (m *Monster) reset(pos geom.Vec2, speed float64, maxHP int, detectionRange float64, region geom.Rect) {
	m.Pos = pos
	m.Facing = 1
	m.Alive = true
	m.HP = maxHP
	m.MaxHP = maxHP
	m.Speed = speed
	m.DetectionRange = detectionRange
	m.State = StatePatrolIdle
	m.Moving = false
	m.IdleTimer = 0
	m.Bar = nil
	m.region = region
	m.patrolTarget = geom.Vec2{}
	m.hasPatrolTarget = false
	m.generation++
}

// PatrolTarget returns the current patrol target, if any.
func (m *Monster) PatrolTarget() (geom.Vec2, bool) {
	return m.patrolTarget, m.hasPatrolTarget
}

// Region returns the hunting region the monster is confined to.
func (m *Monster) Region() geom.Rect {
	return m.region
}

// Update runs one tick of the chase/patrol state machine against the player
// position. dt is in seconds.
func (m *Monster) Update(player geom.Vec2, dt float64, rng *rand.Rand) {
	m.Moving = false

	if geom.Dist(m.Pos, player) <= m.DetectionRange {
		if m.State != StateChase {
			// Patrol restarts fresh once the chase ends.
			m.hasPatrolTarget = false
			m.IdleTimer = 0
		}
		m.State = StateChase
		m.moveTowards(player, m.Speed, dt)
		return
	}

	m.updatePatrol(dt, rng)
}

func (m *Monster) updatePatrol(dt float64, rng *rand.Rand) {
	if m.IdleTimer > 0 {
		m.IdleTimer -= dt
		m.State = StatePatrolIdle
		return
	}

	// Picking a target and moving never happen in the same tick.
	if !m.hasPatrolTarget {
		m.patrolTarget = m.region.RandomPoint(rng)
		m.hasPatrolTarget = true
		m.State = StatePatrolIdle
		return
	}

	if geom.Dist(m.Pos, m.patrolTarget) < ArrivalThreshold {
		m.hasPatrolTarget = false
		m.IdleTimer = PatrolWait
		m.State = StatePatrolIdle
		return
	}

	m.State = StatePatrolMoving
	m.moveTowards(m.patrolTarget, m.Speed*PatrolSpeedRatio, dt)
}

func (m *Monster) moveTowards(target geom.Vec2, speed, dt float64) {
	step := target.Sub(m.Pos).Normalize().Scale(speed * dt)
	if math.Abs(step.X) > FacingDeadZone {
		m.Facing = geom.Sign(step.X)
	}
	m.Pos = geom.ClampInto(m.region, m.Pos.Add(step), 0)
	m.Moving = !step.IsZero()
}
