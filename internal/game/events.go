package game

import "github.com/ugaemi/survivalad-server/internal/geom"

type EventType int

const (
	EventMonsterSpawned EventType = iota
	EventMonsterHit
	EventMonsterDied
	EventItemSpawned
	EventItemCollected
	EventItemDelivered
	EventPlayerAttack
	EventUpgrade
	EventGateOpened
	EventGateClosed
)

// String returns the wire name of the event type.
func (e EventType) String() string {
	switch e {
	case EventMonsterSpawned:
		return "monster_spawned"
	case EventMonsterHit:
		return "monster_hit"
	case EventMonsterDied:
		return "monster_died"
	case EventItemSpawned:
		return "item_spawned"
	case EventItemCollected:
		return "item_collected"
	case EventItemDelivered:
		return "item_delivered"
	case EventPlayerAttack:
		return "player_attack"
	case EventUpgrade:
		return "upgrade"
	case EventGateOpened:
		return "gate_opened"
	case EventGateClosed:
		return "gate_closed"
	default:
		return "unknown"
	}
}

// Event is something observable that happened during a tick. Renderers use
// events for effects; the simulation never reads them back.
type Event struct {
	Type    EventType
	ActorID string
	Pos     geom.Vec2
	Value   int
}

// CountEvents returns how many events of type t are in events.
func CountEvents(events []Event, t EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}
