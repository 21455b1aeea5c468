package game

// Snapshot is the per-tick view handed to renderers.
type Snapshot struct {
	Tick     uint64         `json:"tick" msgpack:"tick"`
	Time     float64        `json:"time" msgpack:"time"`
	Player   PlayerState    `json:"player" msgpack:"player"`
	Monsters []MonsterState `json:"monsters" msgpack:"monsters"`
	Items    []ItemState    `json:"items" msgpack:"items"`
	Zone     *ZoneState     `json:"zone,omitempty" msgpack:"zone,omitempty"`
	Gate     *GateState     `json:"gate,omitempty" msgpack:"gate,omitempty"`
	Events   []EventState   `json:"events,omitempty" msgpack:"events,omitempty"`
}

type PlayerState struct {
	ID        string  `json:"id" msgpack:"id"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Facing    int     `json:"facing" msgpack:"facing"`
	Moving    bool    `json:"moving" msgpack:"moving"`
	Attacking bool    `json:"attacking" msgpack:"attacking"`
	Damage    int     `json:"damage" msgpack:"damage"`
	Stack     int     `json:"stack" msgpack:"stack"`
}

type MonsterState struct {
	ID     string  `json:"id" msgpack:"id"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Facing int     `json:"facing" msgpack:"facing"`
	Moving bool    `json:"moving" msgpack:"moving"`
	HP     int     `json:"hp" msgpack:"hp"`
	MaxHP  int     `json:"max_hp" msgpack:"max_hp"`
	Health float64 `json:"health" msgpack:"health"`
	State  string  `json:"state" msgpack:"state"`
}

type ItemState struct {
	ID string  `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
}

type ZoneState struct {
	Current  int `json:"current" msgpack:"current"`
	Required int `json:"required" msgpack:"required"`
	Level    int `json:"level" msgpack:"level"`
}

type GateState struct {
	Open bool `json:"open" msgpack:"open"`
}

type EventState struct {
	Type    string  `json:"type" msgpack:"type"`
	ActorID string  `json:"actor_id,omitempty" msgpack:"actor_id,omitempty"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Value   int     `json:"value,omitempty" msgpack:"value,omitempty"`
}

// Snapshot captures the current state together with the events of the last tick.
func (w *World) Snapshot() Snapshot {
	p := w.Player
	snap := Snapshot{
		Tick: w.tick,
		Time: w.clock.Now().Seconds(),
		Player: PlayerState{
			ID:        p.ID,
			X:         p.Pos.X,
			Y:         p.Pos.Y,
			Facing:    p.Facing,
			Moving:    p.Moving,
			Attacking: p.Attacking,
			Damage:    p.AttackDamage,
			Stack:     p.StackSize(),
		},
	}

	monsters := w.Monsters.Active()
	snap.Monsters = make([]MonsterState, 0, len(monsters))
	for _, m := range monsters {
		health := 0.0
		if m.Bar != nil {
			health = m.Bar.Ratio
		}
		snap.Monsters = append(snap.Monsters, MonsterState{
			ID:     m.ID,
			X:      m.Pos.X,
			Y:      m.Pos.Y,
			Facing: m.Facing,
			Moving: m.Moving,
			HP:     m.HP,
			MaxHP:  m.MaxHP,
			Health: health,
			State:  m.State.String(),
		})
	}

	items := w.Items.Active()
	snap.Items = make([]ItemState, 0, len(items))
	for _, it := range items {
		snap.Items = append(snap.Items, ItemState{ID: it.ID, X: it.Pos.X, Y: it.Pos.Y})
	}

	if w.Zone != nil {
		snap.Zone = &ZoneState{Current: w.Zone.Current, Required: w.Zone.Required, Level: w.Zone.Level}
	}
	if w.Gate != nil {
		snap.Gate = &GateState{Open: w.Gate.Open}
	}

	for _, e := range w.lastEvents {
		snap.Events = append(snap.Events, EventState{
			Type:    e.Type.String(),
			ActorID: e.ActorID,
			X:       e.Pos.X,
			Y:       e.Pos.Y,
			Value:   e.Value,
		})
	}
	return snap
}
