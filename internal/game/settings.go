package game

import (
	"time"

	"github.com/ugaemi/survivalad-server/internal/geom"
)

// Settings is the full tuning and layout of one simulated level.
type Settings struct {
	Seed     int64           `yaml:"seed"`
	World    WorldSettings   `yaml:"world"`
	Player   PlayerSettings  `yaml:"player"`
	Monsters MonsterSettings `yaml:"monsters"`
	Items    ItemSettings    `yaml:"items"`
	Zone     *ZoneSettings   `yaml:"upgrade_zone"`
	Gate     *GateSettings   `yaml:"gate"`
}

// WorldSettings describes static level geometry.
type WorldSettings struct {
	Map         geom.Rect   `yaml:"map"`
	HuntingArea *geom.Rect  `yaml:"hunting_area"`
	Fences      []geom.Rect `yaml:"fences"`
	PlayerStart geom.Vec2   `yaml:"player_start"`
	ActorSize   float64     `yaml:"actor_size"`
}

type PlayerSettings struct {
	MoveSpeed       float64       `yaml:"move_speed"`
	BoundaryPadding float64       `yaml:"boundary_padding"`
	AttackRange     float64       `yaml:"attack_range"`
	AttackDamage    int           `yaml:"attack_damage"`
	AttackCooldown  time.Duration `yaml:"attack_cooldown"`
	AttackHitDelay  time.Duration `yaml:"attack_hit_delay"`
	AttackRecover   time.Duration `yaml:"attack_recover"`
	CollectRadius   float64       `yaml:"collect_radius"`
}

type MonsterSettings struct {
	MaxMonsters    int           `yaml:"max_monsters"`
	MaxHP          int           `yaml:"max_hp"`
	BaseSpeed      float64       `yaml:"base_speed"`
	SpeedVariance  float64       `yaml:"speed_variance"`
	DetectionRange float64       `yaml:"detection_range"`
	RespawnDelay   time.Duration `yaml:"respawn_delay"`
}

type ItemSettings struct {
	Prewarm int `yaml:"prewarm"`
}

type ZoneSettings struct {
	Pos             geom.Vec2     `yaml:"pos"`
	Radius          float64       `yaml:"radius"`
	RequiredItems   int           `yaml:"required_items"`
	RequirementStep int           `yaml:"requirement_step"`
	DamageBonus     int           `yaml:"damage_bonus"`
	ConsumeInterval time.Duration `yaml:"consume_interval"`
	DeliveryDelay   time.Duration `yaml:"delivery_delay"`
}

type GateSettings struct {
	Pos           geom.Vec2 `yaml:"pos"`
	TriggerRadius float64   `yaml:"trigger_radius"`
}

// DefaultSettings returns a playable level centered on the origin: a fenced
// hunting ground on the right with a gate in the fence, and the upgrade zone on
// the left.
func DefaultSettings() Settings {
	hunting := geom.Rect{X: 250, Y: -750, W: 650, H: 1500}
	return Settings{
		World: WorldSettings{
			Map:         geom.Rect{X: -1000, Y: -1000, W: 2000, H: 2000},
			HuntingArea: &hunting,
			Fences: []geom.Rect{
				{X: 140, Y: -850, W: 20, H: 790},
				{X: 140, Y: 60, W: 20, H: 790},
				{X: 140, Y: -870, W: 860, H: 20},
				{X: 140, Y: 850, W: 860, H: 20},
			},
			PlayerStart: geom.V(-300, 0),
			ActorSize:   DefaultActorSize,
		},
		Player: PlayerSettings{
			MoveSpeed:      300,
			AttackRange:    200,
			AttackDamage:   10,
			AttackCooldown: 500 * time.Millisecond,
			AttackHitDelay: 100 * time.Millisecond,
			AttackRecover:  150 * time.Millisecond,
			CollectRadius:  100,
		},
		Monsters: MonsterSettings{
			MaxMonsters:    20,
			MaxHP:          30,
			BaseSpeed:      30,
			SpeedVariance:  20,
			DetectionRange: 200,
			RespawnDelay:   time.Second,
		},
		Items: ItemSettings{
			Prewarm: 20,
		},
		Zone: &ZoneSettings{
			Pos:             geom.V(-600, 0),
			Radius:          200,
			RequiredItems:   10,
			RequirementStep: 5,
			DamageBonus:     5,
			ConsumeInterval: 100 * time.Millisecond,
			DeliveryDelay:   300 * time.Millisecond,
		},
		Gate: &GateSettings{
			Pos:           geom.V(150, 0),
			TriggerRadius: 100,
		},
	}
}
