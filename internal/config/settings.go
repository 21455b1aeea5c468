package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ugaemi/survivalad-server/internal/game"
)

var ErrInvalidSettings = errors.New("invalid settings")

// LoadSettings reads a YAML level file and overlays it onto the default
// settings. Keys missing from the file keep their defaults; an explicit null
// for upgrade_zone or gate removes that part of the level. An empty path
// returns the defaults.
func LoadSettings(path string) (game.Settings, error) {
	s := game.DefaultSettings()
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return game.Settings{}, fmt.Errorf("open settings file: %w", err)
	}
	defer f.Close()

	if err := decodeSettings(f, &s); err != nil {
		return game.Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

func decodeSettings(r io.Reader, s *game.Settings) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return validate(s)
}

func validate(s *game.Settings) error {
	switch {
	case s.World.ActorSize < 0:
		return fmt.Errorf("%w: world.actor_size must not be negative", ErrInvalidSettings)
	case s.Player.MoveSpeed < 0:
		return fmt.Errorf("%w: player.move_speed must not be negative", ErrInvalidSettings)
	case s.Player.AttackCooldown < 0 || s.Player.AttackHitDelay < 0 || s.Player.AttackRecover < 0:
		return fmt.Errorf("%w: player attack timings must not be negative", ErrInvalidSettings)
	case s.Monsters.MaxMonsters < 0:
		return fmt.Errorf("%w: monsters.max_monsters must not be negative", ErrInvalidSettings)
	case s.Monsters.MaxHP <= 0:
		return fmt.Errorf("%w: monsters.max_hp must be positive", ErrInvalidSettings)
	case s.Monsters.RespawnDelay < 0:
		return fmt.Errorf("%w: monsters.respawn_delay must not be negative", ErrInvalidSettings)
	case s.Items.Prewarm < 0:
		return fmt.Errorf("%w: items.prewarm must not be negative", ErrInvalidSettings)
	}
	if z := s.Zone; z != nil && z.RequiredItems <= 0 {
		return fmt.Errorf("%w: upgrade_zone.required_items must be positive", ErrInvalidSettings)
	}
	return nil
}
