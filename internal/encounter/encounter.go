// Package encounter decides when walking across the map starts a battle.
package encounter

import (
	"errors"
	"fmt"
	"math"

	"battledemo/internal/dice"
)

// DefaultRate is the chance that a tile change triggers an encounter.
const DefaultRate = 0.1

var ErrInvalidConfiguration = errors.New("invalid encounter configuration")

// Enemy is an immutable catalog entry.
type Enemy struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	HP    int    `yaml:"hp"`
}

// Config is the encounter rate plus the catalog enemies are drawn from.
type Config struct {
	Rate    float64 `yaml:"rate"`
	Enemies []Enemy `yaml:"enemies"`
}

func DefaultConfig() Config {
	return Config{
		Rate: DefaultRate,
		Enemies: []Enemy{
			{ID: "slime", Name: "Slime", Level: 3, HP: 28},
			{ID: "bat", Name: "Dark Bat", Level: 4, HP: 32},
			{ID: "wolf", Name: "Wild Wolf", Level: 5, HP: 38},
			{ID: "golem", Name: "Stone Golem", Level: 6, HP: 45},
		},
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.Rate) || c.Rate < 0 || c.Rate > 1 {
		return fmt.Errorf("%w: rate %v outside [0, 1]", ErrInvalidConfiguration, c.Rate)
	}
	if len(c.Enemies) == 0 {
		return fmt.Errorf("%w: empty enemy catalog", ErrInvalidConfiguration)
	}
	seen := make(map[string]bool, len(c.Enemies))
	for _, en := range c.Enemies {
		if en.ID == "" || en.Name == "" {
			return fmt.Errorf("%w: enemy needs id and name (%+v)", ErrInvalidConfiguration, en)
		}
		if seen[en.ID] {
			return fmt.Errorf("%w: duplicate enemy id %q", ErrInvalidConfiguration, en.ID)
		}
		seen[en.ID] = true
		if en.HP <= 0 {
			return fmt.Errorf("%w: enemy %q has hp %d", ErrInvalidConfiguration, en.ID, en.HP)
		}
	}
	return nil
}

// Tile is a grid cell on the map.
type Tile struct {
	X int
	Y int
}

// TileAt returns the tile containing world position (x, y).
func TileAt(x, y float64, tileSize int) Tile {
	size := float64(tileSize)
	return Tile{
		X: int(math.Floor(x / size)),
		Y: int(math.Floor(y / size)),
	}
}

// Selector holds no state besides its configuration and random source.
type Selector struct {
	cfg  Config
	dice dice.Source
}

func NewSelector(cfg Config, src dice.Source) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = dice.Crypto()
	}
	return &Selector{cfg: cfg, dice: src}, nil
}

// Resolve reports the enemy met when moving from prev to cur, if any.
// A nil prev (first tick) or an unchanged tile never triggers.
func (s *Selector) Resolve(prev *Tile, cur Tile) (Enemy, bool) {
	if prev == nil || *prev == cur {
		return Enemy{}, false
	}
	if s.dice.Float64() >= s.cfg.Rate {
		return Enemy{}, false
	}
	return s.cfg.Enemies[s.dice.IntN(len(s.cfg.Enemies))], true
}
