package battle

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfiguration is returned when roster content can't produce a
// playable battle.
var ErrInvalidConfiguration = errors.New("invalid battle configuration")

// CombatantDef is the configured template a Combatant is built from.
type CombatantDef struct {
	Name  string `yaml:"name"`
	HP    int    `yaml:"hp"`
	Moves []Move `yaml:"moves"`
}

// Roster defines the two combatants every fresh battle starts with.
type Roster struct {
	Player CombatantDef `yaml:"player"`
	Enemy  CombatantDef `yaml:"enemy"`
}

// DefaultRoster is the demo matchup.
func DefaultRoster() Roster {
	return Roster{
		Player: CombatantDef{
			Name: "Fire Wolf",
			HP:   130,
			Moves: []Move{
				{Name: "Scratch", Min: 12, Max: 20},
				{Name: "Fire Fang", Min: 18, Max: 28},
				{Name: "Bite", Min: 10, Max: 24},
				{Name: "Protect", Guard: true},
			},
		},
		Enemy: CombatantDef{
			Name: "Slime King",
			HP:   120,
			Moves: []Move{
				{Name: "Tackle", Min: 10, Max: 18},
				{Name: "Poison Breath", Min: 12, Max: 22},
				{Name: "Slime Shot", Min: 8, Max: 25},
			},
		},
	}
}

// Validate checks both combatant definitions.
func (r Roster) Validate() error {
	if err := r.Player.validate("player"); err != nil {
		return err
	}
	return r.Enemy.validate("enemy")
}

func (d CombatantDef) validate(role string) error {
	if d.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidConfiguration, role)
	}
	if d.HP <= 0 {
		return fmt.Errorf("%w: %s %q has hp %d", ErrInvalidConfiguration, role, d.Name, d.HP)
	}
	if len(d.Moves) == 0 {
		return fmt.Errorf("%w: %s %q has no moves", ErrInvalidConfiguration, role, d.Name)
	}
	for _, m := range d.Moves {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%s %q: %w", role, d.Name, err)
		}
	}
	return nil
}

// Validate checks the damage range of a move.
func (m Move) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: move has no name", ErrInvalidConfiguration)
	}
	if m.Min < 0 || m.Min > m.Max {
		return fmt.Errorf("%w: move %q has range [%d, %d]", ErrInvalidConfiguration, m.Name, m.Min, m.Max)
	}
	return nil
}

func (d CombatantDef) build() Combatant {
	return Combatant{
		Name:  d.Name,
		HP:    d.HP,
		MaxHP: d.HP,
		Moves: slices.Clone(d.Moves),
	}
}
