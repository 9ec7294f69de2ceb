package battle

// Move is an action a combatant can take. Guard moves deal no damage and
// soften the next enemy hit instead.
type Move struct {
	Name  string `yaml:"name"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Guard bool   `yaml:"guard"`
}

// Combatant is one side of a battle. HP is allowed to drop below zero;
// Snapshot clamps it for display.
type Combatant struct {
	Name  string
	HP    int
	MaxHP int
	Moves []Move
}

// State is a single battle between the player and one enemy.
type State struct {
	Player Combatant
	Enemy  Combatant
	Over   bool
}

type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Outcome reports where a turn left the battle.
type Outcome string

const (
	OutcomeContinue    Outcome = "continue"
	OutcomeVictory     Outcome = "victory"
	OutcomeDefeat      Outcome = "defeat"
	OutcomeAlreadyOver Outcome = "already_over"
)

// Action describes one half of a turn cycle.
type Action struct {
	Actor Side
	Move  string
	// Roll is the raw damage roll; Damage is what was applied after mitigation.
	Roll      int
	Damage    int
	Guard     bool
	Mitigated bool
	// TargetHP is the target's HP after Damage was applied.
	TargetHP int
}

// TurnResult captures everything one call to ApplyPlayerMove did.
// Enemy is nil when the player's half ended the battle or the call was a no-op.
type TurnResult struct {
	Player  *Action
	Enemy   *Action
	Outcome Outcome
}

// Finished reports whether this turn moved the battle into its terminal state.
func (r TurnResult) Finished() bool {
	return r.Outcome == OutcomeVictory || r.Outcome == OutcomeDefeat
}

// CombatantView is the display form of a combatant.
type CombatantView struct {
	Name  string
	HP    int
	MaxHP int
}

// Percent returns remaining health as 0-100 for health bars.
func (v CombatantView) Percent() int {
	if v.MaxHP <= 0 {
		return 0
	}
	return v.HP * 100 / v.MaxHP
}

// Snapshot is what render collaborators consume.
type Snapshot struct {
	Player CombatantView
	Enemy  CombatantView
	Over   bool
}

// Snapshot returns the display view of st with HP clamped at zero.
func (st State) Snapshot() Snapshot {
	return Snapshot{
		Player: view(st.Player),
		Enemy:  view(st.Enemy),
		Over:   st.Over,
	}
}

func view(c Combatant) CombatantView {
	return CombatantView{Name: c.Name, HP: max(0, c.HP), MaxHP: c.MaxHP}
}
