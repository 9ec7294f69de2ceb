// Package battle resolves turn cycles between the player and one enemy.
// It performs no I/O; presentation layers consume the TurnResult it returns.
package battle

import (
	"errors"
	"fmt"
	"math"

	"battledemo/internal/dice"
)

// GuardFactor scales the enemy hit that follows a guard move.
const GuardFactor = 0.35

var ErrUnknownMove = errors.New("unknown move")

type Engine struct {
	roster Roster
	dice   dice.Source
}

// NewEngine validates roster and returns an engine that rolls with src.
func NewEngine(roster Roster, src dice.Source) (*Engine, error) {
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = dice.Crypto()
	}
	return &Engine{roster: roster, dice: src}, nil
}

func (e *Engine) Roster() Roster {
	return e.roster
}

// Reset returns a fresh battle built from the roster.
func (e *Engine) Reset() State {
	return State{
		Player: e.roster.Player.build(),
		Enemy:  e.roster.Enemy.build(),
	}
}

// ResetAgainst returns a fresh battle with the roster's player facing enemy.
func (e *Engine) ResetAgainst(enemy CombatantDef) (State, error) {
	if err := enemy.validate("enemy"); err != nil {
		return State{}, err
	}
	return State{
		Player: e.roster.Player.build(),
		Enemy:  enemy.build(),
	}, nil
}

// RollDamage returns a uniform int in [min, max].
func RollDamage(src dice.Source, min, max int) int {
	return dice.Between(src, min, max)
}

// ApplyPlayerMoveAt plays the player's move at index.
func (e *Engine) ApplyPlayerMoveAt(st *State, index int) (TurnResult, error) {
	if index < 0 || index >= len(st.Player.Moves) {
		return TurnResult{}, fmt.Errorf("%w: index %d", ErrUnknownMove, index)
	}
	return e.ApplyPlayerMove(st, st.Player.Moves[index]), nil
}

// ApplyPlayerMove resolves one turn cycle: the player's move, then the
// enemy's counter unless the player's move won. Calling it on a finished
// battle changes nothing.
func (e *Engine) ApplyPlayerMove(st *State, move Move) TurnResult {
	if st.Over {
		return TurnResult{Outcome: OutcomeAlreadyOver}
	}

	res := TurnResult{Player: e.playerAction(st, move)}

	// victory is checked before the enemy may act
	if st.Enemy.HP <= 0 {
		st.Over = true
		res.Outcome = OutcomeVictory
		return res
	}

	res.Enemy = e.enemyTurn(st, move.Guard)
	if st.Player.HP <= 0 {
		st.Over = true
		res.Outcome = OutcomeDefeat
		return res
	}
	res.Outcome = OutcomeContinue
	return res
}

func (e *Engine) playerAction(st *State, move Move) *Action {
	act := &Action{Actor: SidePlayer, Move: move.Name}
	if move.Guard {
		act.Guard = true
		act.TargetHP = st.Enemy.HP
		return act
	}
	act.Roll = RollDamage(e.dice, move.Min, move.Max)
	act.Damage = act.Roll
	st.Enemy.HP -= act.Damage
	act.TargetHP = st.Enemy.HP
	return act
}

func (e *Engine) enemyTurn(st *State, playerGuarded bool) *Action {
	moves := st.Enemy.Moves
	if len(moves) == 0 {
		// rosters are validated, so only a hand-built State gets here
		panic(fmt.Sprintf("battle: %v: enemy %q has no moves", ErrInvalidConfiguration, st.Enemy.Name))
	}
	move := moves[e.dice.IntN(len(moves))]

	act := &Action{Actor: SideEnemy, Move: move.Name}
	act.Roll = RollDamage(e.dice, move.Min, move.Max)
	act.Damage = act.Roll
	if playerGuarded {
		act.Damage = Mitigate(act.Roll)
		act.Mitigated = true
	}
	st.Player.HP -= act.Damage
	act.TargetHP = st.Player.HP
	return act
}

// Mitigate applies the guard reduction to a damage roll.
func Mitigate(damage int) int {
	return int(math.Floor(float64(damage) * GuardFactor))
}
