// Package match holds one player's battle between requests.
//
// The engine resolves a whole turn at once, but the browser shows the enemy's
// half after a short delay. Pending holds that unrevealed result; while it is
// set the match refuses new moves.
package match

import (
	"errors"
	"fmt"
	"slices"

	"battledemo/internal/battle"
	"battledemo/internal/encounter"
)

// JournalLimit caps the number of kept log lines.
const JournalLimit = 50

var (
	ErrBusy     = errors.New("turn in progress")
	ErrNoBattle = errors.New("no battle in progress")
)

type Match struct {
	Battle *battle.State
	// Foe is the catalog entry this battle was started from; nil for the
	// roster's default enemy.
	Foe     *encounter.Enemy
	Pending *battle.TurnResult
	// Journal is newest first.
	Journal []string
	// Tile is the walker's map position; nil until the map is first opened.
	Tile *encounter.Tile
}

// Clone returns a copy that shares no mutable state with m. Session
// updates work on a clone so readers of the stored value never see a
// battle change under them.
func (m Match) Clone() Match {
	out := m
	if m.Battle != nil {
		st := *m.Battle
		out.Battle = &st
	}
	if m.Pending != nil {
		res := *m.Pending
		out.Pending = &res
	}
	if m.Foe != nil {
		foe := *m.Foe
		out.Foe = &foe
	}
	if m.Tile != nil {
		t := *m.Tile
		out.Tile = &t
	}
	out.Journal = slices.Clone(m.Journal)
	return out
}

// Busy reports whether an enemy half is waiting to be revealed.
func (m *Match) Busy() bool {
	return m.Pending != nil
}

// Reset starts a fresh battle against the same opponent.
func (m *Match) Reset(e *battle.Engine) error {
	if m.Foe != nil {
		return m.Enter(e, *m.Foe)
	}
	m.StartDefault(e)
	return nil
}

// StartDefault starts a fresh battle against the roster's own enemy,
// dropping any encounter opponent.
func (m *Match) StartDefault(e *battle.Engine) {
	st := e.Reset()
	m.begin(&st, nil)
}

// Enter starts a battle against a catalog enemy using the roster enemy's moves.
func (m *Match) Enter(e *battle.Engine, foe encounter.Enemy) error {
	st, err := e.ResetAgainst(battle.CombatantDef{
		Name:  foe.Name,
		HP:    foe.HP,
		Moves: e.Roster().Enemy.Moves,
	})
	if err != nil {
		return fmt.Errorf("enter battle with %s: %w", foe.ID, err)
	}
	m.begin(&st, &foe)
	return nil
}

func (m *Match) begin(st *battle.State, foe *encounter.Enemy) {
	m.Battle = st
	m.Foe = foe
	m.Pending = nil
	m.Journal = nil
}

// Submit plays the player's move at index. A finished battle yields an
// already-over result and no error.
func (m *Match) Submit(e *battle.Engine, index int) (battle.TurnResult, error) {
	if m.Battle == nil {
		return battle.TurnResult{}, ErrNoBattle
	}
	if m.Busy() {
		return battle.TurnResult{}, ErrBusy
	}
	res, err := e.ApplyPlayerMoveAt(m.Battle, index)
	if err != nil {
		return battle.TurnResult{}, err
	}
	if res.Enemy != nil {
		m.Pending = &res
	}
	return res, nil
}

// Reveal pops the pending result.
func (m *Match) Reveal() (battle.TurnResult, bool) {
	if m.Pending == nil {
		return battle.TurnResult{}, false
	}
	res := *m.Pending
	m.Pending = nil
	return res, true
}

// Shown is the snapshot the player should currently see: while a turn is
// pending the enemy's damage is not applied yet.
func (m *Match) Shown() battle.Snapshot {
	if m.Battle == nil {
		return battle.Snapshot{}
	}
	snap := m.Battle.Snapshot()
	if m.Pending != nil && m.Pending.Enemy != nil {
		act := m.Pending.Enemy
		snap.Player.HP = max(0, act.TargetHP+act.Damage)
		snap.Over = false
	}
	return snap
}

// Record adds lines to the journal. Lines are given oldest first.
func (m *Match) Record(lines ...string) {
	if len(lines) == 0 {
		return
	}
	rev := slices.Clone(lines)
	slices.Reverse(rev)
	m.Journal = append(rev, m.Journal...)
	if len(m.Journal) > JournalLimit {
		m.Journal = m.Journal[:JournalLimit]
	}
}
