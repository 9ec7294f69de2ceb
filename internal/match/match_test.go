package match

import (
	"errors"
	"fmt"
	"testing"

	"battledemo/internal/battle"
	"battledemo/internal/encounter"
)

// steady always draws the lowest value.
type steady struct{}

func (steady) IntN(int) int     { return 0 }
func (steady) Float64() float64 { return 0 }

func testEngine(t *testing.T, enemyHP int) *battle.Engine {
	t.Helper()
	e, err := battle.NewEngine(battle.Roster{
		Player: battle.CombatantDef{Name: "Hero", HP: 50, Moves: []battle.Move{
			{Name: "Hit", Min: 10, Max: 10},
			{Name: "Guard", Guard: true},
		}},
		Enemy: battle.CombatantDef{Name: "Slime", HP: enemyHP, Moves: []battle.Move{
			{Name: "Ooze", Min: 4, Max: 9},
		}},
	}, steady{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestSubmit_BusyUntilRevealed(t *testing.T) {
	e := testEngine(t, 100)
	var m Match
	if err := m.Reset(e); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	res, err := m.Submit(e, 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Enemy == nil {
		t.Fatal("Expected enemy counter")
	}
	if !m.Busy() {
		t.Fatal("Expected match to be busy")
	}

	enemyHP := m.Battle.Enemy.HP
	if _, err := m.Submit(e, 0); !errors.Is(err, ErrBusy) {
		t.Fatalf("Expected ErrBusy, got %v", err)
	}
	if m.Battle.Enemy.HP != enemyHP {
		t.Error("Rejected submit must not change state")
	}

	got, ok := m.Reveal()
	if !ok || got.Enemy == nil || got.Enemy.Damage != 4 {
		t.Fatalf("Expected pending result with 4 damage, got %+v (%v)", got, ok)
	}
	if m.Busy() {
		t.Error("Expected idle after reveal")
	}
	if _, ok := m.Reveal(); ok {
		t.Error("Expected nothing left to reveal")
	}
	if _, err := m.Submit(e, 0); err != nil {
		t.Errorf("Expected submit to succeed after reveal, got %v", err)
	}
}

func TestShown_HidesEnemyHalfWhilePending(t *testing.T) {
	e := testEngine(t, 100)
	var m Match
	if err := m.Reset(e); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := m.Submit(e, 0); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	shown := m.Shown()
	if shown.Player.HP != 50 {
		t.Errorf("Expected player HP 50 before reveal, got %d", shown.Player.HP)
	}
	if shown.Enemy.HP != 90 {
		t.Errorf("Expected enemy HP 90, got %d", shown.Enemy.HP)
	}

	m.Reveal()
	if got := m.Shown().Player.HP; got != 46 {
		t.Errorf("Expected player HP 46 after reveal, got %d", got)
	}
}

func TestSubmit_VictoryIsNotPending(t *testing.T) {
	e := testEngine(t, 10)
	var m Match
	if err := m.Reset(e); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	res, err := m.Submit(e, 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Outcome != battle.OutcomeVictory {
		t.Fatalf("Expected victory, got %s", res.Outcome)
	}
	if m.Busy() {
		t.Error("Expected no pending half after a killing blow")
	}

	res, err = m.Submit(e, 0)
	if err != nil {
		t.Fatalf("Submit after victory: %v", err)
	}
	if res.Outcome != battle.OutcomeAlreadyOver {
		t.Errorf("Expected already_over, got %s", res.Outcome)
	}
}

func TestSubmit_Errors(t *testing.T) {
	e := testEngine(t, 100)
	var m Match
	if _, err := m.Submit(e, 0); !errors.Is(err, ErrNoBattle) {
		t.Errorf("Expected ErrNoBattle, got %v", err)
	}
	if err := m.Reset(e); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := m.Submit(e, 9); !errors.Is(err, battle.ErrUnknownMove) {
		t.Errorf("Expected ErrUnknownMove, got %v", err)
	}
	if m.Busy() {
		t.Error("Failed submit must not leave the match busy")
	}
}

func TestEnter_AndResetKeepsFoe(t *testing.T) {
	e := testEngine(t, 100)
	var m Match
	foe := encounter.Enemy{ID: "bat", Name: "Dark Bat", Level: 4, HP: 32}
	if err := m.Enter(e, foe); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if m.Battle.Enemy.Name != "Dark Bat" || m.Battle.Enemy.HP != 32 {
		t.Errorf("Unexpected enemy: %+v", m.Battle.Enemy)
	}
	if len(m.Battle.Enemy.Moves) != 1 {
		t.Errorf("Expected roster enemy moves, got %d", len(m.Battle.Enemy.Moves))
	}

	if _, err := m.Submit(e, 0); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	m.Record("line")
	if err := m.Reset(e); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.Battle.Enemy.HP != 32 || m.Foe == nil || m.Foe.ID != "bat" {
		t.Errorf("Expected reset against the same foe, got %+v", m.Battle.Enemy)
	}
	if m.Busy() || len(m.Journal) != 0 {
		t.Error("Expected reset to clear pending turn and journal")
	}
}

func TestRecord_NewestFirstAndCapped(t *testing.T) {
	var m Match
	m.Record("a", "b")
	m.Record("c")
	want := []string{"c", "b", "a"}
	for i, w := range want {
		if m.Journal[i] != w {
			t.Fatalf("Journal[%d]: expected %q, got %q", i, w, m.Journal[i])
		}
	}

	for i := 0; i < JournalLimit+10; i++ {
		m.Record(fmt.Sprintf("line %d", i))
	}
	if len(m.Journal) != JournalLimit {
		t.Errorf("Expected journal capped at %d, got %d", JournalLimit, len(m.Journal))
	}
	if want := fmt.Sprintf("line %d", JournalLimit+9); m.Journal[0] != want {
		t.Errorf("Expected newest %q first, got %q", want, m.Journal[0])
	}
}

func TestStartDefault_DropsEncounterFoe(t *testing.T) {
	e := testEngine(t, 100)
	var m Match
	if err := m.Enter(e, encounter.Enemy{ID: "bat", Name: "Dark Bat", Level: 4, HP: 32}); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	m.Record("A wild Dark Bat appeared!")

	m.StartDefault(e)
	if m.Foe != nil {
		t.Errorf("Expected no foe, got %+v", m.Foe)
	}
	if m.Battle.Enemy.Name != "Slime" || m.Battle.Enemy.HP != 100 {
		t.Errorf("Expected the roster enemy, got %+v", m.Battle.Enemy)
	}
	if len(m.Journal) != 0 {
		t.Errorf("Expected an empty journal, got %v", m.Journal)
	}

	// Reset now stays on the roster enemy
	if err := m.Reset(e); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.Foe != nil || m.Battle.Enemy.Name != "Slime" {
		t.Errorf("Expected reset to keep the roster enemy, got %+v", m.Battle.Enemy)
	}
}

func TestClone_SharesNoBattleState(t *testing.T) {
	e := testEngine(t, 100)
	var m Match
	if err := m.Enter(e, encounter.Enemy{ID: "bat", Name: "Dark Bat", Level: 4, HP: 32}); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	m.Tile = &encounter.Tile{X: 2, Y: 2}
	m.Record("start")

	c := m.Clone()
	if _, err := c.Submit(e, 0); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	c.Record("hit")
	c.Tile.X = 7
	c.Foe.HP = 1

	if m.Battle.Enemy.HP != 32 {
		t.Errorf("Expected original enemy HP 32, got %d", m.Battle.Enemy.HP)
	}
	if m.Busy() {
		t.Error("Expected original to have nothing pending")
	}
	if len(m.Journal) != 1 || m.Journal[0] != "start" {
		t.Errorf("Expected original journal [start], got %v", m.Journal)
	}
	if m.Tile.X != 2 || m.Foe.HP != 32 {
		t.Errorf("Expected original tile and foe untouched, got %+v %+v", m.Tile, m.Foe)
	}
	if c.Battle.Enemy.HP != 22 {
		t.Errorf("Expected clone enemy HP 22, got %d", c.Battle.Enemy.HP)
	}
}
