// Package present turns battle results into calls on presentation
// collaborators: health display, sound cues, damage popups and the log.
package present

import (
	"golang.org/x/text/message"

	"battledemo/internal/battle"
	"battledemo/internal/encounter"
)

type Cue string

const (
	CueAttack  Cue = "attack"
	CueGuard   Cue = "guard"
	CueVictory Cue = "victory"
	CueDefeat  Cue = "defeat"
)

// Cues lists every cue the presenter can emit.
var Cues = []Cue{CueAttack, CueGuard, CueVictory, CueDefeat}

type Zone string

const ZoneArena Zone = "arena"

type Renderer interface {
	Render(snap battle.Snapshot)
}

// Audio implementations must not block.
type Audio interface {
	Play(cue Cue)
}

type Effects interface {
	Popup(target battle.Side, amount int)
	Impact(zone Zone)
}

type Log interface {
	Append(line string)
}

// Hooks groups the collaborators. Nil members are skipped.
type Hooks struct {
	Render  Renderer
	Audio   Audio
	Effects Effects
	Log     Log
}

type Presenter struct {
	hooks Hooks
	p     *message.Printer
}

func New(hooks Hooks, p *message.Printer) *Presenter {
	return &Presenter{hooks: hooks, p: p}
}

// Start announces a fresh battle.
func (pr *Presenter) Start(snap battle.Snapshot, foe *encounter.Enemy) {
	if foe != nil {
		pr.log("encounter.appeared", foe.Name, foe.Level)
	}
	pr.log("battle.start")
	pr.render(snap)
}

// PlayerHalf presents the player's action and, if it won the battle, the
// victory. snap is the state to show after this half.
func (pr *Presenter) PlayerHalf(snap battle.Snapshot, res battle.TurnResult) {
	act := res.Player
	if act == nil {
		return
	}
	if act.Guard {
		pr.log("battle.player_guard", snap.Player.Name, act.Move)
		pr.play(CueGuard)
	} else {
		pr.log("battle.player_attack", snap.Player.Name, act.Move, act.Damage)
		pr.play(CueAttack)
		pr.hit(battle.SideEnemy, act.Damage)
	}
	pr.render(snap)
	if res.Outcome == battle.OutcomeVictory {
		pr.log("battle.victory", snap.Enemy.Name)
		pr.play(CueVictory)
	}
}

// EnemyHalf presents the enemy counter and a defeat if it caused one.
func (pr *Presenter) EnemyHalf(snap battle.Snapshot, res battle.TurnResult) {
	act := res.Enemy
	if act == nil {
		return
	}
	pr.log("battle.enemy_attack", snap.Enemy.Name, act.Move, act.Damage)
	pr.play(CueAttack)
	pr.hit(battle.SidePlayer, act.Damage)
	pr.render(snap)
	if res.Outcome == battle.OutcomeDefeat {
		pr.log("battle.defeat", snap.Player.Name)
		pr.play(CueDefeat)
	}
}

// Status is the label shown under a combatant's health bar.
func (pr *Presenter) Status(snap battle.Snapshot, side battle.Side) string {
	return pr.p.Sprintf(StatusKey(snap, side))
}

// StatusKey returns the catalog key for a side's status label.
func StatusKey(snap battle.Snapshot, side battle.Side) string {
	if !snap.Over {
		return "battle.status.normal"
	}
	self, other := snap.Player, snap.Enemy
	if side == battle.SideEnemy {
		self, other = other, self
	}
	switch {
	case self.HP <= 0:
		return "battle.status.fainted"
	case other.HP <= 0:
		return "battle.status.victory"
	default:
		return "battle.status.normal"
	}
}

func (pr *Presenter) hit(target battle.Side, amount int) {
	if pr.hooks.Effects == nil {
		return
	}
	pr.hooks.Effects.Popup(target, amount)
	pr.hooks.Effects.Impact(ZoneArena)
}

func (pr *Presenter) play(c Cue) {
	if pr.hooks.Audio != nil {
		pr.hooks.Audio.Play(c)
	}
}

func (pr *Presenter) render(snap battle.Snapshot) {
	if pr.hooks.Render != nil {
		pr.hooks.Render.Render(snap)
	}
}

func (pr *Presenter) log(key string, args ...any) {
	if pr.hooks.Log != nil {
		pr.hooks.Log.Append(pr.p.Sprintf(key, args...))
	}
}
