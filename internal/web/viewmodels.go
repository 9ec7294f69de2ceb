package web

import (
	"fmt"

	"battledemo/internal/battle"
	"battledemo/internal/i18n"
	"battledemo/internal/match"
	"battledemo/internal/present"
)

// dangerPercent is the health percentage at or below which a bar turns red.
const dangerPercent = 30

// frame collects one request's presenter calls so they can be rendered as a
// single htmx fragment.
type frame struct {
	snap     battle.Snapshot
	rendered bool
	cues     []present.Cue
	popups   []PopupVM
	impact   bool
	lines    []string
}

func (f *frame) hooks() present.Hooks {
	return present.Hooks{Render: f, Audio: f, Effects: f, Log: f}
}

func (f *frame) Render(snap battle.Snapshot) {
	f.snap = snap
	f.rendered = true
}

func (f *frame) Play(c present.Cue) { f.cues = append(f.cues, c) }

func (f *frame) Popup(target battle.Side, amount int) {
	f.popups = append(f.popups, PopupVM{Target: string(target), Amount: amount})
}

func (f *frame) Impact(present.Zone) { f.impact = true }

func (f *frame) Append(line string) { f.lines = append(f.lines, line) }

type CombatantVM struct {
	Name    string
	HP      int
	MaxHP   int
	Percent int
	Danger  bool
	Status  string
}

type MoveVM struct {
	Index int
	Name  string
	Guard bool
	Range string
}

type PopupVM struct {
	Target string
	Amount int
}

// Labels is the translated page chrome shared by both screens.
type Labels struct {
	Lang        string
	Title       string
	StartBattle string
	BackToMap   string
	Reset       string
	Report      string
	Guard       string
	MapHint     string
	BattleHint  string
}

// BattleView is the data for the battle screen and its #battle fragment.
type BattleView struct {
	Labels
	Player CombatantVM
	Enemy  CombatantVM
	Moves  []MoveVM
	Log    []string // newest first
	Cues   []present.Cue
	Popups []PopupVM
	Impact bool
	Busy   bool
	Over   bool
	// RevealDelay is the htmx delay before the enemy half is requested,
	// e.g. "550ms".
	RevealDelay string
}

// MapView is the data for the overworld screen and its #map fragment.
type MapView struct {
	Labels
	X, Y     int
	Size     int
	TileSize int
	Pixels   int
}

func (s *Server) battleView(m match.Match, f *frame, pr *present.Presenter) BattleView {
	snap := m.Shown()
	if f != nil && f.rendered {
		snap = f.snap
	}
	vm := BattleView{
		Labels:      s.labels("ui.title.battle"),
		Player:      combatantVM(snap.Player, pr.Status(snap, battle.SidePlayer)),
		Enemy:       combatantVM(snap.Enemy, pr.Status(snap, battle.SideEnemy)),
		Log:         m.Journal,
		Busy:        m.Busy(),
		Over:        snap.Over,
		RevealDelay: fmt.Sprintf("%dms", s.TurnDelay.Milliseconds()),
	}
	if m.Battle != nil {
		for i, mv := range m.Battle.Player.Moves {
			vm.Moves = append(vm.Moves, moveVM(i, mv))
		}
	}
	if f != nil {
		vm.Cues = f.cues
		vm.Popups = f.popups
		vm.Impact = f.impact
	}
	return vm
}

// labels translates the page chrome for the server's locale.
func (s *Server) labels(titleKey string) Labels {
	lang := s.Locale
	if !s.Messages.HasLocale(lang) {
		lang = i18n.BaseLocale
	}
	p := s.printer()
	return Labels{
		Lang:        lang,
		Title:       p.Sprintf(titleKey),
		StartBattle: p.Sprintf("ui.start_battle"),
		BackToMap:   p.Sprintf("ui.back_to_map"),
		Reset:       p.Sprintf("ui.reset"),
		Report:      p.Sprintf("ui.report"),
		Guard:       p.Sprintf("ui.guard"),
		MapHint:     p.Sprintf("ui.map_hint"),
		BattleHint:  p.Sprintf("ui.battle_hint"),
	}
}

func combatantVM(v battle.CombatantView, status string) CombatantVM {
	pct := v.Percent()
	return CombatantVM{
		Name:    v.Name,
		HP:      v.HP,
		MaxHP:   v.MaxHP,
		Percent: pct,
		Danger:  pct <= dangerPercent,
		Status:  status,
	}
}

func moveVM(i int, mv battle.Move) MoveVM {
	vm := MoveVM{Index: i, Name: mv.Name, Guard: mv.Guard}
	if !mv.Guard {
		vm.Range = fmt.Sprintf("%d-%d", mv.Min, mv.Max)
	}
	return vm
}
