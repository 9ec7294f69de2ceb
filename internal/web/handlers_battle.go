package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"battledemo/internal/battle"
	"battledemo/internal/match"
	"battledemo/internal/report"
)

// handleBattle serves the full battle page, starting the default battle if
// the session has none.
func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := &frame{}
	pr := s.presenter(f)
	m, err := s.update(r.Context(), w, r, func(m *match.Match) error {
		if m.Battle != nil {
			return nil
		}
		if err := m.Reset(s.Engine); err != nil {
			return err
		}
		pr.Start(m.Shown(), m.Foe)
		m.Record(f.lines...)
		return nil
	})
	if err != nil {
		log.Printf("battle: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// a reload mid-turn keeps the pending reveal but replays no effects
	s.render(w, "battle_page", s.battleView(m, nil, pr))
}

// handleNewBattle starts a battle against the roster's own enemy, leaving any
// encounter opponent behind, and sends the browser to it.
func (s *Server) handleNewBattle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := &frame{}
	pr := s.presenter(f)
	_, err := s.update(r.Context(), w, r, func(m *match.Match) error {
		m.StartDefault(s.Engine)
		pr.Start(m.Shown(), nil)
		m.Record(f.lines...)
		return nil
	})
	if err != nil {
		log.Printf("new battle: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("HX-Redirect", "/battle")
	if !isHTMX(r) {
		http.Redirect(w, r, "/battle", http.StatusSeeOther)
	}
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(r.FormValue("move"))
	if err != nil {
		http.Error(w, "bad move", http.StatusBadRequest)
		return
	}

	ctx, span := tracer.Start(r.Context(), "battle.turn")
	defer span.End()
	span.SetAttributes(attribute.Int("battle.move_index", index))

	f := &frame{}
	pr := s.presenter(f)
	m, err := s.update(ctx, w, r, func(m *match.Match) error {
		res, err := m.Submit(s.Engine, index)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.String("battle.outcome", string(res.Outcome)))
		pr.PlayerHalf(m.Shown(), res)
		m.Record(f.lines...)
		return nil
	})
	switch {
	case errors.Is(err, match.ErrBusy):
		http.Error(w, s.printer().Sprintf("battle.busy"), http.StatusConflict)
		return
	case errors.Is(err, battle.ErrUnknownMove):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, match.ErrNoBattle):
		w.Header().Set("HX-Redirect", "/battle")
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		fail(w, span, "move", err)
		return
	}
	s.render(w, "battle", s.battleView(m, f, pr))
}

// handleReveal shows the enemy half of the pending turn. With nothing
// pending it just re-renders the current state.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := &frame{}
	pr := s.presenter(f)
	m, err := s.update(r.Context(), w, r, func(m *match.Match) error {
		res, ok := m.Reveal()
		if !ok {
			return nil
		}
		pr.EnemyHalf(m.Shown(), res)
		m.Record(f.lines...)
		return nil
	})
	if err != nil {
		log.Printf("reveal: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "battle", s.battleView(m, f, pr))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f := &frame{}
	pr := s.presenter(f)
	m, err := s.update(r.Context(), w, r, func(m *match.Match) error {
		if err := m.Reset(s.Engine); err != nil {
			return err
		}
		pr.Start(m.Shown(), m.Foe)
		m.Record(f.lines...)
		return nil
	})
	if err != nil {
		log.Printf("reset: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "battle", s.battleView(m, f, pr))
}

// handleReport downloads the current battle as a PDF.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := s.sessionID(r)
	if id == "" {
		http.Redirect(w, r, "/battle", http.StatusFound)
		return
	}
	m, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		log.Printf("report: load session: %v", err)
	}
	if err != nil || !ok || m.Battle == nil {
		http.Redirect(w, r, "/battle", http.StatusFound)
		return
	}

	p := s.printer()
	pr := s.presenter(&frame{})
	snap := m.Shown()
	pdf, err := report.Generate(report.Summary{
		Title:        p.Sprintf("report.title"),
		PlayerStatus: pr.Status(snap, battle.SidePlayer),
		EnemyStatus:  pr.Status(snap, battle.SideEnemy),
		Snapshot:     snap,
		Journal:      m.Journal,
	})
	if err != nil {
		log.Printf("report: generate: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="battle-report.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("report: %v", err)
	}
}
