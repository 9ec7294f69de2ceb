package web

import (
	"log"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"battledemo/internal/encounter"
	"battledemo/internal/match"
	"battledemo/internal/overworld"
)

// handleMap serves the overworld page, placing the walker on its spawn tile
// the first time.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	m, err := s.update(r.Context(), w, r, func(m *match.Match) error {
		s.ensureTile(m)
		return nil
	})
	if err != nil {
		log.Printf("map: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "map_page", s.mapView(*m.Tile))
}

// handleStep moves the walker one tile and rolls for an encounter. On an
// encounter the battle is started and htmx is told to navigate to it.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	dir, err := overworld.ParseDirection(r.FormValue("dir"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, span := tracer.Start(r.Context(), "encounter.check")
	defer span.End()

	f := &frame{}
	pr := s.presenter(f)
	var (
		foe encounter.Enemy
		hit bool
	)
	m, err := s.update(ctx, w, r, func(m *match.Match) error {
		s.ensureTile(m)
		prev := *m.Tile
		cur := s.Grid.Step(prev, dir)
		m.Tile = &cur
		span.SetAttributes(attribute.Int("tile.x", cur.X), attribute.Int("tile.y", cur.Y))

		foe, hit = s.Selector.Resolve(&prev, cur)
		if !hit {
			return nil
		}
		if err := m.Enter(s.Engine, foe); err != nil {
			return err
		}
		pr.Start(m.Shown(), m.Foe)
		m.Record(f.lines...)
		return nil
	})
	if err != nil {
		fail(w, span, "step", err)
		return
	}
	span.SetAttributes(attribute.Bool("encounter.hit", hit))
	if hit {
		span.SetAttributes(attribute.String("encounter.enemy", foe.ID))
		w.Header().Set("HX-Redirect", "/battle")
		if !isHTMX(r) {
			http.Redirect(w, r, "/battle", http.StatusSeeOther)
		}
		return
	}
	if !isHTMX(r) {
		http.Redirect(w, r, "/map", http.StatusSeeOther)
		return
	}
	s.render(w, "map", s.mapView(*m.Tile))
}

func (s *Server) ensureTile(m *match.Match) {
	if m.Tile == nil {
		spawn := s.Grid.Spawn()
		m.Tile = &spawn
	}
}

func (s *Server) mapView(t encounter.Tile) MapView {
	return MapView{
		Labels:   s.labels("ui.title.map"),
		X:        t.X,
		Y:        t.Y,
		Size:     s.Grid.Size,
		TileSize: s.Grid.TileSize,
		Pixels:   s.Grid.Size * s.Grid.TileSize,
	}
}
