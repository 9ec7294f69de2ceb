package web

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"

	"battledemo/internal/battle"
	"battledemo/internal/encounter"
	"battledemo/internal/i18n"
	"battledemo/internal/match"
	"battledemo/internal/overworld"
	"battledemo/internal/present"
	"battledemo/internal/session"
)

type Server struct {
	Engine    *battle.Engine
	Selector  *encounter.Selector
	Grid      overworld.Grid
	Store     session.Store[match.Match]
	Tmpl      *template.Template
	Messages  *i18n.Bundle
	Locale    string
	TurnDelay time.Duration
	StaticDir string
}

const cookieName = "battledemo_sid"

var tracer = otel.Tracer("battledemo/internal/web")

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)

	mux.HandleFunc("/map", s.handleMap)
	mux.HandleFunc("/map/step", s.handleStep)
	mux.HandleFunc("/map.png", s.handleMapImage)

	mux.HandleFunc("/battle", s.handleBattle)
	mux.HandleFunc("/battle/new", s.handleNewBattle)
	mux.HandleFunc("/battle/move", s.handleMove)
	mux.HandleFunc("/battle/reveal", s.handleReveal)
	mux.HandleFunc("/battle/reset", s.handleReset)
	mux.HandleFunc("/battle/report.pdf", s.handleReport)

	mux.HandleFunc("/audio/", s.handleAudio)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir()))))
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/map", http.StatusFound)
}

// update runs fn against a clone of the caller's match, creating the session
// cookie on first contact. The stored match is replaced, never mutated, so
// values handed out by Store.Get stay stable.
func (s *Server) update(ctx context.Context, w http.ResponseWriter, r *http.Request, fn func(m *match.Match) error) (match.Match, error) {
	id := s.sessionID(r)
	if id == "" {
		id = s.Store.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.Store.Update(ctx, id, func(m match.Match, _ bool) (match.Match, error) {
		next := m.Clone()
		err := fn(&next)
		return next, err
	})
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) printer() *message.Printer {
	return s.Messages.Printer(s.Locale)
}

func (s *Server) presenter(f *frame) *present.Presenter {
	return present.New(f.hooks(), s.printer())
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// fail marks span as failed, logs err and answers 500.
func fail(w http.ResponseWriter, span trace.Span, op string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Printf("%s: %v", op, err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
