package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"battledemo/internal/battle"
	"battledemo/internal/config"
	"battledemo/internal/content"
	"battledemo/internal/dice"
	"battledemo/internal/encounter"
	"battledemo/internal/i18n"
	"battledemo/internal/match"
	"battledemo/internal/overworld"
	"battledemo/internal/session"
	"battledemo/internal/telemetry"
	"battledemo/internal/web"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownTracing, err := telemetry.Setup(ctx, "battledemo", cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	c, err := content.Load(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("load content %s: %w", cfg.ContentPath, err)
	}
	engine, err := battle.NewEngine(c.Battle, dice.Crypto())
	if err != nil {
		return err
	}
	selector, err := encounter.NewSelector(c.Encounters, dice.Crypto())
	if err != nil {
		return err
	}

	messages, err := i18n.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	if !messages.HasLocale(cfg.Locale) {
		log.Printf("locale %q not available (have %s), using %s",
			cfg.Locale, strings.Join(messages.Locales(), ", "), i18n.BaseLocale)
	}

	tmpl := template.Must(template.ParseFiles(
		filepath.Join(cfg.TemplateDir, "layout.html"),
		filepath.Join(cfg.TemplateDir, "battle.html"),
		filepath.Join(cfg.TemplateDir, "map.html"),
	))

	srv := &web.Server{
		Engine:    engine,
		Selector:  selector,
		Grid:      overworld.DefaultGrid(),
		Store:     session.NewMemoryStore[match.Match](),
		Tmpl:      tmpl,
		Messages:  messages,
		Locale:    cfg.Locale,
		TurnDelay: cfg.TurnDelay,
		StaticDir: cfg.StaticDir,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on http://localhost%s", cfg.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
