// Package config parses server configuration from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration. Flags override environment values.
type Config struct {
	Addr        string `env:"BATTLEDEMO_ADDR" envDefault:":8080"`
	ContentPath string `env:"BATTLEDEMO_CONTENT" envDefault:"content/demo.yaml"`
	TemplateDir string `env:"BATTLEDEMO_TEMPLATES" envDefault:"templates"`
	StaticDir   string `env:"BATTLEDEMO_STATIC_DIR" envDefault:"static"`
	Locale      string `env:"BATTLEDEMO_LOCALE" envDefault:"en-US"`
	// TurnDelay is how long the browser waits before revealing the enemy's half.
	TurnDelay    time.Duration `env:"BATTLEDEMO_TURN_DELAY" envDefault:"550ms"`
	OTelEndpoint string        `env:"BATTLEDEMO_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse reads the environment into Config, then applies flags from args.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "Roster and encounter YAML file")
	fs.StringVar(&cfg.TemplateDir, "templates", cfg.TemplateDir, "HTML template directory")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Static asset directory")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Battle log locale")
	fs.DurationVar(&cfg.TurnDelay, "turn-delay", cfg.TurnDelay, "Delay before the enemy turn is shown")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if cfg.TurnDelay < 0 {
		return Config{}, fmt.Errorf("turn delay must not be negative: %s", cfg.TurnDelay)
	}
	return cfg, nil
}
