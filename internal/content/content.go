// Package content loads the roster and encounter catalog from YAML.
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"battledemo/internal/battle"
	"battledemo/internal/encounter"
)

// Content is everything a server needs to build its engine and selector.
type Content struct {
	Battle     battle.Roster    `yaml:"battle"`
	Encounters encounter.Config `yaml:"encounters"`
}

func Default() Content {
	return Content{
		Battle:     battle.DefaultRoster(),
		Encounters: encounter.DefaultConfig(),
	}
}

// Load reads a content file. Sections missing from the file keep their
// defaults; an encounters section without a rate gets DefaultRate.
func Load(path string) (Content, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // operator-supplied content path
	if err != nil {
		return Content{}, err
	}
	return Parse(b)
}

// Parse decodes and validates YAML content.
func Parse(b []byte) (Content, error) {
	var raw struct {
		Battle     *battle.Roster `yaml:"battle"`
		Encounters *struct {
			Rate    *float64          `yaml:"rate"`
			Enemies []encounter.Enemy `yaml:"enemies"`
		} `yaml:"encounters"`
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Content{}, fmt.Errorf("parse content: %w", err)
	}

	c := Default()
	if raw.Battle != nil {
		c.Battle = *raw.Battle
	}
	if raw.Encounters != nil {
		c.Encounters.Enemies = raw.Encounters.Enemies
		if raw.Encounters.Rate != nil {
			c.Encounters.Rate = *raw.Encounters.Rate
		}
	}

	if err := c.Battle.Validate(); err != nil {
		return Content{}, err
	}
	if err := c.Encounters.Validate(); err != nil {
		return Content{}, err
	}
	return c, nil
}
