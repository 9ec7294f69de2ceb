// Package overworld models the top-down map the player walks around on.
package overworld

import (
	"fmt"

	"battledemo/internal/encounter"
)

const (
	DefaultSize     = 20
	DefaultTileSize = 32
)

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection accepts the four direction names.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down, Left, Right:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction: %q", s)
	}
}

// Grid is a square map Size tiles wide whose outer ring is wall.
type Grid struct {
	Size     int
	TileSize int
}

func DefaultGrid() Grid {
	return Grid{Size: DefaultSize, TileSize: DefaultTileSize}
}

// Spawn is where the walker starts.
func (g Grid) Spawn() encounter.Tile {
	return encounter.Tile{X: 2, Y: 2}
}

// Wall reports whether t is the border or outside the map.
func (g Grid) Wall(t encounter.Tile) bool {
	return t.X <= 0 || t.Y <= 0 || t.X >= g.Size-1 || t.Y >= g.Size-1
}

// Pillar reports the decorative darker tiles laid out every fourth cell.
func (g Grid) Pillar(t encounter.Tile) bool {
	if t.X < 2 || t.Y < 2 || t.X >= g.Size-2 || t.Y >= g.Size-2 {
		return false
	}
	return (t.X-2)%4 == 0 && (t.Y-2)%4 == 0
}

// Step moves one tile in d. Walls block the move and t is returned unchanged.
func (g Grid) Step(t encounter.Tile, d Direction) encounter.Tile {
	next := t
	switch d {
	case Up:
		next.Y--
	case Down:
		next.Y++
	case Left:
		next.X--
	case Right:
		next.X++
	}
	if g.Wall(next) {
		return t
	}
	return next
}
