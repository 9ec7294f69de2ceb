package overworld

import (
	"testing"

	"battledemo/internal/encounter"
)

func TestStep(t *testing.T) {
	g := DefaultGrid()
	start := g.Spawn()

	tests := []struct {
		dir  Direction
		want encounter.Tile
	}{
		{Up, encounter.Tile{X: 2, Y: 1}},
		{Down, encounter.Tile{X: 2, Y: 3}},
		{Left, encounter.Tile{X: 1, Y: 2}},
		{Right, encounter.Tile{X: 3, Y: 2}},
	}
	for _, tt := range tests {
		if got := g.Step(start, tt.dir); got != tt.want {
			t.Errorf("Step(%s): expected %+v, got %+v", tt.dir, tt.want, got)
		}
	}
}

func TestStep_WallBlocks(t *testing.T) {
	g := DefaultGrid()
	edge := encounter.Tile{X: 1, Y: 1}
	if got := g.Step(edge, Up); got != edge {
		t.Errorf("Expected wall to block, got %+v", got)
	}
	if got := g.Step(edge, Left); got != edge {
		t.Errorf("Expected wall to block, got %+v", got)
	}
	far := encounter.Tile{X: g.Size - 2, Y: g.Size - 2}
	if got := g.Step(far, Right); got != far {
		t.Errorf("Expected wall to block, got %+v", got)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("left"); err != nil || d != Left {
		t.Errorf("Expected left, got %q (%v)", d, err)
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("Expected error for unknown direction")
	}
}

func TestPillar(t *testing.T) {
	g := DefaultGrid()
	if !g.Pillar(encounter.Tile{X: 2, Y: 2}) {
		t.Error("Expected pillar at (2,2)")
	}
	if !g.Pillar(encounter.Tile{X: 6, Y: 10}) {
		t.Error("Expected pillar at (6,10)")
	}
	if g.Pillar(encounter.Tile{X: 3, Y: 2}) {
		t.Error("Expected no pillar at (3,2)")
	}
	if g.Pillar(encounter.Tile{X: 18, Y: 18}) {
		t.Error("Expected no pillar at the border")
	}
}
