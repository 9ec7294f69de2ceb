package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strconv"

	"battledemo/internal/encounter"
	"battledemo/internal/overworld"
)

var (
	tileFloor  = color.RGBA{0x1e, 0x3a, 0x5f, 255}
	tilePillar = color.RGBA{0x28, 0x4a, 0x72, 255}
	tileWall   = color.RGBA{0x0f, 0x17, 0x2a, 255}
	tileWalker = color.RGBA{0xfb, 0xbf, 0x24, 255}
)

// handleMapImage serves the overworld as a PNG with the walker drawn at
// ?x=&y=. Taking the position from the query keeps each image cacheable.
func (s *Server) handleMapImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil || x < 0 || y < 0 || x >= s.Grid.Size || y >= s.Grid.Size {
		http.Error(w, "bad tile", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, drawGrid(s.Grid, encounter.Tile{X: x, Y: y})); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(buf.Bytes()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// drawGrid paints each pixel with the color of the tile under it and the
// walker as a smaller square inside its tile.
func drawGrid(g overworld.Grid, walker encounter.Tile) *image.RGBA {
	px := g.Size * g.TileSize
	img := image.NewRGBA(image.Rect(0, 0, px, px))
	for y := 0; y < px; y++ {
		for x := 0; x < px; x++ {
			img.SetRGBA(x, y, tileColor(g, encounter.TileAt(float64(x), float64(y), g.TileSize)))
		}
	}
	fillTile(img, g.TileSize, walker, g.TileSize/4, tileWalker)
	return img
}

func tileColor(g overworld.Grid, t encounter.Tile) color.RGBA {
	switch {
	case g.Wall(t):
		return tileWall
	case g.Pillar(t):
		return tilePillar
	default:
		return tileFloor
	}
}

// fillTile fills tile t, inset by pad pixels on each side.
func fillTile(img *image.RGBA, size int, t encounter.Tile, pad int, clr color.RGBA) {
	b := img.Bounds()
	for dy := pad; dy < size-pad; dy++ {
		for dx := pad; dx < size-pad; dx++ {
			x := t.X*size + dx
			y := t.Y*size + dy
			if x < b.Max.X && y < b.Max.Y {
				img.SetRGBA(x, y, clr)
			}
		}
	}
}
