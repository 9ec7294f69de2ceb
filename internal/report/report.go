// Package report renders a printable PDF summary of a battle: both
// combatants' health bars and the turn log, on an old-parchment page.
package report

import (
	"bytes"
	"fmt"
	"math"
	"slices"

	"github.com/jung-kurt/gofpdf/v2"

	"battledemo/internal/battle"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	barW      = 220.0
	barH      = 14.0
	lineH     = 13.0
	fontSize  = 9
	titleSize = 18
	maxLines  = 40
)

// Summary is what goes on the page.
type Summary struct {
	Title string
	// Status labels shown under each bar.
	PlayerStatus string
	EnemyStatus  string
	Snapshot     battle.Snapshot
	// Journal is newest first, as kept by the match; the page prints it oldest first.
	Journal []string
}

// Generate returns PDF bytes for s.
func Generate(s Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	// core fonts are cp1252; names outside it come out as '?'
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)

	pdf.SetTextColor(80, 50, 30)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+10, margin+14)
	pdf.CellFormat(pageW-2*margin-20, 20, tr(s.Title), "", 0, "C", false, 0, "")

	drawSwords(pdf, pageW/2, margin+80)

	drawCombatant(pdf, tr, margin+20, margin+60, s.Snapshot.Player, s.PlayerStatus)
	drawCombatant(pdf, tr, pageW-margin-20-barW, margin+60, s.Snapshot.Enemy, s.EnemyStatus)

	// Log, oldest first
	lines := slices.Clone(s.Journal)
	slices.Reverse(lines)
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	y := float64(margin + 150)
	pdf.SetDrawColor(80, 50, 30)
	pdf.Line(margin+20, y-8, pageW-margin-20, y-8)
	pdf.SetFont("Helvetica", "", fontSize)
	for _, line := range lines {
		pdf.SetXY(margin+20, y)
		pdf.CellFormat(pageW-2*margin-40, lineH, tr(line), "", 0, "L", false, 0, "")
		y += lineH
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawCombatant(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, v battle.CombatantView, status string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y-16)
	pdf.CellFormat(barW, 14, tr(v.Name), "", 0, "L", false, 0, "")

	// empty bar, then the remaining health in green or red below 30%
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(220, 205, 175)
	pdf.Rect(x, y, barW, barH, "FD")
	pct := v.Percent()
	if pct > 0 {
		if pct <= 30 {
			pdf.SetFillColor(200, 50, 50)
		} else {
			pdf.SetFillColor(110, 170, 40)
		}
		pdf.Rect(x, y, barW*float64(pct)/100, barH, "F")
	}

	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetXY(x, y+barH+2)
	pdf.CellFormat(barW, 12, tr(hpLabel(v)), "", 0, "L", false, 0, "")
	if status != "" {
		pdf.SetXY(x, y+barH+14)
		pdf.CellFormat(barW, 12, tr(status), "", 0, "L", false, 0, "")
	}
}

func hpLabel(v battle.CombatantView) string {
	return fmt.Sprintf("HP: %d / %d", v.HP, v.MaxHP)
}

// drawSwords draws two crossed blades between the combatants.
func drawSwords(pdf *gofpdf.Fpdf, x, y float64) {
	const r = 18.0
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Line(x-r, y-r, x+r, y+r)
	pdf.Line(x-r, y+r, x+r, y-r)
	pdf.SetLineWidth(1)
	pdf.Line(x-r*0.6, y-r*0.2, x-r*0.2, y-r*0.6)
	pdf.Line(x+r*0.6, y-r*0.2, x+r*0.2, y-r*0.6)
}

// drawWavyBorder draws an organic, tattered black border around the page.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 12, 4)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	edge := func(x0, y0, dx, dy, fx, fy float64, from int) {
		for i := from; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pts = append(pts, gofpdf.PointType{
				X: x0 + t*dx + amp*math.Sin(float64(i)*fx),
				Y: y0 + t*dy + amp*math.Cos(float64(i)*fy),
			})
		}
	}
	edge(x, y, w, 0, 0.7, 0.5, 0)
	edge(x+w, y, 0, h, 0.6, 0.4, 1)
	edge(x+w, y+h, -w, 0, 0.8, 0.3, 1)
	edge(x, y+h, 0, -h, 0.5, 0.6, 1)
	return pts
}
