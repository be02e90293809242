package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/bedlam/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a solved puzzle: the isometric
// drawing of every piece on the first page, followed by a summary page with
// each piece's bit pattern and the search statistics.
func ExportPDF(path string, result model.SolveResult) error {
	if !result.Found || len(result.Placements) == 0 {
		return fmt.Errorf("no solution to export")
	}

	placements, shapes := pieceShapes(result)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderDrawingPage(pdf, shapes)

	pdf.AddPage()
	renderSummaryPage(pdf, placements, result.Stats)

	return pdf.OutputFileAndClose(path)
}

// pageTransform maps isometric drawing units onto the page.
type pageTransform struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func (t pageTransform) apply(p point) fpdf.PointType {
	q := p.scale(t.scale)
	return fpdf.PointType{X: t.offsetX + q.X, Y: t.offsetY + q.Y}
}

func (t pageTransform) polygon(points []point) []fpdf.PointType {
	out := make([]fpdf.PointType, len(points))
	for i, p := range points {
		out[i] = t.apply(p)
	}
	return out
}

// renderDrawingPage draws all pieces on the current page, scaled to fit.
func renderDrawingPage(pdf *fpdf.Fpdf, shapes []model.Shape) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bedlam cube solution (%d pieces)", len(shapes))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	w, h := layoutSize(len(shapes))
	scale := math.Min(drawWidth/w, drawHeight/h)
	tr := pageTransform{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-w*scale)/2,
		offsetY: drawAreaTop,
	}

	silhouette, backEdges := cubeOutline()

	for i, shape := range shapes {
		origin := layoutOrigin(i)
		local := tr
		local.offsetX += origin.X * scale
		local.offsetY += origin.Y * scale

		// Dashed cube outline
		pdf.SetDrawColor(120, 120, 120)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{0.5, 1.5}, 0)
		pdf.Polygon(local.polygon(silhouette), "D")
		for _, e := range backEdges {
			a, b := local.apply(e[0]), local.apply(e[1])
			pdf.Line(a.X, a.Y, b.X, b.Y)
		}
		pdf.SetDashPattern([]float64{}, 0)

		col := colorFor(i)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.15)
		for _, b := range drawOrder(shape) {
			for f, face := range blockFaces(b) {
				c := col.shade(faceShades[f])
				pdf.SetFillColor(c.R, c.G, c.B)
				pdf.Polygon(local.polygon(face), "FD")
			}
		}

		// Piece index under the outline
		label := fmt.Sprintf("%d", i)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		at := local.apply(point{X: 0, Y: 250})
		lw := pdf.GetStringWidth(label)
		pdf.SetXY(at.X-lw/2, at.Y-2)
		pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
	}
}

// renderSummaryPage lists every placement and the search statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, placements []model.Placement, stats model.SearchStats) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Solution Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Search Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Pieces Placed", fmt.Sprintf("%d", len(placements))},
		{"Nodes Visited", fmt.Sprintf("%d", stats.Nodes)},
		{"Overlapping Candidates", fmt.Sprintf("%d", stats.Overlaps)},
		{"Pruned Candidates", fmt.Sprintf("%d", stats.Pruned)},
		{"Elapsed", stats.Elapsed.String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pieces", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{14, 36, 16, 150, 40}
	headers := []string{"Piece", "Label", "Blocks", "Cells (bit 63 .. bit 0)", "Hex"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	for i, p := range placements {
		rowData := []string{
			fmt.Sprintf("%d", p.PieceIndex),
			p.Label,
			fmt.Sprintf("%d", p.Encoded.Count()),
			p.Encoded.String(),
			p.Encoded.Hex(),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			if j >= 3 {
				pdf.SetFont("Courier", "", 8)
			} else {
				pdf.SetFont("Helvetica", "", 9)
			}
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}

		// Colour swatch matching the drawing
		col := colorFor(p.PieceIndex)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(marginLeft+1, y+1.5, 3, 3, "F")
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Bedlam - 4x4x4 polycube solver", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
