package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/bedlam/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// CardInfo holds the data encoded into each piece card's QR code.
type CardInfo struct {
	Piece   int           `json:"piece"`
	Label   string        `json:"label"`
	Encoded model.Encoded `json:"encoded"`
	Blocks  model.Shape   `json:"blocks"`
}

// Card layout on A4 portrait: 2 columns x 4 rows of 90 x 60 mm cards.
const (
	cardMarginTop  = 28.5
	cardMarginLeft = 15.0
	cardWidth      = 90.0
	cardHeight     = 60.0
	cardCols       = 2
	cardRows       = 4
	cardsPerPage   = cardCols * cardRows
	cardQRSize     = 30.0
	cardPadding    = 3.0
	cardDrawScale  = 0.045 // Isometric units to mm for the piece sketch
)

// ExportCards generates a PDF of assembly cards, one per piece. Each card
// shows the piece label, a sketch of the piece in its solved position and a
// QR code carrying the placement as JSON.
func ExportCards(path string, result model.SolveResult) error {
	cards := CollectCardInfos(result)
	if len(cards) == 0 {
		return fmt.Errorf("no placed pieces to generate cards for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % cardsPerPage
		col := posOnPage % cardCols
		row := posOnPage / cardCols

		x := cardMarginLeft + float64(col)*cardWidth
		y := cardMarginTop + float64(row)*cardHeight

		if err := renderCard(pdf, x, y, card); err != nil {
			return fmt.Errorf("failed to render card for %q: %w", card.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderCard draws a single card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, info CardInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal card info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_piece_%d", info.Piece)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + cardWidth - cardQRSize - cardPadding
	qrY := y + cardHeight - cardQRSize - cardPadding
	pdf.ImageOptions(imgName, qrX, qrY, cardQRSize, cardQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + cardPadding
	textW := cardWidth - 2*cardPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+cardPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("%d  %s", info.Piece, info.Label), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+cardPadding+5.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d blocks  |  %s", len(info.Blocks), info.Encoded.Hex()), "", 1, "L", false, 0, "")

	// Sketch of the piece inside its cube outline, left of the QR code.
	tr := pageTransform{
		scale:   cardDrawScale,
		offsetX: x + cardPadding + 4*isoDX*cardDrawScale,
		offsetY: y + cardHeight - cardPadding - 2*isoDY*cardDrawScale,
	}
	silhouette, _ := cubeOutline()
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetDashPattern([]float64{0.5, 1}, 0)
	pdf.Polygon(tr.polygon(silhouette), "D")
	pdf.SetDashPattern([]float64{}, 0)

	col := colorFor(info.Piece)
	pdf.SetDrawColor(30, 30, 30)
	for _, b := range drawOrder(info.Blocks) {
		for f, face := range blockFaces(b) {
			c := col.shade(faceShades[f])
			pdf.SetFillColor(c.R, c.G, c.B)
			pdf.Polygon(tr.polygon(face), "FD")
		}
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectCardInfos extracts card data from a result in catalogue order.
func CollectCardInfos(result model.SolveResult) []CardInfo {
	if !result.Found {
		return nil
	}
	placements, shapes := pieceShapes(result)
	cards := make([]CardInfo, 0, len(placements))
	for i, p := range placements {
		cards = append(cards, CardInfo{
			Piece:   p.PieceIndex,
			Label:   p.Label,
			Encoded: p.Encoded,
			Blocks:  shapes[i],
		})
	}
	return cards
}
