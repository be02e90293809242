package export

import (
	"fmt"

	"github.com/piwi3910/bedlam/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportExcel.
const (
	LayersSheet = "Layers"
	PiecesSheet = "Pieces"
)

// layerStride is the number of rows one layer grid takes: a title, an X
// header, Side rows of cells and a blank spacer.
const layerStride = model.Side + 3

// ExportExcel writes a workbook describing a solution. The Layers sheet holds
// one grid per Z layer with the piece index in every cell; the Pieces sheet
// lists each placement with its bit pattern.
func ExportExcel(path string, result model.SolveResult) error {
	if !result.Found || len(result.Placements) == 0 {
		return fmt.Errorf("no solution to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LayersSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(PiecesSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	placements := result.ByPiece()
	if err := writeLayers(f, placements); err != nil {
		return err
	}
	if err := writePieces(f, placements, result.Stats); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// LayerCell returns the Layers sheet cell holding block (x, y, z).
func LayerCell(b model.Block) (string, error) {
	return excelize.CoordinatesToCellName(2+b.X, 1+b.Z*layerStride+2+b.Y)
}

func writeLayers(f *excelize.File, placements []model.Placement) error {
	styles := make([]int, len(placements))
	for i := range placements {
		col := colorFor(i)
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{col.Hex()}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border: []excelize.Border{
				{Type: "left", Color: "#000000", Style: 1},
				{Type: "top", Color: "#000000", Style: 1},
				{Type: "right", Color: "#000000", Style: 1},
				{Type: "bottom", Color: "#000000", Style: 1},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create style: %w", err)
		}
		styles[i] = style
	}

	for z := 0; z < model.Side; z++ {
		base := 1 + z*layerStride
		if err := f.SetCellValue(LayersSheet, fmt.Sprintf("A%d", base), fmt.Sprintf("Layer z=%d", z)); err != nil {
			return err
		}
		for x := 0; x < model.Side; x++ {
			cell, _ := excelize.CoordinatesToCellName(2+x, base+1)
			if err := f.SetCellValue(LayersSheet, cell, fmt.Sprintf("x=%d", x)); err != nil {
				return err
			}
		}
		for y := 0; y < model.Side; y++ {
			if err := f.SetCellValue(LayersSheet, fmt.Sprintf("A%d", base+2+y), fmt.Sprintf("y=%d", y)); err != nil {
				return err
			}
		}
	}

	for i, p := range placements {
		for _, b := range p.Blocks() {
			cell, err := LayerCell(b)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(LayersSheet, cell, i); err != nil {
				return err
			}
			if err := f.SetCellStyle(LayersSheet, cell, cell, styles[i]); err != nil {
				return err
			}
		}
	}

	return f.SetColWidth(LayersSheet, "B", "E", 6)
}

func writePieces(f *excelize.File, placements []model.Placement, stats model.SearchStats) error {
	headers := []string{"Piece", "Label", "Blocks", "Binary", "Hex"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(PiecesSheet, cell, h); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(PiecesSheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, p := range placements {
		row := i + 2
		values := []interface{}{p.PieceIndex, p.Label, p.Encoded.Count(), p.Encoded.String(), p.Encoded.Hex()}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(PiecesSheet, cell, v); err != nil {
				return err
			}
		}
	}

	row := len(placements) + 3
	statRows := [][2]interface{}{
		{"Nodes", stats.Nodes},
		{"Overlaps", stats.Overlaps},
		{"Pruned", stats.Pruned},
		{"Elapsed", stats.Elapsed.String()},
	}
	for _, s := range statRows {
		if err := f.SetCellValue(PiecesSheet, fmt.Sprintf("A%d", row), s[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(PiecesSheet, fmt.Sprintf("B%d", row), s[1]); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(PiecesSheet, "B", "B", 14); err != nil {
		return err
	}
	return f.SetColWidth(PiecesSheet, "D", "D", float64(model.Cells))
}
