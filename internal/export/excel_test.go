package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/piwi3910/bedlam/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportExcel_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.xlsx")
	result := buildTestResult()

	if err := ExportExcel(path, result); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != LayersSheet || sheets[1] != PiecesSheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	filled := 0
	for i, shape := range model.ReferenceSolution.Shapes() {
		for _, b := range shape {
			cell, err := LayerCell(b)
			if err != nil {
				t.Fatalf("LayerCell(%v): %v", b, err)
			}
			got, err := f.GetCellValue(LayersSheet, cell)
			if err != nil {
				t.Fatalf("GetCellValue(%s): %v", cell, err)
			}
			if got != strconv.Itoa(i) {
				t.Errorf("cell %s for block %v = %q, want %d", cell, b, got, i)
			}
			filled++
		}
	}
	if filled != model.Cells {
		t.Errorf("checked %d cells, want %d", filled, model.Cells)
	}

	title, _ := f.GetCellValue(LayersSheet, "A8")
	if title != "Layer z=1" {
		t.Errorf("second layer title = %q", title)
	}
}

func TestExportExcel_Pieces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.xlsx")
	result := buildTestResult()

	if err := ExportExcel(path, result); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(PiecesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) < 14 {
		t.Fatalf("got %d rows, want at least 14", len(rows))
	}
	if rows[0][0] != "Piece" || rows[0][3] != "Binary" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	for i, e := range model.ReferenceSolution {
		row := rows[i+1]
		if row[0] != strconv.Itoa(i) {
			t.Errorf("row %d piece = %q", i+1, row[0])
		}
		if row[2] != strconv.Itoa(e.Count()) {
			t.Errorf("row %d blocks = %q, want %d", i+1, row[2], e.Count())
		}
		parsed, err := model.ParseEncoded(row[3])
		if err != nil {
			t.Fatalf("row %d binary: %v", i+1, err)
		}
		if parsed != e {
			t.Errorf("row %d binary does not round-trip", i+1)
		}
		if row[4] != e.Hex() {
			t.Errorf("row %d hex = %q, want %q", i+1, row[4], e.Hex())
		}
	}
}

func TestExportExcel_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportExcel(path, model.SolveResult{}); err == nil {
		t.Fatal("expected error for a result without a solution, got nil")
	}
}

func TestLayerCell(t *testing.T) {
	tests := []struct {
		b    model.Block
		want string
	}{
		{model.Block{}, "B3"},
		{model.Block{X: 3, Y: 3}, "E6"},
		{model.Block{Z: 1}, "B10"},
		{model.Block{X: 1, Y: 2, Z: 3}, "C26"},
	}
	for _, tt := range tests {
		got, err := LayerCell(tt.b)
		if err != nil {
			t.Fatalf("LayerCell(%v): %v", tt.b, err)
		}
		if got != tt.want {
			t.Errorf("LayerCell(%v) = %q, want %q", tt.b, got, tt.want)
		}
	}
}
