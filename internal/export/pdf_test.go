package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/bedlam/internal/model"
)

// buildTestResult returns the reference solution with some search statistics.
func buildTestResult() model.SolveResult {
	result := model.ReferenceResult(model.DefaultCatalogue())
	result.Stats = model.SearchStats{
		Nodes:    1234,
		Overlaps: 56789,
		Pruned:   4321,
		Elapsed:  150 * time.Millisecond,
	}
	return result
}

// buildSingleBlockResult returns a one-piece result filling only the origin cell.
func buildSingleBlockResult() model.SolveResult {
	return model.SolveResult{
		Found: true,
		Placements: []model.Placement{
			{PieceIndex: 0, Label: "Unit", Encoded: model.EncodeBlock(model.Block{})},
		},
	}
}

func assertFileWritten(t *testing.T, path string, minSize int64) []byte {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Fatalf("file seems too small: %d bytes", info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	return data
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.pdf")

	if err := ExportPDF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data := assertFileWritten(t, path, 1000)
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("file does not start with a PDF header")
	}
}

func TestExportPDF_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, model.SolveResult{}); err == nil {
		t.Fatal("expected error for a result without a solution, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written when there is nothing to export")
	}
}

func TestExportPDF_SinglePiece(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.pdf")

	if err := ExportPDF(path, buildSingleBlockResult()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestPageTransform(t *testing.T) {
	tr := pageTransform{scale: 0.5, offsetX: 10, offsetY: 20}

	got := tr.apply(point{X: 100, Y: -40})
	if got.X != 60 || got.Y != 0 {
		t.Errorf("apply() = (%v, %v), want (60, 0)", got.X, got.Y)
	}

	poly := tr.polygon(facePanel)
	if len(poly) != len(facePanel) {
		t.Fatalf("polygon() returned %d points, want %d", len(poly), len(facePanel))
	}
	if poly[0].X != 10 || poly[0].Y != 20 {
		t.Errorf("first panel point = (%v, %v), want the offset", poly[0].X, poly[0].Y)
	}
}
