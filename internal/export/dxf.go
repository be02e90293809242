package export

import (
	"fmt"
	"sort"

	"github.com/piwi3910/bedlam/internal/model"
	"github.com/yofu/dxf"
)

// DXFBlockSize is the edge length of one unit block in the DXF drawing (mm).
const DXFBlockSize = 10.0

// edge is a unit-length edge of the cube lattice, starting at corner
// (X, Y, Z) and running one step along Axis.
type edge struct {
	X, Y, Z int
	Axis    model.Axis
}

func (e edge) end() (int, int, int) {
	switch e.Axis {
	case model.AxisX:
		return e.X + 1, e.Y, e.Z
	case model.AxisY:
		return e.X, e.Y + 1, e.Z
	default:
		return e.X, e.Y, e.Z + 1
	}
}

// blockEdges returns the 12 edges of a unit block.
func blockEdges(b model.Block) []edge {
	edges := make([]edge, 0, 12)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			edges = append(edges,
				edge{X: b.X, Y: b.Y + i, Z: b.Z + j, Axis: model.AxisX},
				edge{X: b.X + i, Y: b.Y, Z: b.Z + j, Axis: model.AxisY},
				edge{X: b.X + i, Y: b.Y + j, Z: b.Z, Axis: model.AxisZ},
			)
		}
	}
	return edges
}

// shapeEdges returns the edges of every block in a shape, each edge once,
// in a stable order.
func shapeEdges(shape model.Shape) []edge {
	seen := make(map[edge]bool)
	var edges []edge
	for _, b := range shape {
		for _, e := range blockEdges(b) {
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Axis != b.Axis {
			return a.Axis < b.Axis
		}
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return edges
}

// PieceLayer names the DXF layer holding a piece's wireframe.
func PieceLayer(piece int) string {
	return fmt.Sprintf("PIECE_%02d", piece)
}

// ExportDXF writes the assembled cube as a 3D wireframe, one layer per piece
// coloured like the drawings, so pieces can be toggled in a CAD viewer.
func ExportDXF(path string, result model.SolveResult) error {
	if !result.Found || len(result.Placements) == 0 {
		return fmt.Errorf("no solution to export")
	}

	d := dxf.NewDrawing()
	_, shapes := pieceShapes(result)

	for i, shape := range shapes {
		col := colorFor(i)
		if _, err := d.AddLayer(PieceLayer(i), dxf.ColorIndex([]int{col.R, col.G, col.B}), dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer for piece %d: %w", i, err)
		}

		for _, e := range shapeEdges(shape) {
			x2, y2, z2 := e.end()
			_, err := d.Line(
				float64(e.X)*DXFBlockSize, float64(e.Y)*DXFBlockSize, float64(e.Z)*DXFBlockSize,
				float64(x2)*DXFBlockSize, float64(y2)*DXFBlockSize, float64(z2)*DXFBlockSize,
			)
			if err != nil {
				return fmt.Errorf("failed to draw piece %d: %w", i, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF file: %w", err)
	}
	return nil
}
