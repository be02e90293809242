package engine

import "github.com/piwi3910/bedlam/internal/model"

// PieceCandidates lists every distinct placement of one piece inside the cube.
type PieceCandidates []model.Encoded

// CandidateTable holds the candidates of every piece, in catalogue order.
// It is built once and never modified.
type CandidateTable []PieceCandidates

// AxisRange returns the smallest coordinate of the shape along the axis and
// how many translations keep it inside the cube. A count below one means the
// shape is too long to fit along that axis.
func AxisRange(shape model.Shape, axis model.Axis) (min, count int) {
	min, max := shape.Bounds(axis)
	return min, model.Side - (max - min)
}

// ShapeEncodings returns the masks of every in-cube translation of one
// orientation, iterating x, then y, then z offsets.
func ShapeEncodings(shape model.Shape) []model.Encoded {
	xMin, xCount := AxisRange(shape, model.AxisX)
	yMin, yCount := AxisRange(shape, model.AxisY)
	zMin, zCount := AxisRange(shape, model.AxisZ)

	if xCount < 1 || yCount < 1 || zCount < 1 {
		return nil
	}

	encodings := make([]model.Encoded, 0, xCount*yCount*zCount)
	for dx := 0; dx < xCount; dx++ {
		for dy := 0; dy < yCount; dy++ {
			for dz := 0; dz < zCount; dz++ {
				encodings = append(encodings, model.Encode(shape.Shift(dx-xMin, dy-yMin, dz-zMin)))
			}
		}
	}
	return encodings
}

// Candidates returns the placements of every orientation of the shape with
// duplicates removed. The first occurrence of each mask keeps its position,
// so the order is the same on every run.
func Candidates(shape model.Shape) PieceCandidates {
	seen := make(map[model.Encoded]struct{})
	var result PieceCandidates
	for _, orientation := range shape.Orientations() {
		for _, e := range ShapeEncodings(orientation) {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			result = append(result, e)
		}
	}
	return result
}

// BuildCandidates computes the candidate table for a catalogue.
func BuildCandidates(catalogue model.Catalogue) CandidateTable {
	table := make(CandidateTable, len(catalogue))
	for i, p := range catalogue {
		table[i] = Candidates(p.Shape)
	}
	return table
}

// Sizes returns the number of candidates per piece.
func (t CandidateTable) Sizes() []int {
	sizes := make([]int, len(t))
	for i, c := range t {
		sizes[i] = len(c)
	}
	return sizes
}
