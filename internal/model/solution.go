package model

import (
	"errors"
	"fmt"
)

// Solution is one mask per piece, in placement order.
type Solution []Encoded

var (
	ErrPieceCount = errors.New("solution has the wrong number of pieces")
	ErrOverlap    = errors.New("solution pieces overlap")
	ErrIncomplete = errors.New("solution leaves cells empty")
)

// Union ORs all placements together.
func (s Solution) Union() Encoded {
	var u Encoded
	for _, e := range s {
		u |= e
	}
	return u
}

// Validate checks that the solution has one mask per piece, that no two
// masks share a cell, and that together they fill the cube.
func (s Solution) Validate(pieces int) error {
	if len(s) != pieces {
		return fmt.Errorf("%w: have %d, want %d", ErrPieceCount, len(s), pieces)
	}
	var seen Encoded
	for i, e := range s {
		if seen.Overlaps(e) {
			return fmt.Errorf("%w: piece %d clashes at %s", ErrOverlap, i, (seen & e).String())
		}
		seen |= e
	}
	if seen != Full {
		return fmt.Errorf("%w: %d of %d cells filled", ErrIncomplete, seen.Count(), Cells)
	}
	return nil
}

// Shapes decodes every mask.
func (s Solution) Shapes() []Shape {
	shapes := make([]Shape, len(s))
	for i, e := range s {
		shapes[i] = Decode(e)
	}
	return shapes
}

// ReferenceSolution is a known arrangement of the default catalogue, one mask
// per piece in catalogue order.
var ReferenceSolution = Solution{
	3146001, 131682, 9223528167505920000, 39969481052651520, 71339008, 1152975380693385216,
	549898944640, 838864896, 281556581154816, 70371965427712, 891712863658311680, 292058038284,
	7138205409382236160,
}

// ReferenceResult wraps ReferenceSolution as a SolveResult labelled from the catalogue.
func ReferenceResult(c Catalogue) SolveResult {
	result := SolveResult{Found: true}
	for i, e := range ReferenceSolution {
		label := fmt.Sprintf("Piece %d", i+1)
		if i < len(c) {
			label = c[i].Label
		}
		result.Placements = append(result.Placements, Placement{PieceIndex: i, Label: label, Encoded: e})
	}
	return result
}
