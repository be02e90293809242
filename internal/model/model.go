package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Piece is one polycube of the puzzle.
type Piece struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Shape Shape  `json:"shape"`
}

func NewPiece(label string, shape Shape) Piece {
	return Piece{
		ID:    uuid.New().String()[:8],
		Label: label,
		Shape: shape,
	}
}

// Catalogue is the ordered list of pieces that must fill the cube.
type Catalogue []Piece

var (
	ErrEmptyPiece     = errors.New("piece has no blocks")
	ErrDuplicateBlock = errors.New("piece repeats a block")
	ErrBlockCount     = errors.New("catalogue block count does not fill the cube")
)

// BlockCount returns the total number of blocks over all pieces.
func (c Catalogue) BlockCount() int {
	total := 0
	for _, p := range c {
		total += len(p.Shape)
	}
	return total
}

// Shapes returns the shapes of all pieces in catalogue order.
func (c Catalogue) Shapes() []Shape {
	shapes := make([]Shape, len(c))
	for i, p := range c {
		shapes[i] = p.Shape
	}
	return shapes
}

// Validate checks that every piece is non-empty, that no piece repeats a
// block, and that the pieces together hold exactly one cube's worth of blocks.
func (c Catalogue) Validate() error {
	for i, p := range c {
		if len(p.Shape) == 0 {
			return fmt.Errorf("piece %d (%s): %w", i, p.Label, ErrEmptyPiece)
		}
		seen := make(map[Block]struct{}, len(p.Shape))
		for _, b := range p.Shape {
			if _, ok := seen[b]; ok {
				return fmt.Errorf("piece %d (%s) block %v: %w", i, p.Label, b, ErrDuplicateBlock)
			}
			seen[b] = struct{}{}
		}
	}
	if n := c.BlockCount(); n != Cells {
		return fmt.Errorf("%w: have %d blocks, need %d", ErrBlockCount, n, Cells)
	}
	return nil
}

// bedlamShapes are the 13 pieces of the Bedlam cube.
var bedlamShapes = []Shape{
	{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {1, 1, 0}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {1, 0, 0}, {0, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {1, 0, 1}, {0, 0, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 2, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 2, 1}, {1, 1, 1}},
	{{0, 1, 0}, {1, 0, 0}, {1, 1, 0}, {1, 2, 0}, {2, 1, 0}},
	{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {1, 1, 0}, {0, 1, 1}},
	{{0, 1, 0}, {0, 2, 0}, {1, 0, 0}, {1, 1, 0}, {2, 1, 0}},
	{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {0, 1, 1}, {0, 2, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}, {1, 0, 0}, {0, 2, 1}},
	{{0, 1, 0}, {0, 2, 0}, {1, 0, 0}, {1, 1, 0}, {2, 0, 0}},
}

// DefaultCatalogue returns a fresh copy of the Bedlam cube pieces.
func DefaultCatalogue() Catalogue {
	c := make(Catalogue, len(bedlamShapes))
	for i, s := range bedlamShapes {
		shape := make(Shape, len(s))
		copy(shape, s)
		c[i] = NewPiece(fmt.Sprintf("Piece %d", i+1), shape)
	}
	return c
}

// PieceOrder selects the order in which the solver places pieces.
type PieceOrder string

const (
	PieceOrderCatalogue        PieceOrder = "catalogue"         // Pieces in catalogue order
	PieceOrderFewestCandidates PieceOrder = "fewest-candidates" // Most constrained piece first, fixed before the search starts
)

// ParsePieceOrder maps a name to a PieceOrder. Empty selects the catalogue order.
func ParsePieceOrder(s string) (PieceOrder, error) {
	switch PieceOrder(s) {
	case "", PieceOrderCatalogue:
		return PieceOrderCatalogue, nil
	case PieceOrderFewestCandidates:
		return PieceOrderFewestCandidates, nil
	default:
		return "", fmt.Errorf("unknown piece order %q", s)
	}
}

// SolveSettings holds solver configuration.
type SolveSettings struct {
	PieceOrder PieceOrder    `json:"piece_order"`
	Timeout    time.Duration `json:"timeout"` // 0 = no limit
}

func DefaultSettings() SolveSettings {
	return SolveSettings{
		PieceOrder: PieceOrderCatalogue,
		Timeout:    0,
	}
}

// Placement is one piece at its chosen position in the cube.
type Placement struct {
	PieceIndex int     `json:"piece_index"` // Index into the catalogue
	Label      string  `json:"label"`
	Encoded    Encoded `json:"encoded"`
}

// Blocks decodes the placement's cells.
func (p Placement) Blocks() Shape {
	return Decode(p.Encoded)
}

// SearchStats records how much work a search did.
type SearchStats struct {
	Nodes    int64         `json:"nodes"`    // Recursive steps entered
	Overlaps int64         `json:"overlaps"` // Candidates rejected for clashing with filled cells
	Pruned   int64         `json:"pruned"`   // Candidates rejected by the feasibility check
	Elapsed  time.Duration `json:"elapsed"`
}

// SolveResult holds the outcome of one search.
type SolveResult struct {
	Found      bool        `json:"found"`
	Placements []Placement `json:"placements"` // In placement order; empty when not found
	Stats      SearchStats `json:"stats"`
}

// Solution returns the placed masks in placement order.
func (r SolveResult) Solution() Solution {
	s := make(Solution, len(r.Placements))
	for i, p := range r.Placements {
		s[i] = p.Encoded
	}
	return s
}

// ByPiece returns the placements sorted by catalogue index.
func (r SolveResult) ByPiece() []Placement {
	sorted := make([]Placement, len(r.Placements))
	for _, p := range r.Placements {
		if p.PieceIndex >= 0 && p.PieceIndex < len(sorted) {
			sorted[p.PieceIndex] = p
		}
	}
	return sorted
}

// Puzzle ties a catalogue, settings and an optional result together for save/load.
type Puzzle struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Catalogue Catalogue     `json:"catalogue"`
	Settings  SolveSettings `json:"settings"`
	Result    *SolveResult  `json:"result,omitempty"`
}

func NewPuzzle() Puzzle {
	return Puzzle{
		ID:        uuid.New().String()[:8],
		Name:      "Bedlam",
		Catalogue: DefaultCatalogue(),
		Settings:  DefaultSettings(),
	}
}
