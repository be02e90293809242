package project

import (
	"errors"
	"fmt"

	"github.com/piwi3910/bedlam/internal/model"
)

// ErrInvalidPuzzle is returned when a puzzle file parses but does not
// describe a usable puzzle.
var ErrInvalidPuzzle = errors.New("invalid puzzle")

// SavePuzzle writes a puzzle to path as indented JSON.
func SavePuzzle(path string, puzzle model.Puzzle) error {
	if err := writeJSON(path, puzzle); err != nil {
		return fmt.Errorf("failed to save puzzle: %w", err)
	}
	return nil
}

// LoadPuzzle reads a puzzle from path and checks that its catalogue fills
// the cube and that any stored solution matches the catalogue.
func LoadPuzzle(path string) (model.Puzzle, error) {
	var puzzle model.Puzzle
	if err := readJSON(path, &puzzle); err != nil {
		return model.Puzzle{}, fmt.Errorf("failed to load puzzle: %w", err)
	}

	if err := validatePuzzle(&puzzle); err != nil {
		return model.Puzzle{}, fmt.Errorf("%w: %s: %v", ErrInvalidPuzzle, path, err)
	}
	return puzzle, nil
}

func validatePuzzle(p *model.Puzzle) error {
	if err := p.Catalogue.Validate(); err != nil {
		return err
	}

	order, err := model.ParsePieceOrder(string(p.Settings.PieceOrder))
	if err != nil {
		return err
	}
	p.Settings.PieceOrder = order
	if p.Settings.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", p.Settings.Timeout)
	}

	if p.Result == nil || !p.Result.Found {
		return nil
	}
	seen := make(map[int]bool, len(p.Result.Placements))
	for _, pl := range p.Result.Placements {
		if pl.PieceIndex < 0 || pl.PieceIndex >= len(p.Catalogue) || seen[pl.PieceIndex] {
			return fmt.Errorf("result places piece %d more than once or outside the catalogue", pl.PieceIndex)
		}
		seen[pl.PieceIndex] = true
		if want := len(p.Catalogue[pl.PieceIndex].Shape); pl.Encoded.Count() != want {
			return fmt.Errorf("result gives piece %d %d blocks, want %d", pl.PieceIndex, pl.Encoded.Count(), want)
		}
	}
	return p.Result.Solution().Validate(len(p.Catalogue))
}
