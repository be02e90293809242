package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	c := DefaultCatalogue()

	require.Len(t, c, 13)
	assert.Equal(t, Cells, c.BlockCount())
	assert.NoError(t, c.Validate())

	ids := map[string]bool{}
	for _, p := range c {
		assert.Len(t, p.ID, 8)
		ids[p.ID] = true
	}
	assert.Len(t, ids, 13, "piece IDs should be unique")
}

func TestDefaultCatalogue_ReturnsCopies(t *testing.T) {
	c := DefaultCatalogue()
	c[0].Shape[0] = Block{9, 9, 9}

	assert.Equal(t, Block{0, 0, 0}, DefaultCatalogue()[0].Shape[0])
}

func TestCatalogueValidate(t *testing.T) {
	c := DefaultCatalogue()
	c[3].Shape = Shape{}
	assert.True(t, errors.Is(c.Validate(), ErrEmptyPiece))

	c = DefaultCatalogue()
	c[2].Shape[1] = c[2].Shape[0]
	assert.True(t, errors.Is(c.Validate(), ErrDuplicateBlock))

	c = DefaultCatalogue()[:12]
	assert.True(t, errors.Is(c.Validate(), ErrBlockCount))
}

func TestParsePieceOrder(t *testing.T) {
	o, err := ParsePieceOrder("")
	require.NoError(t, err)
	assert.Equal(t, PieceOrderCatalogue, o)

	o, err = ParsePieceOrder("fewest-candidates")
	require.NoError(t, err)
	assert.Equal(t, PieceOrderFewestCandidates, o)

	_, err = ParsePieceOrder("random")
	assert.Error(t, err)
}

func TestSolveResult_ByPiece(t *testing.T) {
	r := SolveResult{
		Found: true,
		Placements: []Placement{
			{PieceIndex: 2, Encoded: 4},
			{PieceIndex: 0, Encoded: 1},
			{PieceIndex: 1, Encoded: 2},
		},
	}

	byPiece := r.ByPiece()
	assert.Equal(t, Encoded(1), byPiece[0].Encoded)
	assert.Equal(t, Encoded(2), byPiece[1].Encoded)
	assert.Equal(t, Encoded(4), byPiece[2].Encoded)
	assert.Equal(t, Solution{4, 1, 2}, r.Solution())
}

func TestNewPuzzle(t *testing.T) {
	p := NewPuzzle()

	assert.Len(t, p.ID, 8)
	assert.Len(t, p.Catalogue, 13)
	assert.Equal(t, DefaultSettings(), p.Settings)
	assert.Nil(t, p.Result)
}
