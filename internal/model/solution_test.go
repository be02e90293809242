package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceSolution_IsValid(t *testing.T) {
	require.NoError(t, ReferenceSolution.Validate(13))
	assert.Equal(t, Full, ReferenceSolution.Union())
}

func TestReferenceSolution_DecodesToEveryCellOnce(t *testing.T) {
	shapes := ReferenceSolution.Shapes()
	require.Len(t, shapes, 13)

	seen := map[Block]int{}
	total := 0
	for _, s := range shapes {
		for _, b := range s {
			assert.True(t, b.InBounds())
			seen[b]++
			total++
		}
	}
	assert.Equal(t, Cells, total)
	assert.Len(t, seen, Cells)
	for b, n := range seen {
		assert.Equal(t, 1, n, "cell %v", b)
	}
}

func TestReferenceSolution_MatchesCatalogueSizes(t *testing.T) {
	c := DefaultCatalogue()
	for i, e := range ReferenceSolution {
		assert.Equal(t, len(c[i].Shape), e.Count(), "piece %d", i)
	}
}

func TestSolutionValidate_Errors(t *testing.T) {
	short := ReferenceSolution[:12]
	assert.True(t, errors.Is(short.Validate(13), ErrPieceCount))

	clash := append(Solution{}, ReferenceSolution...)
	clash[1] = clash[0]
	assert.True(t, errors.Is(clash.Validate(13), ErrOverlap))

	gap := append(Solution{}, ReferenceSolution...)
	gap[12] = Empty
	assert.True(t, errors.Is(gap.Validate(13), ErrIncomplete))
}

func TestReferenceResult(t *testing.T) {
	c := DefaultCatalogue()
	r := ReferenceResult(c)

	assert.True(t, r.Found)
	require.Len(t, r.Placements, 13)
	assert.Equal(t, c[4].Label, r.Placements[4].Label)
	assert.Equal(t, ReferenceSolution, r.Solution())
}
