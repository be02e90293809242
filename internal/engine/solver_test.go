package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piwi3910/bedlam/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstCatalogueSolution is the arrangement the search reaches first when the
// default catalogue is placed in catalogue order.
var firstCatalogueSolution = model.Solution{
	3146001, 131682, 34431827968, 5348028852535296, 3458806295262396416,
	576680656776462336, 72076354471854080, 838864896, 1073800192,
	18015360590544896, 39406522509295616, 134219916, 14276410818764472320,
}

func solveDefault(t *testing.T, settings model.SolveSettings) model.SolveResult {
	t.Helper()
	result, err := New(settings).Solve(context.Background(), model.DefaultCatalogue())
	require.NoError(t, err)
	return result
}

func TestSolve_FindsValidSolution(t *testing.T) {
	result := solveDefault(t, model.DefaultSettings())

	require.True(t, result.Found)
	require.Len(t, result.Placements, 13)
	require.NoError(t, result.Solution().Validate(13))

	for i, p := range result.Placements {
		assert.Equal(t, i, p.PieceIndex, "catalogue order places pieces in order")
		assert.Equal(t, model.DefaultCatalogue()[i].Label, p.Label)
	}
	assert.Greater(t, result.Stats.Nodes, int64(13))
	assert.Greater(t, result.Stats.Pruned, int64(0))
}

func TestSolve_PairwiseDisjointAndCovering(t *testing.T) {
	solution := solveDefault(t, model.DefaultSettings()).Solution()

	var union model.Encoded
	for i := range solution {
		for j := i + 1; j < len(solution); j++ {
			assert.Zero(t, solution[i]&solution[j], "pieces %d and %d overlap", i, j)
		}
		union |= solution[i]
	}
	assert.Equal(t, model.Full, union)
}

func TestSolve_Deterministic(t *testing.T) {
	first := solveDefault(t, model.DefaultSettings())
	second := solveDefault(t, model.DefaultSettings())

	assert.Equal(t, first.Solution(), second.Solution())
	assert.Equal(t, first.Stats.Nodes, second.Stats.Nodes)
	assert.Equal(t, firstCatalogueSolution, first.Solution())
}

func TestSolve_FewestCandidatesOrder(t *testing.T) {
	settings := model.DefaultSettings()
	settings.PieceOrder = model.PieceOrderFewestCandidates

	result := solveDefault(t, settings)

	require.True(t, result.Found)
	require.NoError(t, result.Solution().Validate(13))
	// The plus-shaped piece has the fewest placements.
	assert.Equal(t, 6, result.Placements[0].PieceIndex)

	byPiece := result.ByPiece()
	catalogue := model.DefaultCatalogue()
	for i, p := range byPiece {
		assert.Equal(t, i, p.PieceIndex)
		assert.Equal(t, len(catalogue[i].Shape), p.Encoded.Count())
	}
}

func TestSolve_InvalidCatalogue(t *testing.T) {
	catalogue := model.DefaultCatalogue()[:12]

	_, err := New(model.DefaultSettings()).Solve(context.Background(), catalogue)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrBlockCount))
}

func TestSolve_NoSolutionIsNotAnError(t *testing.T) {
	// A rod of five cannot lie inside a cube of side four, so the first piece
	// has no candidates at all.
	rod := model.Shape{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}}
	var rest model.Shape
	for _, b := range model.Decode(model.Full) {
		if b.Y == 0 && b.Z == 0 || b == (model.Block{X: 0, Y: 1, Z: 0}) {
			continue
		}
		rest = append(rest, b)
	}
	catalogue := model.Catalogue{
		model.NewPiece("Rod", rod),
		model.NewPiece("Rest", rest),
	}
	require.NoError(t, catalogue.Validate())

	result, err := New(model.DefaultSettings()).Solve(context.Background(), catalogue)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Placements)
	assert.Equal(t, int64(1), result.Stats.Nodes)
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(model.DefaultSettings()).Solve(ctx, model.DefaultCatalogue())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, result.Found)
}

func TestSolve_Timeout(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Timeout = time.Nanosecond

	_, err := New(settings).Solve(context.Background(), model.DefaultCatalogue())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSolveTable_MismatchedTable(t *testing.T) {
	catalogue := model.DefaultCatalogue()
	table := BuildCandidates(catalogue)[:5]

	_, err := New(model.DefaultSettings()).SolveTable(context.Background(), catalogue, table)
	assert.Error(t, err)
}

func TestSearch_FullCubeIsImmediateSuccess(t *testing.T) {
	placed, found, err := Search(context.Background(), []PieceCandidates{{model.Full}}, nil)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []model.Encoded{model.Full}, placed)
}

func TestSearch_SiblingsDoNotShareState(t *testing.T) {
	// Two halves of the cube. The first candidate for piece A leaves a hole
	// piece B cannot fill, so the search must back off and try the second
	// candidate against an empty cube.
	low := model.Encoded(0x0000_0000_FFFF_FFFF)
	high := model.Encoded(0xFFFF_FFFF_0000_0000)
	odd := model.Encoded(0x0000_FFFF_FFFF_0000)

	remaining := []PieceCandidates{
		{odd, low},
		{high},
	}
	stats := model.SearchStats{}
	placed, found, err := Search(context.Background(), remaining, &stats)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []model.Encoded{low, high}, placed)
	assert.Equal(t, int64(1), stats.Pruned)
}

func TestPrune_NeverRejectsReferencePrefix(t *testing.T) {
	table := BuildCandidates(model.DefaultCatalogue())

	var occupied model.Encoded
	for depth, e := range model.ReferenceSolution {
		occupied |= e
		assert.False(t, Prune(occupied, table[depth+1:]), "prefix of length %d", depth+1)
	}
}

func TestPrune_NeverRejectsFoundSolutionPrefix(t *testing.T) {
	table := BuildCandidates(model.DefaultCatalogue())

	var occupied model.Encoded
	for depth, e := range firstCatalogueSolution {
		occupied |= e
		assert.False(t, Prune(occupied, table[depth+1:]), "prefix of length %d", depth+1)
	}
}

func TestPrune_UnreachableCell(t *testing.T) {
	table := BuildCandidates(model.DefaultCatalogue())

	// Filling the three neighbours of the corner walls it off: no piece of
	// more than one block can reach it.
	occupied := model.Encode(model.Shape{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}})
	assert.True(t, Prune(occupied, table))
}

func TestPrune_PieceCannotFit(t *testing.T) {
	table := BuildCandidates(model.DefaultCatalogue())

	// Only one cell left empty; no five-block piece fits.
	occupied := model.Full &^ model.EncodeBlock(model.Block{X: 2, Y: 2, Z: 2})
	assert.True(t, Prune(occupied, table[:1]))
}

func TestPrune_EmptyCubeKept(t *testing.T) {
	table := BuildCandidates(model.DefaultCatalogue())
	assert.False(t, Prune(model.Empty, table))
}

func TestPrune_HoleWithFittingPieces(t *testing.T) {
	pair := model.Encode(model.Shape{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 2}})
	hole := model.EncodeBlock(model.Block{X: 3, Y: 3, Z: 3})
	occupied := model.Full &^ (pair | hole)

	assert.True(t, Prune(occupied, []PieceCandidates{{pair}}), "piece fits but the hole stays empty")
	assert.False(t, Prune(occupied|hole, []PieceCandidates{{pair}}))
}

func TestPieceOrder(t *testing.T) {
	table := CandidateTable{{1, 2, 3}, {1}, {1, 2}, {4}}

	assert.Equal(t, []int{0, 1, 2, 3}, PieceOrder(model.PieceOrderCatalogue, table))
	assert.Equal(t, []int{1, 3, 2, 0}, PieceOrder(model.PieceOrderFewestCandidates, table))
}
