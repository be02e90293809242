package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piwi3910/bedlam/internal/model"
)

// Solver runs the exact-cover search for a piece catalogue.
type Solver struct {
	Settings model.SolveSettings
}

func New(settings model.SolveSettings) *Solver {
	return &Solver{Settings: settings}
}

// Solve builds the candidate table for the catalogue and searches for the
// first arrangement that fills the cube. A search that runs out of branches
// returns a result with Found unset and a nil error; errors are reserved for
// an invalid catalogue or a cancelled context.
func (s *Solver) Solve(ctx context.Context, catalogue model.Catalogue) (model.SolveResult, error) {
	if err := catalogue.Validate(); err != nil {
		return model.SolveResult{}, fmt.Errorf("invalid catalogue: %w", err)
	}
	return s.SolveTable(ctx, catalogue, BuildCandidates(catalogue))
}

// SolveTable searches using a prebuilt candidate table. The table must have
// one entry per catalogue piece, in catalogue order.
func (s *Solver) SolveTable(ctx context.Context, catalogue model.Catalogue, table CandidateTable) (model.SolveResult, error) {
	if len(table) != len(catalogue) {
		return model.SolveResult{}, fmt.Errorf("candidate table has %d pieces, catalogue has %d", len(table), len(catalogue))
	}

	if s.Settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Settings.Timeout)
		defer cancel()
	}

	order := PieceOrder(s.Settings.PieceOrder, table)
	ordered := make([]PieceCandidates, len(order))
	for i, idx := range order {
		ordered[i] = table[idx]
	}

	result := model.SolveResult{}
	start := time.Now()
	placed, found, err := Search(ctx, ordered, &result.Stats)
	result.Stats.Elapsed = time.Since(start)
	if err != nil {
		return result, err
	}
	if !found {
		return result, nil
	}

	result.Found = true
	for depth, e := range placed {
		idx := order[depth]
		result.Placements = append(result.Placements, model.Placement{
			PieceIndex: idx,
			Label:      catalogue[idx].Label,
			Encoded:    e,
		})
	}
	return result, nil
}

// PieceOrder returns the catalogue indices in the order the search places them.
// The order is fixed before the search starts.
func PieceOrder(order model.PieceOrder, table CandidateTable) []int {
	indices := make([]int, len(table))
	for i := range indices {
		indices[i] = i
	}
	if order == model.PieceOrderFewestCandidates {
		sort.SliceStable(indices, func(i, j int) bool {
			return len(table[indices[i]]) < len(table[indices[j]])
		})
	}
	return indices
}

// searchState is one node of the search tree. It is passed by value and each
// child gets its own placed slice, so sibling branches never see each
// other's choices.
type searchState struct {
	occupied  model.Encoded
	remaining []PieceCandidates
	placed    []model.Encoded
}

// place returns the child state after choosing c for the next piece.
func (st searchState) place(c model.Encoded) searchState {
	placed := make([]model.Encoded, len(st.placed), len(st.placed)+1)
	copy(placed, st.placed)
	return searchState{
		occupied:  st.occupied | c,
		remaining: st.remaining[1:],
		placed:    append(placed, c),
	}
}

// Search places the pieces in the order of remaining and returns the first
// combination that fills the cube. found is false when every branch has been
// exhausted. The context is checked on entry to every node.
func Search(ctx context.Context, remaining []PieceCandidates, stats *model.SearchStats) (placed []model.Encoded, found bool, err error) {
	if stats == nil {
		stats = &model.SearchStats{}
	}
	return search(ctx, searchState{remaining: remaining}, stats)
}

func search(ctx context.Context, st searchState, stats *model.SearchStats) ([]model.Encoded, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("search cancelled: %w", err)
	}
	stats.Nodes++

	if st.occupied == model.Full {
		return st.placed, true, nil
	}
	if len(st.remaining) == 0 {
		return nil, false, nil
	}

	others := st.remaining[1:]
	for _, c := range st.remaining[0] {
		if c&st.occupied != model.Empty {
			stats.Overlaps++
			continue
		}
		if Prune(st.occupied|c, others) {
			stats.Pruned++
			continue
		}
		placed, found, err := search(ctx, st.place(c), stats)
		if err != nil || found {
			return placed, found, err
		}
	}
	return nil, false, nil
}

// Prune reports whether the partly filled cube can be abandoned. It does so
// when some remaining piece has no placement clear of the filled cells, or
// when some empty cell is covered by no clear placement of any remaining
// piece. Keeping a branch does not mean it can be completed.
func Prune(occupied model.Encoded, remaining []PieceCandidates) bool {
	coverage := occupied
	for _, candidates := range remaining {
		fits := false
		for _, c := range candidates {
			if c&occupied != model.Empty {
				continue
			}
			fits = true
			if coverage |= c; coverage == model.Full {
				break
			}
		}
		if !fits {
			return true
		}
	}
	return coverage != model.Full
}
