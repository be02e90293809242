package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/bedlam/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolveSettings
}

// ComparisonResult holds the search result and headline statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Result   model.SolveResult
	Err      error
}

// Summary returns a one-line description of the scenario outcome.
func (c ComparisonResult) Summary() string {
	status := "not found"
	switch {
	case c.Err != nil:
		status = "error: " + c.Err.Error()
	case c.Result.Found:
		status = "found"
	}
	s := c.Result.Stats
	return fmt.Sprintf("%-28s %-10s nodes=%d overlaps=%d pruned=%d elapsed=%s",
		c.Scenario.Name, status, s.Nodes, s.Overlaps, s.Pruned, s.Elapsed)
}

// CompareScenarios runs the search once per scenario, sharing one candidate
// table, and returns the results in scenario order.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, catalogue model.Catalogue) ([]ComparisonResult, error) {
	if err := catalogue.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalogue: %w", err)
	}
	table := BuildCandidates(catalogue)

	results := make([]ComparisonResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).SolveTable(ctx, catalogue, table)
		results = append(results, ComparisonResult{
			Scenario: scenario,
			Result:   result,
			Err:      err,
		})
	}
	return results, nil
}

// BuildDefaultScenarios returns one scenario per piece order, starting from
// the base settings.
func BuildDefaultScenarios(base model.SolveSettings) []ComparisonScenario {
	catalogue := base
	catalogue.PieceOrder = model.PieceOrderCatalogue

	fewest := base
	fewest.PieceOrder = model.PieceOrderFewestCandidates

	return []ComparisonScenario{
		{Name: "Catalogue order", Settings: catalogue},
		{Name: "Fewest candidates first", Settings: fewest},
	}
}
