package referendum

import (
	"context"

	"github.com/Hamza203508/refmap/pkg/logging"
)

// Inputs bundles the three loaded source tables.
type Inputs struct {
	Records     []VoteRecord
	Regions     []Region
	Departments []Department
}

// Run executes the core pipeline: merge the reference tables, join the vote
// records, aggregate per region. Pure over its inputs; the context is used
// for logging only.
func Run(ctx context.Context, in Inputs) (ResultTable, JoinStats) {
	log := logging.FromContext(ctx)

	areas := MergeAreas(in.Regions, in.Departments)
	log.Debug().
		Int("regions", len(in.Regions)).
		Int("departments", len(in.Departments)).
		Msg("Merged area lookup")

	joined, stats := JoinVotes(in.Records, areas)
	log.Info().
		Int("input", stats.Input).
		Int("excluded", stats.Excluded).
		Int("unmatched", stats.Unmatched).
		Int("joined", stats.Joined).
		Msg("Joined vote records to areas")

	table := AggregateByRegion(joined)
	log.Info().Int("regions", len(table)).Msg("Aggregated results by region")

	return table, stats
}
