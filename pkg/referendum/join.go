package referendum

// JoinStats counts rows dropped at each step of the vote join. The counts
// are purely diagnostic; they never alter the join result.
type JoinStats struct {
	Input     int `yaml:"input"`
	Excluded  int `yaml:"excluded"`  // normalized code contains the overseas marker
	Unmatched int `yaml:"unmatched"` // no area row for the normalized code
	Joined    int `yaml:"joined"`
}

// JoinVotes normalizes each record's department code, drops overseas/abroad
// records, and inner-joins the survivors against the area lookup.
//
// The join is deliberately inner: a record whose normalized code has no area
// row disappears silently (malformed and non-mainland codes alike), counted
// only in the returned stats. Duplicate codes in the lookup fan a record out
// into one JoinedVote per matching area row.
func JoinVotes(records []VoteRecord, areas AreaLookup) ([]JoinedVote, JoinStats) {
	stats := JoinStats{Input: len(records)}
	idx := areas.index()

	joined := make([]JoinedVote, 0, len(records))
	for _, rec := range records {
		code := NormalizeDepartmentCode(rec.DepartmentCode)
		if IsOverseasCode(code) {
			stats.Excluded++
			continue
		}
		matches, ok := idx[code]
		if !ok {
			stats.Unmatched++
			continue
		}
		for _, area := range matches {
			joined = append(joined, JoinedVote{
				VoteRecord: rec,
				Code:       code,
				Area:       area,
			})
		}
	}
	stats.Joined = len(joined)
	return joined, stats
}
