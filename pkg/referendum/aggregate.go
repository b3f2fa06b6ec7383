package referendum

// AggregateByRegion groups joined votes by (region code, region name) and
// sums the five count columns for each group. Input order is irrelevant: the
// result is sorted by region code. The grouping key is the pair, not the
// code alone — if a code ever carried two distinct names the table fans out
// into one row per pair, mirroring the source data rather than correcting it.
func AggregateByRegion(votes []JoinedVote) ResultTable {
	type key struct {
		code string
		name string
	}

	sums := make(map[key]*RegionalResult)
	for _, v := range votes {
		k := key{code: v.Area.RegionCode, name: v.Area.RegionName}
		agg, ok := sums[k]
		if !ok {
			agg = &RegionalResult{RegionCode: k.code, RegionName: k.name}
			sums[k] = agg
		}
		agg.Registered += v.Registered
		agg.Abstentions += v.Abstentions
		agg.Null += v.Null
		agg.ChoiceA += v.ChoiceA
		agg.ChoiceB += v.ChoiceB
	}

	table := make(ResultTable, 0, len(sums))
	for _, agg := range sums {
		table = append(table, *agg)
	}
	sortTable(table)
	return table
}
