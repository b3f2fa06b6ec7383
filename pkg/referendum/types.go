// Package referendum implements the reconciliation and aggregation pipeline
// that turns raw referendum vote tallies into per-region totals. The three
// input tables ship with mismatched department-code encodings; this package
// normalizes the codes, screens out overseas records, joins votes to their
// administrative region and sums the counts per region.
package referendum

import (
	"math"
	"sort"
)

// VoteRecord is one row of the referendum table: the tallies reported by a
// single polling unit. DepartmentCode is kept as read from the source, which
// mixes bare numerics ("1") with zero-padded strings ("01").
type VoteRecord struct {
	DepartmentCode string
	Registered     int64
	Abstentions    int64
	Null           int64
	ChoiceA        int64
	ChoiceB        int64
}

// Region is one administrative region from the reference table.
type Region struct {
	Code string
	Name string
}

// Department is one administrative department from the reference table.
// RegionCode points at the owning Region.
type Department struct {
	Code       string
	Name       string
	RegionCode string
}

// Area is one row of the department-to-region lookup produced by MergeAreas.
// Region fields are empty when the department references an unknown region.
type Area struct {
	RegionCode     string
	RegionName     string
	DepartmentCode string
	DepartmentName string
}

// AreaLookup maps departments to their owning region, one row per input
// department in input order. Department codes are expected to be unique;
// duplicates are not detected and fan out in downstream joins.
type AreaLookup []Area

// index builds a code-keyed view of the lookup. Duplicate codes keep all
// their rows so join fan-out matches the source behavior.
func (l AreaLookup) index() map[string][]Area {
	idx := make(map[string][]Area, len(l))
	for _, a := range l {
		idx[a.DepartmentCode] = append(idx[a.DepartmentCode], a)
	}
	return idx
}

// JoinedVote is a VoteRecord enriched with its area. Code holds the
// normalized department code the join matched on; Area is always a valid,
// matched row.
type JoinedVote struct {
	VoteRecord
	Code string
	Area Area
}

// RegionalResult is the aggregate for one region: the five counts summed
// over every joined vote record belonging to it.
type RegionalResult struct {
	RegionCode  string
	RegionName  string
	Registered  int64
	Abstentions int64
	Null        int64
	ChoiceA     int64
	ChoiceB     int64
}

// Expressed returns the number of expressed ballots (Choice A plus Choice B).
func (r RegionalResult) Expressed() int64 {
	return r.ChoiceA + r.ChoiceB
}

// Ratio returns ChoiceA / (ChoiceA + ChoiceB), or NaN when no ballots were
// expressed. Callers rendering the value must tolerate NaN.
func (r RegionalResult) Ratio() float64 {
	expressed := r.Expressed()
	if expressed == 0 {
		return math.NaN()
	}
	return float64(r.ChoiceA) / float64(expressed)
}

// ResultTable holds one RegionalResult per region, sorted by region code
// (then name, should a region code ever map to two names).
type ResultTable []RegionalResult

// Lookup returns the result for a region code. When duplicate names fanned
// out into several rows for one code, the first row wins.
func (t ResultTable) Lookup(code string) (RegionalResult, bool) {
	for _, r := range t {
		if r.RegionCode == code {
			return r, true
		}
	}
	return RegionalResult{}, false
}

// sortTable orders the table by its unique key.
func sortTable(t ResultTable) {
	sort.Slice(t, func(i, j int) bool {
		if t[i].RegionCode != t[j].RegionCode {
			return t[i].RegionCode < t[j].RegionCode
		}
		return t[i].RegionName < t[j].RegionName
	})
}
