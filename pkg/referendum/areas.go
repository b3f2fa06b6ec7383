package referendum

// MergeAreas merges the region and department reference tables into one
// lookup keyed by department code. Every department yields exactly one row,
// in input order; a department whose RegionCode has no matching region keeps
// empty region fields rather than being dropped (the vote join downstream is
// what ultimately decides row survival).
func MergeAreas(regions []Region, departments []Department) AreaLookup {
	byCode := make(map[string]Region, len(regions))
	for _, r := range regions {
		byCode[r.Code] = r
	}

	lookup := make(AreaLookup, 0, len(departments))
	for _, d := range departments {
		a := Area{
			RegionCode:     d.RegionCode,
			DepartmentCode: d.Code,
			DepartmentName: d.Name,
		}
		if r, ok := byCode[d.RegionCode]; ok {
			a.RegionName = r.Name
		}
		lookup = append(lookup, a)
	}
	return lookup
}
