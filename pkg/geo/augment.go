package geo

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/Hamza203508/refmap/pkg/errors"
	"github.com/Hamza203508/refmap/pkg/referendum"
)

// AugmentedRow is one region of the renderable table: its outline, the
// aggregated counts and the derived ratio. Ratio is NaN for regions with no
// expressed ballots.
type AugmentedRow struct {
	Code        string
	Name        string
	Geometry    geom.T
	Registered  int64
	Abstentions int64
	Null        int64
	ChoiceA     int64
	ChoiceB     int64
	Ratio       float64
}

// AugmentedTable is the geometry-augmented result table, ordered like the
// input geometry collection.
type AugmentedTable []AugmentedRow

// Augment inner-joins region outlines to aggregated results on region code.
// Geometries without a result row and results without a geometry are both
// silently excluded, tallied in the returned counts. The region name carried
// into the table is the result table's, matching the aggregation key.
func Augment(geoms []RegionGeometry, results referendum.ResultTable) (AugmentedTable, referendum.GeometryCounts) {
	var counts referendum.GeometryCounts
	matched := make(map[string]bool, len(geoms))

	table := make(AugmentedTable, 0, len(geoms))
	for _, g := range geoms {
		r, ok := results.Lookup(g.Code)
		if !ok {
			counts.MissingResult++
			continue
		}
		matched[g.Code] = true
		table = append(table, AugmentedRow{
			Code:        g.Code,
			Name:        r.RegionName,
			Geometry:    g.Geometry,
			Registered:  r.Registered,
			Abstentions: r.Abstentions,
			Null:        r.Null,
			ChoiceA:     r.ChoiceA,
			ChoiceB:     r.ChoiceB,
			Ratio:       r.Ratio(),
		})
	}

	for _, r := range results {
		if !matched[r.RegionCode] {
			counts.MissingGeom++
		}
	}
	counts.Matched = len(matched)
	return table, counts
}

// Encode writes the table as a GeoJSON FeatureCollection. A NaN ratio is
// encoded as null, which JSON can represent and rendering clients treat as
// no-data.
func (t AugmentedTable) Encode(w io.Writer) error {
	fc := geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(t)),
	}
	for _, row := range t {
		var ratio any
		if !math.IsNaN(row.Ratio) {
			ratio = row.Ratio
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       row.Code,
			Geometry: row.Geometry,
			Properties: map[string]any{
				"code":        row.Code,
				"nom":         row.Name,
				"Registered":  row.Registered,
				"Abstentions": row.Abstentions,
				"Null":        row.Null,
				"Choice A":    row.ChoiceA,
				"Choice B":    row.ChoiceB,
				"ratio":       ratio,
			},
		})
	}

	enc := json.NewEncoder(w)
	return enc.Encode(&fc)
}

// WriteFile encodes the table to a GeoJSON file.
func (t AugmentedTable) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO(err, "write", path)
	}
	if err := t.Encode(f); err != nil {
		_ = f.Close()
		return errors.WrapIO(err, "encode", path)
	}
	return errors.WrapIO(f.Close(), "write", path)
}
