package geo

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/Hamza203508/refmap/pkg/referendum"
)

func squareAt(x, y float64) *geom.Polygon {
	p := geom.NewPolygon(geom.XY)
	_, err := p.SetCoords([][]geom.Coord{{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}})
	if err != nil {
		panic(err)
	}
	return p
}

func TestAugmentInnerJoin(t *testing.T) {
	geoms := []RegionGeometry{
		{Code: "84", Name: "Auvergne-Rhône-Alpes", Geometry: squareAt(0, 0)},
		{Code: "93", Name: "Provence-Alpes-Côte d'Azur", Geometry: squareAt(2, 0)},
		{Code: "XX", Name: "No result", Geometry: squareAt(4, 0)},
	}
	results := referendum.ResultTable{
		{RegionCode: "11", RegionName: "No geometry", Registered: 1, ChoiceA: 1},
		{RegionCode: "84", RegionName: "Auvergne-Rhône-Alpes", Registered: 150, ChoiceA: 70, ChoiceB: 60},
		{RegionCode: "93", RegionName: "Provence-Alpes-Côte d'Azur", Registered: 30, ChoiceA: 5, ChoiceB: 15},
	}

	table, counts := Augment(geoms, results)
	require.Len(t, table, 2, "both unmatched sides must be excluded")
	require.Equal(t, referendum.GeometryCounts{Matched: 2, MissingResult: 1, MissingGeom: 1}, counts)

	require.Equal(t, "84", table[0].Code)
	require.EqualValues(t, 150, table[0].Registered)
	require.InDelta(t, 70.0/130.0, table[0].Ratio, 1e-9)
	require.InDelta(t, 0.25, table[1].Ratio, 1e-9)
}

func TestAugmentNaNRatio(t *testing.T) {
	geoms := []RegionGeometry{{Code: "84", Geometry: squareAt(0, 0)}}
	results := referendum.ResultTable{
		{RegionCode: "84", RegionName: "Auvergne-Rhône-Alpes", Registered: 10, Abstentions: 10},
	}

	table, _ := Augment(geoms, results)
	require.Len(t, table, 1)
	require.True(t, math.IsNaN(table[0].Ratio))
}

func TestEncodeRoundTrips(t *testing.T) {
	geoms := []RegionGeometry{
		{Code: "84", Geometry: squareAt(0, 0)},
		{Code: "93", Geometry: squareAt(2, 0)},
	}
	results := referendum.ResultTable{
		{RegionCode: "84", RegionName: "Auvergne-Rhône-Alpes", Registered: 150, ChoiceA: 70, ChoiceB: 60},
		{RegionCode: "93", RegionName: "Provence-Alpes-Côte d'Azur", Registered: 20, Abstentions: 20},
	}
	table, _ := Augment(geoms, results)

	var buf bytes.Buffer
	require.NoError(t, table.Encode(&buf))

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 2)

	props := decoded.Features[0].Properties
	require.Equal(t, "Auvergne-Rhône-Alpes", props["nom"])
	require.EqualValues(t, 150, props["Registered"])
	require.InDelta(t, 70.0/130.0, props["ratio"].(float64), 1e-9)

	// NaN is not representable in JSON; the zero-expressed region encodes null.
	require.Nil(t, decoded.Features[1].Properties["ratio"])
}

func TestEncodeIdempotent(t *testing.T) {
	geoms, err := DecodeRegions(strings.NewReader(regionsGeoJSON))
	require.NoError(t, err)
	results := referendum.ResultTable{
		{RegionCode: "84", RegionName: "Auvergne-Rhône-Alpes", ChoiceA: 1, ChoiceB: 1},
		{RegionCode: "93", RegionName: "Provence-Alpes-Côte d'Azur", ChoiceA: 2, ChoiceB: 2},
	}

	table, _ := Augment(geoms, results)
	var first, second bytes.Buffer
	require.NoError(t, table.Encode(&first))
	require.NoError(t, table.Encode(&second))
	require.Equal(t, first.String(), second.String())
}
