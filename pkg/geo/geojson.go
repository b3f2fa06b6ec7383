// Package geo handles the region geometry side of the pipeline: decoding
// the region outlines from GeoJSON, joining them to aggregated referendum
// results, and encoding the augmented table back to GeoJSON.
package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/Hamza203508/refmap/pkg/errors"
)

// RegionGeometry is one region outline keyed by its region code. Geometry is
// a Polygon or MultiPolygon.
type RegionGeometry struct {
	Code     string
	Name     string
	Geometry geom.T
}

// DecodeRegions reads a GeoJSON FeatureCollection of region outlines. The
// region code is taken from the "code" property and normalized to a string
// regardless of how the source encoded it (numeric codes are common in
// hand-edited files); the name comes from "nom" or "name". Features without
// a code property are rejected: the table is useless without its join key.
func DecodeRegions(r io.Reader) ([]RegionGeometry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}

	regions := make([]RegionGeometry, 0, len(fc.Features))
	for i, f := range fc.Features {
		code, ok := propertyString(f.Properties, "code")
		if !ok {
			return nil, &errors.ParseError{
				File: "feature collection",
				Line: i + 1,
				Err:  fmt.Errorf("feature has no %q property: %w", "code", errors.ErrMissingField),
			}
		}
		name, _ := propertyString(f.Properties, "nom")
		if name == "" {
			name, _ = propertyString(f.Properties, "name")
		}
		regions = append(regions, RegionGeometry{
			Code:     code,
			Name:     name,
			Geometry: f.Geometry,
		})
	}
	return regions, nil
}

// LoadRegions reads region outlines from a GeoJSON file.
func LoadRegions(path string) ([]RegionGeometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO(err, "read", path)
	}
	defer f.Close() //nolint:errcheck // read-only
	regions, err := DecodeRegions(f)
	return regions, errors.WrapIO(err, "decode", path)
}

// propertyString coerces a GeoJSON property to its string form. JSON
// numbers come through as float64; integer-valued ones are rendered without
// a fractional part so "84" and 84 normalize identically.
func propertyString(props map[string]any, key string) (string, bool) {
	v, ok := props[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case json.Number:
		return s.String(), true
	default:
		return fmt.Sprintf("%v", s), true
	}
}
