package referendum

import (
	"io"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
)

// GeometryCounts reports how the augmented-table join went: regions matched
// to a geometry, geometries with no result row, and results with no geometry.
type GeometryCounts struct {
	Matched       int `yaml:"matched"`
	MissingResult int `yaml:"missing_result"`
	MissingGeom   int `yaml:"missing_geometry"`
}

// Report is the optional diagnostics artifact of a pipeline run: per-stage
// row counts for every filtering or joining step that can silently drop
// rows. Observational only — producing it never changes pipeline behavior.
type Report struct {
	GeneratedAt utc.Time        `yaml:"generated_at"`
	Votes       JoinStats       `yaml:"votes"`
	Regions     int             `yaml:"regions"`
	Geometry    *GeometryCounts `yaml:"geometry,omitempty"`
}

// NewReport assembles a report from the core pipeline outputs. Geometry
// counts are attached later by the caller when the map stage runs.
func NewReport(stats JoinStats, results ResultTable) *Report {
	return &Report{
		GeneratedAt: utc.Now(),
		Votes:       stats,
		Regions:     len(results),
	}
}

// WriteYAML encodes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
