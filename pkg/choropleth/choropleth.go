// Package choropleth renders the geometry-augmented result table as a map
// figure: each region outline filled from a diverging color scale over the
// Choice-A ratio.
package choropleth

import (
	"image/color"
	"math"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	pkgerrors "github.com/Hamza203508/refmap/pkg/errors"
	"github.com/Hamza203508/refmap/pkg/geo"
)

// DefaultTitle labels the figure with the metric it depicts.
const DefaultTitle = "Referendum results: ratio of Choice A"

// Options control the rendered figure.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length

	// NoData fills regions whose ratio is undefined (no expressed ballots).
	NoData color.Color
}

// DefaultOptions returns the standard figure setup.
func DefaultOptions() Options {
	return Options{
		Title:  DefaultTitle,
		Width:  25 * vg.Centimeter,
		Height: 20 * vg.Centimeter,
		NoData: color.Gray{Y: 0xcc},
	}
}

// New builds the map plot from an augmented table. The color scale is fixed
// to [0, 1] so the same ratio always renders the same color across runs and
// datasets. Axes and frame are hidden; only the filled outlines and the
// title remain. Rows with a NaN ratio are drawn in the no-data fill instead
// of being dropped, so the map still shows the region's shape.
func New(table geo.AugmentedTable, opts Options) (*plot.Plot, error) {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.NoData == nil {
		opts.NoData = color.Gray{Y: 0xcc}
	}

	scale := moreland.SmoothBlueRed()
	scale.SetMin(0)
	scale.SetMax(1)

	p := plot.New()
	p.Title.Text = opts.Title
	p.HideAxes()

	for _, row := range table {
		fill := opts.NoData
		if !math.IsNaN(row.Ratio) {
			c, err := scale.At(row.Ratio)
			if err != nil {
				return nil, err
			}
			fill = c
		}

		for _, rings := range polygonRings(row.Geometry) {
			if len(rings) == 0 {
				continue
			}
			poly, err := plotter.NewPolygon(rings...)
			if err != nil {
				return nil, err
			}
			poly.Color = fill
			poly.LineStyle = draw.LineStyle{
				Color: color.Gray{Y: 0x55},
				Width: vg.Points(0.5),
			}
			p.Add(poly)
		}
	}

	return p, nil
}

// Save renders the table and writes the figure to path. The image format
// follows the file extension (png, pdf, svg, ...).
func Save(table geo.AugmentedTable, opts Options, path string) error {
	p, err := New(table, opts)
	if err != nil {
		return err
	}
	if opts.Width == 0 || opts.Height == 0 {
		d := DefaultOptions()
		if opts.Width == 0 {
			opts.Width = d.Width
		}
		if opts.Height == 0 {
			opts.Height = d.Height
		}
	}
	return pkgerrors.WrapIO(p.Save(opts.Width, opts.Height, path), "write", path)
}

// polygonRings flattens a Polygon or MultiPolygon into per-polygon ring
// sets, each ring as plot coordinates. Unsupported geometry types yield
// nothing rather than an error: the map simply omits them.
func polygonRings(g geom.T) [][]plotter.XYer {
	switch t := g.(type) {
	case *geom.Polygon:
		return [][]plotter.XYer{ringsOf(t)}
	case *geom.MultiPolygon:
		out := make([][]plotter.XYer, 0, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			out = append(out, ringsOf(t.Polygon(i)))
		}
		return out
	default:
		return nil
	}
}

// ringsOf converts every linear ring of a polygon to plotter coordinates.
func ringsOf(p *geom.Polygon) []plotter.XYer {
	rings := make([]plotter.XYer, 0, p.NumLinearRings())
	for i := 0; i < p.NumLinearRings(); i++ {
		coords := p.LinearRing(i).Coords()
		xys := make(plotter.XYs, len(coords))
		for j, c := range coords {
			xys[j].X = c.X()
			xys[j].Y = c.Y()
		}
		rings = append(rings, xys)
	}
	return rings
}
