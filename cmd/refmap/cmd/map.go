package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Hamza203508/refmap/internal/config"
	"github.com/Hamza203508/refmap/pkg/choropleth"
	"github.com/Hamza203508/refmap/pkg/geo"
	"github.com/Hamza203508/refmap/pkg/logging"
	"github.com/Hamza203508/refmap/pkg/referendum"
)

var (
	mapOut     string
	mapGeoJSON string
	mapTitle   string
	mapReport  string
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Render the Choice-A ratio as a choropleth map",
	Long: `Map runs the full pipeline: aggregate results per region, join them
onto the region outlines, write the augmented table as GeoJSON and render
the ratio of Choice A as a colored map figure.`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().StringVar(&mapOut, "out", "",
		"Figure path (default <out-dir>/referendum_map.png)")
	mapCmd.Flags().StringVar(&mapGeoJSON, "geojson", "",
		"Augmented table path (default <out-dir>/referendum_by_region.geojson)")
	mapCmd.Flags().StringVar(&mapTitle, "title", choropleth.DefaultTitle,
		"Figure title")
	mapCmd.Flags().StringVar(&mapReport, "report", "",
		"Write a YAML diagnostics report (dropped-row counts) to this path")
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	paths := config.Load()

	results, stats, err := computeResults(ctx, paths)
	if err != nil {
		return err
	}

	geoms, err := geo.LoadRegions(paths.Geometry)
	if err != nil {
		return fmt.Errorf("loading geometry: %w", err)
	}

	table, counts := geo.Augment(geoms, results)
	log.Info().
		Int("matched", counts.Matched).
		Int("missing_result", counts.MissingResult).
		Int("missing_geometry", counts.MissingGeom).
		Msg("Joined results onto region outlines")

	geojsonPath := mapGeoJSON
	if geojsonPath == "" {
		geojsonPath = filepath.Join(paths.OutDir, "referendum_by_region.geojson")
	}
	if err := table.WriteFile(geojsonPath); err != nil {
		return err
	}
	log.Info().Str("path", geojsonPath).Msg("Wrote augmented table")

	figurePath := mapOut
	if figurePath == "" {
		figurePath = filepath.Join(paths.OutDir, "referendum_map.png")
	}
	opts := choropleth.DefaultOptions()
	opts.Title = mapTitle
	if err := choropleth.Save(table, opts, figurePath); err != nil {
		return fmt.Errorf("rendering map: %w", err)
	}
	log.Info().Str("path", figurePath).Msg("Wrote map figure")

	if mapReport != "" {
		report := referendum.NewReport(stats, results)
		report.Geometry = &counts
		if err := writeReport(report, mapReport); err != nil {
			return err
		}
	}
	return nil
}
