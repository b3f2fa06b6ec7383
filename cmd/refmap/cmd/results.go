package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Hamza203508/refmap/internal/config"
	"github.com/Hamza203508/refmap/internal/ingest"
	"github.com/Hamza203508/refmap/pkg/errors"
	"github.com/Hamza203508/refmap/pkg/logging"
	"github.com/Hamza203508/refmap/pkg/referendum"
)

var (
	resultsOut    string
	resultsReport string
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Aggregate referendum results by region",
	Long: `Results loads the three input tables, joins the vote records to their
administrative region and prints the per-region totals. The table can
additionally be written as CSV with --out.`,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&resultsOut, "out", "",
		"Write the result table as CSV to this path")
	resultsCmd.Flags().StringVar(&resultsReport, "report", "",
		"Write a YAML diagnostics report (dropped-row counts) to this path")
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	paths := config.Load()

	table, stats, err := computeResults(ctx, paths)
	if err != nil {
		return err
	}

	printResults(table)

	if resultsOut != "" {
		if err := writeResultsCSV(table, resultsOut); err != nil {
			return err
		}
		logging.FromContext(ctx).Info().Str("path", resultsOut).Msg("Wrote result table")
	}
	if resultsReport != "" {
		report := referendum.NewReport(stats, table)
		if err := writeReport(report, resultsReport); err != nil {
			return err
		}
	}
	return nil
}

// computeResults runs the core pipeline over the configured inputs.
func computeResults(ctx context.Context, paths config.Paths) (referendum.ResultTable, referendum.JoinStats, error) {
	var (
		in  referendum.Inputs
		err error
	)
	if in.Records, err = ingest.LoadReferendum(paths.Referendum); err != nil {
		return nil, referendum.JoinStats{}, fmt.Errorf("loading referendum: %w", err)
	}
	if in.Regions, err = ingest.LoadRegions(paths.Regions); err != nil {
		return nil, referendum.JoinStats{}, fmt.Errorf("loading regions: %w", err)
	}
	if in.Departments, err = ingest.LoadDepartments(paths.Departments); err != nil {
		return nil, referendum.JoinStats{}, fmt.Errorf("loading departments: %w", err)
	}

	table, stats := referendum.Run(ctx, in)
	return table, stats, nil
}

// printResults writes the aligned result table to stdout.
func printResults(table referendum.ResultTable) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "code\tname\tRegistered\tAbstentions\tNull\tChoice A\tChoice B\tratio")
	for _, r := range table {
		ratio := "-"
		if v := r.Ratio(); !math.IsNaN(v) {
			ratio = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.RegionCode, r.RegionName,
			r.Registered, r.Abstentions, r.Null, r.ChoiceA, r.ChoiceB, ratio)
	}
	_ = w.Flush()
}

func writeResultsCSV(table referendum.ResultTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO(err, "write", path)
	}
	if err := table.WriteCSV(f); err != nil {
		_ = f.Close()
		return errors.WrapIO(err, "encode", path)
	}
	return errors.WrapIO(f.Close(), "write", path)
}

func writeReport(report *referendum.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO(err, "write", path)
	}
	if err := report.WriteYAML(f); err != nil {
		_ = f.Close()
		return errors.WrapIO(err, "encode", path)
	}
	return errors.WrapIO(f.Close(), "write", path)
}
