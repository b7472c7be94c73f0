// Package analyze implements the full-pipeline analysis subcommand.
package analyze

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/analysis"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/datastore"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/observability/metrics"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

// Command creates the analyze command for running the full pipeline on a
// spectrum file.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		asJSON bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [input.json|input.csv]",
		Short: "Identify isotopes and decay chains in a spectrum file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.InputFile = args[0]
			return runAnalysis(settings, asJSON, save)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full result as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the result to the configured datastore")

	return cmd
}

func runAnalysis(settings *conf.Settings, asJSON, save bool) error {
	s, err := spectrum.LoadFile(settings.InputFile)
	if err != nil {
		return err
	}

	m, err := metrics.NewAnalysisMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	result, err := analysis.New(settings, m).Analyze(s)
	if err != nil {
		return err
	}

	if save || settings.Datastore.Enabled {
		if err := persist(settings, result); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(result)
	return nil
}

func persist(settings *conf.Settings, result *analysis.Result) error {
	path := settings.Datastore.Path
	if path == "" {
		path = "alphahound.db"
	}
	store, err := datastore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(result, settings.InputFile)
}

func printResult(result *analysis.Result) {
	fmt.Printf("Analysis %s (%s profile, %.1f ms)\n", result.ID, result.Profile, result.ElapsedMs)
	fmt.Printf("Peaks detected: %d\n", len(result.Peaks))

	if len(result.Isotopes) == 0 {
		fmt.Println("No isotopes above the confidence floor.")
	}
	for _, iso := range result.Isotopes {
		fmt.Printf("  %-10s confidence %5.1f%% (%d/%d lines)",
			iso.Isotope, iso.EnhancedConfidence, len(iso.Matched), iso.TotalLines)
		if iso.Suppressed {
			fmt.Printf("  [suppressed: %s]", iso.SuppressionReason)
		}
		fmt.Println()
	}

	for _, c := range result.Chains {
		fmt.Printf("  chain %-6s %s confidence %.0f%% (%d members, %d key)\n",
			c.Chain, c.Level, c.Confidence, c.NumDetected, c.NumKeyIsotopes)
		if c.EquilibriumNote != "" {
			fmt.Printf("    %s\n", c.EquilibriumNote)
		}
	}
}
