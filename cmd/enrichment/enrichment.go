// Package enrichment implements the uranium enrichment estimation subcommand.
package enrichment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/roi"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

// Command creates the enrichment command for the 186/93 keV uranium ratio
// analysis.
func Command(settings *conf.Settings) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "enrichment [input.json|input.csv]",
		Short: "Estimate uranium enrichment from the 186/93 keV ratio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.InputFile = args[0]
			return runEnrichment(settings, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")

	return cmd
}

func runEnrichment(settings *conf.Settings, asJSON bool) error {
	s, err := spectrum.LoadFile(settings.InputFile)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	analyzer := roi.NewAnalyzer(settings.Detector)
	result := analyzer.AnalyzeEnrichment(s, settings.SourceType)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(result)
	return nil
}

func printResult(r *roi.EnrichmentResult) {
	fmt.Printf("Category: %s (confidence %.2f)\n", r.Category, r.Confidence)
	if !r.CanAnalyze {
		for _, n := range r.Notes {
			fmt.Printf("  %s\n", n)
		}
		return
	}
	fmt.Printf("  186/93 keV ratio: %.1f%%\n", r.RatioPercent)
	fmt.Printf("  U-235 net: %.0f  Th-234 net: %.0f\n", r.U235NetCounts, r.Th234NetCounts)
	if r.RaInterference {
		fmt.Printf("  Ra-226 interference at 186 keV")
		if r.RaSubtracted {
			fmt.Printf(" (subtracted %.0f counts)", r.RaEstimatedAt186)
		}
		fmt.Println()
	}
	for _, n := range r.Notes {
		fmt.Printf("  %s\n", n)
	}
}
