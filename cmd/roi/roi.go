// Package roi implements the region-of-interest measurement subcommand.
package roi

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/roi"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

// Command creates the roi command for quantitative single-isotope
// measurements.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		isotope string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "roi [input.json|input.csv]",
		Short: "Measure an isotope's region of interest",
		Long: `Measure net counts, detection status and, when the detector efficiency
allows, activity and MDA for one isotope's configured region of interest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.InputFile = args[0]
			if isotope == "" {
				return fmt.Errorf("--isotope is required; known: %s",
					strings.Join(nuclide.ROIIsotopes(), ", "))
			}
			return runROI(settings, isotope, asJSON)
		},
	}

	cmd.Flags().StringVarP(&isotope, "isotope", "i", "", "Isotope to measure (e.g. Cs-137)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")

	return cmd
}

func runROI(settings *conf.Settings, isotope string, asJSON bool) error {
	s, err := spectrum.LoadFile(settings.InputFile)
	if err != nil {
		return err
	}

	analyzer := roi.NewAnalyzer(settings.Detector)
	result, err := analyzer.Analyze(s, isotope, settings.SourceType)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(result)
	return nil
}

func printResult(r *roi.ROIResult) {
	fmt.Printf("%s @ %.1f keV  [%.1f-%.1f keV]\n",
		r.Isotope, r.EnergyKeV, r.Window.LowKeV, r.Window.HighKeV)
	fmt.Printf("  gross %.0f  background %.0f  net %.0f ± %.0f (%s)\n",
		r.GrossCounts, r.BackgroundCounts, r.NetCounts, r.UncertaintySigma, r.Method)
	fmt.Printf("  SNR %.2f  limit %.0f  status: %s  confidence %.2f\n",
		r.SNR, r.DetectionLimit, r.Status, r.Confidence)
	if r.ActivityBq != nil {
		fmt.Printf("  activity %.2f Bq\n", *r.ActivityBq)
	}
	if r.MDABq != nil {
		fmt.Printf("  MDA %.2f Bq\n", *r.MDABq)
	}
	for _, w := range r.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, f := range r.LimitingFactors {
		fmt.Printf("  limiting: %s\n", f)
	}
	for _, rec := range r.Recommendations {
		fmt.Printf("  suggest: %s\n", rec)
	}
}
