// Package peaks implements the peak-listing subcommand.
package peaks

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

// Command creates the peaks command for listing detected peaks without
// running identification.
func Command(settings *conf.Settings) *cobra.Command {
	var enhanced bool

	cmd := &cobra.Command{
		Use:   "peaks [input.json|input.csv]",
		Short: "List detected peaks in a spectrum file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.InputFile = args[0]
			return runPeaks(settings, enhanced)
		},
	}

	cmd.Flags().BoolVar(&enhanced, "enhanced", settings.Analysis.Enhanced, "Use the CWT + fit-validated detector")

	return cmd
}

func runPeaks(settings *conf.Settings, enhanced bool) error {
	s, err := spectrum.LoadFile(settings.InputFile)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	params := peaks.DefaultDetectorParams()
	var found []peaks.Peak
	if enhanced {
		found = peaks.DetectEnhanced(s.Energies, s.Counts, params)
	} else {
		found = peaks.Detect(s.Energies, s.Counts, params)
	}

	fmt.Printf("%d peaks\n", len(found))
	for _, p := range found {
		fmt.Printf("  ch %4d  %8.1f keV  %10.0f counts  [%s]",
			p.Channel, p.EnergyKeV, p.Counts, p.Pass)
		if p.HasFit {
			fmt.Printf("  FWHM %.1f keV  net %.0f±%.0f  R²=%.3f",
				p.FWHMKeV, p.NetArea, p.Uncertainty, p.RSquared)
		}
		fmt.Println()
	}
	return nil
}
