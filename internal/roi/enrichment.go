package roi

import (
	"fmt"
	"math"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/fitting"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

// EnrichmentCategory classifies the U-235/Th-234 count ratio.
type EnrichmentCategory string

const (
	EnrichmentNotApplicable EnrichmentCategory = "Not Applicable"
	EnrichmentMismatch      EnrichmentCategory = "Source Type Mismatch"
	EnrichmentEnriched      EnrichmentCategory = "Enriched"
	EnrichmentNatural       EnrichmentCategory = "Natural"
	EnrichmentDepleted      EnrichmentCategory = "Depleted"
	EnrichmentIndeterminate EnrichmentCategory = "Indeterminate"
)

// minChainDaughterCounts gates the whole analysis: without a U-238 chain
// daughter above this net count the spectrum contains no uranium worth
// classifying and no category is guessed.
const minChainDaughterCounts = 30.0

// Classification thresholds on the 186/93 keV net count ratio, in percent.
// Empirically tuned for small CsI detectors, like the ROI tables themselves.
const (
	ratioMismatchPercent = 150.0
	ratioEnrichedPercent = 100.0
	ratioNaturalPercent  = 30.0
)

// EnrichmentResult is the outcome of the uranium enrichment ratio analysis.
type EnrichmentResult struct {
	CanAnalyze   bool
	Category     EnrichmentCategory
	RatioPercent float64
	// U235NetCounts is the 186 keV net count after any Ra-226 correction.
	U235NetCounts    float64
	Th234NetCounts   float64
	RaInterference   bool
	RaSubtracted     bool
	RaEstimatedAt186 float64
	Confidence       float64 // 0-1
	Notes            []string
}

// AnalyzeEnrichment estimates the uranium enrichment category from the
// 186 keV (U-235) to 93 keV (Th-234) net count ratio, handling the Ra-226
// interference at 186 keV. It never guesses a category from a
// uranium-absent spectrum.
func (a *Analyzer) AnalyzeEnrichment(s *spectrum.Spectrum, sourceType string) *EnrichmentResult {
	r := &EnrichmentResult{Category: EnrichmentNotApplicable}
	if s.Validate() != nil || s.Channels() == 0 {
		r.Notes = append(r.Notes, "spectrum is empty or malformed")
		return r
	}

	th234 := a.netCounts(s, "Th-234")
	bi214 := a.netCounts(s, "Bi-214")
	pa234m := a.netCounts(s, "Pa-234m")

	if th234 <= minChainDaughterCounts && bi214 <= minChainDaughterCounts && pa234m <= minChainDaughterCounts {
		r.Notes = append(r.Notes,
			"no U-238 chain daughter (Th-234, Bi-214, Pa-234m) above 30 net counts; enrichment analysis not applicable")
		return r
	}
	r.CanAnalyze = true
	r.Th234NetCounts = th234

	u235 := a.netCounts(s, "U-235")
	r.U235NetCounts = u235

	sig, haveSig := nuclide.SourceSignatureFor(sourceType)
	raBearing := haveSig && sig.Ra226Bearing
	if bi214 > minChainDaughterCounts || raBearing {
		// Ra-226 emits at 186.2 keV, U-235 at 185.7 keV; a scintillator
		// cannot separate them.
		r.RaInterference = true
		r.Notes = append(r.Notes, "Ra-226 interference flagged at 186 keV")

		if u235Net, ra186, ok := a.resolveDoubletAt186(s); ok {
			// A detector sharp enough to split the complex makes the
			// equilibrium model unnecessary.
			r.RaEstimatedAt186 = ra186
			r.U235NetCounts = u235Net
			r.RaSubtracted = true
			r.Notes = append(r.Notes, fmt.Sprintf(
				"two-component fit resolved the 186 keV complex: %.0f counts U-235, %.0f counts Ra-226",
				u235Net, ra186))
		} else if haveSig && sig.SubtractionAllowed && bi214 > 0 {
			ra186 := a.estimateRa226At186(bi214)
			r.RaEstimatedAt186 = ra186
			r.U235NetCounts = u235 - ra186
			r.RaSubtracted = true
			r.Notes = append(r.Notes, fmt.Sprintf(
				"estimated Ra-226 contribution of %.0f counts at 186 keV subtracted (scaled from the Bi-214 609 keV line); result is an estimate",
				ra186))
		} else {
			r.Category = EnrichmentIndeterminate
			r.Confidence = math.Min(a.statisticsConfidence(th234, u235), 0.2)
			r.Notes = append(r.Notes,
				"interference cannot be corrected for this source type; ratio is indeterminate")
			return r
		}
	}

	if th234 <= 0 {
		r.Category = EnrichmentIndeterminate
		r.Confidence = 0.1
		r.Notes = append(r.Notes, "Th-234 reference line has no net signal")
		return r
	}

	r.RatioPercent = r.U235NetCounts / th234 * 100
	r.Category, r.Confidence = classifyRatio(r.RatioPercent, a.statisticsConfidence(th234, r.U235NetCounts))
	if r.RaSubtracted {
		r.Confidence = clamp01(r.Confidence * 0.7)
	}
	if r.Category == EnrichmentMismatch {
		r.Notes = append(r.Notes, fmt.Sprintf(
			"186/93 keV ratio of %.0f%% is physically implausible for uranium; the source type hint is probably wrong",
			r.RatioPercent))
	}
	return r
}

func classifyRatio(ratioPercent, statConf float64) (EnrichmentCategory, float64) {
	switch {
	case ratioPercent >= ratioMismatchPercent:
		return EnrichmentMismatch, math.Min(statConf, 0.1)
	case ratioPercent >= ratioEnrichedPercent:
		return EnrichmentEnriched, statConf
	case ratioPercent >= ratioNaturalPercent:
		return EnrichmentNatural, statConf
	case ratioPercent > 0:
		return EnrichmentDepleted, statConf
	default:
		return EnrichmentIndeterminate, math.Min(statConf, 0.2)
	}
}

// statisticsConfidence grades the counting statistics feeding the ratio.
func (a *Analyzer) statisticsConfidence(th234, u235 float64) float64 {
	weakest := math.Min(th234, math.Abs(u235))
	switch {
	case weakest > 1000:
		return 0.8
	case weakest > 300:
		return 0.6
	case weakest > 100:
		return 0.4
	default:
		return 0.25
	}
}

// resolveDoubletAt186 attempts a two-Gaussian fit of the U-235 (185.7 keV)
// and Ra-226 (186.2 keV) components. Small scintillators never resolve the
// half-keV spacing, so the result is only trusted when the fitted components
// are genuinely separated; otherwise callers fall back to the scaled Bi-214
// subtraction.
func (a *Analyzer) resolveDoubletAt186(s *spectrum.Spectrum) (u235Net, ra226Net float64, ok bool) {
	results, r2 := fitting.FitDoublet(s.Energies, s.Counts, u235LineKeV, ra226LineKeV, 30, true)
	if len(results) != 2 {
		return 0, 0, false
	}
	u235, ra := results[0], results[1]
	if ra.CentroidKeV < u235.CentroidKeV {
		u235, ra = ra, u235
	}
	if !doubletResolved(u235, ra, r2) {
		return 0, 0, false
	}
	return u235.NetArea, ra.NetArea, true
}

const (
	u235LineKeV  = 185.7
	ra226LineKeV = 186.2
)

// doubletResolved accepts a two-component fit only when the fit is good, the
// centroids sit further apart than the mean FWHM, and neither component is a
// sliver of the total area. Anything closer is one blob split arbitrarily in
// two, and a sliver component is the fit soaking up a fluctuation.
func doubletResolved(lo, hi *fitting.FitResult, r2 float64) bool {
	if r2 <= 0.7 || lo.NetArea <= 0 || hi.NetArea <= 0 {
		return false
	}
	total := lo.NetArea + hi.NetArea
	if math.Min(lo.NetArea, hi.NetArea) < 0.1*total {
		return false
	}
	return hi.CentroidKeV-lo.CentroidKeV >= (lo.FWHMKeV+hi.FWHMKeV)/2
}

// estimateRa226At186 scales the measured Bi-214 609 keV net counts to the
// expected Ra-226 186 keV counts assuming secular equilibrium, using the
// literature yield ratio and the detector efficiency ratio at the two
// energies.
func (a *Analyzer) estimateRa226At186(bi214At609 float64) float64 {
	const (
		yieldRa186 = 3.6  // percent
		yieldBi609 = 45.5 // percent
	)
	effRatio := 1.0
	if a.curve != nil {
		eff609 := a.curve.At(609.3)
		if eff609 > 0 {
			effRatio = a.curve.At(186.2) / eff609
		}
	}
	return bi214At609 * (yieldRa186 / yieldBi609) * effRatio
}

// netCounts runs the simple integration path for an isotope's ROI and
// returns signed net counts, or 0 when the isotope has no ROI definition.
func (a *Analyzer) netCounts(s *spectrum.Spectrum, isotope string) float64 {
	cfg, ok := nuclide.ROIFor(isotope)
	if !ok {
		return 0
	}
	gross, background := integrate(s, cfg)
	return gross - background
}
