package peaks

import (
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/dsp"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/fitting"
)

// DetectEnhanced runs the two-stage enhanced detector: continuous wavelet
// transform candidate detection (falling back to the prominence pass when the
// CWT finds nothing), then mandatory Gaussian-fit validation per candidate.
// A candidate survives when its fit reaches params.FitMinRSquared, or is kept
// with FitValid=false when its net area still exceeds
// params.FitAreaKeepOverride. This is the detector the pipeline uses by
// default; Detect is the fallback.
func DetectEnhanced(energies, counts []float64, params DetectorParams) (found []Peak) {
	defer func() {
		if r := recover(); r != nil {
			logger().Error("enhanced peak detection panicked, returning no peaks", "panic", r)
			found = []Peak{}
		}
	}()

	found = []Peak{}
	if len(energies) != len(counts) || len(counts) == 0 {
		return found
	}
	maxCount := maxOf(counts)
	if maxCount <= 0 {
		return found
	}

	candidates := cwtCandidates(counts, maxCount, params)
	pass := PassCWT
	if len(candidates) == 0 {
		candidates = prominencePass(counts, maxCount, params)
		pass = PassProminence
	}

	for _, ch := range candidates {
		p := Peak{
			Channel:   ch,
			EnergyKeV: energies[ch],
			Counts:    counts[ch],
			Pass:      pass,
		}
		// Let the second-derivative walk-out size the fit window; on
		// structureless data it degenerates to the configured width.
		low, high := fitting.AutoROI(energies, counts, p.EnergyKeV, params.FitROIWidthKeV)
		fit := fitting.FitSinglePeak(energies, counts, p.EnergyKeV, (high-low)/2, fitting.BaselineLinear)
		switch {
		case fit == nil:
			// Unfittable candidates are noise at this stage.
			continue
		case fit.RSquared >= params.FitMinRSquared:
			attachFit(&p, fit, true)
		case fit.NetArea > params.FitAreaKeepOverride:
			attachFit(&p, fit, false)
		default:
			continue
		}
		found = append(found, p)
	}

	return sortAndTruncate(found, params.MaxPeaks)
}

// cwtCandidates extracts ridge maxima from a Ricker CWT of the spectrum.
func cwtCandidates(counts []float64, maxCount float64, params DetectorParams) []int {
	if len(params.CWTWidths) == 0 {
		return nil
	}
	rows := dsp.CWT(counts, params.CWTWidths)
	return dsp.CWTRidgeMaxima(rows, params.CWTMinCoeffFrac*maxCount, params.MinDistance)
}

func attachFit(p *Peak, fit *fitting.FitResult, valid bool) {
	p.HasFit = true
	p.FitValid = valid
	p.EnergyKeV = fit.CentroidKeV
	p.FWHMKeV = fit.FWHMKeV
	p.ResolutionPercent = fit.ResolutionPercent
	p.NetArea = fit.NetArea
	p.BackgroundArea = fit.BackgroundArea
	p.RSquared = fit.RSquared
	p.Uncertainty = fit.Uncertainty
}
