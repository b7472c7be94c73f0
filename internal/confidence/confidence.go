// Package confidence combines energy closeness, literature intensity, fit
// quality, signal-to-noise and multi-line consistency into a single bounded
// confidence value per isotope match, with a half-life plausibility discount
// in the enhanced path.
package confidence

import (
	"math"
	"time"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/matcher"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
)

// Factor caps. The five factors sum to at most 1.0.
const (
	CapEnergyMatch = 0.25
	CapIntensity   = 0.25
	CapFitQuality  = 0.20
	CapSNR         = 0.15
	CapMultiLine   = 0.15
)

// DefaultSampleAge is the assumed age of a sample of unknown provenance,
// used by the half-life plausibility penalty.
const DefaultSampleAge = 7 * 24 * time.Hour

// Factors is the per-factor breakdown accompanying a confidence value.
type Factors struct {
	EnergyMatch   float64
	Intensity     float64
	FitQuality    float64
	SignalToNoise float64
	MultiLine     float64
	// HalfLifePenalty is the multiplicative plausibility discount applied
	// in the enhanced path (1.0 when not applied).
	HalfLifePenalty float64
}

// Score computes the confidence in [0,1] that a detected peak at
// detectedEnergy is isotope's line at expectedEnergy, with the factor
// breakdown. allPeaks provides multi-line context.
func Score(isotope string, detectedEnergy, expectedEnergy float64, peak peaks.Peak, allPeaks []peaks.Peak, toleranceKeV float64) (float64, Factors) {
	f := Factors{HalfLifePenalty: 1}

	f.EnergyMatch = energyFactor(detectedEnergy, expectedEnergy, toleranceKeV)
	f.Intensity = intensityFactor(isotope, expectedEnergy, toleranceKeV)
	f.FitQuality = fitFactor(peak)
	f.SignalToNoise = snrFactor(peak)
	f.MultiLine = multiLineFactor(isotope, allPeaks, toleranceKeV)

	total := f.EnergyMatch + f.Intensity + f.FitQuality + f.SignalToNoise + f.MultiLine
	return clamp01(total), f
}

// ScoreMatch refines a basic matcher result into an enhanced 0-100
// confidence: the five-factor score of its best matched line, discounted by
// half-life plausibility and by the suppression flag.
func ScoreMatch(m matcher.IsotopeMatch, allPeaks []peaks.Peak, toleranceKeV float64, sampleAge time.Duration) (float64, Factors) {
	if len(m.Matched) == 0 {
		return 0, Factors{HalfLifePenalty: 1}
	}

	best := bestLine(m)
	score, f := Score(m.Isotope, best.Peak.EnergyKeV, best.LineEnergyKeV, best.Peak, allPeaks, toleranceKeV)

	f.HalfLifePenalty = HalfLifePenalty(m.Isotope, sampleAge)
	score *= f.HalfLifePenalty

	if m.Suppressed {
		score *= 0.1
	}
	return clamp01(score) * 100, f
}

// bestLine picks the matched line with the strongest peak.
func bestLine(m matcher.IsotopeMatch) matcher.MatchedLine {
	best := m.Matched[0]
	for _, ml := range m.Matched[1:] {
		if ml.Peak.Counts > best.Peak.Counts {
			best = ml
		}
	}
	return best
}

// energyFactor falls off linearly with energy mismatch, zero past tolerance.
func energyFactor(detected, expected, tol float64) float64 {
	if tol <= 0 {
		return 0
	}
	diff := math.Abs(detected - expected)
	if diff > tol {
		return 0
	}
	return CapEnergyMatch * (1 - diff/tol)
}

// intensityFactor weights by literature line intensity; unknown isotopes or
// lines get full credit since unknown must not read as "expected absent".
func intensityFactor(isotope string, expectedEnergy, tol float64) float64 {
	intensity := nuclide.LineIntensity(isotope, expectedEnergy, tol, 100)
	frac := intensity / 100
	if frac > 1 {
		frac = 1
	}
	return CapIntensity * frac
}

// fitFactor rewards a clean Gaussian fit, with partial credit for unfitted
// raw peaks and a token for failed fits.
func fitFactor(p peaks.Peak) float64 {
	switch {
	case p.HasFit && p.FitValid:
		return CapFitQuality * clamp01(p.RSquared)
	case !p.HasFit:
		return 0.10
	default:
		return 0.05
	}
}

// snrFactor bands net/sqrt(background) and multiplies by a Poisson quality
// term that keeps low-count peaks from scoring high on SNR alone.
func snrFactor(p peaks.Peak) float64 {
	snr := peakSNR(p)
	var band float64
	switch {
	case snr >= 10:
		band = 0.12
	case snr >= 5:
		band = 0.09
	case snr >= 2:
		band = 0.06
	default:
		band = 0.02
	}
	poissonQuality := math.Min(1, math.Sqrt(p.Counts)/math.Sqrt(500))
	return band * poissonQuality
}

// peakSNR estimates signal-to-noise from fit results when present, else from
// raw counts under a Poisson floor.
func peakSNR(p peaks.Peak) float64 {
	if p.HasFit && p.BackgroundArea > 0 {
		return p.NetArea / math.Sqrt(p.BackgroundArea)
	}
	if p.Counts > 0 {
		return math.Sqrt(p.Counts)
	}
	return 0
}

// multiLineFactor rewards corroboration across an isotope's reference lines.
// Single-line isotopes top out at 0.06 (0.02 when that line is ambiguous);
// two or more matched lines earn up to the full cap, cut when every matched
// line is an ambiguous energy.
func multiLineFactor(isotope string, allPeaks []peaks.Peak, tol float64) float64 {
	lines := nuclide.LinesFor(isotope)
	if len(lines) == 0 {
		return 0.06
	}

	matched := 0
	ambiguousMatched := 0
	for _, line := range lines {
		if hasPeakNear(allPeaks, line.EnergyKeV, tol) {
			matched++
			if nuclide.IsAmbiguousEnergy(line.EnergyKeV, tol) {
				ambiguousMatched++
			}
		}
	}
	if matched == 0 {
		return 0
	}

	if len(lines) == 1 {
		if nuclide.IsAmbiguousEnergy(lines[0].EnergyKeV, tol) {
			return 0.02
		}
		return 0.06
	}

	if matched < 2 {
		return 0.05
	}
	val := CapMultiLine * float64(matched) / float64(len(lines))
	if val < 0.08 {
		val = 0.08
	}
	if ambiguousMatched == matched {
		val *= 0.33
	}
	return math.Min(val, CapMultiLine)
}

func hasPeakNear(allPeaks []peaks.Peak, energy, tol float64) bool {
	for _, p := range allPeaks {
		if math.Abs(p.EnergyKeV-energy) <= tol {
			return true
		}
	}
	return false
}

// HalfLifePenalty discounts isotopes whose half-life says they should have
// decayed away by sampleAge. Chain daughters are continuously replenished and
// exempt; isotopes with no half-life on file get the benefit of most doubt.
func HalfLifePenalty(isotope string, sampleAge time.Duration) float64 {
	if nuclide.IsChainDaughter(isotope) {
		return 1.0
	}
	hl, ok := nuclide.HalfLife(isotope)
	if !ok {
		return 0.8
	}
	if hl <= 0 {
		return 0.8
	}

	elapsed := float64(sampleAge) / float64(hl)
	switch {
	case elapsed < 1:
		return 1.0
	case elapsed < 5:
		// Linear decline from 1.0 at one half-life to 0.3 at five.
		return 1.0 - (elapsed-1)/4*0.7
	case elapsed < 10:
		return 0.3 - (elapsed-5)/5*0.2
	default:
		return 0.01
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
