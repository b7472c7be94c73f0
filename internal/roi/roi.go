// Package roi performs quantitative region-of-interest analysis for a single
// named isotope: background-subtracted net counts, Poisson uncertainty,
// Currie detection limits, activity in Bq via detector efficiency and
// branching ratio, plus the uranium enrichment special analysis.
package roi

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/fitting"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

func logger() *slog.Logger {
	if l := logging.ForService("roi"); l != nil {
		return l
	}
	return slog.Default().With("service", "roi")
}

// DetectionStatus describes the outcome band of an ROI measurement.
type DetectionStatus string

const (
	StatusStrong         DetectionStatus = "Strong"
	StatusGood           DetectionStatus = "Good"
	StatusWeak           DetectionStatus = "Weak"
	StatusMarginal       DetectionStatus = "Marginal"
	StatusOverSubtracted DetectionStatus = "Over-subtracted"
	StatusBelowLimit     DetectionStatus = "Below detection limit"
)

// Method names for how net counts were obtained.
const (
	MethodGaussianFit = "gaussian_fit"
	MethodIntegration = "integration"
)

// Detection thresholds.
const (
	minDetectionSNR    = 2.0
	minDetectionCounts = 20.0
	targetSNR          = 3.0
	shortAcquisition   = 60 * time.Second
)

// ROIResult is one quantitative measurement, computed fresh per request.
type ROIResult struct {
	Isotope          string
	EnergyKeV        float64
	Window           nuclide.EnergyWindow
	GrossCounts      float64
	BackgroundCounts float64
	// NetCounts keeps its sign; over-subtraction shows as negative net even
	// though activity conversion floors at zero.
	NetCounts        float64
	UncertaintySigma float64
	DetectionLimit   float64
	SNR              float64
	Detected         bool
	Status           DetectionStatus
	Confidence       float64 // 0-1
	Method           string

	// ActivityBq and MDABq are nil when efficiency, live time or branching
	// ratio make the conversion impossible, or (for activity) when nothing
	// was detected.
	ActivityBq *float64
	MDABq      *float64

	Warnings               []string
	LimitingFactors        []string
	Recommendations        []string
	RequiredTimeMultiplier float64
}

// Analyzer performs ROI analysis against one detector model's efficiency
// curve.
type Analyzer struct {
	detector string
	curve    *nuclide.EfficiencyCurve
}

// NewAnalyzer builds an analyzer for the named detector model. Unknown
// detectors still analyze counts but cannot convert to activity.
func NewAnalyzer(detector string) *Analyzer {
	curve, ok := nuclide.EfficiencyCurveFor(detector)
	if !ok && detector != "" {
		logger().Warn("unknown detector model, activity conversion disabled", "detector", detector)
	}
	return &Analyzer{detector: detector, curve: curve}
}

// Analyze measures the named isotope's ROI in the spectrum. The only error
// case is an unknown isotope name, which is a caller programming error; all
// data-quality problems surface in the result's status and confidence.
func (a *Analyzer) Analyze(s *spectrum.Spectrum, isotope, sourceType string) (*ROIResult, error) {
	cfg, ok := nuclide.ROIFor(isotope)
	if !ok {
		return nil, errors.NotFoundError("ROI configuration for isotope", isotope)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &ROIResult{
		Isotope:   isotope,
		EnergyKeV: cfg.EnergyKeV,
		Window:    cfg.Window,
	}

	// Try the Gaussian fit over a window 1.5x the nominal ROI width first;
	// fall back to simple integration when the fit is poor or impossible.
	halfWindow := cfg.Window.Width() * 1.5 / 2
	fit := fitting.FitSinglePeak(s.Energies, s.Counts, cfg.EnergyKeV, halfWindow, fitting.BaselineLinear)
	if fit != nil && fit.RSquared > 0.7 {
		r.Method = MethodGaussianFit
		r.NetCounts = fit.NetArea
		r.BackgroundCounts = fit.BackgroundArea
		r.GrossCounts = fit.NetArea + fit.BackgroundArea
		r.UncertaintySigma = fit.Uncertainty
	} else {
		r.Method = MethodIntegration
		gross, background := integrate(s, cfg)
		r.GrossCounts = gross
		r.BackgroundCounts = background
		r.NetCounts = gross - background
		r.UncertaintySigma = math.Sqrt(gross + background)
	}

	r.DetectionLimit = currieLimit(r.BackgroundCounts)
	if r.UncertaintySigma > 0 {
		r.SNR = r.NetCounts / r.UncertaintySigma
	}
	r.Detected = r.SNR >= minDetectionSNR && r.NetCounts > minDetectionCounts
	r.Status = status(r)

	r.Confidence = a.confidence(r, s.AcquisitionTime)
	a.crossValidate(r, sourceType)
	a.convertActivity(r, cfg, s.AcquisitionTime)
	a.explain(r, s.AcquisitionTime)

	return r, nil
}

// integrate sums gross counts over the ROI window and estimates background
// from the configured sideband scaled by the width ratio.
func integrate(s *spectrum.Spectrum, cfg nuclide.ROIConfig) (gross, background float64) {
	bkgSum := 0.0
	for i, e := range s.Energies {
		if cfg.Window.Contains(e) {
			gross += s.Counts[i]
		}
		if cfg.BackgroundRegion.Contains(e) {
			bkgSum += s.Counts[i]
		}
	}
	if cfg.BackgroundRegion.Width() > 0 {
		background = bkgSum * cfg.Window.Width() / cfg.BackgroundRegion.Width()
	}
	return gross, background
}

// currieLimit is the Currie-style critical level for the measured background,
// reported for reference only.
func currieLimit(background float64) float64 {
	if background < 0 {
		background = 0
	}
	return 2.71 + 4.65*math.Sqrt(background)
}

func status(r *ROIResult) DetectionStatus {
	if r.Detected {
		switch {
		case r.SNR >= 10:
			return StatusStrong
		case r.SNR >= 5:
			return StatusGood
		case r.SNR >= 3:
			return StatusWeak
		default:
			return StatusMarginal
		}
	}
	if r.NetCounts < 0 {
		return StatusOverSubtracted
	}
	return StatusBelowLimit
}

// confidence blends limit excess (0.4), SNR quality (0.4) and statistical
// precision (0.2), with a penalty for short acquisitions.
func (a *Analyzer) confidence(r *ROIResult, acquisition time.Duration) float64 {
	conf := 0.0

	if r.DetectionLimit > 0 && r.NetCounts > r.DetectionLimit {
		excess := r.NetCounts/r.DetectionLimit - 1
		conf += 0.4 * clamp01(excess/4)
	}
	conf += 0.4 * clamp01(r.SNR/10)
	if r.NetCounts > 0 && r.UncertaintySigma > 0 {
		conf += 0.2 * clamp01(1-r.UncertaintySigma/r.NetCounts)
	}

	if acquisition > 0 && acquisition < shortAcquisition {
		conf *= 0.8
	}
	return clamp01(conf)
}

// crossValidate adjusts confidence against a source-type hint: detecting an
// isotope the type excludes is a strong sign the hint (or the measurement)
// is wrong.
func (a *Analyzer) crossValidate(r *ROIResult, sourceType string) {
	if sourceType == "" {
		return
	}
	sig, ok := nuclide.SourceSignatureFor(sourceType)
	if !ok {
		return
	}
	for _, excluded := range sig.Excluded {
		if excluded == r.Isotope && r.Detected {
			r.Confidence = clamp01(r.Confidence * 0.3)
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"%s detected but source type %q should not contain it; check the source type or look for contamination",
				r.Isotope, sourceType))
			return
		}
	}
	for _, expected := range sig.Expected {
		if expected == r.Isotope && r.Detected {
			r.Confidence = clamp01(r.Confidence + 0.1)
			return
		}
	}
}

// convertActivity fills ActivityBq and MDABq from the efficiency curve,
// branching ratio and live time. Any non-positive factor leaves them nil.
func (a *Analyzer) convertActivity(r *ROIResult, cfg nuclide.ROIConfig, acquisition time.Duration) {
	liveSeconds := acquisition.Seconds()
	if a.curve == nil || liveSeconds <= 0 || cfg.BranchingRatio <= 0 {
		return
	}
	eff := a.curve.At(cfg.EnergyKeV)
	if eff <= 0 {
		return
	}

	denom := liveSeconds * eff * cfg.BranchingRatio
	mda := r.DetectionLimit / denom
	r.MDABq = &mda

	if r.Detected && r.NetCounts > 0 {
		activity := r.NetCounts / denom
		r.ActivityBq = &activity
	}
}

// explain appends deterministic limiting-factor strings and an acquisition
// time recommendation when the measurement is weak.
func (a *Analyzer) explain(r *ROIResult, acquisition time.Duration) {
	if acquisition > 0 && acquisition < shortAcquisition {
		r.LimitingFactors = append(r.LimitingFactors,
			fmt.Sprintf("short acquisition (%.0f s); counting statistics are limited", acquisition.Seconds()))
	}
	if r.SNR < targetSNR {
		r.LimitingFactors = append(r.LimitingFactors,
			fmt.Sprintf("low signal-to-noise ratio (%.1f)", r.SNR))
	}
	if a.curve != nil && a.curve.At(r.EnergyKeV) < 0.01 {
		r.LimitingFactors = append(r.LimitingFactors,
			fmt.Sprintf("detector efficiency is low at %.0f keV", r.EnergyKeV))
	}
	if r.NetCounts > 0 && r.UncertaintySigma/r.NetCounts > 0.5 {
		r.LimitingFactors = append(r.LimitingFactors,
			"statistical uncertainty exceeds half the net counts")
	}

	if !r.Detected || r.SNR < targetSNR {
		if r.SNR > 0 {
			multiplier := (targetSNR / r.SNR) * (targetSNR / r.SNR)
			r.RequiredTimeMultiplier = multiplier
			r.Recommendations = append(r.Recommendations, fmt.Sprintf(
				"increase acquisition time by about %.0fx to reach SNR %.0f", math.Ceil(multiplier), targetSNR))
		} else {
			r.Recommendations = append(r.Recommendations,
				"no significant signal in the ROI; move the detector closer or acquire much longer")
		}
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
