// Package analysis orchestrates the full spectrum processing pipeline:
// peak detection, isotope identification, enhanced confidence scoring,
// decay-chain matching and threshold filtering.
package analysis

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/conf"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/confidence"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/matcher"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/observability/metrics"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/spectrum"
)

func logger() *slog.Logger {
	if l := logging.ForService("analysis"); l != nil {
		return l
	}
	return slog.Default().With("service", "analysis")
}

// Profile names reported in results and metrics.
const (
	ProfileDefault = "default"
	ProfileUpload  = "upload"
)

// IsotopeResult is one identification candidate after enhanced scoring.
type IsotopeResult struct {
	matcher.IsotopeMatch

	// EnhancedConfidence is the five-factor score on a 0-100 scale,
	// including the half-life plausibility penalty.
	EnhancedConfidence float64
	Factors            confidence.Factors
}

// Result is the outcome of one pipeline run.
type Result struct {
	ID        string
	Timestamp time.Time
	Profile   string
	Detector  string

	Peaks    []peaks.Peak
	Isotopes []IsotopeResult
	Chains   []matcher.DetectedChain

	ElapsedMs float64
}

// Analyzer runs the pipeline with a fixed settings snapshot.
type Analyzer struct {
	settings *conf.Settings
	chains   *matcher.ChainMatcher
	metrics  *metrics.AnalysisMetrics
}

// New builds an analyzer from settings. metrics may be nil.
func New(settings *conf.Settings, m *metrics.AnalysisMetrics) *Analyzer {
	return &Analyzer{
		settings: settings,
		chains:   matcher.NewChainMatcher(nuclide.NewBuiltinChainProvider()),
		metrics:  m,
	}
}

// Analyze runs the full pipeline on one spectrum.
func (a *Analyzer) Analyze(s *spectrum.Spectrum) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySpectrum).
			Context("operation", "analyze").
			Build()
	}

	start := time.Now()
	profile, profileName := a.profileFor(s)

	detected := a.detect(s)
	logger().Debug("peak detection complete",
		"profile", profileName,
		"peaks", len(detected))

	isotopes := a.identify(detected, profile)
	chains := a.detectChains(detected, profile)

	result := &Result{
		ID:        uuid.New().String(),
		Timestamp: start,
		Profile:   profileName,
		Detector:  a.settings.Detector,
		Peaks:     detected,
		Isotopes:  isotopes,
		Chains:    chains,
		ElapsedMs: float64(time.Since(start).Microseconds()) / 1000,
	}

	if a.metrics != nil {
		a.metrics.RecordAnalysis(profileName, time.Since(start).Seconds(),
			len(detected), len(isotopes))
		for _, c := range chains {
			a.metrics.RecordChain(c.Chain, string(c.Level))
		}
	}
	return result, nil
}

// profileFor selects the threshold profile. The strict default profile
// requires a calibrated energy axis and a long enough acquisition; anything
// else is treated as an upload of unknown provenance and gets permissive
// thresholds.
func (a *Analyzer) profileFor(s *spectrum.Spectrum) (conf.Profile, string) {
	minAcq := time.Duration(a.settings.Analysis.MinCalibratedAcquisitionS * float64(time.Second))
	if s.IsCalibrated && s.AcquisitionTime >= minAcq {
		return a.settings.Analysis.Default, ProfileDefault
	}
	return a.settings.Analysis.Upload, ProfileUpload
}

func (a *Analyzer) detect(s *spectrum.Spectrum) []peaks.Peak {
	params := a.detectorParams()
	if a.settings.Analysis.Enhanced {
		return peaks.DetectEnhanced(s.Energies, s.Counts, params)
	}
	return peaks.Detect(s.Energies, s.Counts, params)
}

// detectorParams applies the configured tuning overrides on top of the
// built-in defaults.
func (a *Analyzer) detectorParams() peaks.DetectorParams {
	params := peaks.DefaultDetectorParams()
	t := a.settings.Analysis.Tuning
	if t.MinDistance > 0 {
		params.MinDistance = t.MinDistance
	}
	if t.ShoulderSigma > 0 {
		params.ShoulderSigma = t.ShoulderSigma
	}
	if t.BaselineSigma > 0 {
		params.BaselineSigma = t.BaselineSigma
	}
	if t.MaxPeaks > 0 {
		params.MaxPeaks = t.MaxPeaks
	}
	return params
}

func (a *Analyzer) identify(detected []peaks.Peak, profile conf.Profile) []IsotopeResult {
	opts := matcher.Options{Simple: true, MaxIsotopes: profile.MaxIsotopes}
	matches := matcher.Identify(detected, profile.ToleranceKeV, opts)

	sampleAge := time.Duration(a.settings.Analysis.SampleAgeDays * 24 * float64(time.Hour))
	if sampleAge <= 0 {
		sampleAge = confidence.DefaultSampleAge
	}

	results := make([]IsotopeResult, 0, len(matches))
	for _, m := range matches {
		score, factors := confidence.ScoreMatch(m, detected, profile.ToleranceKeV, sampleAge)
		if score < profile.IsotopeConfidenceFloor {
			logger().Debug("isotope below confidence floor",
				"isotope", m.Isotope,
				"confidence", score,
				"floor", profile.IsotopeConfidenceFloor)
			continue
		}
		results = append(results, IsotopeResult{
			IsotopeMatch:       m,
			EnhancedConfidence: score,
			Factors:            factors,
		})
	}
	return results
}

func (a *Analyzer) detectChains(detected []peaks.Peak, profile conf.Profile) []matcher.DetectedChain {
	all := a.chains.Identify(detected, profile.ToleranceKeV)
	kept := make([]matcher.DetectedChain, 0, len(all))
	for _, c := range all {
		if c.Confidence < profile.ChainConfidenceFloor {
			continue
		}
		if c.NumDetected < profile.MinChainMembers {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
