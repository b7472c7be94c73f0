// Package peaks turns a raw energy histogram into candidate peaks. Two
// detectors are provided: the basic three-pass detector (prominence local
// maxima, smoothed second-derivative shoulders, baseline-subtracted
// residuals) and an enhanced detector that finds candidates with a Ricker
// CWT and validates each with a Gaussian fit. Neither ever panics; malformed
// input degrades to an empty peak list.
package peaks

import (
	"log/slog"
	"sort"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
)

func logger() *slog.Logger {
	if l := logging.ForService("peaks"); l != nil {
		return l
	}
	return slog.Default().With("service", "peaks")
}

// Peak is one candidate photo-peak. Fields past Counts are populated only
// when a Gaussian fit refined the candidate.
type Peak struct {
	Channel   int
	EnergyKeV float64
	Counts    float64
	// Pass records which detection pass produced the peak.
	Pass string

	FWHMKeV           float64
	ResolutionPercent float64
	NetArea           float64
	BackgroundArea    float64
	RSquared          float64
	Uncertainty       float64
	HasFit            bool
	// FitValid is false when the candidate was kept on net area alone
	// despite a poor fit.
	FitValid bool
}

// Pass labels.
const (
	PassProminence = "prominence"
	PassShoulder   = "shoulder"
	PassResidual   = "residual"
	PassCWT        = "cwt"
)

// DetectorParams exposes the detection heuristics as tunable values. The
// defaults reproduce empirically tuned behaviour against real CsI spectra and
// are a starting calibration, not physical law.
type DetectorParams struct {
	// Prominence pass
	MinHeightFloor        float64 // absolute count floor for a maximum
	MinHeightFraction     float64 // fraction of max count added to the floor check
	MinProminenceFloor    float64
	MinProminenceFraction float64
	MinDistance           int // channels between distinct peaks, all passes

	// Shoulder pass
	ShoulderSigma         float64 // Gaussian smoothing sigma, channels
	ShoulderSlopeFraction float64 // first-derivative floor as fraction of max count
	ShoulderCountFraction float64 // minimum counts as fraction of max

	// Residual pass
	BaselineSigma            float64 // heavy smoothing sigma, channels
	ResidualProminenceFloor  float64
	ResidualProminenceFrac   float64 // fraction of residual max
	ResidualMinCountFraction float64 // raw-count floor as fraction of max

	// Output
	MaxPeaks int

	// Enhanced detector
	CWTWidths           []float64
	CWTMinCoeffFrac     float64 // candidate floor as fraction of max count
	FitROIWidthKeV      float64
	FitMinRSquared      float64
	FitAreaKeepOverride float64 // keep with FitValid=false above this net area
}

// DefaultDetectorParams returns the tuned default heuristics.
func DefaultDetectorParams() DetectorParams {
	return DetectorParams{
		MinHeightFloor:        3,
		MinHeightFraction:     0.002,
		MinProminenceFloor:    2,
		MinProminenceFraction: 0.001,
		MinDistance:           5,

		ShoulderSigma:         3,
		ShoulderSlopeFraction: 0.001,
		ShoulderCountFraction: 0.10,

		BaselineSigma:            20,
		ResidualProminenceFloor:  3,
		ResidualProminenceFrac:   0.01,
		ResidualMinCountFraction: 0.05,

		MaxPeaks: 40,

		CWTWidths:           []float64{2, 4, 8},
		CWTMinCoeffFrac:     0.005,
		FitROIWidthKeV:      30,
		FitMinRSquared:      0.7,
		FitAreaKeepOverride: 100,
	}
}

// sortAndTruncate orders peaks by counts descending and truncates to limit.
func sortAndTruncate(found []Peak, limit int) []Peak {
	sort.Slice(found, func(i, j int) bool {
		if found[i].Counts != found[j].Counts {
			return found[i].Counts > found[j].Counts
		}
		return found[i].Channel < found[j].Channel
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found
}
