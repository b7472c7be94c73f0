// Package matcher ranks isotopes and decay chains against detected peaks
// using the static gamma-line database.
package matcher

import (
	"log/slog"
	"math"
	"sort"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
)

func logger() *slog.Logger {
	if l := logging.ForService("matcher"); l != nil {
		return l
	}
	return slog.Default().With("service", "matcher")
}

// MatchedLine pairs a reference gamma line with the detected peak that
// claimed it.
type MatchedLine struct {
	LineEnergyKeV    float64
	IntensityPercent float64
	Peak             peaks.Peak
}

// IsotopeMatch is one ranked identification candidate. Confidence here is the
// basic line-fraction score on a 0-100 scale; the confidence package refines
// it.
type IsotopeMatch struct {
	Isotope           string
	Confidence        float64
	Matched           []MatchedLine
	TotalLines        int
	Suppressed        bool
	SuppressionReason string
}

// Options controls isotope identification.
type Options struct {
	// Simple truncates the ranked output to MaxIsotopes.
	Simple      bool
	MaxIsotopes int
}

// DefaultOptions matches the interactive identification mode.
func DefaultOptions() Options {
	return Options{Simple: true, MaxIsotopes: 5}
}

// Identify matches every database isotope's lines against the detected peaks
// within toleranceKeV and ranks candidates by (matches, confidence)
// descending. Basic confidence is matched/total·100.
func Identify(detected []peaks.Peak, toleranceKeV float64, opts Options) []IsotopeMatch {
	if len(detected) == 0 {
		return nil
	}

	var out []IsotopeMatch
	for _, isotope := range nuclide.Isotopes() {
		lines := nuclide.LinesFor(isotope)
		if len(lines) == 0 {
			continue
		}

		var matched []MatchedLine
		for _, line := range lines {
			if pk, ok := closestPeak(detected, line.EnergyKeV, toleranceKeV); ok {
				matched = append(matched, MatchedLine{
					LineEnergyKeV:    line.EnergyKeV,
					IntensityPercent: line.IntensityPercent,
					Peak:             pk,
				})
			}
		}
		if len(matched) == 0 {
			continue
		}

		m := IsotopeMatch{
			Isotope:    isotope,
			Confidence: float64(len(matched)) / float64(len(lines)) * 100,
			Matched:    matched,
			TotalLines: len(lines),
		}
		suppress(&m, toleranceKeV)
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Matched) != len(out[j].Matched) {
			return len(out[i].Matched) > len(out[j].Matched)
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Isotope < out[j].Isotope
	})

	if opts.Simple && opts.MaxIsotopes > 0 && len(out) > opts.MaxIsotopes {
		out = out[:opts.MaxIsotopes]
	}
	return out
}

// suppress flags matches that are probably coincidental: either every matched
// line sits at an ambiguous energy while stronger lines of the same isotope
// are absent, or the isotope's primary line is missing entirely.
func suppress(m *IsotopeMatch, toleranceKeV float64) {
	allAmbiguous := true
	for _, ml := range m.Matched {
		if !nuclide.IsAmbiguousEnergy(ml.LineEnergyKeV, toleranceKeV) {
			allAmbiguous = false
			break
		}
	}
	if allAmbiguous && m.TotalLines > len(m.Matched) {
		m.Suppressed = true
		m.SuppressionReason = "only ambiguous-energy lines matched"
		return
	}

	if primary, ok := nuclide.PrimaryLine(m.Isotope); ok {
		primaryMatched := false
		for _, ml := range m.Matched {
			if ml.LineEnergyKeV == primary.EnergyKeV {
				primaryMatched = true
				break
			}
		}
		if !primaryMatched {
			m.Suppressed = true
			m.SuppressionReason = "primary line missing"
		}
	}
}

// closestPeak returns the detected peak nearest to energyKeV within tol.
func closestPeak(detected []peaks.Peak, energyKeV, tol float64) (peaks.Peak, bool) {
	best := peaks.Peak{}
	bestDiff := tol + 1
	found := false
	for _, p := range detected {
		diff := math.Abs(p.EnergyKeV - energyKeV)
		if diff <= tol && diff < bestDiff {
			best, bestDiff, found = p, diff, true
		}
	}
	return best, found
}
