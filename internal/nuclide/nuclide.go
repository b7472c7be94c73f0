// Package nuclide holds the static reference data the analysis core matches
// against: gamma-ray line energies and intensities, half-lives, decay chain
// templates, per-isotope ROI definitions, detector efficiency curves and
// source-type signatures. All tables are read-only after package init and safe
// to share across concurrent analysis calls.
package nuclide

import (
	"sort"
)

// GammaLine is a single literature gamma emission of an isotope.
type GammaLine struct {
	Isotope          string  // e.g. "Cs-137"
	EnergyKeV        float64 // emission energy
	IntensityPercent float64 // emission probability per decay, percent
}

// AmbiguousEnergies lists gamma energies shared by many sources (annihilation,
// K-40 background, Tl-208 background) that carry little identification power
// on their own.
var AmbiguousEnergies = []float64{511.0, 1460.8, 2614.5}

// IsAmbiguousEnergy reports whether e lies within tol keV of a known
// ambiguous energy.
func IsAmbiguousEnergy(e, tol float64) bool {
	for _, a := range AmbiguousEnergies {
		if diff := e - a; diff <= tol && diff >= -tol {
			return true
		}
	}
	return false
}

// LinesFor returns the reference gamma lines for an isotope, sorted by
// intensity descending. Returns nil for isotopes not on file.
func LinesFor(isotope string) []GammaLine {
	lines, ok := gammaLines[isotope]
	if !ok {
		return nil
	}
	out := make([]GammaLine, len(lines))
	copy(out, lines)
	return out
}

// Isotopes returns the names of all isotopes in the gamma-line database in
// deterministic order.
func Isotopes() []string {
	names := make([]string, 0, len(gammaLines))
	for name := range gammaLines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrimaryLine returns the strongest gamma line of an isotope and true, or a
// zero line and false when the isotope is not on file.
func PrimaryLine(isotope string) (GammaLine, bool) {
	lines, ok := gammaLines[isotope]
	if !ok || len(lines) == 0 {
		return GammaLine{}, false
	}
	return lines[0], true
}

// LineIntensity returns the literature intensity (percent) of the line of
// isotope closest to energyKeV within tol, or defaultIntensity when the
// isotope or line is unknown. Unknown is never conflated with absent.
func LineIntensity(isotope string, energyKeV, tol, defaultIntensity float64) float64 {
	lines, ok := gammaLines[isotope]
	if !ok {
		return defaultIntensity
	}
	best := -1.0
	bestDiff := tol + 1
	for _, l := range lines {
		diff := l.EnergyKeV - energyKeV
		if diff < 0 {
			diff = -diff
		}
		if diff <= tol && diff < bestDiff {
			bestDiff = diff
			best = l.IntensityPercent
		}
	}
	if best < 0 {
		return defaultIntensity
	}
	return best
}

func init() {
	// Keep every line list sorted by intensity so PrimaryLine and bounded
	// truncation are cheap.
	for name, lines := range gammaLines {
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].IntensityPercent > lines[j].IntensityPercent
		})
		gammaLines[name] = lines
	}
}
