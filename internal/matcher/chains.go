package matcher

import (
	"fmt"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
)

// ConfidenceLevel buckets a chain detection.
type ConfidenceLevel string

const (
	LevelLow    ConfidenceLevel = "LOW"
	LevelMedium ConfidenceLevel = "MEDIUM"
	LevelHigh   ConfidenceLevel = "HIGH"
)

// DetectedChain is one decay-chain evaluation result.
type DetectedChain struct {
	Chain           string
	Confidence      float64 // 0-100
	Level           ConfidenceLevel
	Members         map[string][]float64 // isotope -> matched line energies
	NumDetected     int                  // distinct daughter isotopes seen
	NumKeyIsotopes  int                  // key indicators among them
	EquilibriumNote string
}

const (
	// chainMinIntensity keeps lines strong enough to matter on a
	// scintillator while still admitting the weak but diagnostic
	// Pa-234m 1001 keV line.
	chainMinIntensity = 0.5
	// broadeningCountThreshold is the strongest-peak count above which the
	// match tolerance widens to compensate resolution broadening.
	broadeningCountThreshold = 10000
	// maxEffectiveTolerance caps the widened tolerance.
	maxEffectiveTolerance = 60.0
)

// chainLine is one expected emission of a chain daughter.
type chainLine struct {
	isotope   string
	energyKeV float64
}

// ChainMatcher evaluates the U-238 and Th-232 chain templates against
// detected peaks. Expanded line sets are cached per template since they only
// depend on static reference data.
type ChainMatcher struct {
	provider  nuclide.ChainProvider
	templates []nuclide.DecayChainTemplate
	lineCache *gocache.Cache
}

// NewChainMatcher builds a matcher over the given chain provider; pass
// nuclide.NewBuiltinChainProvider() for the built-in tables.
func NewChainMatcher(provider nuclide.ChainProvider) *ChainMatcher {
	return &ChainMatcher{
		provider:  provider,
		templates: nuclide.BuiltinChains(),
		lineCache: gocache.New(time.Hour, 2*time.Hour),
	}
}

// Identify evaluates every chain template. Single isotopes are never chains:
// only the U-238 and Th-232 templates exist to be evaluated.
func (m *ChainMatcher) Identify(detected []peaks.Peak, toleranceKeV float64) []DetectedChain {
	if len(detected) == 0 {
		return nil
	}

	effTol := effectiveTolerance(detected, toleranceKeV)
	if effTol != toleranceKeV {
		logger().Debug("widened chain match tolerance for high-statistics spectrum",
			"nominal_kev", toleranceKeV, "effective_kev", effTol)
	}

	var out []DetectedChain
	for _, tmpl := range m.templates {
		if chain := m.evaluate(tmpl, detected, effTol); chain != nil {
			out = append(out, *chain)
		}
	}
	return out
}

func (m *ChainMatcher) evaluate(tmpl nuclide.DecayChainTemplate, detected []peaks.Peak, tol float64) *DetectedChain {
	expected := m.expectedLines(tmpl)
	if len(expected) == 0 {
		return nil
	}

	members := map[string][]float64{}
	matchedLines := 0
	for _, line := range expected {
		if _, ok := closestPeak(detected, line.energyKeV, tol); ok {
			matchedLines++
			members[line.isotope] = append(members[line.isotope], line.energyKeV)
		}
	}
	if matchedLines == 0 {
		return nil
	}

	score := math.Min(1, 1.5*float64(matchedLines)/float64(len(expected)))

	keyDetected := 0
	for _, key := range tmpl.KeyIndicators {
		if len(members[key]) > 0 {
			keyDetected++
		}
	}
	if len(tmpl.KeyIndicators) > 0 {
		score += 0.2 * float64(keyDetected) / float64(len(tmpl.KeyIndicators))
	}
	if score > 1 {
		score = 1
	}

	// A single daughter is weak evidence for a whole series.
	if len(members) < 2 {
		score *= 0.5
	}

	chain := &DetectedChain{
		Chain:          tmpl.Parent,
		Confidence:     score * 100,
		Level:          level(score, len(members)),
		Members:        members,
		NumDetected:    len(members),
		NumKeyIsotopes: keyDetected,
	}
	chain.EquilibriumNote = equilibriumNote(tmpl, detected, tol)
	return chain
}

func level(score float64, isotopes int) ConfidenceLevel {
	switch {
	case score >= 0.7 && isotopes >= 3:
		return LevelHigh
	case score >= 0.4 && isotopes >= 2:
		return LevelMedium
	default:
		return LevelLow
	}
}

// expectedLines expands a template into its daughters' reference lines above
// the intensity floor, memoized in the line cache.
func (m *ChainMatcher) expectedLines(tmpl nuclide.DecayChainTemplate) []chainLine {
	key := fmt.Sprintf("%s/%.2f", tmpl.Parent, chainMinIntensity)
	if cached, ok := m.lineCache.Get(key); ok {
		return cached.([]chainLine)
	}

	var lines []chainLine
	for _, daughter := range m.provider.Daughters(tmpl.Parent) {
		for _, l := range nuclide.LinesFor(daughter) {
			if l.IntensityPercent >= chainMinIntensity {
				lines = append(lines, chainLine{isotope: daughter, energyKeV: l.EnergyKeV})
			}
		}
	}
	m.lineCache.Set(key, lines, gocache.DefaultExpiration)
	return lines
}

// effectiveTolerance widens the nominal tolerance for high-statistics spectra
// whose peaks broaden past the nominal window. A pragmatic patch for detector
// resolution; an FWHM(E) model would replace it.
func effectiveTolerance(detected []peaks.Peak, nominal float64) float64 {
	maxCounts := 0.0
	for _, p := range detected {
		if p.Counts > maxCounts {
			maxCounts = p.Counts
		}
	}
	if maxCounts <= broadeningCountThreshold {
		return nominal
	}
	widened := nominal * maxCounts / broadeningCountThreshold
	return math.Min(maxEffectiveTolerance, math.Max(nominal, widened))
}

// equilibriumNote checks daughter pairs expected near 1:1 activity. The
// strongest detected peak of each pair member stands in for its activity;
// a count ratio inside [0.3, 3] is consistent with secular equilibrium.
// Diagnostic only, never gates the chain score.
func equilibriumNote(tmpl nuclide.DecayChainTemplate, detected []peaks.Peak, tol float64) string {
	for _, pair := range tmpl.EquilibriumPairs {
		a := strongestMatch(detected, pair[0], tol)
		b := strongestMatch(detected, pair[1], tol)
		if a <= 0 || b <= 0 {
			continue
		}
		ratio := a / b
		if ratio >= 0.3 && ratio <= 3.0 {
			return fmt.Sprintf("%s/%s count ratio %.2f consistent with secular equilibrium", pair[0], pair[1], ratio)
		}
		return fmt.Sprintf("%s/%s count ratio %.2f outside equilibrium range [0.3, 3.0]", pair[0], pair[1], ratio)
	}
	return ""
}

// strongestMatch returns the highest peak counts matching any line of the
// isotope, or 0 when none match.
func strongestMatch(detected []peaks.Peak, isotope string, tol float64) float64 {
	best := 0.0
	for _, line := range nuclide.LinesFor(isotope) {
		if pk, ok := closestPeak(detected, line.EnergyKeV, tol); ok && pk.Counts > best {
			best = pk.Counts
		}
	}
	return best
}
