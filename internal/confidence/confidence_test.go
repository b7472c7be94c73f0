package confidence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/matcher"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/nuclide"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/peaks"
)

func fittedPeak(energy, counts float64) peaks.Peak {
	return peaks.Peak{
		EnergyKeV:      energy,
		Counts:         counts,
		HasFit:         true,
		FitValid:       true,
		RSquared:       0.98,
		NetArea:        counts * 10,
		BackgroundArea: counts,
	}
}

func TestScoreBoundsAndCaps(t *testing.T) {
	p := fittedPeak(661.7, 5000)
	score, f := Score("Cs-137", 661.7, 661.7, p, []peaks.Peak{p}, 20)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	assert.LessOrEqual(t, f.EnergyMatch, CapEnergyMatch)
	assert.LessOrEqual(t, f.Intensity, CapIntensity)
	assert.LessOrEqual(t, f.FitQuality, CapFitQuality)
	assert.LessOrEqual(t, f.SignalToNoise, CapSNR)
	assert.LessOrEqual(t, f.MultiLine, CapMultiLine)
	assert.InDelta(t, 1.0, f.HalfLifePenalty, 0.001, "Score itself never applies the penalty")
}

func TestScoreEnergyFalloff(t *testing.T) {
	p := fittedPeak(661.7, 5000)
	exact, _ := Score("Cs-137", 661.7, 661.7, p, []peaks.Peak{p}, 20)

	p2 := fittedPeak(671.7, 5000)
	offset, _ := Score("Cs-137", 671.7, 661.7, p2, []peaks.Peak{p2}, 20)

	assert.Greater(t, exact, offset, "a closer energy match scores higher")

	_, f := Score("Cs-137", 700, 661.7, p, []peaks.Peak{p}, 20)
	assert.Zero(t, f.EnergyMatch, "past the tolerance the energy factor is zero")
}

func TestScoreFitQuality(t *testing.T) {
	good := fittedPeak(661.7, 5000)

	raw := good
	raw.HasFit = false
	raw.FitValid = false

	bad := good
	bad.FitValid = false

	_, fGood := Score("Cs-137", 661.7, 661.7, good, nil, 20)
	_, fRaw := Score("Cs-137", 661.7, 661.7, raw, nil, 20)
	_, fBad := Score("Cs-137", 661.7, 661.7, bad, nil, 20)

	assert.Greater(t, fGood.FitQuality, fRaw.FitQuality)
	assert.Greater(t, fRaw.FitQuality, fBad.FitQuality)
}

func TestScoreSNRPoissonDiscount(t *testing.T) {
	strong := fittedPeak(661.7, 5000)
	faint := fittedPeak(661.7, 20)

	_, fStrong := Score("Cs-137", 661.7, 661.7, strong, nil, 20)
	_, fFaint := Score("Cs-137", 661.7, 661.7, faint, nil, 20)

	assert.Greater(t, fStrong.SignalToNoise, fFaint.SignalToNoise,
		"low raw counts discount the SNR factor")
}

func TestScoreMatchCs137(t *testing.T) {
	p := fittedPeak(661.7, 5000)
	m := matcher.IsotopeMatch{
		Isotope:    "Cs-137",
		Confidence: 50,
		Matched: []matcher.MatchedLine{
			{LineEnergyKeV: 661.7, IntensityPercent: 85.1, Peak: p},
		},
		TotalLines: 2,
	}

	score, f := ScoreMatch(m, []peaks.Peak{p}, 20, DefaultSampleAge)
	assert.Greater(t, score, 60.0, "a clean fitted primary-line match scores high")
	assert.LessOrEqual(t, score, 100.0)
	assert.InDelta(t, 1.0, f.HalfLifePenalty, 0.001, "Cs-137 is long-lived")
}

func TestScoreMatchEmpty(t *testing.T) {
	score, _ := ScoreMatch(matcher.IsotopeMatch{Isotope: "Cs-137"}, nil, 20, DefaultSampleAge)
	assert.Zero(t, score)
}

func TestScoreMatchSuppressedDiscount(t *testing.T) {
	p := fittedPeak(1120.3, 2000)
	m := matcher.IsotopeMatch{
		Isotope: "Bi-214",
		Matched: []matcher.MatchedLine{
			{LineEnergyKeV: 1120.3, IntensityPercent: 14.9, Peak: p},
		},
		TotalLines: 5,
	}

	open, _ := ScoreMatch(m, []peaks.Peak{p}, 20, DefaultSampleAge)

	m.Suppressed = true
	suppressed, _ := ScoreMatch(m, []peaks.Peak{p}, 20, DefaultSampleAge)

	require.Greater(t, open, 0.0)
	assert.InDelta(t, open*0.1, suppressed, 0.5, "suppression cuts the score to a tenth")
}

func TestScoreMatchShortLivedPenalty(t *testing.T) {
	p := fittedPeak(140.5, 3000)
	m := matcher.IsotopeMatch{
		Isotope: "Tc-99m",
		Matched: []matcher.MatchedLine{
			{LineEnergyKeV: 140.5, IntensityPercent: 89, Peak: p},
		},
		TotalLines: 1,
	}

	fresh, _ := ScoreMatch(m, []peaks.Peak{p}, 20, 3*time.Hour)
	week, fWeek := ScoreMatch(m, []peaks.Peak{p}, 20, 7*24*time.Hour)

	assert.Greater(t, fresh, week, "a week-old sample cannot still be hot with Tc-99m")
	assert.InDelta(t, 0.01, fWeek.HalfLifePenalty, 0.001, "past ten half-lives the penalty bottoms out")
}

func TestHalfLifePenaltySchedule(t *testing.T) {
	// Cs-137 (about 30 y): any plausible sample age is under one half-life.
	assert.InDelta(t, 1.0, HalfLifePenalty("Cs-137", 365*24*time.Hour), 0.001)

	// Chain daughters are replenished by their parents and never penalized.
	assert.InDelta(t, 1.0, HalfLifePenalty("Bi-214", 10*365*24*time.Hour), 0.001)

	// Am-241 (432.6 y) is on file via the long-lived sentinel; it must land
	// in the under-one-half-life branch, not the unknown-isotope discount.
	assert.InDelta(t, 1.0, HalfLifePenalty("Am-241", 10*365*24*time.Hour), 0.001)

	// Unknown isotopes get the benefit of most doubt.
	assert.InDelta(t, 0.8, HalfLifePenalty("Unobtainium-999", time.Hour), 0.001)

	// The penalty declines monotonically with sample age.
	hl, ok := nuclide.HalfLife("Tc-99m")
	require.True(t, ok)
	prev := 1.1
	for _, mult := range []float64{0.5, 2, 4, 7, 12} {
		pen := HalfLifePenalty("Tc-99m", time.Duration(mult*float64(hl)))
		assert.LessOrEqual(t, pen, prev, "penalty at %.1f half-lives", mult)
		prev = pen
	}
}
