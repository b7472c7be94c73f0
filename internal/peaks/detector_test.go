package peaks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synth builds a 3 keV/channel spectrum with Gaussian photopeaks
// ([amplitude, centroid keV, sigma keV]) on a flat pedestal.
func synth(n int, pedestal float64, components ...[3]float64) (energies, counts []float64) {
	energies = make([]float64, n)
	counts = make([]float64, n)
	for i := range energies {
		e := float64(i) * 3
		energies[i] = e
		counts[i] = pedestal
		for _, c := range components {
			amp, centroid, sigma := c[0], c[1], c[2]
			d := e - centroid
			counts[i] += amp * math.Exp(-d*d/(2*sigma*sigma))
		}
	}
	return energies, counts
}

func strongestNear(found []Peak, energyKeV, tol float64) (Peak, bool) {
	best := Peak{}
	ok := false
	for _, p := range found {
		if math.Abs(p.EnergyKeV-energyKeV) <= tol && (!ok || p.Counts > best.Counts) {
			best, ok = p, true
		}
	}
	return best, ok
}

func TestDetectFindsIsolatedPeak(t *testing.T) {
	energies, counts := synth(1024, 10, [3]float64{1000, 661.7, 15})

	found := Detect(energies, counts, DefaultDetectorParams())
	require.NotEmpty(t, found)

	p, ok := strongestNear(found, 661.7, 10)
	require.True(t, ok, "expected a peak near 661.7 keV, got %v", found)
	assert.Equal(t, PassProminence, p.Pass)
	assert.Greater(t, p.Counts, 900.0)
}

func TestDetectFindsMultiplePeaks(t *testing.T) {
	energies, counts := synth(1024, 5,
		[3]float64{2000, 351.9, 12},
		[3]float64{900, 609.3, 15},
		[3]float64{300, 1460.8, 25})

	found := Detect(energies, counts, DefaultDetectorParams())

	for _, want := range []float64{351.9, 609.3, 1460.8} {
		_, ok := strongestNear(found, want, 10)
		assert.True(t, ok, "expected a peak near %.1f keV", want)
	}
}

func TestDetectEmptyAndDegenerateInput(t *testing.T) {
	params := DefaultDetectorParams()

	assert.Empty(t, Detect(nil, nil, params))
	assert.Empty(t, Detect([]float64{1, 2}, []float64{1}, params), "length mismatch")

	energies, counts := synth(1024, 0)
	assert.Empty(t, Detect(energies, counts, params), "all-zero spectrum has no peaks")
}

func TestDetectSortedAndTruncated(t *testing.T) {
	energies, counts := synth(1024, 5,
		[3]float64{2000, 200, 10},
		[3]float64{1500, 400, 10},
		[3]float64{1000, 600, 10},
		[3]float64{500, 800, 10})

	params := DefaultDetectorParams()
	params.MaxPeaks = 2
	found := Detect(energies, counts, params)

	require.Len(t, found, 2)
	assert.GreaterOrEqual(t, found[0].Counts, found[1].Counts)
	assert.InDelta(t, 200, found[0].EnergyKeV, 10)
}

func TestDetectMinDistanceDeduplication(t *testing.T) {
	energies, counts := synth(1024, 5, [3]float64{1000, 500, 12})

	params := DefaultDetectorParams()
	params.MinDistance = 50
	found := Detect(energies, counts, params)

	near := 0
	for _, p := range found {
		if math.Abs(p.EnergyKeV-500) < 150 {
			near++
		}
	}
	assert.Equal(t, 1, near, "a single photopeak must not split into multiple candidates")
}

func TestDetectEnhancedAttachesFits(t *testing.T) {
	energies, counts := synth(1024, 10, [3]float64{1000, 661.7, 15})

	found := DetectEnhanced(energies, counts, DefaultDetectorParams())
	require.NotEmpty(t, found)

	p, ok := strongestNear(found, 661.7, 10)
	require.True(t, ok)
	assert.True(t, p.HasFit)
	assert.True(t, p.FitValid)
	assert.Greater(t, p.RSquared, 0.7)
	assert.Greater(t, p.NetArea, 0.0)
	assert.InDelta(t, 661.7, p.EnergyKeV, 3.0, "the fit refines the centroid")
	assert.InDelta(t, 2.355*15, p.FWHMKeV, 8.0)
}

func TestDetectEnhancedWindowAdaptsToBroadPeaks(t *testing.T) {
	energies, counts := synth(1024, 10, [3]float64{1000, 500, 25})

	// A configured width far narrower than the peak: the walk-out must widen
	// the fit window to cover the full photopeak.
	params := DefaultDetectorParams()
	params.FitROIWidthKeV = 10

	found := DetectEnhanced(energies, counts, params)
	require.NotEmpty(t, found)

	p, ok := strongestNear(found, 500, 10)
	require.True(t, ok)
	require.True(t, p.HasFit)
	assert.InDelta(t, 2.355*25, p.FWHMKeV, 10.0)
}

func TestDetectEnhancedEmptyInput(t *testing.T) {
	assert.Empty(t, DetectEnhanced(nil, nil, DefaultDetectorParams()))

	energies, counts := synth(512, 0)
	assert.Empty(t, DetectEnhanced(energies, counts, DefaultDetectorParams()))
}

func TestDetectNeverPanicsOnHostileInput(t *testing.T) {
	params := DefaultDetectorParams()
	params.CWTWidths = nil

	energies := []float64{0, 1, 2, 3}
	counts := []float64{0, 5, 0, 5}

	assert.NotPanics(t, func() { Detect(energies, counts, params) })
	assert.NotPanics(t, func() { DetectEnhanced(energies, counts, params) })
}
