// Package fitting implements the Gaussian fitting engine: single peaks with a
// choice of baseline models, shared-baseline multiplets, the 186 keV doublet,
// and automatic ROI boundary detection. All entry points return nil (or an
// empty result) instead of raising on non-convergence; callers fall back to
// cheaper estimates.
package fitting

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/dsp"
	"github.com/staticx57/AlphaHoundGUI-sub000/internal/logging"
)

func logger() *slog.Logger {
	if l := logging.ForService("fitting"); l != nil {
		return l
	}
	return slog.Default().With("service", "fitting")
}

// FitResult holds the refined quantities for one fitted Gaussian.
type FitResult struct {
	Amplitude         float64
	CentroidKeV       float64
	SigmaKeV          float64
	FWHMKeV           float64
	ResolutionPercent float64
	NetArea           float64
	BackgroundArea    float64
	RSquared          float64
	// Uncertainty is the one-sigma standard error of NetArea, propagated
	// from the fit covariance when available, else sqrt(NetArea) (Poisson).
	Uncertainty float64
	WindowLow   float64
	WindowHigh  float64
	Baseline    BaselineKind
	Valid       bool
}

// FitSinglePeak fits one Gaussian plus a baseline to the sub-window
// [centroidGuess-roiWidthKeV, centroidGuess+roiWidthKeV]. It returns nil when
// the window holds fewer than five points or the fit cannot converge.
func FitSinglePeak(energies, counts []float64, centroidGuess, roiWidthKeV float64, baseline BaselineKind) *FitResult {
	xs, ys := window(energies, counts, centroidGuess-roiWidthKeV, centroidGuess+roiWidthKeV)
	if len(xs) < 5 {
		return nil
	}
	return fitSingleWindow(xs, ys, centroidGuess, baseline)
}

// fitSingleWindow runs the bounded fit over an already-extracted window.
func fitSingleWindow(xs, ys []float64, centroidGuess float64, baseline BaselineKind) *FitResult {
	lowE, highE := xs[0], xs[len(xs)-1]
	windowWidth := highE - lowE
	centre := (lowE + highE) / 2

	minY, maxY := minMax(ys)
	amp0 := maxY - minY
	if amp0 <= 0 {
		return nil
	}
	sigma0 := windowWidth / 6
	edgeLevel := (ys[0] + ys[len(ys)-1]) / 2

	nb := baselineParamCount(baseline)
	init := make([]float64, 3+nb)
	lower := make([]float64, 3+nb)
	upper := make([]float64, 3+nb)

	init[0], lower[0], upper[0] = amp0, 1e-9, 10*maxY+1
	init[1], lower[1], upper[1] = centroidGuess, lowE, highE
	init[2], lower[2], upper[2] = sigma0, pitch(xs)/4, windowWidth

	switch baseline {
	case BaselineExponential:
		init[3], lower[3], upper[3] = math.Max(edgeLevel, 1e-6), 1e-9, 10*maxY+1
		init[4], lower[4], upper[4] = 0.001, -0.5, 0.5
	case BaselineQuadratic:
		init[3], lower[3], upper[3] = edgeLevel, -10*maxY-1, 10*maxY+1
		init[4], lower[4], upper[4] = 0, -maxY, maxY
		init[5], lower[5], upper[5] = 0, -maxY, maxY
	case BaselineFlat:
		init[3], lower[3], upper[3] = edgeLevel, -10*maxY-1, 10*maxY+1
	default:
		init[3], lower[3], upper[3] = edgeLevel, -10*maxY-1, 10*maxY+1
		init[4], lower[4], upper[4] = 0, -maxY, maxY
	}

	problem := lsqProblem{
		xs:    xs,
		ys:    ys,
		model: singlePeakModel(baseline, centre),
		lower: lower,
		upper: upper,
	}

	sol, err := solveLM(problem, init)
	if err != nil {
		logger().Debug("single-peak fit failed", "centroid", centroidGuess, "error", err)
		return nil
	}

	r := buildResult(problem, sol, baseline, centre, lowE, highE)
	return r
}

// buildResult derives the reported quantities from a converged solution.
func buildResult(p lsqProblem, sol *lsqSolution, baseline BaselineKind, centre, lowE, highE float64) *FitResult {
	amp, cen, sig := sol.params[0], sol.params[1], sol.params[2]
	if amp <= 0 || sig <= 0 || cen < lowE || cen > highE {
		return nil
	}

	netArea := amp * sig * sqrt2Pi
	r := &FitResult{
		Amplitude:      amp,
		CentroidKeV:    cen,
		SigmaKeV:       sig,
		FWHMKeV:        fwhmFactor * sig,
		NetArea:        netArea,
		BackgroundArea: trapezoidBaseline(p.xs, baseline, sol.params[3:], centre),
		RSquared:       rSquared(p, sol.params),
		WindowLow:      lowE,
		WindowHigh:     highE,
		Baseline:       baseline,
		Valid:          true,
	}
	if cen > 0 {
		r.ResolutionPercent = r.FWHMKeV / cen * 100
	}
	r.Uncertainty = areaUncertainty(sol, amp, sig, netArea)
	return r
}

// areaUncertainty propagates the net-area standard error from the covariance
// of (amplitude, sigma):
//
//	Var(area) = (σ√2π)²Var(A) + (A√2π)²Var(σ) + 2(σ√2π)(A√2π)Cov(A,σ)
//
// Falls back to the Poisson estimate √area when covariance is unavailable.
func areaUncertainty(sol *lsqSolution, amp, sig, netArea float64) float64 {
	if sol.covariance != nil {
		dA := sig * sqrt2Pi
		dS := amp * sqrt2Pi
		varArea := dA*dA*sol.covariance.At(0, 0) +
			dS*dS*sol.covariance.At(2, 2) +
			2*dA*dS*sol.covariance.At(0, 2)
		if varArea > 0 && !math.IsNaN(varArea) {
			return math.Sqrt(varArea)
		}
	}
	if netArea > 0 {
		return math.Sqrt(netArea)
	}
	return 0
}

// FitMultiplet fits len(centroids) Gaussians on one shared linear baseline
// over a joint window spanning all centroids ± roiWidthKeV. Each centroid is
// constrained to ±5 keV of its guess. Returns (nil, 0) when the window holds
// fewer than 5 points per component or the fit fails.
func FitMultiplet(energies, counts, centroids []float64, roiWidthKeV float64) ([]*FitResult, float64) {
	if len(centroids) == 0 {
		return nil, 0
	}
	minC, maxC := minMax(centroids)
	xs, ys := window(energies, counts, minC-roiWidthKeV, maxC+roiWidthKeV)
	if len(xs) < 5*len(centroids) {
		return nil, 0
	}

	lowE, highE := xs[0], xs[len(xs)-1]
	centre := (lowE + highE) / 2
	n := len(centroids)
	minY, maxY := minMax(ys)
	amp0 := (maxY - minY) / float64(n)
	if amp0 <= 0 {
		return nil, 0
	}
	sigma0 := (highE - lowE) / float64(6*n)

	init := make([]float64, 3*n+2)
	lower := make([]float64, 3*n+2)
	upper := make([]float64, 3*n+2)
	for i, c := range centroids {
		init[3*i], lower[3*i], upper[3*i] = amp0, 1e-9, 10*maxY+1
		init[3*i+1], lower[3*i+1], upper[3*i+1] = c, c-5, c+5
		init[3*i+2], lower[3*i+2], upper[3*i+2] = sigma0, pitch(xs)/4, highE-lowE
	}
	init[3*n], lower[3*n], upper[3*n] = (ys[0]+ys[len(ys)-1])/2, -10*maxY-1, 10*maxY+1
	init[3*n+1], lower[3*n+1], upper[3*n+1] = 0, -maxY, maxY

	problem := lsqProblem{
		xs:    xs,
		ys:    ys,
		model: multipletModel(n, centre),
		lower: lower,
		upper: upper,
	}

	sol, err := solveLM(problem, init)
	if err != nil {
		logger().Debug("multiplet fit failed", "components", n, "error", err)
		return nil, 0
	}

	shared := rSquared(problem, sol.params)
	results := make([]*FitResult, 0, n)
	for i := 0; i < n; i++ {
		amp, cen, sig := sol.params[3*i], sol.params[3*i+1], sol.params[3*i+2]
		if amp <= 0 || sig <= 0 {
			return nil, 0
		}
		netArea := amp * sig * sqrt2Pi
		fr := &FitResult{
			Amplitude:      amp,
			CentroidKeV:    cen,
			SigmaKeV:       sig,
			FWHMKeV:        fwhmFactor * sig,
			NetArea:        netArea,
			BackgroundArea: trapezoidBaseline(xs, BaselineLinear, sol.params[3*n:], centre),
			RSquared:       shared,
			WindowLow:      lowE,
			WindowHigh:     highE,
			Baseline:       BaselineLinear,
			Valid:          true,
		}
		if cen > 0 {
			fr.ResolutionPercent = fr.FWHMKeV / cen * 100
		}
		if sol.covariance != nil {
			dA := sig * sqrt2Pi
			dS := amp * sqrt2Pi
			varArea := dA*dA*sol.covariance.At(3*i, 3*i) +
				dS*dS*sol.covariance.At(3*i+2, 3*i+2) +
				2*dA*dS*sol.covariance.At(3*i, 3*i+2)
			if varArea > 0 && !math.IsNaN(varArea) {
				fr.Uncertainty = math.Sqrt(varArea)
			}
		}
		if fr.Uncertainty == 0 && netArea > 0 {
			fr.Uncertainty = math.Sqrt(netArea)
		}
		results = append(results, fr)
	}
	return results, shared
}

// FitDoublet fits exactly two Gaussians plus a linear baseline, used for the
// U-235 / Ra-226 overlap at 186 keV. When global is true the fit restarts
// from jittered initial guesses and keeps the lowest-residual solution,
// a cheap stand-in for basin hopping on hard-to-separate doublets.
func FitDoublet(energies, counts []float64, centroid1, centroid2, roiWidthKeV float64, global bool) ([]*FitResult, float64) {
	centroids := []float64{centroid1, centroid2}
	best, bestR2 := FitMultiplet(energies, counts, centroids, roiWidthKeV)
	if !global {
		return best, bestR2
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 8; i++ {
		jittered := []float64{
			centroid1 + (rng.Float64()-0.5)*4,
			centroid2 + (rng.Float64()-0.5)*4,
		}
		results, r2 := FitMultiplet(energies, counts, jittered, roiWidthKeV)
		if results != nil && r2 > bestR2 {
			best, bestR2 = results, r2
		}
	}
	return best, bestR2
}

// AutoROI finds fitting window boundaries around a centroid using
// Savitzky-Golay smoothed second-derivative inflection detection: walk
// outward from the centroid channel until the curvature settles below 5% of
// its maximum magnitude, then pad by bufferKeV.
func AutoROI(energies, counts []float64, centroidKeV, bufferKeV float64) (float64, float64) {
	n := len(counts)
	if n < 7 || len(energies) != n {
		return centroidKeV - bufferKeV, centroidKeV + bufferKeV
	}

	smoothed := dsp.SavitzkyGolay(counts, 7, 3)
	d2 := dsp.SecondDerivative(smoothed)

	maxAbs := 0.0
	for _, v := range d2 {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return centroidKeV - bufferKeV, centroidKeV + bufferKeV
	}
	threshold := 0.05 * maxAbs

	centre := nearestChannel(energies, centroidKeV)
	low := centre
	for low > 0 && math.Abs(d2[low]) > threshold {
		low--
	}
	high := centre
	for high < n-1 && math.Abs(d2[high]) > threshold {
		high++
	}

	return energies[low] - bufferKeV, energies[high] + bufferKeV
}

// --- helpers ---

// window extracts the (x, y) pairs with lowE <= x <= highE.
func window(energies, counts []float64, lowE, highE float64) (xs, ys []float64) {
	for i, e := range energies {
		if e >= lowE && e <= highE {
			xs = append(xs, e)
			ys = append(ys, counts[i])
		}
	}
	return xs, ys
}

// trapezoidBaseline integrates the fitted baseline over the window.
func trapezoidBaseline(xs []float64, kind BaselineKind, params []float64, centre float64) float64 {
	area := 0.0
	for i := 1; i < len(xs); i++ {
		y0 := baselineValue(kind, params, xs[i-1], centre)
		y1 := baselineValue(kind, params, xs[i], centre)
		area += (y0 + y1) / 2 * (xs[i] - xs[i-1])
	}
	return area
}

func minMax(values []float64) (minV, maxV float64) {
	minV, maxV = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// pitch returns the median-ish channel spacing of a window.
func pitch(xs []float64) float64 {
	if len(xs) < 2 {
		return 1
	}
	return (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

func nearestChannel(energies []float64, e float64) int {
	best, bestDiff := 0, math.Inf(1)
	for i, v := range energies {
		if d := math.Abs(v - e); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}
