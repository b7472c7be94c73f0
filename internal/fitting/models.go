package fitting

import "math"

// BaselineKind selects the continuum model fitted under a peak.
type BaselineKind string

const (
	BaselineLinear      BaselineKind = "linear"
	BaselineFlat        BaselineKind = "flat"
	BaselineQuadratic   BaselineKind = "quadratic"
	BaselineExponential BaselineKind = "exponential"
)

// baselineParamCount returns how many parameters each baseline kind adds.
func baselineParamCount(kind BaselineKind) int {
	switch kind {
	case BaselineFlat:
		return 1
	case BaselineQuadratic:
		return 3
	case BaselineExponential:
		return 2
	default: // linear
		return 2
	}
}

// gaussian evaluates A·exp(-(x-c)²/(2σ²)).
func gaussian(amplitude, centroid, sigma, x float64) float64 {
	if sigma == 0 {
		return 0
	}
	d := (x - centroid) / sigma
	return amplitude * math.Exp(-d*d/2)
}

// baselineValue evaluates the continuum model. x0 is the window centre,
// used to keep polynomial terms well conditioned.
func baselineValue(kind BaselineKind, params []float64, x, x0 float64) float64 {
	dx := x - x0
	switch kind {
	case BaselineFlat:
		return params[0]
	case BaselineQuadratic:
		return params[0] + params[1]*dx + params[2]*dx*dx
	case BaselineExponential:
		return params[0] * math.Exp(-params[1]*dx)
	default:
		return params[0] + params[1]*dx
	}
}

// singlePeakModel builds a modelFunc for one Gaussian plus baseline. The
// parameter layout is [amplitude, centroid, sigma, baseline...].
func singlePeakModel(kind BaselineKind, windowCentre float64) modelFunc {
	return func(p []float64, x float64) float64 {
		return gaussian(p[0], p[1], p[2], x) + baselineValue(kind, p[3:], x, windowCentre)
	}
}

// multipletModel builds a modelFunc for n Gaussians sharing a linear
// baseline. Layout: [A1,c1,s1, ..., An,cn,sn, b0,b1].
func multipletModel(n int, windowCentre float64) modelFunc {
	return func(p []float64, x float64) float64 {
		y := 0.0
		for i := 0; i < n; i++ {
			y += gaussian(p[3*i], p[3*i+1], p[3*i+2], x)
		}
		b := p[3*n:]
		return y + b[0] + b[1]*(x-windowCentre)
	}
}

// fwhmFactor converts a Gaussian sigma to full width at half maximum.
const fwhmFactor = 2.3548200450309493 // 2·sqrt(2·ln 2)

// sqrt2Pi is used for analytic Gaussian areas.
const sqrt2Pi = 2.5066282746310002
