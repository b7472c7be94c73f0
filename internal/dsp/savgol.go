package dsp

import (
	"gonum.org/v1/gonum/mat"
)

// SavitzkyGolay smooths data with a Savitzky-Golay filter of the given odd
// window length and polynomial order. Invalid parameters fall back to
// returning a copy of the input.
func SavitzkyGolay(data []float64, window, order int) []float64 {
	n := len(data)
	out := make([]float64, n)
	copy(out, data)
	if n == 0 || window < 3 || window%2 == 0 || order < 1 || order >= window || window > n {
		return out
	}

	coeffs := savgolCoefficients(window, order)
	half := window / 2
	for i := half; i < n-half; i++ {
		acc := 0.0
		for j := 0; j < window; j++ {
			acc += coeffs[j] * data[i-half+j]
		}
		out[i] = acc
	}
	return out
}

// savgolCoefficients computes the smoothing (0th derivative) convolution
// coefficients by least squares: the first row of (AᵀA)⁻¹Aᵀ for a local
// polynomial design matrix A.
func savgolCoefficients(window, order int) []float64 {
	half := window / 2
	a := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		x := float64(i - half)
		p := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var inv mat.Dense
	if err := inv.Inverse(&ata); err != nil {
		// Degenerate design only happens for invalid window/order pairs the
		// caller already filtered; return a pass-through kernel.
		coeffs := make([]float64, window)
		coeffs[half] = 1
		return coeffs
	}
	var pinv mat.Dense
	pinv.Mul(&inv, a.T())

	coeffs := make([]float64, window)
	for j := 0; j < window; j++ {
		coeffs[j] = pinv.At(0, j)
	}
	return coeffs
}
