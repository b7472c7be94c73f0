// Package dsp provides the signal-conditioning primitives the peak detector
// and fitting engine rely on: Gaussian and Savitzky-Golay smoothing, discrete
// derivatives and a Ricker continuous wavelet transform.
package dsp

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// directConvolutionLimit is the kernel size above which convolution switches
// to the FFT path.
const directConvolutionLimit = 32

// GaussianKernel returns a normalized Gaussian kernel with the given sigma in
// samples, truncated at ±4 sigma.
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(4 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// SmoothGaussian returns a Gaussian-smoothed copy of data. Edges are handled
// by clamping to the boundary samples so baselines do not roll off.
func SmoothGaussian(data []float64, sigma float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	return ConvolveSame(data, GaussianKernel(sigma))
}

// ConvolveSame convolves data with kernel and returns a slice of the same
// length as data. The kernel is assumed centred. Inputs are edge-padded.
func ConvolveSame(data, kernel []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	if len(kernel) <= 1 {
		out := make([]float64, n)
		copy(out, data)
		return out
	}

	radius := len(kernel) / 2
	padded := make([]float64, n+2*radius)
	for i := range padded {
		switch {
		case i < radius:
			padded[i] = data[0]
		case i >= radius+n:
			padded[i] = data[n-1]
		default:
			padded[i] = data[i-radius]
		}
	}

	if len(kernel) <= directConvolutionLimit {
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			acc := 0.0
			for k := range kernel {
				acc += padded[i+k] * kernel[len(kernel)-1-k]
			}
			out[i] = acc
		}
		return out
	}
	full := fftConvolve(padded, kernel)
	// Full convolution length is len(padded)+len(kernel)-1; the "same" slice
	// relative to the unpadded input starts at 2*radius.
	out := make([]float64, n)
	copy(out, full[2*radius:2*radius+n])
	return out
}

// fftConvolve computes the full linear convolution of x and k via go-dsp FFTs.
func fftConvolve(x, k []float64) []float64 {
	n := len(x) + len(k) - 1
	size := nextPow2(n)

	xp := make([]float64, size)
	copy(xp, x)
	kp := make([]float64, size)
	copy(kp, k)

	fx := fft.FFTReal(xp)
	fk := fft.FFTReal(kp)
	for i := range fx {
		fx[i] *= fk[i]
	}
	inv := fft.IFFT(fx)

	out := make([]float64, n)
	for i := range out {
		out[i] = real(inv[i])
	}
	return out
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// FirstDerivative returns the central-difference first derivative of data.
func FirstDerivative(data []float64) []float64 {
	n := len(data)
	out := make([]float64, n)
	if n < 3 {
		return out
	}
	for i := 1; i < n-1; i++ {
		out[i] = (data[i+1] - data[i-1]) / 2
	}
	out[0] = data[1] - data[0]
	out[n-1] = data[n-1] - data[n-2]
	return out
}

// SecondDerivative returns the discrete second derivative of data.
func SecondDerivative(data []float64) []float64 {
	n := len(data)
	out := make([]float64, n)
	if n < 3 {
		return out
	}
	for i := 1; i < n-1; i++ {
		out[i] = data[i+1] - 2*data[i] + data[i-1]
	}
	return out
}
