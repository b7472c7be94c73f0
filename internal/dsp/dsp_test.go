package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaussianBump(n int, centre, sigma, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i) - centre
		out[i] = amp * math.Exp(-x*x/(2*sigma*sigma))
	}
	return out
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.5, 2, 10} {
		k := GaussianKernel(sigma)
		require.NotEmpty(t, k)
		assert.Equal(t, 1, len(k)%2, "kernel length must be odd")

		sum := 0.0
		for _, v := range k {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "sigma=%v", sigma)
	}
}

func TestSmoothGaussianReducesPeakHeight(t *testing.T) {
	data := gaussianBump(256, 128, 3, 100)
	smoothed := SmoothGaussian(data, 5)

	require.Len(t, smoothed, len(data))
	var rawMax, smoothMax float64
	for i := range data {
		rawMax = math.Max(rawMax, data[i])
		smoothMax = math.Max(smoothMax, smoothed[i])
	}
	assert.Less(t, smoothMax, rawMax)
	assert.Greater(t, smoothMax, 0.0)
}

func TestConvolveSameIdentity(t *testing.T) {
	data := []float64{1, 4, 2, 8, 5, 7}
	out := ConvolveSame(data, []float64{1})
	require.Len(t, out, len(data))
	for i := range data {
		assert.InDelta(t, data[i], out[i], 1e-12)
	}
}

func TestConvolveSameFFTMatchesBruteForce(t *testing.T) {
	// A 33-tap kernel exceeds the direct-path cutoff and exercises the FFT
	// branch; check it against a brute-force convolution with the same
	// edge-replication padding. The symmetric kernel sidesteps orientation.
	data := gaussianBump(512, 256, 10, 50)
	kernel := make([]float64, 33)
	for i := range kernel {
		kernel[i] = 1 / float64(len(kernel))
	}

	got := ConvolveSame(data, kernel)
	require.Len(t, got, len(data))

	radius := len(kernel) / 2
	clamped := func(i int) float64 {
		if i < 0 {
			return data[0]
		}
		if i >= len(data) {
			return data[len(data)-1]
		}
		return data[i]
	}
	for i := range data {
		want := 0.0
		for k := range kernel {
			want += clamped(i-radius+k) * kernel[k]
		}
		assert.InDelta(t, want, got[i], 1e-6, "channel %d", i)
	}
}

func TestFirstDerivativeOfLine(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 2*float64(i) + 5
	}
	d1 := FirstDerivative(data)
	require.Len(t, d1, len(data))
	for i := 2; i < len(data)-2; i++ {
		assert.InDelta(t, 2.0, d1[i], 1e-9, "channel %d", i)
	}
}

func TestSecondDerivativeOfParabola(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		x := float64(i)
		data[i] = 3*x*x + x + 1
	}
	d2 := SecondDerivative(data)
	for i := 2; i < len(data)-2; i++ {
		assert.InDelta(t, 6.0, d2[i], 1e-6, "channel %d", i)
	}
}

func TestSavitzkyGolayPreservesPolynomial(t *testing.T) {
	// A window-7 order-3 filter reproduces any cubic exactly away from the
	// edges.
	data := make([]float64, 100)
	for i := range data {
		x := float64(i) / 10
		data[i] = 2*x*x*x - 5*x*x + x + 3
	}
	out := SavitzkyGolay(data, 7, 3)
	require.Len(t, out, len(data))
	for i := 3; i < len(data)-3; i++ {
		assert.InDelta(t, data[i], out[i], 1e-6, "channel %d", i)
	}
}

func TestSavitzkyGolayInvalidParamsPassThrough(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	out := SavitzkyGolay(data, 4, 2) // even window
	assert.Equal(t, data, out)

	out = SavitzkyGolay(data, 7, 9) // order >= window
	assert.Equal(t, data, out)
}

func TestRickerShape(t *testing.T) {
	w := Ricker(101, 10)
	require.Len(t, w, 101)

	// Maximum at the centre, negative side lobes.
	centre := w[50]
	for i, v := range w {
		assert.LessOrEqual(t, v, centre, "index %d", i)
	}
	assert.Negative(t, w[35])
	assert.Negative(t, w[65])

	// Zero mean up to sampling error.
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	assert.InDelta(t, 0, sum, 0.05)
}

func TestCWTRidgeMaximaFindsBump(t *testing.T) {
	data := gaussianBump(512, 200, 6, 100)
	for i := range data {
		data[i] += 2 // flat pedestal
	}

	rows := CWT(data, []float64{2, 4, 8})
	require.Len(t, rows, 3)

	candidates := CWTRidgeMaxima(rows, 1, 5)
	require.NotEmpty(t, candidates)

	found := false
	for _, ch := range candidates {
		if ch >= 195 && ch <= 205 {
			found = true
		}
	}
	assert.True(t, found, "ridge maxima %v should include the bump near 200", candidates)
}

func TestCWTRidgeMaximaEmptyInput(t *testing.T) {
	assert.Nil(t, CWTRidgeMaxima(nil, 1, 5))
	assert.Nil(t, CWTRidgeMaxima([][]float64{{}}, 1, 5))
}
