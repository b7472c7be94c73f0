package peaks

import (
	"math"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/dsp"
)

// Detect runs the basic three-pass peak detector over equal-length energy and
// count arrays. It returns peaks sorted by counts descending, truncated to
// params.MaxPeaks, and an empty slice for empty, mismatched or all-zero
// input. It never panics.
func Detect(energies, counts []float64, params DetectorParams) (found []Peak) {
	defer func() {
		if r := recover(); r != nil {
			logger().Error("peak detection panicked, returning no peaks", "panic", r)
			found = []Peak{}
		}
	}()

	found = []Peak{}
	if len(energies) != len(counts) || len(counts) == 0 {
		return found
	}
	maxCount := maxOf(counts)
	if maxCount <= 0 {
		return found
	}

	claimed := map[int]Peak{}

	// Pass 1: prominence-filtered local maxima.
	for _, ch := range prominencePass(counts, maxCount, params) {
		claim(claimed, Peak{
			Channel:   ch,
			EnergyKeV: energies[ch],
			Counts:    counts[ch],
			Pass:      PassProminence,
		}, params.MinDistance)
	}

	// Pass 2: shoulders via second-derivative zero crossings of a smoothed
	// copy.
	for _, ch := range shoulderPass(counts, maxCount, params) {
		claim(claimed, Peak{
			Channel:   ch,
			EnergyKeV: energies[ch],
			Counts:    counts[ch],
			Pass:      PassShoulder,
		}, params.MinDistance)
	}

	// Pass 3: residual maxima after subtracting a heavily smoothed baseline.
	for _, ch := range residualPass(counts, maxCount, params) {
		claim(claimed, Peak{
			Channel:   ch,
			EnergyKeV: energies[ch],
			Counts:    counts[ch],
			Pass:      PassResidual,
		}, params.MinDistance)
	}

	for _, p := range claimed {
		found = append(found, p)
	}
	return sortAndTruncate(found, params.MaxPeaks)
}

// claim inserts a peak unless an earlier pass already owns a channel within
// minDistance. Earlier passes win on collision.
func claim(claimed map[int]Peak, p Peak, minDistance int) {
	for ch := range claimed {
		if abs(ch-p.Channel) < minDistance {
			return
		}
	}
	claimed[p.Channel] = p
}

// prominencePass finds local maxima with a minimum height of
// max(floor, fraction·max) and minimum prominence of max(floor, fraction·max).
func prominencePass(counts []float64, maxCount float64, params DetectorParams) []int {
	minHeight := math.Max(params.MinHeightFloor, params.MinHeightFraction*maxCount)
	minProm := math.Max(params.MinProminenceFloor, params.MinProminenceFraction*maxCount)

	var out []int
	lastKept := -params.MinDistance
	for _, ch := range localMaxima(counts) {
		if counts[ch] < minHeight {
			continue
		}
		if prominence(counts, ch) < minProm {
			continue
		}
		if ch-lastKept < params.MinDistance {
			// Keep the taller of the two contenders.
			if len(out) > 0 && counts[ch] > counts[out[len(out)-1]] {
				out[len(out)-1] = ch
				lastKept = ch
			}
			continue
		}
		out = append(out, ch)
		lastKept = ch
	}
	return out
}

// shoulderPass detects inflection shoulders: a positive-to-negative zero
// crossing of the second derivative of the smoothed spectrum with a
// non-trivial slope and counts above a fraction of the spectrum max.
func shoulderPass(counts []float64, maxCount float64, params DetectorParams) []int {
	smoothed := dsp.SmoothGaussian(counts, params.ShoulderSigma)
	d1 := dsp.FirstDerivative(smoothed)
	d2 := dsp.SecondDerivative(smoothed)

	minSlope := params.ShoulderSlopeFraction * maxCount
	minCounts := params.ShoulderCountFraction * maxCount

	var out []int
	for i := 1; i < len(d2); i++ {
		if d2[i-1] <= 0 || d2[i] > 0 {
			continue
		}
		if math.Abs(d1[i]) < minSlope {
			continue
		}
		if counts[i] < minCounts {
			continue
		}
		out = append(out, i)
	}
	return out
}

// residualPass subtracts a heavily smoothed baseline and hunts prominent
// maxima in what remains.
func residualPass(counts []float64, maxCount float64, params DetectorParams) []int {
	baseline := dsp.SmoothGaussian(counts, params.BaselineSigma)
	residual := make([]float64, len(counts))
	for i := range counts {
		residual[i] = counts[i] - baseline[i]
	}
	residualMax := maxOf(residual)
	if residualMax <= 0 {
		return nil
	}

	minProm := math.Max(params.ResidualProminenceFloor, params.ResidualProminenceFrac*residualMax)
	minCounts := params.ResidualMinCountFraction * maxCount

	var out []int
	for _, ch := range localMaxima(residual) {
		if counts[ch] < minCounts {
			continue
		}
		if prominence(residual, ch) < minProm {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// localMaxima returns indices that are strictly greater than the left
// neighbour and at least the right neighbour (flat tops claim their left
// edge).
func localMaxima(data []float64) []int {
	var out []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] >= data[i+1] {
			out = append(out, i)
		}
	}
	return out
}

// prominence measures how far a maximum rises above the higher of the lowest
// points separating it from taller terrain on either side.
func prominence(data []float64, ch int) float64 {
	height := data[ch]

	leftMin := height
	for i := ch - 1; i >= 0; i-- {
		if data[i] > height {
			break
		}
		if data[i] < leftMin {
			leftMin = data[i]
		}
	}
	rightMin := height
	for i := ch + 1; i < len(data); i++ {
		if data[i] > height {
			break
		}
		if data[i] < rightMin {
			rightMin = data[i]
		}
	}
	return height - math.Max(leftMin, rightMin)
}

func maxOf(data []float64) float64 {
	m := 0.0
	for _, v := range data {
		if v > m {
			m = v
		}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
