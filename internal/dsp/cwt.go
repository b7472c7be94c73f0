package dsp

import (
	"math"
)

// Ricker returns a Ricker ("Mexican hat") wavelet of the given width
// parameter a, sampled over points samples.
func Ricker(points int, a float64) []float64 {
	w := make([]float64, points)
	norm := 2 / (math.Sqrt(3*a) * math.Pow(math.Pi, 0.25))
	for i := range w {
		x := float64(i) - float64(points-1)/2
		xa := x * x / (a * a)
		w[i] = norm * (1 - xa) * math.Exp(-xa/2)
	}
	return w
}

// CWT computes a continuous wavelet transform of data using Ricker wavelets
// at each of the given widths. The result has one coefficient row per width,
// each the same length as data.
func CWT(data []float64, widths []float64) [][]float64 {
	rows := make([][]float64, len(widths))
	for i, a := range widths {
		points := int(math.Min(10*a, float64(len(data))))
		if points < 3 {
			points = 3
		}
		rows[i] = ConvolveSame(data, Ricker(points, a))
	}
	return rows
}

// CWTRidgeMaxima scans CWT coefficient rows for channels that are local
// maxima on a majority of scales with a coefficient above minCoeff. Returned
// indices are candidate peak channels, de-duplicated within minDistance.
func CWTRidgeMaxima(rows [][]float64, minCoeff float64, minDistance int) []int {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	n := len(rows[0])
	votes := make([]int, n)
	strength := make([]float64, n)
	for _, row := range rows {
		for i := 1; i < n-1; i++ {
			if row[i] > row[i-1] && row[i] >= row[i+1] && row[i] > minCoeff {
				votes[i]++
				if row[i] > strength[i] {
					strength[i] = row[i]
				}
			}
		}
	}

	need := (len(rows) + 1) / 2
	var candidates []int
	for i := range votes {
		if votes[i] >= need {
			candidates = append(candidates, i)
		}
	}

	// Keep the strongest candidate within each minDistance neighbourhood.
	var out []int
	for _, c := range candidates {
		if len(out) > 0 && c-out[len(out)-1] < minDistance {
			if strength[c] > strength[out[len(out)-1]] {
				out[len(out)-1] = c
			}
			continue
		}
		out = append(out, c)
	}
	return out
}
