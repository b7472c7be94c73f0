// Package spectrum defines the in-memory gamma spectrum the analysis core
// consumes and minimal loaders for feeding it from files. Device protocols
// and full file-format support live outside this module; anything that can
// produce equal-length energy and count arrays can drive the pipeline.
package spectrum

import (
	"math"
	"time"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
)

// Spectrum is an ordered sequence of (energy, counts) pairs; the slice index
// is the channel number. Energies must be non-decreasing and the two slices
// equal length.
type Spectrum struct {
	Energies []float64 // channel energies in keV (or raw channel index when uncalibrated)
	Counts   []float64 // non-negative counts per channel

	// IsCalibrated records whether the energy axis is physically meaningful.
	// Uploaded spectra without calibration metadata leave this false.
	IsCalibrated bool

	// AcquisitionTime is the live time of the measurement, zero if unknown.
	AcquisitionTime time.Duration

	// Detector is the detector model key, empty if unknown.
	Detector string
}

// Validate checks the structural invariants. It returns nil for an empty
// spectrum; emptiness degrades to "no peaks", not an error.
func (s *Spectrum) Validate() error {
	if len(s.Energies) != len(s.Counts) {
		return errors.Newf("energy/count length mismatch: %d vs %d", len(s.Energies), len(s.Counts)).
			Category(errors.CategorySpectrum).
			Build()
	}
	for i := 1; i < len(s.Energies); i++ {
		if s.Energies[i] < s.Energies[i-1] {
			return errors.Newf("energies not non-decreasing at channel %d", i).
				Category(errors.CategorySpectrum).
				Build()
		}
	}
	for i, c := range s.Counts {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Newf("invalid count %v at channel %d", c, i).
				Category(errors.CategorySpectrum).
				Build()
		}
	}
	return nil
}

// Channels returns the number of channels.
func (s *Spectrum) Channels() int { return len(s.Counts) }

// MaxCount returns the largest channel count, zero for an empty spectrum.
func (s *Spectrum) MaxCount() float64 {
	maxC := 0.0
	for _, c := range s.Counts {
		if c > maxC {
			maxC = c
		}
	}
	return maxC
}

// TotalCounts returns the summed counts over all channels.
func (s *Spectrum) TotalCounts() float64 {
	total := 0.0
	for _, c := range s.Counts {
		total += c
	}
	return total
}

// ChannelAt returns the channel index whose energy is closest to energyKeV,
// or -1 for an empty spectrum.
func (s *Spectrum) ChannelAt(energyKeV float64) int {
	if len(s.Energies) == 0 {
		return -1
	}
	// Binary search over the non-decreasing energy axis.
	lo, hi := 0, len(s.Energies)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Energies[mid] < energyKeV {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo > 0 && energyKeV-s.Energies[lo-1] < s.Energies[lo]-energyKeV {
		return lo - 1
	}
	return lo
}

// LooksCalibrated is a heuristic for uploaded spectra with no calibration
// metadata: a strictly increasing axis spanning a plausible keV range is
// assumed calibrated.
func (s *Spectrum) LooksCalibrated() bool {
	n := len(s.Energies)
	if n < 16 {
		return false
	}
	first, last := s.Energies[0], s.Energies[n-1]
	if last <= first {
		return false
	}
	// A raw channel axis is 0..n-1; a calibrated CsI axis tops out in the
	// hundreds to thousands of keV with sub-10 keV channel pitch.
	pitch := (last - first) / float64(n-1)
	return last >= 200 && last <= 12000 && pitch > 0.1 && pitch < 20
}
