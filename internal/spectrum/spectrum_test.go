package spectrum

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearAxis(n int, pitch float64) []float64 {
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i) * pitch
	}
	return axis
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Spectrum
		wantErr bool
	}{
		{
			name: "valid",
			s:    Spectrum{Energies: []float64{0, 1, 2}, Counts: []float64{5, 3, 1}},
		},
		{
			name: "empty is valid",
			s:    Spectrum{},
		},
		{
			name:    "length mismatch",
			s:       Spectrum{Energies: []float64{0, 1}, Counts: []float64{5}},
			wantErr: true,
		},
		{
			name:    "decreasing energy axis",
			s:       Spectrum{Energies: []float64{0, 2, 1}, Counts: []float64{1, 1, 1}},
			wantErr: true,
		},
		{
			name:    "negative counts",
			s:       Spectrum{Energies: []float64{0, 1}, Counts: []float64{1, -1}},
			wantErr: true,
		},
		{
			name:    "non-finite counts",
			s:       Spectrum{Energies: []float64{0, 1}, Counts: []float64{1, math.NaN()}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChannelAt(t *testing.T) {
	s := Spectrum{Energies: linearAxis(1024, 3), Counts: make([]float64, 1024)}

	assert.Equal(t, 0, s.ChannelAt(-100))
	assert.Equal(t, 1023, s.ChannelAt(1e6))

	ch := s.ChannelAt(661.7)
	assert.InDelta(t, 661.7, s.Energies[ch], 3.0, "nearest channel is within one pitch")
}

func TestMaxAndTotalCounts(t *testing.T) {
	s := Spectrum{Energies: linearAxis(4, 1), Counts: []float64{1, 7, 2, 0}}
	assert.InDelta(t, 7, s.MaxCount(), 0.001)
	assert.InDelta(t, 10, s.TotalCounts(), 0.001)
	assert.Equal(t, 4, s.Channels())
}

func TestLooksCalibrated(t *testing.T) {
	calibrated := Spectrum{Energies: linearAxis(1024, 3)}
	assert.True(t, calibrated.LooksCalibrated())

	channelAxis := Spectrum{Energies: linearAxis(1024, 1)}
	assert.True(t, channelAxis.LooksCalibrated(), "1 keV per channel is a plausible calibration")

	tiny := Spectrum{Energies: linearAxis(8, 3)}
	assert.False(t, tiny.LooksCalibrated(), "too few channels to judge")

	wild := Spectrum{Energies: linearAxis(1024, 100)}
	assert.False(t, wild.LooksCalibrated(), "100 keV per channel is not a gamma spectrum")
}

func TestReadJSON(t *testing.T) {
	input := `{
		"energies": [0, 3, 6, 9],
		"counts": [1, 5, 2, 0],
		"is_calibrated": true,
		"acquisition_time_s": 120,
		"detector": "alphahound"
	}`
	s, err := ReadJSON(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Channels())
	assert.True(t, s.IsCalibrated)
	assert.Equal(t, 120*time.Second, s.AcquisitionTime)
	assert.Equal(t, "alphahound", s.Detector)
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestReadCSVTwoColumn(t *testing.T) {
	input := "energy,counts\n0,1\n3,5\n6,2\n"
	s, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Channels())
	assert.InDelta(t, 3, s.Energies[1], 0.001)
	assert.InDelta(t, 5, s.Counts[1], 0.001)
}

func TestReadCSVSingleColumn(t *testing.T) {
	var b strings.Builder
	b.WriteString("counts\n")
	for i := 0; i < 32; i++ {
		b.WriteString("4\n")
	}
	s, err := ReadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 32, s.Channels())
	assert.InDelta(t, 0, s.Energies[0], 0.001, "single-column input gets a channel-index axis")
	assert.InDelta(t, 31, s.Energies[31], 0.001)
}
