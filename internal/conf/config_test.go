package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "alphahound", settings.Detector)
	assert.True(t, settings.Analysis.Enhanced)
	assert.InDelta(t, 7, settings.Analysis.SampleAgeDays, 0.001)
	assert.InDelta(t, 30, settings.Analysis.MinCalibratedAcquisitionS, 0.001)

	// The strict profile for trusted, calibrated acquisitions.
	assert.InDelta(t, 30, settings.Analysis.Default.IsotopeConfidenceFloor, 0.001)
	assert.InDelta(t, 20, settings.Analysis.Default.ToleranceKeV, 0.001)
	assert.Equal(t, 5, settings.Analysis.Default.MaxIsotopes)
	assert.Equal(t, 2, settings.Analysis.Default.MinChainMembers)

	// The permissive profile for uploads of unknown provenance.
	assert.Less(t, settings.Analysis.Upload.IsotopeConfidenceFloor,
		settings.Analysis.Default.IsotopeConfidenceFloor)
	assert.Greater(t, settings.Analysis.Upload.ToleranceKeV,
		settings.Analysis.Default.ToleranceKeV)

	assert.False(t, settings.Log.Enabled)
	assert.False(t, settings.Datastore.Enabled)
}

func TestSettingSingleton(t *testing.T) {
	first := Setting()
	second := Setting()
	assert.Same(t, first, second)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)
	settings.Detector = "radiacode-102"
	settings.Analysis.Default.ToleranceKeV = 25

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, SaveSettings(settings, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var restored Settings
	require.NoError(t, yaml.Unmarshal(data, &restored))
	assert.Equal(t, "radiacode-102", restored.Detector)
	assert.InDelta(t, 25, restored.Analysis.Default.ToleranceKeV, 0.001)
}

func TestProfileZeroTuningMeansDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)
	assert.Zero(t, settings.Analysis.Tuning.MinDistance)
	assert.Zero(t, settings.Analysis.Tuning.MaxPeaks)
}
