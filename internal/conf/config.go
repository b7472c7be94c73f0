// Package conf defines the application settings and loads them with viper
// from an embedded default config, an optional user config file and
// environment variables.
package conf

import (
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/staticx57/AlphaHoundGUI-sub000/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// Profile is one threshold set of the mode-dependent filtering policy.
type Profile struct {
	// IsotopeConfidenceFloor in percent on the enhanced confidence scale.
	IsotopeConfidenceFloor float64 `yaml:"isotopeconfidencefloor"`
	// ChainConfidenceFloor in percent.
	ChainConfidenceFloor float64 `yaml:"chainconfidencefloor"`
	// ToleranceKeV is the peak-to-line match tolerance.
	ToleranceKeV float64 `yaml:"tolerancekev"`
	// MaxIsotopes truncates the ranked identification output.
	MaxIsotopes int `yaml:"maxisotopes"`
	// MinChainMembers is the corroboration floor for reporting a chain.
	MinChainMembers int `yaml:"minchainmembers"`
}

// DetectorTuning exposes the peak-detection heuristics that are worth
// adjusting per detector. Zero values mean "use the built-in default".
type DetectorTuning struct {
	MinDistance   int     `yaml:"mindistance"`
	ShoulderSigma float64 `yaml:"shouldersigma"`
	BaselineSigma float64 `yaml:"baselinesigma"`
	MaxPeaks      int     `yaml:"maxpeaks"`
}

// AnalysisSettings groups the pipeline configuration.
type AnalysisSettings struct {
	// Enhanced selects the CWT + fit-validated detector; the three-pass
	// detector is the fallback.
	Enhanced bool `yaml:"enhanced"`
	// SampleAgeDays feeds the half-life plausibility penalty.
	SampleAgeDays float64 `yaml:"sampleagedays"`
	// MinCalibratedAcquisitionS gates the calibrated profile.
	MinCalibratedAcquisitionS float64 `yaml:"mincalibratedacquisitions"`

	Default Profile        `yaml:"default"`
	Upload  Profile        `yaml:"upload"`
	Tuning  DetectorTuning `yaml:"tuning"`
}

// LogSettings controls the optional rotating file log.
type LogSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DatastoreSettings controls optional persistence of analysis runs.
type DatastoreSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Settings is the root configuration object.
type Settings struct {
	Debug bool `yaml:"debug"`

	// Detector is the detector model key for efficiency lookup.
	Detector string `yaml:"detector"`
	// SourceType is an optional source hint for cross-validation.
	SourceType string `yaml:"sourcetype"`

	Analysis  AnalysisSettings  `yaml:"analysis"`
	Log       LogSettings       `yaml:"log"`
	Datastore DatastoreSettings `yaml:"datastore"`

	// InputFile is a runtime value set by the CLI, never persisted.
	InputFile string `yaml:"-"`
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Setting returns the singleton settings, loading them on first use.
func Setting() *Settings {
	once.Do(func() {
		settingsMutex.Lock()
		defer settingsMutex.Unlock()
		var err error
		settingsInstance, err = Load()
		if err != nil {
			log.Fatalf("error loading settings: %v", err)
		}
	})
	return settingsInstance
}

// Load reads the settings: embedded defaults, then an optional config file,
// then AHG_-prefixed environment variables.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, err
	}
	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(err).Category(errors.CategoryConfiguration).Build()
	}
	return settings, nil
}

func initViper() error {
	viper.SetConfigType("yaml")

	defaults, err := configFiles.ReadFile("config.yaml")
	if err != nil {
		return errors.New(err).Category(errors.CategoryConfiguration).Build()
	}
	if err := viper.ReadConfig(strings.NewReader(string(defaults))); err != nil {
		return errors.New(err).Category(errors.CategoryConfiguration).Build()
	}

	// User config overlays the embedded defaults when present.
	configPaths := configPaths()
	for _, dir := range configPaths {
		path := filepath.Join(dir, "config.yaml")
		if _, statErr := os.Stat(path); statErr == nil {
			viper.SetConfigFile(path)
			if err := viper.MergeInConfig(); err != nil {
				return errors.New(fmt.Errorf("merging config %s: %w", path, err)).
					Category(errors.CategoryConfiguration).
					Build()
			}
			break
		}
	}

	viper.SetEnvPrefix("AHG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return nil
}

func configPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "alphahound"))
	}
	paths = append(paths, ".")
	return paths
}

// SaveSettings writes the current settings to a YAML file.
func SaveSettings(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.New(err).Category(errors.CategoryConfiguration).Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.FileError(err, path)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.FileError(err, path)
	}
	return nil
}
