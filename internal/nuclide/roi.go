package nuclide

// BackgroundMethod selects how the ROI analyzer estimates continuum under a
// peak when no Gaussian fit is available.
type BackgroundMethod string

const (
	// BackgroundLinear scales counts from a flat background region sideband.
	BackgroundLinear BackgroundMethod = "linear"
	// BackgroundCompton scales counts from a region just above the peak,
	// where the Compton continuum of higher-energy lines dominates.
	BackgroundCompton BackgroundMethod = "compton"
)

// EnergyWindow is a [low, high] interval in keV.
type EnergyWindow struct {
	LowKeV  float64
	HighKeV float64
}

// Width returns the window width in keV.
func (w EnergyWindow) Width() float64 { return w.HighKeV - w.LowKeV }

// Contains reports whether e lies inside the window.
func (w EnergyWindow) Contains(e float64) bool { return e >= w.LowKeV && e <= w.HighKeV }

// ROIConfig is the static region-of-interest definition for quantitative
// analysis of one isotope's primary line.
type ROIConfig struct {
	Isotope          string
	EnergyKeV        float64      // line being quantified
	Window           EnergyWindow // integration window
	BackgroundRegion EnergyWindow // sideband used for continuum estimation
	Method           BackgroundMethod
	BranchingRatio   float64 // emission probability of the line, fraction
}

// roiConfigs keys the ROI table by isotope name.
var roiConfigs = map[string]ROIConfig{
	"Cs-137": {
		Isotope: "Cs-137", EnergyKeV: 661.7,
		Window:           EnergyWindow{612, 712},
		BackgroundRegion: EnergyWindow{725, 825},
		Method:           BackgroundLinear, BranchingRatio: 0.851,
	},
	"Am-241": {
		Isotope: "Am-241", EnergyKeV: 59.5,
		Window:           EnergyWindow{45, 75},
		BackgroundRegion: EnergyWindow{80, 110},
		Method:           BackgroundCompton, BranchingRatio: 0.359,
	},
	"Co-60": {
		Isotope: "Co-60", EnergyKeV: 1332.5,
		Window:           EnergyWindow{1280, 1385},
		BackgroundRegion: EnergyWindow{1395, 1500},
		Method:           BackgroundLinear, BranchingRatio: 0.9998,
	},
	"K-40": {
		Isotope: "K-40", EnergyKeV: 1460.8,
		Window:           EnergyWindow{1400, 1522},
		BackgroundRegion: EnergyWindow{1535, 1657},
		Method:           BackgroundLinear, BranchingRatio: 0.107,
	},
	"I-131": {
		Isotope: "I-131", EnergyKeV: 364.5,
		Window:           EnergyWindow{340, 390},
		BackgroundRegion: EnergyWindow{400, 450},
		Method:           BackgroundLinear, BranchingRatio: 0.815,
	},
	"Bi-214": {
		Isotope: "Bi-214", EnergyKeV: 609.3,
		Window:           EnergyWindow{580, 640},
		BackgroundRegion: EnergyWindow{650, 710},
		Method:           BackgroundLinear, BranchingRatio: 0.455,
	},
	"Pb-214": {
		Isotope: "Pb-214", EnergyKeV: 351.9,
		Window:           EnergyWindow{330, 374},
		BackgroundRegion: EnergyWindow{385, 429},
		Method:           BackgroundLinear, BranchingRatio: 0.356,
	},
	"Ra-226": {
		Isotope: "Ra-226", EnergyKeV: 186.2,
		Window:           EnergyWindow{170, 202},
		BackgroundRegion: EnergyWindow{210, 242},
		Method:           BackgroundCompton, BranchingRatio: 0.036,
	},
	"U-235": {
		Isotope: "U-235", EnergyKeV: 185.7,
		Window:           EnergyWindow{170, 202},
		BackgroundRegion: EnergyWindow{210, 242},
		Method:           BackgroundCompton, BranchingRatio: 0.572,
	},
	"Th-234": {
		Isotope: "Th-234", EnergyKeV: 92.6,
		Window:           EnergyWindow{80, 105},
		BackgroundRegion: EnergyWindow{110, 135},
		Method:           BackgroundCompton, BranchingRatio: 0.056,
	},
	"Pa-234m": {
		Isotope: "Pa-234m", EnergyKeV: 1001.0,
		Window:           EnergyWindow{970, 1032},
		BackgroundRegion: EnergyWindow{1040, 1102},
		Method:           BackgroundLinear, BranchingRatio: 0.0084,
	},
	"Ac-228": {
		Isotope: "Ac-228", EnergyKeV: 911.2,
		Window:           EnergyWindow{880, 942},
		BackgroundRegion: EnergyWindow{950, 1012},
		Method:           BackgroundLinear, BranchingRatio: 0.258,
	},
	"Pb-212": {
		Isotope: "Pb-212", EnergyKeV: 238.6,
		Window:           EnergyWindow{218, 259},
		BackgroundRegion: EnergyWindow{265, 306},
		Method:           BackgroundLinear, BranchingRatio: 0.436,
	},
	"Tl-208": {
		Isotope: "Tl-208", EnergyKeV: 2614.5,
		Window:           EnergyWindow{2520, 2710},
		BackgroundRegion: EnergyWindow{2320, 2510},
		Method:           BackgroundLinear, BranchingRatio: 0.9975,
	},
}

// ROIFor returns the ROI configuration for an isotope and whether one exists.
func ROIFor(isotope string) (ROIConfig, bool) {
	cfg, ok := roiConfigs[isotope]
	return cfg, ok
}

// ROIIsotopes lists isotopes with quantitative ROI definitions.
func ROIIsotopes() []string {
	names := make([]string, 0, len(roiConfigs))
	for name := range roiConfigs {
		names = append(names, name)
	}
	return names
}
