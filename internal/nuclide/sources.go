package nuclide

// SourceSignature describes what a named source type should and should not
// emit, used by the ROI analyzer for cross-validation and by the uranium
// enrichment analysis for interference handling.
type SourceSignature struct {
	Name     string
	Expected []string // isotopes a sample of this type should show
	Excluded []string // isotopes whose presence contradicts the type
	// Ra226Bearing marks types where Ra-226 is expected in quantity, so its
	// 186.2 keV line will sit on top of U-235's 185.7 keV line.
	Ra226Bearing bool
	// SubtractionAllowed enables the model-based Ra-226 subtraction at
	// 186 keV for enrichment analysis.
	SubtractionAllowed bool
}

var sourceSignatures = map[string]SourceSignature{
	"uranium_ore": {
		Name:               "uranium_ore",
		Expected:           []string{"Bi-214", "Pb-214", "Ra-226", "Th-234", "Pa-234m"},
		Excluded:           []string{"Cs-137", "Co-60", "Am-241"},
		Ra226Bearing:       true,
		SubtractionAllowed: true,
	},
	"uranium_glass": {
		Name:               "uranium_glass",
		Expected:           []string{"Th-234", "Pa-234m", "U-235"},
		Excluded:           []string{"Cs-137", "Co-60"},
		SubtractionAllowed: true,
	},
	"uranium_glaze": {
		Name:               "uranium_glaze",
		Expected:           []string{"Th-234", "Pa-234m", "Bi-214"},
		Excluded:           []string{"Cs-137", "Co-60"},
		SubtractionAllowed: true,
	},
	"radium_dial": {
		Name:         "radium_dial",
		Expected:     []string{"Ra-226", "Bi-214", "Pb-214"},
		Excluded:     []string{"Cs-137", "Co-60", "Th-234"},
		Ra226Bearing: true,
	},
	"thorium_ore": {
		Name:     "thorium_ore",
		Expected: []string{"Ac-228", "Pb-212", "Tl-208", "Bi-212"},
		Excluded: []string{"Cs-137", "Co-60"},
	},
	"thoriated_lantern_mantle": {
		Name:     "thoriated_lantern_mantle",
		Expected: []string{"Ac-228", "Pb-212", "Tl-208"},
		Excluded: []string{"Cs-137", "Co-60", "Bi-214"},
	},
	"check_source": {
		Name:     "check_source",
		Expected: []string{"Cs-137", "Co-60", "Ba-133", "Am-241"},
	},
	"smoke_detector": {
		Name:     "smoke_detector",
		Expected: []string{"Am-241"},
		Excluded: []string{"Cs-137", "Co-60", "Bi-214", "Ac-228"},
	},
	"medical": {
		Name:     "medical",
		Expected: []string{"I-131", "Tc-99m"},
		Excluded: []string{"Bi-214", "Ac-228"},
	},
}

// SourceSignatureFor returns the signature for a source type hint and whether
// the type is known. An empty or unknown hint simply disables cross-checks.
func SourceSignatureFor(sourceType string) (SourceSignature, bool) {
	sig, ok := sourceSignatures[sourceType]
	return sig, ok
}
