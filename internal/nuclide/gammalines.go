package nuclide

// gammaLines is the built-in gamma-line database, IAEA-derived values for the
// isotopes a hobbyist scintillator is likely to encounter. Energies in keV,
// intensities in percent per decay. Bounded per isotope; only lines strong
// enough to show on a CsI/NaI detector are kept.
var gammaLines = map[string][]GammaLine{
	"Cs-137": {
		{"Cs-137", 661.7, 85.1},
	},
	"Co-60": {
		{"Co-60", 1173.2, 99.85},
		{"Co-60", 1332.5, 99.98},
	},
	"Am-241": {
		{"Am-241", 59.5, 35.9},
		{"Am-241", 26.3, 2.4},
	},
	"K-40": {
		{"K-40", 1460.8, 10.7},
	},
	"Na-22": {
		{"Na-22", 511.0, 180.7},
		{"Na-22", 1274.5, 99.9},
	},
	"Mn-54": {
		{"Mn-54", 834.8, 99.98},
	},
	"Co-57": {
		{"Co-57", 122.1, 85.6},
		{"Co-57", 136.5, 10.7},
	},
	"Zn-65": {
		{"Zn-65", 1115.5, 50.0},
		{"Zn-65", 511.0, 2.8},
	},
	"Ba-133": {
		{"Ba-133", 356.0, 62.1},
		{"Ba-133", 81.0, 32.9},
		{"Ba-133", 302.9, 18.3},
		{"Ba-133", 383.8, 8.9},
		{"Ba-133", 276.4, 7.2},
	},
	"Eu-152": {
		{"Eu-152", 121.8, 28.5},
		{"Eu-152", 344.3, 26.5},
		{"Eu-152", 1408.0, 21.0},
		{"Eu-152", 964.1, 14.6},
		{"Eu-152", 1112.1, 13.6},
		{"Eu-152", 778.9, 12.9},
	},
	"I-131": {
		{"I-131", 364.5, 81.5},
		{"I-131", 637.0, 7.2},
		{"I-131", 284.3, 6.1},
	},
	"Tc-99m": {
		{"Tc-99m", 140.5, 89.0},
	},
	"Lu-176": {
		{"Lu-176", 306.8, 93.6},
		{"Lu-176", 201.8, 78.6},
		{"Lu-176", 88.3, 14.5},
	},
	"Cd-109": {
		{"Cd-109", 88.0, 3.7},
	},

	// Uranium series (U-238 chain)
	"Th-234": {
		{"Th-234", 92.6, 5.6}, // unresolved 92.4/92.8 doublet on a scintillator
		{"Th-234", 63.3, 3.7},
	},
	"Pa-234m": {
		{"Pa-234m", 1001.0, 0.84},
		{"Pa-234m", 766.4, 0.29},
	},
	"Ra-226": {
		{"Ra-226", 186.2, 3.6},
	},
	"Pb-214": {
		{"Pb-214", 351.9, 35.6},
		{"Pb-214", 295.2, 18.4},
		{"Pb-214", 242.0, 7.3},
	},
	"Bi-214": {
		{"Bi-214", 609.3, 45.5},
		{"Bi-214", 1764.5, 15.3},
		{"Bi-214", 1120.3, 14.9},
		{"Bi-214", 1238.1, 5.8},
		{"Bi-214", 2204.2, 4.9},
	},
	"Pb-210": {
		{"Pb-210", 46.5, 4.25},
	},

	// Actinium series
	"U-235": {
		{"U-235", 185.7, 57.2},
		{"U-235", 143.8, 11.0},
		{"U-235", 163.3, 5.1},
		{"U-235", 205.3, 5.0},
	},

	// Thorium series (Th-232 chain)
	"Ac-228": {
		{"Ac-228", 911.2, 25.8},
		{"Ac-228", 969.0, 15.8},
		{"Ac-228", 338.3, 11.3},
		{"Ac-228", 964.8, 5.0},
	},
	"Ra-224": {
		{"Ra-224", 241.0, 4.1},
	},
	"Pb-212": {
		{"Pb-212", 238.6, 43.6},
		{"Pb-212", 300.1, 3.3},
	},
	"Bi-212": {
		{"Bi-212", 727.3, 6.7},
		{"Bi-212", 1620.5, 1.5},
	},
	"Tl-208": {
		{"Tl-208", 2614.5, 99.75},
		{"Tl-208", 583.2, 85.0},
		{"Tl-208", 860.6, 12.5},
	},
}
