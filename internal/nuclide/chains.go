package nuclide

// DecayChainTemplate describes a multi-generation decay series. Only the two
// naturally occurring series with usable gamma signatures are modeled;
// single isotopes such as Cs-137, Co-60 or Am-241 are never chains.
type DecayChainTemplate struct {
	Parent        string   // parent nuclide, e.g. "U-238"
	Daughters     []string // full daughter list in decay order
	KeyIndicators []string // daughters whose presence strongly implies the chain
	// EquilibriumPairs lists daughter pairs expected near 1:1 activity under
	// secular equilibrium, used by the equilibrium diagnostic.
	EquilibriumPairs [][2]string
}

// ChainProvider expands a decay chain template into its daughter list. The
// built-in provider uses the hard-coded series tables; a richer decay-data
// backend can be substituted at construction time.
type ChainProvider interface {
	// Daughters returns the gamma-relevant daughter isotopes for a parent,
	// in decay order, or nil when the parent is not a known chain.
	Daughters(parent string) []string
}

// BuiltinChains returns the static chain templates, U-238 and Th-232 only.
func BuiltinChains() []DecayChainTemplate {
	return []DecayChainTemplate{
		{
			Parent: "U-238",
			Daughters: []string{
				"Th-234", "Pa-234m", "Ra-226", "Pb-214", "Bi-214", "Pb-210",
			},
			KeyIndicators:    []string{"Bi-214", "Pb-214", "Pa-234m"},
			EquilibriumPairs: [][2]string{{"Bi-214", "Pb-214"}},
		},
		{
			Parent: "Th-232",
			Daughters: []string{
				"Ac-228", "Ra-224", "Pb-212", "Bi-212", "Tl-208",
			},
			KeyIndicators:    []string{"Ac-228", "Pb-212", "Tl-208"},
			EquilibriumPairs: [][2]string{{"Ac-228", "Pb-212"}},
		},
	}
}

// builtinChainProvider serves daughters from the static templates.
type builtinChainProvider struct {
	byParent map[string][]string
}

// NewBuiltinChainProvider returns the fallback ChainProvider backed by the
// hard-coded chain tables.
func NewBuiltinChainProvider() ChainProvider {
	byParent := make(map[string][]string, 2)
	for _, tmpl := range BuiltinChains() {
		byParent[tmpl.Parent] = tmpl.Daughters
	}
	return &builtinChainProvider{byParent: byParent}
}

func (p *builtinChainProvider) Daughters(parent string) []string {
	return p.byParent[parent]
}
