package nuclide

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/interp"
)

// EfficiencyCurve maps gamma energy to absolute full-energy-peak detection
// efficiency for one detector model. Interpolation is linear between anchor
// points; queries outside the anchored range are clamped to the endpoints.
type EfficiencyCurve struct {
	Detector string
	energies []float64
	values   []float64

	once sync.Once
	pl   interp.PiecewiseLinear
}

// efficiencyAnchors holds the small fixed per-model calibration tables.
// Values are typical of small CsI(Tl) crystals and are calibration starting
// points, not certified efficiencies.
var efficiencyAnchors = map[string]struct{ e, v []float64 }{
	"alphahound": {
		e: []float64{30, 60, 100, 186, 352, 609, 662, 1001, 1173, 1332, 1461, 2614},
		v: []float64{0.30, 0.25, 0.18, 0.10, 0.050, 0.025, 0.022, 0.012, 0.010, 0.009, 0.008, 0.004},
	},
	"radiacode-102": {
		e: []float64{30, 60, 100, 186, 352, 609, 662, 1001, 1173, 1332, 1461, 2614},
		v: []float64{0.35, 0.28, 0.20, 0.12, 0.060, 0.030, 0.027, 0.014, 0.012, 0.010, 0.009, 0.005},
	},
}

var (
	curvesMu sync.Mutex
	curves   = map[string]*EfficiencyCurve{}
)

// EfficiencyCurveFor returns the efficiency curve for a detector model name
// and whether the model is known. Lookup is case-sensitive on the canonical
// lowercase model keys ("alphahound", "radiacode-102").
func EfficiencyCurveFor(detector string) (*EfficiencyCurve, bool) {
	curvesMu.Lock()
	defer curvesMu.Unlock()
	if c, ok := curves[detector]; ok {
		return c, true
	}
	anchors, ok := efficiencyAnchors[detector]
	if !ok {
		return nil, false
	}
	c := &EfficiencyCurve{
		Detector: detector,
		energies: anchors.e,
		values:   anchors.v,
	}
	curves[detector] = c
	return c, true
}

// DetectorModels lists the known detector model keys.
func DetectorModels() []string {
	names := make([]string, 0, len(efficiencyAnchors))
	for name := range efficiencyAnchors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the interpolated absolute efficiency at the given energy.
func (c *EfficiencyCurve) At(energyKeV float64) float64 {
	c.once.Do(func() {
		// Fit cannot fail here: anchors are fixed, sorted and distinct.
		_ = c.pl.Fit(c.energies, c.values)
	})
	if energyKeV < c.energies[0] {
		energyKeV = c.energies[0]
	}
	if energyKeV > c.energies[len(c.energies)-1] {
		energyKeV = c.energies[len(c.energies)-1]
	}
	return c.pl.Predict(energyKeV)
}
