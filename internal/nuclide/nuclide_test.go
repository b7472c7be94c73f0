package nuclide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesForSortedByIntensity(t *testing.T) {
	lines := LinesFor("Bi-214")
	require.NotEmpty(t, lines)
	for i := 1; i < len(lines); i++ {
		assert.GreaterOrEqual(t, lines[i-1].IntensityPercent, lines[i].IntensityPercent,
			"lines must be sorted by intensity descending")
	}
}

func TestLinesForReturnsCopy(t *testing.T) {
	lines := LinesFor("Cs-137")
	require.NotEmpty(t, lines)
	original := lines[0].EnergyKeV

	lines[0].EnergyKeV = -1

	again := LinesFor("Cs-137")
	assert.InDelta(t, original, again[0].EnergyKeV, 0.001, "mutating the returned slice must not corrupt the database")
}

func TestLinesForUnknownIsotope(t *testing.T) {
	assert.Empty(t, LinesFor("Unobtainium-999"))
}

func TestPrimaryLine(t *testing.T) {
	line, ok := PrimaryLine("Cs-137")
	require.True(t, ok)
	assert.InDelta(t, 661.7, line.EnergyKeV, 0.001)

	_, ok = PrimaryLine("Unobtainium-999")
	assert.False(t, ok)
}

func TestIsAmbiguousEnergy(t *testing.T) {
	tests := []struct {
		name   string
		energy float64
		tol    float64
		want   bool
	}{
		{"annihilation line", 511.0, 10, true},
		{"K-40 line", 1460.8, 10, true},
		{"Tl-208 line", 2614.5, 10, true},
		{"near annihilation within tolerance", 515.0, 10, true},
		{"Cs-137 line", 661.7, 10, false},
		{"near annihilation outside tolerance", 530.0, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAmbiguousEnergy(tt.energy, tt.tol))
		})
	}
}

func TestLineIntensity(t *testing.T) {
	assert.InDelta(t, 85.1, LineIntensity("Cs-137", 661.7, 1, 100), 0.001)
	assert.InDelta(t, 100, LineIntensity("Unobtainium-999", 661.7, 1, 100), 0.001,
		"unknown isotopes get the default intensity")
	assert.InDelta(t, 100, LineIntensity("Cs-137", 400, 1, 100), 0.001,
		"no line near the energy gets the default intensity")
}

func TestHalfLife(t *testing.T) {
	hl, ok := HalfLife("Tc-99m")
	require.True(t, ok)
	assert.Less(t, hl, 24*time.Hour, "Tc-99m is a short-lived medical isotope")

	hl, ok = HalfLife("Cs-137")
	require.True(t, ok)
	assert.Greater(t, hl, 365*24*time.Hour)

	_, ok = HalfLife("Unobtainium-999")
	assert.False(t, ok)
}

func TestHalfLifeCenturiesScaleUsesSentinel(t *testing.T) {
	// Half-lives past time.Duration's ~292-year ceiling cannot be stored as
	// literal durations; they must carry the long-lived sentinel instead of a
	// zero or negative value.
	for _, iso := range []string{"Am-241", "K-40", "Ra-226", "U-235", "Lu-176"} {
		hl, ok := HalfLife(iso)
		require.True(t, ok, iso)
		assert.Greater(t, hl, 250*time.Duration(year), iso)
	}
}

func TestIsChainDaughter(t *testing.T) {
	assert.True(t, IsChainDaughter("Bi-214"))
	assert.True(t, IsChainDaughter("Tl-208"))
	assert.False(t, IsChainDaughter("Cs-137"))
}

func TestBuiltinChains(t *testing.T) {
	chains := BuiltinChains()
	require.Len(t, chains, 2, "only the U-238 and Th-232 series are modelled")

	byParent := map[string]DecayChainTemplate{}
	for _, c := range chains {
		byParent[c.Parent] = c
	}

	u238, ok := byParent["U-238"]
	require.True(t, ok)
	assert.Contains(t, u238.Daughters, "Bi-214")
	assert.Contains(t, u238.Daughters, "Pb-214")
	assert.Contains(t, u238.KeyIndicators, "Bi-214")

	th232, ok := byParent["Th-232"]
	require.True(t, ok)
	assert.Contains(t, th232.Daughters, "Tl-208")
	assert.Contains(t, th232.KeyIndicators, "Ac-228")
}

func TestChainProviderDaughters(t *testing.T) {
	p := NewBuiltinChainProvider()
	assert.NotEmpty(t, p.Daughters("U-238"))
	assert.Empty(t, p.Daughters("Cs-137"))
}

func TestEfficiencyCurve(t *testing.T) {
	curve, ok := EfficiencyCurveFor("alphahound")
	require.True(t, ok)
	require.NotNil(t, curve)

	for _, e := range []float64{60, 186, 609, 1461} {
		eff := curve.At(e)
		assert.Greater(t, eff, 0.0, "efficiency at %.0f keV", e)
		assert.Less(t, eff, 1.0, "efficiency at %.0f keV", e)
	}

	// Queries beyond the anchor range clamp instead of extrapolating.
	assert.InDelta(t, curve.At(20), curve.At(1), 1e-9)

	_, ok = EfficiencyCurveFor("hpge-9000")
	assert.False(t, ok)
}

func TestROIFor(t *testing.T) {
	cfg, ok := ROIFor("Cs-137")
	require.True(t, ok)
	assert.InDelta(t, 661.7, cfg.EnergyKeV, 0.001)
	assert.True(t, cfg.Window.Contains(cfg.EnergyKeV), "the window must contain the line")
	assert.Greater(t, cfg.BranchingRatio, 0.0)

	_, ok = ROIFor("Unobtainium-999")
	assert.False(t, ok)
}

func TestEnergyWindow(t *testing.T) {
	w := EnergyWindow{LowKeV: 612, HighKeV: 712}
	assert.InDelta(t, 100, w.Width(), 0.001)
	assert.True(t, w.Contains(612))
	assert.True(t, w.Contains(712))
	assert.False(t, w.Contains(611.9))
}

func TestSourceSignatureFor(t *testing.T) {
	sig, ok := SourceSignatureFor("uranium_glass")
	require.True(t, ok)
	assert.NotEmpty(t, sig.Expected)

	_, ok = SourceSignatureFor("kryptonite")
	assert.False(t, ok)
}
