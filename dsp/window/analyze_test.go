package window

import (
	"math"
	"testing"
)

func TestAnalyzeRectangular(t *testing.T) {
	a := Analyze(Generate(TypeRectangular, 32))

	if !almostEqual(a.CoherentGain, 1, 1e-12) {
		t.Fatalf("coherent gain=%v want 1", a.CoherentGain)
	}

	if !almostEqual(a.ENBW, 1, 1e-12) {
		t.Fatalf("ENBW=%v want 1", a.ENBW)
	}

	if !almostEqual(a.FirstMinimumBins, 1, 1e-3) {
		t.Fatalf("first minimum=%v want 1", a.FirstMinimumBins)
	}

	if !almostEqual(a.HighestSidelobedB, -13.26, 0.1) {
		t.Fatalf("highest sidelobe=%v want ~-13.26", a.HighestSidelobedB)
	}

	if !almostEqual(a.ScallopLossdB, -3.92, 0.05) {
		t.Fatalf("scallop loss=%v want ~-3.92", a.ScallopLossdB)
	}

	if !almostEqual(a.MainLobeWidth(), 2, 2e-3) {
		t.Fatalf("main lobe width=%v want 2", a.MainLobeWidth())
	}
}

func TestAnalyzeHann(t *testing.T) {
	const n = 32

	sym := Analyze(Generate(TypeHann, n))
	if want := 2 * float64(n) / float64(n-1); !almostEqual(sym.FirstMinimumBins, want, 1e-3) {
		t.Fatalf("symmetric first minimum=%v want %v", sym.FirstMinimumBins, want)
	}

	if sym.HighestSidelobedB > -31 || sym.HighestSidelobedB < -32 {
		t.Fatalf("symmetric highest sidelobe=%v want ~-31.5", sym.HighestSidelobedB)
	}

	per := Analyze(Generate(TypeHann, n, WithPeriodic()))
	if !almostEqual(per.FirstMinimumBins, 2, 1e-3) {
		t.Fatalf("periodic first minimum=%v want 2", per.FirstMinimumBins)
	}

	if !almostEqual(per.ENBW, 1.5, 1e-9) {
		t.Fatalf("periodic ENBW=%v want 1.5", per.ENBW)
	}

	if !almostEqual(per.Bandwidth3dB, 1.44, 0.01) {
		t.Fatalf("periodic 3 dB bandwidth=%v want ~1.44", per.Bandwidth3dB)
	}
}

func TestAnalyzeHannHasLowerSidelobesThanRectangular(t *testing.T) {
	rect := Analyze(Generate(TypeRectangular, 64))
	hann := Analyze(Generate(TypeHann, 64))

	if hann.HighestSidelobedB >= rect.HighestSidelobedB-15 {
		t.Fatalf("hann sidelobe %v not well below rectangular %v", hann.HighestSidelobedB, rect.HighestSidelobedB)
	}

	if hann.FirstMinimumBins <= rect.FirstMinimumBins {
		t.Fatalf("hann main lobe %v not wider than rectangular %v", hann.FirstMinimumBins, rect.FirstMinimumBins)
	}
}

func TestAnalyzeDegenerate(t *testing.T) {
	if got := Analyze(nil); got != (Analysis{}) {
		t.Fatalf("empty analysis=%#v", got)
	}

	if got := Analyze([]float64{1, -1}); got != (Analysis{}) {
		t.Fatalf("zero-DC analysis=%#v", got)
	}

	a := Analyze(Generate(TypeHann, 16))
	for _, v := range []float64{a.CoherentGain, a.ENBW, a.Bandwidth3dB, a.HighestSidelobedB, a.FirstMinimumBins, a.ScallopLossdB} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite analysis field: %#v", a)
		}
	}
}

func TestFirstNullMatchesAnalyze(t *testing.T) {
	for _, w := range [][]float64{
		Generate(TypeRectangular, 32),
		Generate(TypeHann, 32),
		Generate(TypeHann, 64, WithPeriodic()),
		Generate(TypeCosineSum, 48, WithCoeffs([]float64{0.54, -0.46})),
	} {
		if got, want := FirstNull(w), Analyze(w).FirstMinimumBins; got != want {
			t.Fatalf("FirstNull=%v want %v", got, want)
		}
	}

	if FirstNull(nil) != 0 || FirstNull([]float64{1, -1}) != 0 {
		t.Fatal("expected 0 for empty or zero-sum windows")
	}
}

func TestFirstNullLargeWindow(t *testing.T) {
	// Only the main lobe is scanned, so this stays linear-ish in the size.
	if got := FirstNull(Generate(TypeHann, 1<<16, WithPeriodic())); !almostEqual(got, 2, 1e-3) {
		t.Fatalf("first null=%v want 2", got)
	}

	if got := FirstNull(Generate(TypeRectangular, 1<<16)); !almostEqual(got, 1, 1e-3) {
		t.Fatalf("first null=%v want 1", got)
	}
}
