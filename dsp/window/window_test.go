package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateTypes(t *testing.T) {
	types := []Type{TypeRectangular, TypeHann, TypeCosineSum}

	for _, typ := range types {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 64, WithCoeffs([]float64{0.54, -0.46}))
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestHannFormula(t *testing.T) {
	const n = 32

	w, err := Hann(n)
	if err != nil {
		t.Fatal(err)
	}

	for k, v := range w {
		want := 0.5 - 0.5*math.Cos(2*math.Pi*float64(k)/float64(n-1))
		if !almostEqual(v, want, 1e-12) {
			t.Fatalf("w[%d]=%v want=%v", k, v, want)
		}
	}

	if w[0] != 0 || !almostEqual(w[n-1], 0, 1e-15) {
		t.Fatalf("symmetric hann must vanish at both ends: %v %v", w[0], w[n-1])
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}

	// periodic form: w[k] = 0.5 - 0.5*cos(2*pi*k/N)
	if !almostEqual(b[4], 0.5, 1e-12) {
		t.Fatalf("periodic b[4]=%v want 0.5", b[4])
	}
}

func TestCosineSumMatchesHann(t *testing.T) {
	want := Generate(TypeHann, 33)

	got, err := CosineSum(33, []float64{0.5, -0.5})
	if err != nil {
		t.Fatal(err)
	}

	checkGolden(t, got, want, 1e-15)
}

func TestCosineSumWithoutCoeffsIsRectangular(t *testing.T) {
	w := Generate(TypeCosineSum, 8)
	for i, v := range w {
		if v != 1 {
			t.Fatalf("w[%d]=%v want 1", i, v)
		}
	}
}

func TestSingleSampleWindow(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann} {
		w := Generate(typ, 1)
		if len(w) != 1 || w[0] != 1 {
			t.Fatalf("%v: got %v, want [1]", typ, w)
		}
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestMetadataAndENBW(t *testing.T) {
	m := Info(TypeHann)
	if m.Name != "Hann" {
		t.Fatalf("name=%q", m.Name)
	}

	if !almostEqual(m.ENBW, 1.5, 0.01) {
		t.Fatalf("ENBW metadata=%v", m.ENBW)
	}

	w := Generate(TypeHann, 2048)

	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatalf("EquivalentNoiseBandwidth error: %v", err)
	}

	if !almostEqual(enbw, 1.5, 0.01) {
		t.Fatalf("hann ENBW=%v, want ~1.5", enbw)
	}

	if got := Info(Type(99)); got != (Metadata{}) {
		t.Fatalf("unknown type metadata=%#v", got)
	}
}

func TestCoherentGain(t *testing.T) {
	cg, err := CoherentGain(Generate(TypeHann, 4096, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(cg, 0.5, 1e-12) {
		t.Fatalf("periodic hann coherent gain=%v want 0.5", cg)
	}

	if _, err := CoherentGain(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("expected errEmptyCoeffs, got %v", err)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"rectangular", TypeRectangular},
		{"Rect", TypeRectangular},
		{" boxcar ", TypeRectangular},
		{"hann", TypeHann},
		{"HANNING", TypeHann},
		{"ones", TypeRectangular},
		{"raised-cosine", TypeHann},
		{"cosine-sum", TypeCosineSum},
		{"CosineSum", TypeCosineSum},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.name)
		if err != nil {
			t.Fatalf("ParseType(%q) error: %v", tt.name, err)
		}

		if got != tt.want {
			t.Fatalf("ParseType(%q)=%v want %v", tt.name, got, tt.want)
		}

		if back, err := ParseType(got.String()); err != nil || back != got {
			t.Fatalf("round trip of %v failed: %v %v", got, back, err)
		}
	}

	if _, err := ParseType("kaiser"); !errors.Is(err, errUnknownType) {
		t.Fatalf("expected errUnknownType, got %v", err)
	}
}

func TestApplyCoefficientsHelpers(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{0.5, 0.5, 0.5}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(out[2], 1.5, 1e-12) {
		t.Fatalf("out[2]=%v", out[2])
	}

	err = ApplyCoefficientsInPlace(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(samples[1], 1.0, 1e-12) {
		t.Fatalf("samples[1]=%v", samples[1])
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeCosineSum, 8, WithCoeffs([]float64{0.54, -0.46})), hammingExpected, 1e-10)
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("expected size validation error")
	}

	if _, err := Rectangular(-3); err == nil {
		t.Fatal("expected size validation error")
	}

	if _, err := CosineSum(16, nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("expected empty coeffs error, got %v", err)
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected empty coeffs error")
	}

	if _, err := EquivalentNoiseBandwidth([]float64{0, 0, 0}); err == nil {
		t.Fatal("expected zero coherent gain error")
	}

	if _, err := ApplyCoefficients([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected mismatch error")
	}

	if err := ApplyCoefficientsInPlace([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
