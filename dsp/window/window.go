package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	// TypeCosineSum is a caller-defined sum of cosine terms, see WithCoeffs.
	TypeCosineSum
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name                string
	ENBW                float64
	HighestSidelobe     float64
	CoherentGain        float64
	CoherentGainSquared float64
}

var metadataByType = map[Type]Metadata{
	TypeRectangular: {
		Name:                "Rectangular",
		ENBW:                1,
		HighestSidelobe:     -13.26,
		CoherentGain:        1,
		CoherentGainSquared: 1,
	},
	TypeHann: {
		Name:                "Hann",
		ENBW:                1.5,
		HighestSidelobe:     -31.47,
		CoherentGain:        0.5,
		CoherentGainSquared: 0.25,
	},
	TypeCosineSum: {
		Name:                "Cosine Sum",
		ENBW:                math.NaN(),
		HighestSidelobe:     math.NaN(),
		CoherentGain:        math.NaN(),
		CoherentGainSquared: math.NaN(),
	},
}

var hannCoeffs = []float64{0.5, -0.5}

// String returns the lower-case name used by ParseType.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeCosineSum:
		return "cosine-sum"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType maps a window name to its Type. Matching is case-insensitive.
// Accepted names are "rectangular" (aliases "rect", "boxcar", "ones"), "hann"
// (aliases "hanning", "raised-cosine") and "cosine-sum" (alias "cosinesum").
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangular", "rect", "boxcar", "ones":
		return TypeRectangular, nil
	case "hann", "hanning", "raised-cosine":
		return TypeHann, nil
	case "cosine-sum", "cosinesum":
		return TypeCosineSum, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownType, name)
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
	coeffs   []float64
}

func defaultConfig() config {
	return config{}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithCoeffs sets the cosine-term coefficients a[k] of TypeCosineSum, where
// w(x) = sum a[k]*cos(2*pi*k*x) over the normalised position x in [0,1].
func WithCoeffs(coeffs []float64) Option {
	copyCoeffs := append([]float64(nil), coeffs...)

	return func(c *config) {
		c.coeffs = copyCoeffs
	}
}

// Generate returns window coefficients of the given length, or nil when
// length is not positive.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		// A single sample has no taper; this matches the limit of every
		// supported family and keeps a one-point DFT non-zero.
		out[0] = 1
		return out
	}

	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// Rectangular returns all-ones coefficients.
func Rectangular(size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	return Generate(TypeRectangular, size), nil
}

// Hann returns Hann window coefficients. The symmetric form is
// w[k] = 0.5 - 0.5*cos(2*pi*k/(size-1)).
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	return Generate(TypeHann, size, opts...), nil
}

// CosineSum returns a generalised cosine-sum window built from coeffs.
func CosineSum(size int, coeffs []float64, opts ...Option) ([]float64, error) {
	if err := validateCosineSum(size, coeffs); err != nil {
		return nil, err
	}

	return Generate(TypeCosineSum, size, append(opts, WithCoeffs(coeffs))...), nil
}

// CoherentGain returns sum(w[n]) / N, the DC response of the window.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeCosineSum:
		if len(cfg.coeffs) == 0 {
			return 1
		}

		return cosineFromCoeffs(x, cfg.coeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

// samplePosition maps index n to [0,1]. The symmetric form reaches 1 at the
// last sample; the periodic form stops one step short.
func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
