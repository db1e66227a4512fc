package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Goertzel evaluates the DTFT of a complex block at one frequency, given in
// (possibly fractional) bins of a block of the configured size.
//
// Samples are accumulated with the second-order Goertzel recursion. After
// processing k samples, Value returns sum_{i<k} x[i]*exp(-j*omega*i). For an
// integer bin and a full block this equals the DFT bin X[bin]; at a
// fractional bin it reads the spectrum between the DFT grid points, which is
// where the true frequency of a leaking tone lies.
type Goertzel struct {
	bin   float64
	size  int
	omega float64
	coeff float64
	s0    complex128
	s1    complex128
	count int
}

// NewGoertzel creates an evaluator for the given bin of a size-point block.
func NewGoertzel(bin float64, size int) (*Goertzel, error) {
	if size < 1 {
		return nil, fmt.Errorf("goertzel: %w: %d", ErrInvalidLength, size)
	}
	if !isFinite(bin) {
		return nil, fmt.Errorf("goertzel: %w: bin must be finite: %v", ErrInvalidArgument, bin)
	}

	g := &Goertzel{bin: bin, size: size}
	g.omega = 2 * math.Pi * bin / float64(size)
	g.coeff = 2 * math.Cos(g.omega)
	return g, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
	g.count = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(x complex128) {
	s := x + complex(g.coeff, 0)*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.count++
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []complex128) {
	s0, s1 := g.s0, g.s1

	coeff := complex(g.coeff, 0)
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.count += len(input)
}

// Value returns the accumulated DTFT value.
func (g *Goertzel) Value() complex128 {
	if g.count == 0 {
		return 0
	}

	y := g.s0 - cmplx.Rect(1, -g.omega)*g.s1
	return y * cmplx.Rect(1, -g.omega*float64(g.count-1))
}

// Power returns |Value()|^2.
func (g *Goertzel) Power() float64 {
	y := g.s0 - cmplx.Rect(1, -g.omega)*g.s1
	re, im := real(y), imag(y)
	return re*re + im*im
}

// Magnitude returns |Value()|.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(g.Power())
}

// Bin returns the evaluated frequency in bins.
func (g *Goertzel) Bin() float64 { return g.bin }

// Evaluate returns the DTFT of x at the given (possibly fractional) bin of a
// len(x)-point grid.
func Evaluate(x []complex128, bin float64) (complex128, error) {
	g, err := NewGoertzel(bin, len(x))
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(x)
	return g.Value(), nil
}

// ScallopLoss returns 20*log10(peak/|X(period)|) in dB for the windowed
// signal xw and its spectrum bins, where peak is the strongest DFT bin and
// X(period) the response at the true frequency. Since the grid can only miss
// the true peak, the result is <= 0: 0 dB when the tone sits on a bin and
// negative otherwise (about -1.33 dB for a rectangular window 0.3 bins off).
func ScallopLoss(xw, bins []complex128, period float64) (float64, error) {
	if len(xw) != len(bins) {
		return 0, fmt.Errorf("%w: signal has %d samples, spectrum has %d bins", ErrShapeMismatch, len(xw), len(bins))
	}

	atTrue, err := Evaluate(xw, period)
	if err != nil {
		return 0, err
	}

	ref := cmplx.Abs(atTrue)
	_, peak := PeakBin(bins)
	if ref == 0 || peak == 0 {
		return math.Inf(-1), nil
	}
	return 20 * math.Log10(peak/ref), nil
}
