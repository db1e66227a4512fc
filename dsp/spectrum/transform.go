package spectrum

import (
	"fmt"
	"math"
	"strings"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	godspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-leakage/dsp/core"
)

// Transformer computes the unnormalised forward DFT
//
//	dst[mu] = sum_k src[k] * exp(-j*2*pi*mu*k/N)
//
// where N = len(src). dst must have the same length as src and must not
// alias it. Implementations are safe for concurrent use.
type Transformer interface {
	Forward(dst, src []complex128) error
}

// Backend names a Transformer implementation.
type Backend int

const (
	// BackendAuto uses algo-fft for power-of-two sizes and gonum otherwise.
	BackendAuto Backend = iota
	BackendAlgoFFT
	BackendGonum
	BackendGoDSP
	// BackendDirect evaluates the defining sum in O(N^2).
	BackendDirect
)

var backendNames = map[Backend]string{
	BackendAuto:    "auto",
	BackendAlgoFFT: "algofft",
	BackendGonum:   "gonum",
	BackendGoDSP:   "godsp",
	BackendDirect:  "direct",
}

func (b Backend) String() string {
	if s, ok := backendNames[b]; ok {
		return s
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps a backend name such as "gonum" to its Backend.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, s := range backendNames {
		if s == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fft backend %q", ErrInvalidArgument, name)
}

// NewTransformer returns a fresh Transformer for b.
func NewTransformer(b Backend) (Transformer, error) {
	switch b {
	case BackendAuto:
		return NewAuto(), nil
	case BackendAlgoFFT:
		return NewAlgoFFT(), nil
	case BackendGonum:
		return NewGonum(), nil
	case BackendGoDSP:
		return GoDSP{}, nil
	case BackendDirect:
		return Direct{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown fft backend %v", ErrInvalidArgument, b)
	}
}

func checkForward(dst, src []complex128) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d bins, src has %d samples", ErrShapeMismatch, len(dst), len(src))
	}
	return nil
}

// AlgoFFT runs transforms through github.com/MeKo-Christian/algo-fft plans.
// Plans are created on first use per size and reused afterwards. Only
// power-of-two sizes are accepted; other sizes fail with ErrInvalidArgument.
type AlgoFFT struct {
	plans sync.Map // int -> *algoPlan
}

type algoPlan struct {
	mu   sync.Mutex
	plan *algofft.Plan[complex128]
}

// NewAlgoFFT returns an AlgoFFT with an empty plan cache.
func NewAlgoFFT() *AlgoFFT {
	return &AlgoFFT{}
}

func (a *AlgoFFT) planFor(n int) (*algoPlan, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: algo-fft backend needs a power-of-two size, got %d", ErrInvalidArgument, n)
	}
	if p, ok := a.plans.Load(n); ok {
		return p.(*algoPlan), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan for size %d: %w", n, err)
	}

	p, _ := a.plans.LoadOrStore(n, &algoPlan{plan: plan})
	return p.(*algoPlan), nil
}

// Forward implements Transformer.
func (a *AlgoFFT) Forward(dst, src []complex128) error {
	if err := checkForward(dst, src); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}

	p, err := a.planFor(len(src))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.plan.Forward(dst, src); err != nil {
		return fmt.Errorf("spectrum: forward FFT of size %d: %w", len(src), err)
	}
	return nil
}

// Gonum runs transforms through gonum's mixed-radix complex FFT, which
// accepts any length.
type Gonum struct {
	plans sync.Map // int -> *gonumPlan
}

type gonumPlan struct {
	mu  sync.Mutex
	fft *fourier.CmplxFFT
}

// NewGonum returns a Gonum transformer with an empty plan cache.
func NewGonum() *Gonum {
	return &Gonum{}
}

// Forward implements Transformer.
func (g *Gonum) Forward(dst, src []complex128) error {
	if err := checkForward(dst, src); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}

	n := len(src)
	p, ok := g.plans.Load(n)
	if !ok {
		p, _ = g.plans.LoadOrStore(n, &gonumPlan{fft: fourier.NewCmplxFFT(n)})
	}
	plan := p.(*gonumPlan)

	plan.mu.Lock()
	plan.fft.Coefficients(dst, src)
	plan.mu.Unlock()

	return nil
}

// GoDSP runs transforms through github.com/mjibson/go-dsp, which uses
// radix-2 for powers of two and Bluestein's algorithm otherwise.
type GoDSP struct{}

// Forward implements Transformer.
func (GoDSP) Forward(dst, src []complex128) error {
	if err := checkForward(dst, src); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}

	copy(dst, godspfft.FFT(src))
	return nil
}

// Direct evaluates the DFT sum with a twiddle table indexed by mu*k mod N.
// It is slow but has no approximation beyond the twiddle rounding, which
// makes it useful as a reference.
type Direct struct{}

// Forward implements Transformer.
func (Direct) Forward(dst, src []complex128) error {
	if err := checkForward(dst, src); err != nil {
		return err
	}

	n := len(src)
	if n == 0 {
		return nil
	}

	tw := make([]complex128, n)
	for j := range tw {
		s, c := math.Sincos(-2 * math.Pi * float64(j) / float64(n))
		tw[j] = complex(c, s)
	}

	for mu := range dst {
		var acc complex128
		for k, x := range src {
			acc += x * tw[(mu*k)%n]
		}
		dst[mu] = acc
	}
	return nil
}

// Auto uses algo-fft for power-of-two sizes and gonum's mixed-radix FFT for
// every other size.
type Auto struct {
	primary  *AlgoFFT
	fallback *Gonum
}

// NewAuto returns an Auto transformer.
func NewAuto() *Auto {
	return &Auto{primary: NewAlgoFFT(), fallback: NewGonum()}
}

// Forward implements Transformer.
func (a *Auto) Forward(dst, src []complex128) error {
	if err := checkForward(dst, src); err != nil {
		return err
	}

	n := len(src)
	switch n {
	case 0:
		return nil
	case 1:
		dst[0] = src[0]
		return nil
	}

	if isPowerOfTwo(n) {
		return a.primary.Forward(dst, src)
	}
	return a.fallback.Forward(dst, src)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// forwardNew allocates the output and runs t.
func forwardNew(t Transformer, src []complex128) ([]complex128, error) {
	dst := core.EnsureComplexLen(nil, len(src))
	if err := t.Forward(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}
