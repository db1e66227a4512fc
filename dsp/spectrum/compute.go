package spectrum

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
)

var defaultTransformer Transformer = NewAuto()

// Option configures Compute, ComputeComplex and ComputeBatch.
type Option func(*config)

type config struct {
	transformer Transformer
	parallelism int
}

func defaultConfig() config {
	return config{
		transformer: defaultTransformer,
		parallelism: runtime.GOMAXPROCS(0),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithTransformer selects the FFT backend. A nil transformer is ignored.
func WithTransformer(t Transformer) Option {
	return func(c *config) {
		if t != nil {
			c.transformer = t
		}
	}
}

// WithParallelism caps the number of spectra ComputeBatch computes at once.
// Values below 1 are ignored.
func WithParallelism(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// AngularFrequency returns Omega0 = period*2*pi/n in radians per sample.
func AngularFrequency(n int, period float64) float64 {
	return period * 2 * math.Pi / float64(n)
}

// Exponential returns x[k] = exp(j*Omega0*k) for k in [0,n) with
// Omega0 = period*2*pi/n. Every sample has unit magnitude.
func Exponential(n int, period float64) ([]complex128, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	out := make([]complex128, n)
	omega := AngularFrequency(n, period)
	for k := range out {
		s, c := math.Sincos(omega * float64(k))
		out[k] = complex(c, s)
	}
	return out, nil
}

// Windowed returns xw[k] = exp(j*Omega0*k) * window[k], the time-domain
// input of Compute.
func Windowed(n int, period float64, window []float64) ([]complex128, error) {
	if err := validateShape(n, len(window)); err != nil {
		return nil, err
	}

	re, im, buf := getScratch(n)
	defer putScratch(buf)

	omega := AngularFrequency(n, period)
	for k := range re {
		im[k], re[k] = math.Sincos(omega * float64(k))
	}

	vecmath.MulBlockInPlace(re, window)
	vecmath.MulBlockInPlace(im, window)

	out := make([]complex128, n)
	for k := range out {
		out[k] = complex(re[k], im[k])
	}
	return out, nil
}

// WindowedComplex is Windowed for complex window coefficients.
func WindowedComplex(n int, period float64, window []complex128) ([]complex128, error) {
	if err := validateShape(n, len(window)); err != nil {
		return nil, err
	}

	out, err := Exponential(n, period)
	if err != nil {
		return nil, err
	}
	for k, w := range window {
		out[k] *= w
	}
	return out, nil
}

// Compute returns the n-point DFT of the complex exponential with the given
// period (in samples) after multiplication by window:
//
//	X[mu] = sum_k exp(j*Omega0*k) * window[k] * exp(-j*2*pi*mu*k/n)
//
// The result is in bin order mu = 0..n-1. It fails with ErrInvalidLength when
// n < 1 and ErrShapeMismatch when len(window) != n; both wrap
// ErrInvalidArgument.
//
// When period is an integer in [0,n) and window is all ones, X has the single
// value n at bin period. Any other period leaks energy into every bin.
func Compute(n int, period float64, window []float64, opts ...Option) ([]complex128, error) {
	xw, err := Windowed(n, period, window)
	if err != nil {
		return nil, err
	}
	return forwardNew(applyOptions(opts).transformer, xw)
}

// ComputeComplex is Compute for complex window coefficients.
func ComputeComplex(n int, period float64, window []complex128, opts ...Option) ([]complex128, error) {
	xw, err := WindowedComplex(n, period, window)
	if err != nil {
		return nil, err
	}
	return forwardNew(applyOptions(opts).transformer, xw)
}

// ComputeBatch runs Compute once per window concurrently and returns the
// spectra in the order of windows. The first failure cancels the remaining
// work and is returned; no partial results are returned.
func ComputeBatch(ctx context.Context, n int, period float64, windows [][]float64, opts ...Option) ([][]complex128, error) {
	cfg := applyOptions(opts)

	// Validate everything up front so a usage error never races with
	// cancellation of sibling jobs.
	for i, w := range windows {
		if err := validateShape(n, len(w)); err != nil {
			return nil, fmt.Errorf("window %d: %w", i, err)
		}
	}

	out := make([][]complex128, len(windows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallelism)

	for i, w := range windows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			xw, err := Windowed(n, period, w)
			if err != nil {
				return fmt.Errorf("window %d: %w", i, err)
			}

			bins, err := forwardNew(cfg.transformer, xw)
			if err != nil {
				return fmt.Errorf("window %d: %w", i, err)
			}

			out[i] = bins
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
