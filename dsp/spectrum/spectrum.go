package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-leakage/dsp/core"
)

// DefaultFloorDB is the lowest level reported by the dB helpers. Exact zeros
// (an eigenfrequency under a rectangular window) map here instead of -Inf.
const DefaultFloorDB = -300.0

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func unpack(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// ComplexBins is a read-only view of a spectrum in bin order.
//
// Presentation code can consume spectra through this interface without
// depending on the slice type produced by a particular backend.
type ComplexBins interface {
	Len() int
	At(i int) complex128
}

// SliceBins adapts a []complex128 as [ComplexBins].
type SliceBins []complex128

// Len returns the bin count.
func (s SliceBins) Len() int { return len(s) }

// At returns the bin value at index i.
func (s SliceBins) At(i int) complex128 { return s[i] }

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	defer putScratch(buf)

	unpack(in, re, im)
	vecmath.Magnitude(out, re, im)
	return out
}

// MagnitudeBins returns |X[k]| for each bin from a [ComplexBins] source.
func MagnitudeBins(in ComplexBins) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, in.Len())
	for i := range out {
		out[i] = cmplx.Abs(in.At(i))
	}
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	defer putScratch(buf)

	unpack(in, re, im)
	vecmath.Power(out, re, im)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// Energy returns sum |x[k]|^2. Applied to a spectrum and to its time-domain
// input it satisfies Parseval: Energy(X) == N * Energy(xw).
func Energy(in []complex128) float64 {
	if len(in) == 0 {
		return 0
	}
	return floats.Sum(Power(in))
}

// MagnitudeDB returns 20*log10|X[k]| clamped to floorDB.
func MagnitudeDB(in []complex128, floorDB float64) []float64 {
	mag := Magnitude(in)
	for i, m := range mag {
		mag[i] = core.LinearToDBFloor(m, floorDB)
	}
	return mag
}

// NormalizedDB returns 20*log10(|X[k]|/max|X|) clamped to floorDB, so the
// strongest bin reads 0 dB. An all-zero spectrum yields floorDB everywhere.
func NormalizedDB(in []complex128, floorDB float64) []float64 {
	mag := Magnitude(in)
	if len(mag) == 0 {
		return nil
	}

	peak := floats.Max(mag)
	for i, m := range mag {
		if peak == 0 {
			mag[i] = floorDB
			continue
		}
		mag[i] = core.LinearToDBFloor(m/peak, floorDB)
	}
	return mag
}

// PeakBin returns the index and magnitude of the strongest bin. Ties resolve
// to the lowest index. It returns -1 for an empty spectrum.
func PeakBin(in []complex128) (int, float64) {
	if len(in) == 0 {
		return -1, 0
	}
	mag := Magnitude(in)
	idx := floats.MaxIdx(mag)
	return idx, mag[idx]
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
