package window

import (
	"math"

	"github.com/cwbudde/algo-leakage/dsp/core"
)

// Analysis holds numerically computed spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the 3 dB (half-power) main lobe width in bins.
	Bandwidth3dB float64
	// HighestSidelobedB is the highest sidelobe level relative to DC in dB.
	HighestSidelobedB float64
	// FirstMinimumBins is the first null position in bins, i.e. the one-sided
	// main lobe half width.
	FirstMinimumBins float64
	// ScallopLossdB is the response half a bin off centre relative to DC,
	// i.e. the worst-case amplitude error for an off-bin signal. It is
	// negative (about -3.92 dB for the rectangular window).
	ScallopLossdB float64
}

// MainLobeWidth returns the two-sided null-to-null main lobe width in bins.
func (a Analysis) MainLobeWidth() float64 {
	return 2 * a.FirstMinimumBins
}

const (
	// coarse scan resolution in fractions of a bin
	scanDivisions = 8
	refineIters   = 80
	invPhi        = 0.6180339887498949 // (sqrt(5)-1)/2
)

// response evaluates |W(f)|^2, the squared magnitude of the window's DTFT, at
// a normalised frequency f in cycles per sample.
type response []float64

func (r response) at(f float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * f
	for k, c := range r {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}
	return re*re + im*im
}

// Analyze computes spectral properties of the given window coefficients by
// evaluating the window's DTFT between DC and Nyquist. Windows with zero DC
// response yield a zero Analysis.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	r := response(coeffs)
	dc := r.at(0)
	if dc == 0 {
		return Analysis{}
	}

	cg, _ := CoherentGain(coeffs)
	enbw, _ := EquivalentNoiseBandwidth(coeffs)

	nf := float64(n)
	scallop := 0.0
	if half := r.at(0.5 / nf); half > 0 {
		scallop = core.LinearPowerToDB(half / dc)
	}

	firstMin := r.firstMinimum(dc, nf)

	return Analysis{
		CoherentGain:      cg,
		ENBW:              enbw,
		Bandwidth3dB:      r.halfPowerWidth(dc, nf),
		HighestSidelobedB: r.highestSidelobe(dc, firstMin, nf),
		FirstMinimumBins:  firstMin,
		ScallopLossdB:     scallop,
	}
}

// FirstNull returns the first null of the window's response in bins, the
// one-sided main lobe half width. It equals Analyze(coeffs).FirstMinimumBins
// without scanning the side lobes, and returns 0 for an empty or zero-sum
// window.
func FirstNull(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	r := response(coeffs)
	dc := r.at(0)
	if dc == 0 {
		return 0
	}
	return r.firstMinimum(dc, float64(len(coeffs)))
}

// halfPowerWidth bisects for the -3 dB point on [0, Nyquist] and returns the
// two-sided width in bins.
func (r response) halfPowerWidth(dc, nf float64) float64 {
	lo, hi := 0.0, 0.5
	for range refineIters {
		mid := (lo + hi) / 2
		if r.at(mid)/dc > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 2 * lo * nf
}

// firstMinimum scans outward from DC for the first turn-around below 10% of
// the DC power, then refines it with a golden-section search. The threshold
// keeps flat main-lobe plateaus from registering as nulls.
func (r response) firstMinimum(dc, nf float64) float64 {
	step := 1 / (nf * scanDivisions)
	threshold := dc * 0.1

	coarse := step
	prev := dc
	for f := step; f < 0.5; f += step {
		v := r.at(f)
		if prev < threshold && v > prev {
			coarse = f - step
			break
		}
		prev = v
	}

	a := math.Max(0, coarse-2*step)
	b := math.Min(0.5, coarse+2*step)
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	for range refineIters {
		if r.at(c) < r.at(d) {
			b = d
		} else {
			a = c
		}
		c = b - invPhi*(b-a)
		d = a + invPhi*(b-a)
	}

	return (a + b) / 2 * nf
}

// highestSidelobe returns the peak level past the first null in dB relative
// to DC, or -Inf when nothing is found.
func (r response) highestSidelobe(dc, firstMinBins, nf float64) float64 {
	start := firstMinBins / nf
	step := 1 / (nf * scanDivisions)

	peak, peakF := 0.0, start
	for f := start; f < 0.5; f += step {
		if v := r.at(f); v > peak {
			peak, peakF = v, f
		}
	}

	fine := step / 32
	for f := math.Max(0, peakF-step); f <= peakF+step; f += fine {
		if v := r.at(f); v > peak {
			peak = v
		}
	}

	if peak <= 0 {
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(peak / dc)
}
