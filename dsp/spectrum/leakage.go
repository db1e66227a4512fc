package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-leakage/dsp/core"
)

// LeakageFloor is the magnitude, relative to the peak, above which a bin
// counts as leaking. It sits well above FFT rounding noise.
const LeakageFloor = 1e-9

// Leakage describes how a spectrum's energy is spread around the true
// frequency of the analysed exponential.
type Leakage struct {
	// Period is the true frequency in bins.
	Period float64
	// PeakBin is the strongest bin and PeakMagnitude its magnitude.
	PeakBin       int
	PeakMagnitude float64
	// MainLobeHalfWidth is the one-sided main lobe width in bins used to
	// classify bins, typically window.Analysis.FirstMinimumBins.
	MainLobeHalfWidth float64
	// MainLobeBins lists, in ascending order, the bins whose circular
	// distance to Period is below MainLobeHalfWidth.
	MainLobeBins []int
	// SidelobeBin is the strongest bin outside the main lobe, or -1 when
	// every bin falls inside it.
	SidelobeBin       int
	SidelobeMagnitude float64
	// SidelobeLeveldB is 20*log10(SidelobeMagnitude/PeakMagnitude); -Inf when
	// the side lobes are exactly zero or absent.
	SidelobeLeveldB float64
	// LeakingBins counts bins other than PeakBin whose magnitude exceeds
	// LeakageFloor*PeakMagnitude.
	LeakingBins int
}

// Leaks reports whether any energy escaped the peak bin.
func (l Leakage) Leaks() bool {
	return l.LeakingBins > 0
}

// AnalyzeLeakage splits bins into main lobe and side lobes around period.
//
// Bins are classified by their circular distance to period on the DFT grid,
// so a tone near bin 0 has main-lobe bins at the top of the spectrum too.
func AnalyzeLeakage(bins []complex128, period, mainLobeHalfWidth float64) (Leakage, error) {
	n := len(bins)
	if n == 0 {
		return Leakage{}, fmt.Errorf("%w: empty spectrum", ErrInvalidLength)
	}
	if !isFinite(period) {
		return Leakage{}, fmt.Errorf("%w: period must be finite: %v", ErrInvalidArgument, period)
	}
	if !isFinite(mainLobeHalfWidth) || mainLobeHalfWidth <= 0 {
		return Leakage{}, fmt.Errorf("%w: main lobe half width must be > 0: %v", ErrInvalidArgument, mainLobeHalfWidth)
	}

	mag := Magnitude(bins)
	peakBin, peak := PeakBin(bins)

	out := Leakage{
		Period:            period,
		PeakBin:           peakBin,
		PeakMagnitude:     peak,
		MainLobeHalfWidth: mainLobeHalfWidth,
		SidelobeBin:       -1,
		SidelobeLeveldB:   math.Inf(-1),
	}

	threshold := LeakageFloor * peak
	for mu, m := range mag {
		if mu != peakBin && m > threshold {
			out.LeakingBins++
		}

		if math.Abs(core.BinDistance(mu, period, n)) < mainLobeHalfWidth {
			out.MainLobeBins = append(out.MainLobeBins, mu)
			continue
		}

		if out.SidelobeBin < 0 || m > out.SidelobeMagnitude {
			out.SidelobeBin = mu
			out.SidelobeMagnitude = m
		}
	}

	if peak > 0 && out.SidelobeMagnitude > 0 {
		out.SidelobeLeveldB = core.LinearToDB(out.SidelobeMagnitude / peak)
	}

	return out, nil
}
