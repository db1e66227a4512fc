package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-leakage/dsp/spectrum"
	"github.com/cwbudde/algo-leakage/dsp/window"
)

func ExampleCompute() {
	ones, _ := window.Rectangular(16)
	bins, _ := spectrum.Compute(16, 4, ones)
	peak, mag := spectrum.PeakBin(bins)
	fmt.Printf("peak bin %d, magnitude %.1f\n", peak, mag)
	// Output:
	// peak bin 4, magnitude 16.0
}

func ExampleAnalyzeLeakage() {
	for _, typ := range []window.Type{window.TypeRectangular, window.TypeHann} {
		w := window.Generate(typ, 32)
		bins, _ := spectrum.Compute(32, 10.3, w)
		l, _ := spectrum.AnalyzeLeakage(bins, 10.3, window.Analyze(w).FirstMinimumBins)
		fmt.Printf("%s: peak %d, main lobe %v, sidelobe %.1f dB\n", typ, l.PeakBin, l.MainLobeBins, l.SidelobeLeveldB)
	}
	// Output:
	// rectangular: peak 10, main lobe [10 11], sidelobe -12.7 dB
	// hann: peak 10, main lobe [9 10 11 12], sidelobe -32.0 dB
}

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}
