// Package spectrum computes and inspects the DFT of a windowed complex
// exponential, the textbook setting for spectral leakage.
//
// [Compute] builds x[k] = exp(j*2*pi*P*k/N), multiplies it by a caller
// supplied window and transforms the result. The window is an opaque vector;
// package window provides the rectangular and Hann coefficients used in the
// examples. The transform itself is delegated to a [Transformer] backend so
// the package is not tied to one FFT implementation.
//
// The remaining helpers turn complex bins into the real-valued sequences a
// plot or report needs: magnitudes, dB values relative to the peak, and a
// main-lobe / side-lobe breakdown via [AnalyzeLeakage].
package spectrum
