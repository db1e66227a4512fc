package core

import (
	"math"
	"math/cmplx"
)

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
//
// The comparison is absolute for values near zero and relative otherwise.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// NearlyEqualComplex reports whether |a-b| is within eps, absolute near zero
// and relative to the larger magnitude otherwise.
func NearlyEqualComplex(a, b complex128, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := cmplx.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(cmplx.Abs(a), cmplx.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearToDBFloor converts linear amplitude to dB and clamps the result to
// floorDB. Zero magnitudes map to floorDB instead of -Inf so the values stay
// plottable.
func LinearToDBFloor(linear, floorDB float64) float64 {
	db := LinearToDB(linear)
	if math.IsNaN(db) || db < floorDB {
		return floorDB
	}

	return db
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// BinDistance returns the signed circular distance from frequency f to bin
// mu on an n-point DFT grid, wrapped into [-n/2, n/2).
func BinDistance(mu int, f float64, n int) float64 {
	if n <= 0 {
		return 0
	}

	nf := float64(n)
	d := math.Mod(float64(mu)-f+nf/2, nf)
	if d < 0 {
		d += nf
	}

	return d - nf/2
}
