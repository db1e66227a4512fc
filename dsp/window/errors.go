package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
	errUnknownType      = errors.New("unknown window type")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateCosineSum(size int, coeffs []float64) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if len(coeffs) == 0 {
		return fmt.Errorf("cosine-sum window: %w", errEmptyCoeffs)
	}
	return nil
}
