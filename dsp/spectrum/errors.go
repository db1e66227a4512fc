package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the parent of every input validation error.
	ErrInvalidArgument = errors.New("spectrum: invalid argument")
	// ErrInvalidLength reports a signal length below 1.
	ErrInvalidLength = fmt.Errorf("%w: length must be >= 1", ErrInvalidArgument)
	// ErrShapeMismatch reports a window or buffer whose length differs from N.
	ErrShapeMismatch = fmt.Errorf("%w: shape mismatch", ErrInvalidArgument)
)

func validateShape(n, windowLen int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if windowLen != n {
		return fmt.Errorf("%w: window has %d coefficients, signal has %d samples", ErrShapeMismatch, windowLen, n)
	}
	return nil
}
