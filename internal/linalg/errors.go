package linalg

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "linalg: ". Public entry points wrap these
// with the operation name; callers match with errors.Is.
var (
	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("linalg: nil matrix")

	// ErrEmptyMatrix indicates a matrix with zero rows or columns.
	ErrEmptyMatrix = errors.New("linalg: empty matrix")

	// ErrDimensionMismatch indicates a non-square matrix where a square one is required.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch (matrix is not square)")
)

func opErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
