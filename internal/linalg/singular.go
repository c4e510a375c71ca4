package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// IsSingular reports whether the square matrix a has rank below its size.
// It reduces a private copy, so a is never modified.
func IsSingular(a mat.Matrix, opts ...Option) (bool, error) {
	if err := validateSquare(a); err != nil {
		return false, opErrorf("IsSingular", err)
	}
	res, err := Reduce(mat.DenseCopyOf(a), opts...)
	if err != nil {
		return false, err
	}
	return res.Singular(), nil
}

func validateSquare(a mat.Matrix) error {
	if a == nil {
		return ErrNilMatrix
	}
	if d, ok := a.(*mat.Dense); ok {
		if d == nil {
			return ErrNilMatrix
		}
		if d.IsEmpty() {
			return ErrEmptyMatrix
		}
	}
	r, c := a.Dims()
	if r == 0 || c == 0 {
		return ErrEmptyMatrix
	}
	if r != c {
		return fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, r, c)
	}
	return nil
}
