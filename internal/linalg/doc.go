// Package linalg tests square matrices for singularity by Gaussian
// elimination to row-echelon form.
//
// Rows are processed top to bottom. Each row has the entries left of its
// diagonal eliminated using the rows above, then is divided by its
// diagonal entry. When the diagonal entry is zero the row borrows from the
// rows below it (they are added in one at a time) until the entry becomes
// non-zero. The last row has nothing left to borrow from. A pivot that
// cannot be made non-zero means the matrix is singular.
//
// There is no partial pivoting and no tolerance: pivots are compared to
// zero exactly.
//
//	a := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
//	singular, err := linalg.IsSingular(a) // true, nil
package linalg
