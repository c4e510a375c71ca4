package linalg

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Outcome tags the result of an echelon reduction.
type Outcome int

const (
	// Echelon means every row was reduced: zeros left of the diagonal, ones on it.
	Echelon Outcome = iota
	// Singular means some pivot could not be made non-zero.
	Singular
)

func (o Outcome) String() string {
	switch o {
	case Echelon:
		return "echelon"
	case Singular:
		return "singular"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports how a reduction ended. Row is the index of the row whose
// pivot stayed zero, or -1 when the matrix was fully reduced.
type Result struct {
	Outcome Outcome
	Row     int
}

func (r Result) Singular() bool {
	return r.Outcome == Singular
}

type Option func(*reducer)

// WithTrace writes the matrix to w after each processed row, and once more
// at the row where singularity is detected. Write errors are ignored.
func WithTrace(w io.Writer) Option {
	return func(r *reducer) {
		r.trace = w
	}
}

type reducer struct {
	m     *mat.Dense
	n     int
	trace io.Writer
}

// Reduce brings the square matrix m to row-echelon form in place, normalizing
// every pivot to 1. It stops at the first row whose pivot cannot be made
// non-zero by adding lower rows and reports that row as Singular; rows below
// it are left untouched.
//
// Pivots are compared to zero exactly. A pivot that is tiny but non-zero
// after cancellation is accepted as is.
func Reduce(m *mat.Dense, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, opErrorf("Reduce", ErrNilMatrix)
	}
	if m.IsEmpty() {
		return Result{}, opErrorf("Reduce", ErrEmptyMatrix)
	}
	r, c := m.Dims()
	if r != c {
		return Result{}, opErrorf("Reduce", fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, r, c))
	}

	red := &reducer{m: m, n: r}
	for _, opt := range opts {
		opt(red)
	}
	return red.run(), nil
}

func (red *reducer) run() Result {
	for row := 0; row < red.n; row++ {
		ok := red.fixRow(row)
		red.dump(row, ok)
		if !ok {
			return Result{Outcome: Singular, Row: row}
		}
	}
	return Result{Outcome: Echelon, Row: -1}
}

// fixRow zeroes the entries left of the diagonal in row r and scales the
// row so its diagonal is 1. It returns false if the diagonal stays zero.
func (red *reducer) fixRow(r int) bool {
	last := red.n - 1
	switch {
	case r == 0:
		if !red.recoverPivot(0) {
			return false
		}
	case r == last:
		red.eliminate(r)
		if red.pivot(r) == 0 {
			return false
		}
	default:
		red.eliminate(r)
		if !red.recoverPivot(r) {
			return false
		}
	}
	red.normalize(r)
	return true
}

// recoverPivot adds rows r+1, r+2, ... into row r, re-eliminating after each
// addition, until the diagonal entry is non-zero or the rows run out.
func (red *reducer) recoverPivot(r int) bool {
	next := r + 1
	for red.pivot(r) == 0 {
		if next >= red.n {
			return false
		}
		floats.Add(red.row(r), red.row(next))
		red.eliminate(r)
		next++
	}
	return true
}

// eliminate subtracts A[r][i] * A[i] from A[r] for i = 0..r-1 in order.
// Rows above r are assumed to be reduced already.
func (red *reducer) eliminate(r int) {
	dst := red.row(r)
	for i := 0; i < r; i++ {
		floats.AddScaled(dst, -dst[i], red.row(i))
	}
}

func (red *reducer) normalize(r int) {
	dst := red.row(r)
	p := dst[r]
	for j := range dst {
		dst[j] /= p
	}
}

func (red *reducer) pivot(r int) float64 {
	return red.m.At(r, r)
}

// row returns a view of row r backed by the matrix storage.
func (red *reducer) row(r int) []float64 {
	return red.m.RawRowView(r)
}

func (red *reducer) dump(r int, ok bool) {
	if red.trace == nil {
		return
	}
	status := "reduced"
	if !ok {
		status = "singular"
	}
	fmt.Fprintf(red.trace, "row %d (%s):\n%v\n\n", r, status, mat.Formatted(red.m, mat.Squeeze()))
}
