// Package matrix provides the dense linear-algebra primitive consumed by the
// perceptron.
//
// Matrix wraps a gonum *mat.Dense and exposes two operation shapes:
//   - package-level functions (Multiply, Add, Subtract, Transpose, Map)
//     allocate and return a new matrix, leaving operands untouched;
//   - methods (Add, MultiplyElem, Scale, Map, Randomize) mutate the receiver.
//
// Binary operations validate operand shapes up front and return a
// *ShapeError instead of letting gonum panic.
package matrix

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense row-major matrix of float64 values.
type Matrix struct {
	d *mat.Dense
}

// New creates a zero-filled matrix with the given dimensions.
//
// Returns ErrInvalidDims if rows or cols is not positive.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d (must be > 0)", ErrInvalidDims, rows, cols)
	}
	return &Matrix{d: mat.NewDense(rows, cols, nil)}, nil
}

// FromArray creates a column vector (len(values) x 1) holding a copy of values.
func FromArray(values []float64) (*Matrix, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrInvalidDims)
	}
	data := make([]float64, len(values))
	copy(data, values)
	return &Matrix{d: mat.NewDense(len(values), 1, data)}, nil
}

// FromRows creates a matrix from row-major data.
func FromRows(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d (must be > 0)", ErrInvalidDims, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrInvalidDims, len(data), rows, cols)
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Matrix{d: mat.NewDense(rows, cols, buf)}, nil
}

// ToArray returns the elements in row-major order as a new slice.
// For a column vector this is the vector itself.
func (m *Matrix) ToArray() []float64 {
	r, c := m.d.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.d.RawRowView(i)...)
	}
	return out
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.d.Dims()
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.d.At(i, j)
}

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.d.Set(i, j, v)
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{d: mat.DenseCopyOf(m.d)}
}

// Equal reports whether m and o have the same shape and identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	return mat.Equal(m.d, o.d)
}

// String formats the matrix for debugging.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.d, mat.Squeeze()))
}

// Multiply returns the matrix product a × b.
func Multiply(a, b *Matrix) (*Matrix, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, shapeError("multiply", a, b)
	}
	out := mat.NewDense(ar, bc, nil)
	out.Mul(a.d, b.d)
	return &Matrix{d: out}, nil
}

// Add returns the element-wise sum a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	if !sameShape(a, b) {
		return nil, shapeError("add", a, b)
	}
	out := new(mat.Dense)
	out.Add(a.d, b.d)
	return &Matrix{d: out}, nil
}

// Subtract returns the element-wise difference a - b.
func Subtract(a, b *Matrix) (*Matrix, error) {
	if !sameShape(a, b) {
		return nil, shapeError("subtract", a, b)
	}
	out := new(mat.Dense)
	out.Sub(a.d, b.d)
	return &Matrix{d: out}, nil
}

// Transpose returns a new matrix holding the transpose of a.
func Transpose(a *Matrix) *Matrix {
	return &Matrix{d: mat.DenseCopyOf(a.d.T())}
}

// Map returns a new matrix with fn applied to every element of a.
func Map(a *Matrix, fn func(float64) float64) *Matrix {
	out := new(mat.Dense)
	out.Apply(func(_, _ int, v float64) float64 { return fn(v) }, a.d)
	return &Matrix{d: out}
}

// Add adds o to m element-wise, in place.
func (m *Matrix) Add(o *Matrix) error {
	if !sameShape(m, o) {
		return shapeError("add", m, o)
	}
	m.d.Add(m.d, o.d)
	return nil
}

// MultiplyElem multiplies m by o element-wise (Hadamard product), in place.
func (m *Matrix) MultiplyElem(o *Matrix) error {
	if !sameShape(m, o) {
		return shapeError("multiply", m, o)
	}
	m.d.MulElem(m.d, o.d)
	return nil
}

// Scale multiplies every element of m by s, in place.
func (m *Matrix) Scale(s float64) {
	m.d.Scale(s, m.d)
}

// Map applies fn to every element of m, in place.
func (m *Matrix) Map(fn func(float64) float64) {
	m.d.Apply(func(_, _ int, v float64) float64 { return fn(v) }, m.d)
}

// Randomize fills m with values drawn uniformly from [-1, 1).
func (m *Matrix) Randomize(rng *rand.Rand) {
	r, _ := m.d.Dims()
	for i := 0; i < r; i++ {
		row := m.d.RawRowView(i)
		for j := range row {
			row[j] = rng.Float64()*2 - 1
		}
	}
}

// Abs returns a new matrix holding the absolute value of every element.
func (m *Matrix) Abs() *Matrix {
	return Map(m, math.Abs)
}

// Average returns the arithmetic mean of all elements.
func (m *Matrix) Average() float64 {
	data := m.ToArray()
	return floats.Sum(data) / float64(len(data))
}

func sameShape(a, b *Matrix) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return ar == br && ac == bc
}
