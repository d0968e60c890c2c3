package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShape       = errors.New("shape mismatch")
	ErrInvalidDims = errors.New("invalid matrix dimensions")
)

// ShapeError describes the operands of an operation whose shapes disagree.
type ShapeError struct {
	Op string // Operation name (e.g., "multiply", "add")
	A  [2]int // Rows and columns of the left operand
	B  [2]int // Rows and columns of the right operand
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s [%d,%d] vs [%d,%d]",
		e.Op, ErrShape, e.A[0], e.A[1], e.B[0], e.B[1])
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

func shapeError(op string, a, b *Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	return &ShapeError{Op: op, A: [2]int{ar, ac}, B: [2]int{br, bc}}
}
