package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every *ParseError.
	ErrSyntax = errors.New("symbolic: syntax error")
	// ErrDivisionByZero reports a denominator that is identically zero.
	ErrDivisionByZero = errors.New("symbolic: division by zero")
	// ErrTooComplex reports that normalisation exceeded its Limits.
	ErrTooComplex = errors.New("symbolic: expression too complex")
)

// ParseError locates a syntax error in the source. Pos is a rune offset.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }
