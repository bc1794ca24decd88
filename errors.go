package linearcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every failure reported by Verify wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	ErrNoVariables         = errors.New("linearcheck: no variables supplied")
	ErrInvalidVariable     = errors.New("linearcheck: invalid variable name")
	ErrDuplicateVariable   = errors.New("linearcheck: duplicate variable name")
	ErrEmptyTransformation = errors.New("linearcheck: empty transformation")
	ErrInputTooLong        = errors.New("linearcheck: input too long")
	ErrEmptyComponent      = errors.New("linearcheck: empty transformation component")
	ErrUnknownSymbol       = errors.New("linearcheck: unknown symbol")
	ErrParse               = errors.New("linearcheck: parse failed")
	ErrEvaluation          = errors.New("linearcheck: evaluation failed")
)

// Kind classifies a verification failure for logs and metrics. It is never
// part of the user-visible message.
type Kind string

const (
	KindInput         Kind = "input"
	KindUnknownSymbol Kind = "unknown_symbol"
	KindParse         Kind = "parse"
	KindEvaluation    Kind = "evaluation"
)

// VerifyError describes why a verification did not produce a verdict.
type VerifyError struct {
	Kind Kind
	// Op names the stage that failed: "variables", "split", "parse",
	// "substitute", "simplify" or "verify".
	Op string
	// Component is the zero-based index of the offending component, or -1.
	Component int
	// Names lists the identifiers at fault, sorted.
	Names []string
	// Limit is the bound an ErrInputTooLong failure exceeded.
	Limit int
	Err   error
}

func (e *VerifyError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Component >= 0 {
		fmt.Fprintf(&sb, " component %d", e.Component)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *VerifyError) Unwrap() error { return e.Err }

func inputError(op string, sentinel error, names ...string) *VerifyError {
	err := sentinel
	if len(names) > 0 {
		err = fmt.Errorf("%w: %s", sentinel, strings.Join(names, ", "))
	}
	return &VerifyError{Kind: KindInput, Op: op, Component: -1, Names: names, Err: err}
}

// KindOf returns the Kind of err, or "" when err is not a *VerifyError.
func KindOf(err error) Kind {
	var ve *VerifyError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}
