package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for template operations.
var (
	// ErrEmpty is returned when there is nothing to render.
	ErrEmpty = errors.New("template is empty")

	// ErrMalformedExpression is returned when a line cannot be split into
	// head, variable and tail because its brace markers are missing or
	// out of order.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrMissingVariable is returned when a variable is not in the context.
	ErrMissingVariable = errors.New("variable missing from context")
)

var (
	errNoOpenBrace  = fmt.Errorf("%w: no opening brace", ErrMalformedExpression)
	errNoCloseBrace = fmt.Errorf("%w: no closing brace", ErrMalformedExpression)
	errBraceOrder   = fmt.Errorf("%w: closing marker before opening marker", ErrMalformedExpression)
	errSplitRune    = fmt.Errorf("%w: marker offset inside a multi-byte character", ErrMalformedExpression)
)

// Error wraps template errors with the operation and the offending line.
type Error struct {
	Op   string // Operation that failed ("split", "render")
	Line string // Input line
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Line, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, line string, err error) *Error {
	return &Error{Op: op, Line: line, Err: err}
}
