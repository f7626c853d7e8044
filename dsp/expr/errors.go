package expr

import (
	"errors"
	"fmt"
)

// Errors reported by parsing and evaluation.
var (
	ErrSyntax            = errors.New("expr: syntax error")
	ErrUndefinedVariable = errors.New("expr: undefined variable")
	ErrUndefinedFunction = errors.New("expr: undefined function")
	ErrArity             = errors.New("expr: wrong number of arguments")
	ErrDivisionByZero    = errors.New("expr: division by zero")
	ErrDomain            = errors.New("expr: domain error")
)

// Error describes a parse or evaluation failure.
//
// Pos is the byte offset into Expr for parse errors and -1 for evaluation
// errors.
type Error struct {
	Expr string
	Pos  int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v at offset %d in %q: %s", e.Err, e.Pos, e.Expr, e.Msg)
	}
	return fmt.Sprintf("%v in %q: %s", e.Err, e.Expr, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func evalError(kind error, format string, args ...any) *Error {
	return &Error{Pos: -1, Msg: fmt.Sprintf(format, args...), Err: kind}
}
