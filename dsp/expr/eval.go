package expr

import (
	"fmt"
	"math"
)

type function struct {
	minArgs, maxArgs int
	fn               func(args []float64) (float64, error)
}

func (f function) arity() string {
	if f.minArgs == f.maxArgs {
		if f.minArgs == 1 {
			return "1 argument"
		}
		return fmt.Sprintf("%d arguments", f.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", f.minArgs, f.maxArgs)
}

func unary(fn func(float64) float64) function {
	return function{minArgs: 1, maxArgs: 1, fn: func(a []float64) (float64, error) {
		return fn(a[0]), nil
	}}
}

var functions = map[string]function{
	"sin": unary(math.Sin),
	"cos": unary(math.Cos),
	"tan": unary(math.Tan),
	"exp": unary(math.Exp),
	"abs": unary(math.Abs),
	"sign": unary(func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return x
	}),
	"sqrt": {minArgs: 1, maxArgs: 1, fn: func(a []float64) (float64, error) {
		if a[0] < 0 {
			return 0, evalError(ErrDomain, "sqrt(%g)", a[0])
		}
		return math.Sqrt(a[0]), nil
	}},
	"log": {minArgs: 1, maxArgs: 2, fn: func(a []float64) (float64, error) {
		if a[0] <= 0 {
			return 0, evalError(ErrDomain, "log(%g)", a[0])
		}
		if len(a) == 1 {
			return math.Log(a[0]), nil
		}
		if a[1] <= 0 {
			return 0, evalError(ErrDomain, "log base %g", a[1])
		}
		den := math.Log(a[1])
		if den == 0 {
			return 0, evalError(ErrDivisionByZero, "log base 1")
		}
		return math.Log(a[0]) / den, nil
	}},
}

func (n Number) eval(float64) (float64, error) { return n.Value, nil }
func (c Const) eval(float64) (float64, error)  { return c.Value, nil }
func (Var) eval(t float64) (float64, error)    { return t, nil }

func (u Unary) eval(t float64) (float64, error) {
	x, err := u.X.eval(t)
	if err != nil {
		return 0, err
	}
	if u.Op == '-' {
		return -x, nil
	}
	return x, nil
}

func (b Binary) eval(t float64) (float64, error) {
	l, err := b.L.eval(t)
	if err != nil {
		return 0, err
	}
	r, err := b.R.eval(t)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, evalError(ErrDivisionByZero, "%g / 0", l)
		}
		return l / r, nil
	case "^":
		v := math.Pow(l, r)
		if math.IsNaN(v) {
			return 0, evalError(ErrDomain, "%g^%g", l, r)
		}
		return v, nil
	case "<":
		return truth(l < r && !nearlyEqual(l, r)), nil
	case "<=":
		return truth(l < r || nearlyEqual(l, r)), nil
	case ">":
		return truth(l > r && !nearlyEqual(l, r)), nil
	case ">=":
		return truth(l > r || nearlyEqual(l, r)), nil
	case "==":
		return truth(nearlyEqual(l, r)), nil
	case "!=":
		return truth(!nearlyEqual(l, r)), nil
	}
	return 0, evalError(ErrSyntax, "unknown operator %q", b.Op)
}

func (c Cond) eval(t float64) (float64, error) {
	test, err := c.Test.eval(t)
	if err != nil {
		return 0, err
	}
	if test != 0 && !math.IsNaN(test) {
		return c.Then.eval(t)
	}
	return c.Else.eval(t)
}

func (c Call) eval(t float64) (float64, error) {
	fn, ok := functions[c.Func]
	if !ok {
		return 0, evalError(ErrUndefinedFunction, "%s is not a function", c.Func)
	}
	var buf [2]float64
	args := buf[:0]
	for _, a := range c.Args {
		v, err := a.eval(t)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	return fn.fn(args)
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// comparisonEpsilon is the relative tolerance used by comparison operators.
const comparisonEpsilon = 1e-12

// nearlyEqual treats values within a relative 1e-12 (or one machine epsilon
// absolute) as equal, so grid positions such as 3*0.1 compare equal to 0.3.
func nearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	if diff < 0x1p-52 {
		return true
	}
	return diff <= math.Max(math.Abs(a), math.Abs(b))*comparisonEpsilon
}

// Program is a compiled formula that can be evaluated repeatedly. It is
// immutable and safe for concurrent use.
type Program struct {
	src  string
	root Node
}

// Compile parses src once for repeated evaluation.
func Compile(src string) (*Program, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Program{src: src, root: root}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// FromNode wraps an existing tree as a Program.
func FromNode(n Node) *Program {
	return &Program{src: n.String(), root: n}
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.src }

// Root returns the parsed tree.
func (p *Program) Root() Node { return p.root }

// String returns the canonical printed form of the tree.
func (p *Program) String() string { return p.root.String() }

// Eval evaluates the program at t. A non-finite result is reported as
// ErrDomain.
func (p *Program) Eval(t float64) (float64, error) {
	v, err := p.root.eval(t)
	if err != nil {
		if e, ok := err.(*Error); ok && e.Expr == "" {
			e.Expr = p.src
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &Error{Expr: p.src, Pos: -1, Msg: fmt.Sprintf("non-finite result %v at t=%g", v, t), Err: ErrDomain}
	}
	return v, nil
}

// Evaluate compiles and evaluates src at t in one step.
func Evaluate(src string, t float64) (float64, error) {
	p, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return p.Eval(t)
}
