package expr

import (
	"math"
	"strconv"
	"strings"
)

// Variable is the name of the single free variable.
const Variable = "t"

const (
	precTernary = iota + 1
	precCompare
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

// Node is an immutable expression tree node.
type Node interface {
	// String prints the node as parseable text with minimal parentheses.
	String() string

	eval(t float64) (float64, error)
	precedence() int
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Const is a named constant such as pi.
type Const struct {
	Name  string
	Value float64
}

// Var is the free variable t.
type Var struct{}

// Unary is a prefix sign operator, Op is '-' or '+'.
type Unary struct {
	Op byte
	X  Node
}

// Binary is an arithmetic or comparison operator.
type Binary struct {
	Op   string
	L, R Node
}

// Cond is the ternary conditional.
type Cond struct {
	Test, Then, Else Node
}

// Call is a function application.
type Call struct {
	Func string
	Args []Node
}

var constants = map[string]float64{
	"pi": math.Pi,
	"PI": math.Pi,
	"e":  math.E,
	"E":  math.E,
}

var binaryPrec = map[string]int{
	"+": precAdd, "-": precAdd,
	"*": precMul, "/": precMul,
	"^": precPow,
	"<": precCompare, "<=": precCompare,
	">": precCompare, ">=": precCompare,
	"==": precCompare, "!=": precCompare,
}

func (n Number) precedence() int {
	if math.Signbit(n.Value) {
		return precUnary
	}
	return precAtom
}
func (Const) precedence() int    { return precAtom }
func (Var) precedence() int      { return precAtom }
func (Unary) precedence() int    { return precUnary }
func (b Binary) precedence() int { return binaryPrec[b.Op] }
func (Cond) precedence() int     { return precTernary }
func (Call) precedence() int     { return precAtom }

func (n Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (c Const) String() string  { return c.Name }
func (Var) String() string      { return Variable }

func (u Unary) String() string {
	return string(u.Op) + wrap(u.X, u.X.precedence() < precUnary)
}

func (b Binary) String() string {
	p := b.precedence()
	lp, rp := b.L.precedence(), b.R.precedence()
	var left, right bool
	if b.Op == "^" {
		left, right = lp <= p, rp < p
	} else {
		left, right = lp < p, rp <= p
	}
	sep := " " + b.Op + " "
	if b.Op == "^" {
		sep = "^"
	}
	return wrap(b.L, left) + sep + wrap(b.R, right)
}

func (c Cond) String() string {
	return wrap(c.Test, c.Test.precedence() <= precTernary) + " ? " + c.Then.String() + " : " + c.Else.String()
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Func)
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func wrap(n Node, paren bool) string {
	if paren {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// Num returns a literal node for v.
func Num(v float64) Node { return Number{Value: v} }

// T returns the free variable node.
func T() Node { return Var{} }

// Op builds a binary node. It panics on an unknown operator.
func Op(op string, l, r Node) Node {
	if _, ok := binaryPrec[op]; !ok {
		panic("expr: unknown operator " + strconv.Quote(op))
	}
	return Binary{Op: op, L: l, R: r}
}

// Neg returns the negation of x.
func Neg(x Node) Node { return Unary{Op: '-', X: x} }

// Substitute returns a copy of n where every occurrence of the free variable
// is replaced by repl. n itself is left unchanged.
func Substitute(n Node, repl Node) Node {
	switch v := n.(type) {
	case Var:
		return repl
	case Unary:
		return Unary{Op: v.Op, X: Substitute(v.X, repl)}
	case Binary:
		return Binary{Op: v.Op, L: Substitute(v.L, repl), R: Substitute(v.R, repl)}
	case Cond:
		return Cond{Test: Substitute(v.Test, repl), Then: Substitute(v.Then, repl), Else: Substitute(v.Else, repl)}
	case Call:
		args := make([]Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = Substitute(a, repl)
		}
		return Call{Func: v.Func, Args: args}
	default:
		return n
	}
}

// Uses reports whether n references the free variable.
func Uses(n Node) bool {
	switch v := n.(type) {
	case Var:
		return true
	case Unary:
		return Uses(v.X)
	case Binary:
		return Uses(v.L) || Uses(v.R)
	case Cond:
		return Uses(v.Test) || Uses(v.Then) || Uses(v.Else)
	case Call:
		for _, a := range v.Args {
			if Uses(a) {
				return true
			}
		}
	}
	return false
}
