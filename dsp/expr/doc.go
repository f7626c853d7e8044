// Package expr parses and evaluates scalar formulas in the single free
// variable t.
//
// A formula is parsed once into an immutable AST and evaluated many times:
//
//	p, err := expr.Compile("t >= 0 ? exp(-t) : 0")
//	y, err := p.Eval(0.5)
//
// # Grammar
//
// From lowest to highest precedence:
//
//	cond ? a : b              ternary, right associative
//	< <= > >= == !=           comparison, yields 1 or 0
//	+ -                       additive
//	* /                       multiplicative
//	-x +x                     unary
//	x ^ y                     power, right associative (-2^2 == -4)
//	f(x) (x) number name      primary
//
// Functions: sin, cos, tan, exp, log (natural; log(x, b) for base b), sqrt,
// abs, sign. Constants: pi, e (also PI, E). The only variable is t; any other
// identifier is rejected when the formula is compiled.
//
// # Errors
//
// Failures are reported as *Error values wrapping one of the sentinel errors
// ([ErrSyntax], [ErrUndefinedVariable], [ErrUndefinedFunction], [ErrArity],
// [ErrDivisionByZero], [ErrDomain]). Evaluation never returns NaN or an
// infinity without an error.
//
// # Rewriting
//
// [Substitute] replaces every occurrence of t with another expression and
// [Node.String] prints a tree back into text that parses to the same tree.
// Time shifts and scalings of a signal are built this way.
package expr
