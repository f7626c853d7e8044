package expr

import (
	"fmt"
	"strings"
)

type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse parses src into an expression tree.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &Error{Expr: src, Pos: 0, Msg: "empty expression", Err: ErrSyntax}
	}
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	n, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, ErrSyntax, "unexpected %s", tok)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, kind error, format string, args ...any) *Error {
	return &Error{Expr: p.src, Pos: tok.pos, Msg: fmt.Sprintf(format, args...), Err: kind}
}

func (p *parser) expect(kind tokenKind, what string) error {
	tok := p.next()
	if tok.kind != kind {
		return p.errorf(tok, ErrSyntax, "expected %s, found %s", what, tok)
	}
	return nil
}

func (p *parser) isOp(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if tok.text == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) ternary() (Node, error) {
	test, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokQuestion {
		return test, nil
	}
	p.next()
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokColon, `":"`); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return Cond{Test: test, Then: then, Else: els}, nil
}

func (p *parser) comparison() (Node, error) {
	return p.leftAssoc(p.additive, "<", "<=", ">", ">=", "==", "!=")
}

func (p *parser) additive() (Node, error) {
	return p.leftAssoc(p.multiplicative, "+", "-")
}

// multiplicative also multiplies juxtaposed operands, so "2t", "2 pi t" and
// "3(t + 1)" parse as products. Implicit products share the precedence of
// "*" and "/" and associate left.
func (p *parser) multiplicative() (Node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	last := l
	for {
		op, ok := p.isOp("*", "/")
		switch {
		case ok:
			p.next()
		case p.juxtaposed(last):
			op = "*"
		default:
			return l, nil
		}
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
		last = r
	}
}

// juxtaposed reports whether the next token starts an operand that
// implicitly multiplies last. Two adjacent number literals stay an error.
func (p *parser) juxtaposed(last Node) bool {
	switch p.peek().kind {
	case tokIdent, tokLParen:
		return true
	case tokNumber:
		_, lit := last.(Number)
		return !lit
	}
	return false
}

func (p *parser) leftAssoc(operand func() (Node, error), ops ...string) (Node, error) {
	l, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp(ops...)
		if !ok {
			return l, nil
		}
		p.next()
		r, err := operand()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) unary() (Node, error) {
	if op, ok := p.isOp("-", "+"); ok {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op[0], X: x}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.isOp("^"); !ok {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: "^", L: base, R: exp}, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return Number{Value: tok.num}, nil
	case tokLParen:
		n, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return n, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.call(tok)
		}
		if tok.text == Variable {
			return Var{}, nil
		}
		if v, ok := constants[tok.text]; ok {
			return Const{Name: tok.text, Value: v}, nil
		}
		if _, ok := functions[tok.text]; ok {
			return nil, p.errorf(tok, ErrSyntax, "function %s used without arguments", tok.text)
		}
		return nil, p.errorf(tok, ErrUndefinedVariable, "%s is not defined", tok.text)
	}
	return nil, p.errorf(tok, ErrSyntax, "unexpected %s", tok)
}

func (p *parser) call(name token) (Node, error) {
	fn, ok := functions[name.text]
	if !ok {
		return nil, p.errorf(name, ErrUndefinedFunction, "%s is not a function", name.text)
	}
	p.next() // (
	var args []Node
	if p.peek().kind != tokRParen {
		for {
			a, err := p.ternary()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}
	if len(args) < fn.minArgs || len(args) > fn.maxArgs {
		return nil, p.errorf(name, ErrArity, "%s takes %s, got %d", name.text, fn.arity(), len(args))
	}
	return Call{Func: name.text, Args: args}, nil
}
