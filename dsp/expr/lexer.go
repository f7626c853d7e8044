package expr

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokQuestion
	tokColon
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return strconv.Quote(t.text)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// tokenize splits src into tokens, always terminated by tokEOF.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			i = scanNumber(src, i)
			v, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, &Error{Expr: src, Pos: start, Msg: fmt.Sprintf("invalid number %q", src[start:i]), Err: ErrSyntax}
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:i], num: v, pos: start})
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], pos: start})
		default:
			tok, n := scanPunct(src, i)
			if n == 0 {
				return nil, &Error{Expr: src, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c), Err: ErrSyntax}
			}
			toks = append(toks, tok)
			i += n
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	// The exponent is only consumed when digits follow, so "2e" stays a
	// number followed by the constant e.
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func scanPunct(src string, i int) (token, int) {
	c := src[i]
	two := ""
	if i+1 < len(src) {
		two = src[i : i+2]
	}
	switch two {
	case "<=", ">=", "==", "!=":
		return token{kind: tokOp, text: two, pos: i}, 2
	}
	switch c {
	case '+', '-', '*', '/', '^', '<', '>':
		return token{kind: tokOp, text: string(c), pos: i}, 1
	case '(':
		return token{kind: tokLParen, text: "(", pos: i}, 1
	case ')':
		return token{kind: tokRParen, text: ")", pos: i}, 1
	case ',':
		return token{kind: tokComma, text: ",", pos: i}, 1
	case '?':
		return token{kind: tokQuestion, text: "?", pos: i}, 1
	case ':':
		return token{kind: tokColon, text: ":", pos: i}, 1
	}
	return token{}, 0
}
