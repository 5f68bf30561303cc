// Package callexpr parses single builtin call expressions such as
//
//	item = rockflow_context.get_item_attr_assigner(ctx, 0)
//	rockflow_context.get_int(item, b"score", -1)
//
// Arguments are identifiers, int, float, or string literals. A b prefix on a
// string literal is accepted and ignored.
package callexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgKind identifies the syntactic form of an argument.
type ArgKind int

const (
	ArgIdent ArgKind = iota
	ArgInt
	ArgFloat
	ArgString
)

// Arg is one positional call argument.
type Arg struct {
	Kind  ArgKind
	Ident string
	Int   int64
	Float float64
	Str   string
	Pos   Position
}

// Call is a parsed call expression with an optional assignment target.
type Call struct {
	Assign string
	Name   string
	Args   []Arg
	Pos    Position
}

// Error is a syntax error with its location.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

type parser struct {
	l    *lexer
	cur  Token
	peek Token
}

// Parse parses exactly one call expression.
func Parse(input string) (*Call, error) {
	p := &parser{l: newLexer(input)}
	p.next()
	p.next()
	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != tokenEOF {
		return nil, p.errorf("unexpected %s after call", describe(p.cur))
	}
	return call, nil
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) errorf(format string, args ...any) *Error {
	return &Error{Pos: p.cur.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(t TokenType) (Token, error) {
	if p.cur.Type != t {
		return Token{}, p.errorf("expected %s, got %s", t, describe(p.cur))
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *parser) parseCall() (*Call, error) {
	call := &Call{Pos: p.cur.Pos}
	if p.cur.Type == tokenIdent && p.peek.Type == tokenAssign {
		call.Assign = p.cur.Literal
		p.next()
		p.next()
		call.Pos = p.cur.Pos
	}

	first, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}
	segments := []string{first.Literal}
	for p.cur.Type == tokenDot {
		p.next()
		seg, err := p.expect(tokenIdent)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg.Literal)
	}
	call.Name = strings.Join(segments, ".")

	if _, err := p.expect(tokenLParen); err != nil {
		return nil, err
	}
	if p.cur.Type == tokenRParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if p.cur.Type == tokenComma {
			p.next()
			continue
		}
		if _, err := p.expect(tokenRParen); err != nil {
			return nil, err
		}
		return call, nil
	}
}

func (p *parser) parseArg() (Arg, error) {
	tok := p.cur
	arg := Arg{Pos: tok.Pos}
	switch tok.Type {
	case tokenIdent:
		arg.Kind = ArgIdent
		arg.Ident = tok.Literal
	case tokenInt:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return Arg{}, p.errorf("invalid integer %q", tok.Literal)
		}
		arg.Kind = ArgInt
		arg.Int = n
	case tokenFloat:
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return Arg{}, p.errorf("invalid float %q", tok.Literal)
		}
		arg.Kind = ArgFloat
		arg.Float = f
	case tokenString:
		arg.Kind = ArgString
		arg.Str = tok.Literal
	default:
		return Arg{}, p.errorf("expected argument, got %s", describe(tok))
	}
	p.next()
	return arg, nil
}

func describe(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenIllegal:
		return tok.Literal
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}
