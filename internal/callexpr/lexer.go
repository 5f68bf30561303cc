package callexpr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := Position{Line: l.line, Column: l.column}
	switch {
	case l.ch == 0:
		return Token{Type: tokenEOF, Pos: Position{Line: l.line, Column: l.column + 1}}
	case l.ch == '=':
		l.readRune()
		return Token{Type: tokenAssign, Literal: "=", Pos: pos}
	case l.ch == ',':
		l.readRune()
		return Token{Type: tokenComma, Literal: ",", Pos: pos}
	case l.ch == '.':
		l.readRune()
		return Token{Type: tokenDot, Literal: ".", Pos: pos}
	case l.ch == '(':
		l.readRune()
		return Token{Type: tokenLParen, Literal: "(", Pos: pos}
	case l.ch == ')':
		l.readRune()
		return Token{Type: tokenRParen, Literal: ")", Pos: pos}
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == 'b' && l.peekRune() == '"':
		// b"..." spells a bytes literal; the prefix is cosmetic.
		l.readRune()
		return l.readString(pos)
	case isLetter(l.ch):
		return Token{Type: tokenIdent, Literal: l.readIdentifier(), Pos: pos}
	case isDigit(l.ch) || ((l.ch == '-' || l.ch == '+') && (isDigit(l.peekRune()) || l.peekRune() == '.')):
		return l.readNumber(pos)
	default:
		lit := string(l.ch)
		l.readRune()
		return Token{Type: tokenIllegal, Literal: lit, Pos: pos}
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		for unicode.IsSpace(l.ch) {
			l.readRune()
		}
		if l.ch != '#' {
			return
		}
		for l.ch != '\n' && l.ch != 0 {
			l.readRune()
		}
	}
}

func (l *lexer) readIdentifier() string {
	start := l.offset - l.width
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readRune()
	}
	return l.input[start : l.offset-l.width]
}

func (l *lexer) readNumber(pos Position) Token {
	start := l.offset - l.width
	if l.ch == '-' || l.ch == '+' {
		l.readRune()
	}
	tokType := tokenInt
	for isDigit(l.ch) {
		l.readRune()
	}
	if l.ch == '.' {
		tokType = tokenFloat
		l.readRune()
		for isDigit(l.ch) {
			l.readRune()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		tokType = tokenFloat
		l.readRune()
		if l.ch == '-' || l.ch == '+' {
			l.readRune()
		}
		for isDigit(l.ch) {
			l.readRune()
		}
	}
	end := l.offset - l.width
	return Token{Type: tokType, Literal: l.input[start:end], Pos: pos}
}

func (l *lexer) readString(pos Position) Token {
	start := l.offset - l.width
	l.readRune()
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return Token{Type: tokenIllegal, Literal: "unterminated string", Pos: pos}
		}
		if l.ch == '\\' {
			l.readRune()
		}
		l.readRune()
	}
	l.readRune()
	end := l.offset - l.width
	unquoted, err := strconv.Unquote(l.input[start:end])
	if err != nil {
		return Token{Type: tokenIllegal, Literal: "invalid string literal " + strings.TrimSpace(l.input[start:end]), Pos: pos}
	}
	return Token{Type: tokenString, Literal: unquoted, Pos: pos}
}

func isLetter(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
