package callexpr

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenFloat  TokenType = "FLOAT"
	tokenString TokenType = "STRING"

	tokenAssign TokenType = "="
	tokenComma  TokenType = ","
	tokenDot    TokenType = "."
	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"
)

// Position is a 1-based line/column location.
type Position struct {
	Line   int
	Column int
}

// Token is a lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
