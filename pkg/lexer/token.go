package lexer

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	TokenLParen TokenKind = iota
	TokenRParen
	TokenInteger
	TokenFloat
	TokenSymbol
	TokenString
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenLParen:
		return "lparen"
	case TokenRParen:
		return "rparen"
	case TokenInteger:
		return "integer"
	case TokenFloat:
		return "float"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	case TokenComment:
		return "comment"
	default:
		return fmt.Sprintf("unknown_token_%d", int(k))
	}
}

// Token is a positioned lexical unit. Text holds the symbol name, the string
// literal contents, or the comment body; Int and Float hold numeric payloads.
type Token struct {
	Kind   TokenKind
	Text   string
	Int    int64
	Float  float64
	Line   int
	Column int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenInteger:
		return strconv.FormatInt(t.Int, 10)
	case TokenFloat:
		return strconv.FormatFloat(t.Float, 'f', -1, 64)
	case TokenString:
		return strconv.Quote(t.Text)
	case TokenComment:
		return ";" + t.Text
	default:
		return t.Text
	}
}

// Pos renders the token position as line:column.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
