package lexer

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies lexical failures.
type ErrorKind int

const (
	UnmatchedParen ErrorKind = iota
	UnexpectedChar
	UnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case UnmatchedParen:
		return "unmatched paren"
	case UnexpectedChar:
		return "unexpected character"
	case UnexpectedEOF:
		return "unexpected end of input"
	default:
		return fmt.Sprintf("unknown_lex_error_%d", int(k))
	}
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrUnmatchedParen = &Error{Kind: UnmatchedParen}
	ErrUnexpectedChar = &Error{Kind: UnexpectedChar}
	ErrUnexpectedEOF  = &Error{Kind: UnexpectedEOF}
)

// Error is a positioned lexical error. Char is set for UnexpectedChar.
type Error struct {
	Kind   ErrorKind
	Char   rune
	Line   int
	Column int
}

func (e *Error) Error() string {
	if e.Kind == UnexpectedChar {
		return fmt.Sprintf("%s %s at %d:%d", e.Kind, strconv.QuoteRune(e.Char), e.Line, e.Column)
	}
	return fmt.Sprintf("%s at %d:%d", e.Kind, e.Line, e.Column)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
