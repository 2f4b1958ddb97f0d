package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// symbolChars are the non-alphanumeric characters allowed in bare words.
const symbolChars = "'=+!-*/><%_"

// Lexer turns source text into a lazy sequence of tokens. It tracks line and
// column state and the running parenthesis depth.
type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
	depth int
	done  bool
	err   error
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{
		input: []rune(src),
		line:  1,
		col:   1,
	}
}

// Position reports the line and column of the next unread character.
func (l *Lexer) Position() (line, column int) {
	return l.line, l.col
}

// Depth reports the number of currently open parentheses.
func (l *Lexer) Depth() int {
	return l.depth
}

// NextToken returns the next token. ok is false once the input is exhausted.
// A lexical error is sticky: every later call reports it again.
func (l *Lexer) NextToken() (tok Token, ok bool, err error) {
	if l.err != nil {
		return Token{}, false, l.err
	}
	if l.done {
		return Token{}, false, nil
	}

	l.skipWhitespace()
	if l.pos >= len(l.input) {
		if l.depth > 0 {
			return l.fail(UnmatchedParen, 0, l.line, l.col)
		}
		l.done = true
		return Token{}, false, nil
	}

	line, col := l.line, l.col
	c := l.input[l.pos]
	switch {
	case c == '(':
		l.advance()
		l.depth++
		return Token{Kind: TokenLParen, Text: "(", Line: line, Column: col}, true, nil
	case c == ')':
		if l.depth == 0 {
			return l.fail(UnmatchedParen, c, line, col)
		}
		l.advance()
		l.depth--
		return Token{Kind: TokenRParen, Text: ")", Line: line, Column: col}, true, nil
	case c == '"':
		return l.readString(line, col)
	case c == ';':
		return l.readComment(line, col)
	case isDigit(c), (c == '+' || c == '-') && isDigit(l.peek(1)):
		return l.readNumber(line, col)
	case isSymbolStart(c):
		return l.readSymbol(line, col)
	default:
		return l.fail(UnexpectedChar, c, line, col)
	}
}

// Tokenize drains a lexer over src. On failure it returns the tokens produced
// before the error together with the error.
func Tokenize(src string) ([]Token, error) {
	lx := New(src)
	var tokens []Token
	for {
		tok, ok, err := lx.NextToken()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) fail(kind ErrorKind, c rune, line, col int) (Token, bool, error) {
	l.err = &Error{Kind: kind, Char: c, Line: line, Column: col}
	return Token{}, false, l.err
}

func (l *Lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.advance()
	}
}

func (l *Lexer) readNumber(line, col int) (Token, bool, error) {
	start := l.pos
	if c := l.input[l.pos]; c == '+' || c == '-' {
		l.advance()
	}
	seenDot := false
scan:
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case isDigit(c):
			l.advance()
		case c == '.':
			if seenDot {
				return l.fail(UnexpectedChar, c, l.line, l.col)
			}
			seenDot = true
			l.advance()
		case isDelimiter(c):
			break scan
		default:
			return l.fail(UnexpectedChar, c, l.line, l.col)
		}
	}

	text := string(l.input[start:l.pos])
	if seenDot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.fail(UnexpectedChar, l.input[start], line, col)
		}
		return Token{Kind: TokenFloat, Text: text, Float: f, Line: line, Column: col}, true, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return l.fail(UnexpectedChar, l.input[start], line, col)
	}
	return Token{Kind: TokenInteger, Text: text, Int: n, Line: line, Column: col}, true, nil
}

func (l *Lexer) readString(line, col int) (Token, bool, error) {
	l.advance()
	start := l.pos
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '"':
			text := string(l.input[start:l.pos])
			l.advance()
			return Token{Kind: TokenString, Text: text, Line: line, Column: col}, true, nil
		case '\n':
			return l.fail(UnexpectedEOF, 0, line, col)
		default:
			l.advance()
		}
	}
	return l.fail(UnexpectedEOF, 0, line, col)
}

func (l *Lexer) readComment(line, col int) (Token, bool, error) {
	l.advance()
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
	text := string(l.input[start:l.pos])
	return Token{Kind: TokenComment, Text: text, Line: line, Column: col}, true, nil
}

func (l *Lexer) readSymbol(line, col int) (Token, bool, error) {
	start := l.pos
	for l.pos < len(l.input) && isSymbolPart(l.input[l.pos]) {
		l.advance()
	}
	text := string(l.input[start:l.pos])
	return Token{Kind: TokenSymbol, Text: text, Line: line, Column: col}, true, nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isDelimiter(c rune) bool {
	return unicode.IsSpace(c) || c == '(' || c == ')' || c == ';' || c == '"'
}

func isSymbolStart(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(symbolChars, c)
}

func isSymbolPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || strings.ContainsRune(symbolChars, c)
}
