package parser

import (
	"lisp/interpreter-go/pkg/lexer"
	"lisp/interpreter-go/pkg/runtime"
)

// Parse builds the value tree for a token stream. The result holds one element
// per top-level form; every parenthesized group becomes a nested list value.
//
// Parse assumes parentheses are balanced; callers check that beforehand. A
// stray closing paren ends the current level and an unclosed group ends at the
// end of the stream.
func Parse(tokens []lexer.Token) *runtime.List {
	p := &parser{tokens: tokens}
	return p.parseList()
}

// ResolveSymbol classifies a bare word: predicates first, then special forms,
// then binary operators, falling back to a plain symbol.
func ResolveSymbol(text string) runtime.Value {
	if pred, ok := runtime.LookupBinaryPred(text); ok {
		return runtime.BinaryPredValue{Pred: pred}
	}
	if form, ok := runtime.LookupSpecialForm(text); ok {
		return runtime.SpecialFormValue{Form: form}
	}
	if op, ok := runtime.LookupBinaryOp(text); ok {
		return runtime.BinaryOpValue{Op: op}
	}
	return runtime.SymbolValue{Name: text}
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

// parseList consumes tokens up to the matching close paren (or the end of the
// stream). Elements are prepended as they are read, so the level is reversed
// once complete.
func (p *parser) parseList() *runtime.List {
	acc := runtime.EmptyList()
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++
		switch tok.Kind {
		case lexer.TokenLParen:
			acc = runtime.Cons(runtime.ListValue{List: p.parseList()}, acc)
		case lexer.TokenRParen:
			return acc.Reverse()
		default:
			if val, ok := tokenValue(tok); ok {
				acc = runtime.Cons(val, acc)
			}
		}
	}
	return acc.Reverse()
}

func tokenValue(tok lexer.Token) (runtime.Value, bool) {
	switch tok.Kind {
	case lexer.TokenInteger:
		return runtime.IntegerValue{Val: tok.Int}, true
	case lexer.TokenFloat:
		return runtime.FloatValue{Val: tok.Float}, true
	case lexer.TokenString:
		return runtime.StringValue{Val: tok.Text}, true
	case lexer.TokenSymbol:
		return ResolveSymbol(tok.Text), true
	default:
		return nil, false
	}
}
