package parser_test

import (
	"reflect"
	"testing"

	"lisp/interpreter-go/pkg/lexer"
	"lisp/interpreter-go/pkg/parser"
	"lisp/interpreter-go/pkg/runtime"
)

func mustParse(t *testing.T, src string) *runtime.List {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return parser.Parse(tokens)
}

func TestParseRoundTripPreservesOrderAndNesting(t *testing.T) {
	cases := []string{
		"(+ 1 (* 2 3))",
		"(def x (cons 1 (quote (2 3))))",
		"((get f) \"a\" 2.5)",
		"(print (== 1 1.5) ())",
	}
	for _, src := range cases {
		top := mustParse(t, src)
		if top.Len() != 1 {
			t.Fatalf("%s: expected one top-level form, got %d", src, top.Len())
		}
		form, _ := top.Head()
		rendered := runtime.Format(form)
		want := src
		if src == "((get f) \"a\" 2.5)" {
			want = "((get f) 'a' 2.5)"
		}
		if rendered != want {
			t.Fatalf("expected %q, got %q", want, rendered)
		}
	}
}

func TestParseBuildsNestedLists(t *testing.T) {
	top := mustParse(t, "(+ 1 (* 2 3))")
	form, _ := top.Head()
	outer, ok := form.(runtime.ListValue)
	if !ok {
		t.Fatalf("expected list value, got %T", form)
	}
	elems := outer.List.Values()
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}
	if !reflect.DeepEqual(elems[0], runtime.BinaryOpValue{Op: runtime.OpAdd}) {
		t.Fatalf("expected + operator, got %#v", elems[0])
	}
	if elems[1] != runtime.Int(1) {
		t.Fatalf("expected 1, got %#v", elems[1])
	}
	inner, ok := elems[2].(runtime.ListValue)
	if !ok || inner.List.Len() != 3 {
		t.Fatalf("expected nested 3-element list, got %#v", elems[2])
	}
}

func TestParseMultipleTopLevelForms(t *testing.T) {
	top := mustParse(t, "1 \"two\" (x) ; note\n three")
	got := runtime.Format(runtime.ListValue{List: top})
	if got != "(1 'two' (x) three)" {
		t.Fatalf("unexpected top level %q", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if top := parser.Parse(nil); !top.IsEmpty() {
		t.Fatalf("expected empty list for no tokens")
	}
	if top := mustParse(t, "; only a comment"); !top.IsEmpty() {
		t.Fatalf("expected comments to be dropped")
	}
}

func TestResolveSymbolPrecedence(t *testing.T) {
	cases := []struct {
		text string
		want runtime.Value
	}{
		{"==", runtime.BinaryPredValue{Pred: runtime.PredEQ}},
		{"<=", runtime.BinaryPredValue{Pred: runtime.PredLTE}},
		{"def", runtime.SpecialFormValue{Form: runtime.FormDef}},
		{"eval-in", runtime.SpecialFormValue{Form: runtime.FormEvalIn}},
		{"do", runtime.SpecialFormValue{Form: runtime.FormDo}},
		{"-", runtime.BinaryOpValue{Op: runtime.OpSub}},
		{"++", runtime.BinaryOpValue{Op: runtime.OpConcat}},
		{"%", runtime.BinaryOpValue{Op: runtime.OpMod}},
		{"definitely", runtime.SymbolValue{Name: "definitely"}},
		{"'quoted", runtime.SymbolValue{Name: "'quoted"}},
	}
	for _, tc := range cases {
		if got := parser.ResolveSymbol(tc.text); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %#v, got %#v", tc.text, tc.want, got)
		}
	}
}

func TestParseStopsAtStrayCloser(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: lexer.TokenInteger, Int: 1},
		{Kind: lexer.TokenRParen},
		{Kind: lexer.TokenInteger, Int: 2},
	}
	top := parser.Parse(tokens)
	if got := runtime.Format(runtime.ListValue{List: top}); got != "(1)" {
		t.Fatalf("expected parsing to stop at the stray closer, got %s", got)
	}
}
