package interpreter

import (
	"errors"
	"math"
	"testing"

	"lisp/interpreter-go/pkg/runtime"
)

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want runtime.Value
	}{
		{"(+ 1 2)", runtime.Int(3)},
		{"(- 1 5)", runtime.Int(-4)},
		{"(* 6 7)", runtime.Int(42)},
		{"(/ 7 2)", runtime.Int(3)},
		{"(/ -7 2)", runtime.Int(-3)},
		{"(% 7 3)", runtime.Int(1)},
		{"(% -7 3)", runtime.Int(-1)},
		{"(+ 1 2.5)", runtime.Flt(3.5)},
		{"(* 2.0 3)", runtime.Flt(6)},
		{"(/ 7.0 2)", runtime.Flt(3.5)},
		{"(% 7.5 2)", runtime.Flt(1.5)},
		{"(+ (* 2 3) (- 10 4))", runtime.Int(12)},
		{"(++ \"foo\" \"bar\")", runtime.Str("foobar")},
	}
	for _, tc := range cases {
		interp := New()
		if got := mustEval(t, interp, tc.src); got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.src, tc.want, got)
		}
	}
}

func TestIntegerDivisionTruncates(t *testing.T) {
	pairs := [][2]int64{{7, 2}, {-7, 2}, {7, -2}, {-7, -2}, {0, 5}, {math.MaxInt64, 3}}
	for _, p := range pairs {
		got, err := applyBinaryOp(runtime.OpDiv, runtime.Int(p[0]), runtime.Int(p[1]))
		if err != nil {
			t.Fatalf("%d / %d: unexpected error: %v", p[0], p[1], err)
		}
		if got != runtime.Int(p[0]/p[1]) {
			t.Fatalf("%d / %d: expected %d, got %#v", p[0], p[1], p[0]/p[1], got)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	cases := []string{"(/ 5 0)", "(% 5 0)", "(/ 1.5 0.0)", "(/ 1 0.0)", "(/ 2.5 0)", "(% 2.5 0.0)"}
	for _, src := range cases {
		interp := New()
		_, err := evalSource(t, interp, src)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("%s: expected division by zero, got %v", src, err)
		}
		if err.Error() != "division by zero" {
			t.Fatalf("%s: unexpected message %q", src, err.Error())
		}
	}
}

func TestArithmeticTypeMismatch(t *testing.T) {
	cases := []string{
		"(+ 1 \"a\")",
		"(- true 1)",
		"(* (quote (1)) 2)",
		"(++ \"a\" 1)",
		"(++ 1 2)",
		"(/ \"a\" \"b\")",
	}
	for _, src := range cases {
		interp := New()
		_, err := evalSource(t, interp, src)
		expectKind(t, err, TypeMismatch)
	}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"(== \"a\" \"a\")", true},
		{"(!= \"a\" \"b\")", true},
		{"(== \"a\" \"b\")", false},
		{"(== 1 1.0)", true},
		{"(!= 1 1.0)", false},
		{"(> 2 1)", true},
		{"(>= 2 2.0)", true},
		{"(< 1.5 1)", false},
		{"(<= 1 1)", true},
		{"(== true 1)", true},
		{"(> true false)", true},
		{"(< false 0.5)", true},
	}
	for _, tc := range cases {
		interp := New()
		if got := mustEval(t, interp, tc.src); got != runtime.Bool(tc.want) {
			t.Fatalf("%s: expected %v, got %#v", tc.src, tc.want, got)
		}
	}
}

func TestPredicateTypeMismatch(t *testing.T) {
	cases := []string{
		"(< \"a\" \"b\")",
		"(== \"a\" 1)",
		"(> (quote (1)) 0)",
		"(== (quote x) 1)",
	}
	for _, src := range cases {
		interp := New()
		_, err := evalSource(t, interp, src)
		expectKind(t, err, TypeMismatch)
	}
}
