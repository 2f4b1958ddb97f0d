package interpreter

import "fmt"

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	UndefinedSymbol ErrorKind = iota
	InvalidArguments
	TypeMismatch
	DivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedSymbol:
		return "undefined symbol"
	case InvalidArguments:
		return "invalid arguments"
	case TypeMismatch:
		return "type mismatch"
	case DivisionByZero:
		return "division by zero"
	default:
		return fmt.Sprintf("unknown_eval_error_%d", int(k))
	}
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrUndefinedSymbol  = &EvalError{Kind: UndefinedSymbol}
	ErrInvalidArguments = &EvalError{Kind: InvalidArguments}
	ErrTypeMismatch     = &EvalError{Kind: TypeMismatch}
	ErrDivisionByZero   = &EvalError{Kind: DivisionByZero}
)

// EvalError reports why an evaluation failed. Context is the symbol name for
// UndefinedSymbol and a short description otherwise.
type EvalError struct {
	Kind    ErrorKind
	Context string
}

func (e *EvalError) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Context
}

func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func undefinedSymbol(name string) error {
	return &EvalError{Kind: UndefinedSymbol, Context: name}
}

func invalidArguments(format string, args ...any) error {
	return &EvalError{Kind: InvalidArguments, Context: fmt.Sprintf(format, args...)}
}

func typeMismatch(format string, args ...any) error {
	return &EvalError{Kind: TypeMismatch, Context: fmt.Sprintf(format, args...)}
}

func divisionByZero() error {
	return &EvalError{Kind: DivisionByZero}
}
