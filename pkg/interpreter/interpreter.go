package interpreter

import (
	"context"
	"io"
	"log/slog"
	"os"

	"lisp/interpreter-go/pkg/runtime"
)

// Interpreter reduces value trees against a single mutable environment.
type Interpreter struct {
	env    *runtime.Environment
	out    io.Writer
	logger *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the sink used by print. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger sets the logger for evaluation traces. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New returns an interpreter with an empty environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:    runtime.NewEnvironment(),
		out:    os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Environment returns the interpreter's symbol table.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Eval reduces a value. Scalars and operator tags evaluate to themselves,
// symbols are looked up, and lists are applied.
func (i *Interpreter) Eval(val runtime.Value) (runtime.Value, error) {
	switch v := val.(type) {
	case runtime.ListValue:
		return i.evaluateList(v.Elements())
	case runtime.SymbolValue:
		return i.evaluateSymbol(v.Name)
	case nil:
		return nil, invalidArguments("cannot evaluate a missing value")
	default:
		return val, nil
	}
}

func (i *Interpreter) evaluateSymbol(name string) (runtime.Value, error) {
	if v, ok := i.env.Lookup(name); ok {
		return v, nil
	}
	return nil, undefinedSymbol(name)
}

func (i *Interpreter) evaluateList(list *runtime.List) (runtime.Value, error) {
	if list.IsEmpty() {
		return nil, invalidArguments("cannot evaluate an empty list")
	}
	elems := list.Values()
	return i.apply(elems[0], elems[1:])
}

// apply dispatches on the operator position. A nested list in that position is
// evaluated first and its result stands in for the head.
func (i *Interpreter) apply(head runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if i.logger.Enabled(context.Background(), slog.LevelDebug) {
		i.logger.Debug("apply", slog.String("head", runtime.Format(head)), slog.Int("args", len(args)))
	}

	switch h := head.(type) {
	case runtime.SpecialFormValue:
		return i.evaluateSpecialForm(h.Form, args)
	case runtime.BinaryOpValue:
		left, right, err := i.evaluateBinaryOperands(h.Op.String(), args)
		if err != nil {
			return nil, err
		}
		return applyBinaryOp(h.Op, left, right)
	case runtime.BinaryPredValue:
		left, right, err := i.evaluateBinaryOperands(h.Pred.String(), args)
		if err != nil {
			return nil, err
		}
		result, err := applyBinaryPred(h.Pred, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: result}, nil
	case runtime.SymbolValue:
		return nil, typeMismatch("cannot apply symbol %s as an operator", h.Name)
	case runtime.ListValue:
		resolved, err := i.evaluateList(h.Elements())
		if err != nil {
			return nil, err
		}
		return i.apply(resolved, args)
	case nil:
		return nil, invalidArguments("missing operator")
	default:
		return nil, typeMismatch("%s %s cannot be applied as an operator", head.Kind(), runtime.Format(head))
	}
}

func (i *Interpreter) evaluateBinaryOperands(name string, args []runtime.Value) (runtime.Value, runtime.Value, error) {
	if len(args) != 2 {
		return nil, nil, invalidArguments("%s requires exactly two arguments, got %d", name, len(args))
	}
	left, err := i.evaluateOperand(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := i.evaluateOperand(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// evaluateOperand evaluates an operand position. A literal () is the empty
// list as data rather than an application.
func (i *Interpreter) evaluateOperand(arg runtime.Value) (runtime.Value, error) {
	if lv, ok := arg.(runtime.ListValue); ok && lv.Elements().IsEmpty() {
		return runtime.ListValue{List: runtime.EmptyList()}, nil
	}
	return i.Eval(arg)
}
