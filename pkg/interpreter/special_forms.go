package interpreter

import (
	"fmt"
	"log/slog"

	"lisp/interpreter-go/pkg/lexer"
	"lisp/interpreter-go/pkg/parser"
	"lisp/interpreter-go/pkg/runtime"
)

// evaluateSpecialForm runs a form against its unevaluated arguments.
func (i *Interpreter) evaluateSpecialForm(form runtime.SpecialForm, args []runtime.Value) (runtime.Value, error) {
	switch form {
	case runtime.FormDef:
		return i.evaluateDef(args)
	case runtime.FormSet:
		return i.evaluateSet(args)
	case runtime.FormGet:
		return i.evaluateGet(args)
	case runtime.FormQuote:
		return i.evaluateQuote(args)
	case runtime.FormTypeOf:
		return i.evaluateTypeOf(args)
	case runtime.FormCons:
		return i.evaluateCons(args)
	case runtime.FormCar:
		return i.evaluateCar(args)
	case runtime.FormCdr:
		return i.evaluateCdr(args)
	case runtime.FormCond:
		return i.evaluateCond(args)
	case runtime.FormPrint:
		return i.evaluatePrint(args)
	case runtime.FormRead:
		return i.evaluateRead(args)
	case runtime.FormEval:
		return i.evaluateEval(args)
	case runtime.FormDo:
		return i.evaluateDo(args)
	case runtime.FormEvalIn, runtime.FormLambda, runtime.FormMacro, runtime.FormMacroExpand:
		return nil, invalidArguments("%s is not supported", form)
	default:
		return nil, invalidArguments("unknown special form %s", form)
	}
}

func expectArity(form runtime.SpecialForm, args []runtime.Value, n int) error {
	if len(args) == n {
		return nil
	}
	noun := "arguments"
	if n == 1 {
		noun = "argument"
	}
	return invalidArguments("%s requires exactly %d %s, got %d", form, n, noun, len(args))
}

func expectSymbol(form runtime.SpecialForm, arg runtime.Value) (string, error) {
	sym, ok := arg.(runtime.SymbolValue)
	if !ok {
		return "", typeMismatch("%s expects a symbol, got %s", form, describe(arg))
	}
	return sym.Name, nil
}

func (i *Interpreter) evaluateDef(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormDef, args, 2); err != nil {
		return nil, err
	}
	name, err := expectSymbol(runtime.FormDef, args[0])
	if err != nil {
		return nil, err
	}
	val, err := i.evaluateOperand(args[1])
	if err != nil {
		return nil, err
	}
	i.env.Define(name, val)
	i.logger.Debug("define", slog.String("symbol", name), slog.String("kind", val.Kind().String()))
	return val, nil
}

func (i *Interpreter) evaluateSet(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormSet, args, 2); err != nil {
		return nil, err
	}
	name, err := expectSymbol(runtime.FormSet, args[0])
	if err != nil {
		return nil, err
	}
	val, err := i.evaluateOperand(args[1])
	if err != nil {
		return nil, err
	}
	if err := i.env.Assign(name, val); err != nil {
		return nil, undefinedSymbol(name)
	}
	i.logger.Debug("assign", slog.String("symbol", name), slog.String("kind", val.Kind().String()))
	return val, nil
}

func (i *Interpreter) evaluateGet(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormGet, args, 1); err != nil {
		return nil, err
	}
	name, err := expectSymbol(runtime.FormGet, args[0])
	if err != nil {
		return nil, err
	}
	return i.evaluateSymbol(name)
}

func (i *Interpreter) evaluateQuote(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormQuote, args, 1); err != nil {
		return nil, err
	}
	return args[0], nil
}

// evaluateEval reduces its argument to a value, then evaluates that value.
func (i *Interpreter) evaluateEval(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormEval, args, 1); err != nil {
		return nil, err
	}
	expr, err := i.evaluateOperand(args[0])
	if err != nil {
		return nil, err
	}
	return i.Eval(expr)
}

func (i *Interpreter) evaluatePrint(args []runtime.Value) (runtime.Value, error) {
	for _, arg := range args {
		val, err := i.evaluateOperand(arg)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.out, runtime.Format(val))
	}
	return runtime.BoolValue{Val: true}, nil
}

func (i *Interpreter) evaluateListOperand(form runtime.SpecialForm, arg runtime.Value) (*runtime.List, error) {
	val, err := i.evaluateOperand(arg)
	if err != nil {
		return nil, err
	}
	lv, ok := val.(runtime.ListValue)
	if !ok {
		return nil, typeMismatch("%s expects a list, got %s", form, describe(val))
	}
	list := lv.Elements()
	if list.IsEmpty() {
		return nil, invalidArguments("cannot take %s of an empty list", form)
	}
	return list, nil
}

func (i *Interpreter) evaluateCar(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormCar, args, 1); err != nil {
		return nil, err
	}
	list, err := i.evaluateListOperand(runtime.FormCar, args[0])
	if err != nil {
		return nil, err
	}
	head, _ := list.Head()
	return head, nil
}

func (i *Interpreter) evaluateCdr(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormCdr, args, 1); err != nil {
		return nil, err
	}
	list, err := i.evaluateListOperand(runtime.FormCdr, args[0])
	if err != nil {
		return nil, err
	}
	tail, _ := list.Tail()
	return runtime.ListValue{List: tail}, nil
}

// evaluateCons prepends the first value onto the second. A non-list second
// value is treated as a one-element list, so two scalars make a pair list.
func (i *Interpreter) evaluateCons(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormCons, args, 2); err != nil {
		return nil, err
	}
	head, err := i.evaluateOperand(args[0])
	if err != nil {
		return nil, err
	}
	rest, err := i.evaluateOperand(args[1])
	if err != nil {
		return nil, err
	}
	var tail *runtime.List
	if lv, ok := rest.(runtime.ListValue); ok {
		tail = lv.Elements()
	} else {
		tail = runtime.NewList(rest)
	}
	return runtime.ListValue{List: runtime.Cons(head, tail)}, nil
}

// evaluateDo evaluates every argument in order and yields the second one.
// Real sequencing semantics are not defined yet.
func (i *Interpreter) evaluateDo(args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, invalidArguments("do requires at least two arguments, got %d", len(args))
	}
	var picked runtime.Value
	for idx, arg := range args {
		val, err := i.evaluateOperand(arg)
		if err != nil {
			return nil, err
		}
		if idx == 1 {
			picked = val
		}
	}
	return picked, nil
}

func (i *Interpreter) evaluateTypeOf(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormTypeOf, args, 1); err != nil {
		return nil, err
	}
	val, err := i.evaluateOperand(args[0])
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: val.Kind().String()}, nil
}

// evaluateCond picks the first (test expr) clause whose test is true.
func (i *Interpreter) evaluateCond(args []runtime.Value) (runtime.Value, error) {
	for idx, arg := range args {
		clause, ok := arg.(runtime.ListValue)
		if !ok || clause.Elements().Len() != 2 {
			return nil, invalidArguments("cond clause %d must be a (test expr) list", idx+1)
		}
		parts := clause.Elements().Values()
		test, err := i.evaluateOperand(parts[0])
		if err != nil {
			return nil, err
		}
		b, ok := test.(runtime.BoolValue)
		if !ok {
			return nil, typeMismatch("cond test must be bool, got %s", describe(test))
		}
		if b.Val {
			return i.evaluateOperand(parts[1])
		}
	}
	return runtime.BoolValue{Val: false}, nil
}

// evaluateRead parses a string into data without evaluating it. A single
// form is returned as-is; several forms come back as a list.
func (i *Interpreter) evaluateRead(args []runtime.Value) (runtime.Value, error) {
	if err := expectArity(runtime.FormRead, args, 1); err != nil {
		return nil, err
	}
	val, err := i.evaluateOperand(args[0])
	if err != nil {
		return nil, err
	}
	src, ok := val.(runtime.StringValue)
	if !ok {
		return nil, typeMismatch("read expects a string, got %s", describe(val))
	}
	tokens, err := lexer.Tokenize(src.Val)
	if err != nil {
		return nil, invalidArguments("read: %v", err)
	}
	forms := parser.Parse(tokens)
	if forms.Len() == 1 {
		head, _ := forms.Head()
		return head, nil
	}
	return runtime.ListValue{List: forms}, nil
}

func describe(val runtime.Value) string {
	if val == nil {
		return "nothing"
	}
	return val.Kind().String() + " " + runtime.Format(val)
}
