package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBool
	KindSymbol
	KindList
	KindSpecialForm
	KindBinaryOp
	KindBinaryPred
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindSpecialForm:
		return "special_form"
	case KindBinaryOp:
		return "binary_op"
	case KindBinaryPred:
		return "binary_pred"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// SymbolValue is a bare name; it evaluates by environment lookup.
type SymbolValue struct {
	Name string
}

func (v SymbolValue) Kind() Kind { return KindSymbol }

//-----------------------------------------------------------------------------
// Compound data
//-----------------------------------------------------------------------------

// ListValue wraps a shared persistent list.
type ListValue struct {
	List *List
}

func (v ListValue) Kind() Kind { return KindList }

// Elements returns the wrapped list, treating a nil list as empty.
func (v ListValue) Elements() *List {
	if v.List == nil {
		return EmptyList()
	}
	return v.List
}

//-----------------------------------------------------------------------------
// Built-in operators as first-class values
//-----------------------------------------------------------------------------

type SpecialFormValue struct {
	Form SpecialForm
}

func (v SpecialFormValue) Kind() Kind { return KindSpecialForm }

type BinaryOpValue struct {
	Op BinaryOp
}

func (v BinaryOpValue) Kind() Kind { return KindBinaryOp }

type BinaryPredValue struct {
	Pred BinaryPred
}

func (v BinaryPredValue) Kind() Kind { return KindBinaryPred }

// Convenience constructors.

func Str(s string) StringValue { return StringValue{Val: s} }
func Int(n int64) IntegerValue { return IntegerValue{Val: n} }
func Flt(f float64) FloatValue { return FloatValue{Val: f} }
func Bool(b bool) BoolValue { return BoolValue{Val: b} }
func Sym(name string) SymbolValue { return SymbolValue{Name: name} }
func ListOf(vals ...Value) ListValue { return ListValue{List: NewList(vals...)} }
