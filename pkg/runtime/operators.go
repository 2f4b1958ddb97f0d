package runtime

import "fmt"

// BinaryOp enumerates the two-operand arithmetic and string operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpConcat
)

// BinaryOps lists every operator tag.
var BinaryOps = []BinaryOp{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpConcat}

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpConcat:
		return "++"
	default:
		return fmt.Sprintf("unknown_op_%d", int(op))
	}
}

// LookupBinaryOp maps an operator spelling to its tag.
func LookupBinaryOp(text string) (BinaryOp, bool) {
	switch text {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	case "%":
		return OpMod, true
	case "++":
		return OpConcat, true
	default:
		return 0, false
	}
}

// BinaryPred enumerates the two-operand comparison predicates.
type BinaryPred int

const (
	PredGT BinaryPred = iota
	PredGTE
	PredLT
	PredLTE
	PredEQ
	PredNOEQ
)

// BinaryPreds lists every predicate tag.
var BinaryPreds = []BinaryPred{PredGT, PredGTE, PredLT, PredLTE, PredEQ, PredNOEQ}

func (p BinaryPred) String() string {
	switch p {
	case PredGT:
		return ">"
	case PredGTE:
		return ">="
	case PredLT:
		return "<"
	case PredLTE:
		return "<="
	case PredEQ:
		return "=="
	case PredNOEQ:
		return "!="
	default:
		return fmt.Sprintf("unknown_pred_%d", int(p))
	}
}

// LookupBinaryPred maps a predicate spelling to its tag.
func LookupBinaryPred(text string) (BinaryPred, bool) {
	switch text {
	case ">":
		return PredGT, true
	case ">=":
		return PredGTE, true
	case "<":
		return PredLT, true
	case "<=":
		return PredLTE, true
	case "==":
		return PredEQ, true
	case "!=":
		return PredNOEQ, true
	default:
		return 0, false
	}
}

// SpecialForm enumerates operators that control evaluation of their own operands.
type SpecialForm int

const (
	FormDef SpecialForm = iota
	FormSet
	FormGet
	FormQuote
	FormTypeOf
	FormCons
	FormCar
	FormCdr
	FormCond
	FormPrint
	FormRead
	FormEval
	FormEvalIn
	FormLambda
	FormMacro
	FormMacroExpand
	FormDo
)

// SpecialForms lists every special form tag.
var SpecialForms = []SpecialForm{
	FormDef, FormSet, FormGet, FormQuote, FormTypeOf, FormCons, FormCar, FormCdr, FormCond,
	FormPrint, FormRead, FormEval, FormEvalIn, FormLambda, FormMacro, FormMacroExpand, FormDo,
}

func (f SpecialForm) String() string {
	switch f {
	case FormDef:
		return "def"
	case FormSet:
		return "set!"
	case FormGet:
		return "get"
	case FormQuote:
		return "quote"
	case FormTypeOf:
		return "typeof"
	case FormCons:
		return "cons"
	case FormCar:
		return "car"
	case FormCdr:
		return "cdr"
	case FormCond:
		return "cond"
	case FormPrint:
		return "print"
	case FormRead:
		return "read"
	case FormEval:
		return "eval"
	case FormEvalIn:
		return "eval-in"
	case FormLambda:
		return "lambda"
	case FormMacro:
		return "macro"
	case FormMacroExpand:
		return "macroexpand"
	case FormDo:
		return "do"
	default:
		return fmt.Sprintf("unknown_form_%d", int(f))
	}
}

// LookupSpecialForm maps a form spelling to its tag.
func LookupSpecialForm(text string) (SpecialForm, bool) {
	switch text {
	case "def":
		return FormDef, true
	case "set!":
		return FormSet, true
	case "get":
		return FormGet, true
	case "quote":
		return FormQuote, true
	case "typeof":
		return FormTypeOf, true
	case "cons":
		return FormCons, true
	case "car":
		return FormCar, true
	case "cdr":
		return FormCdr, true
	case "cond":
		return FormCond, true
	case "print":
		return FormPrint, true
	case "read":
		return FormRead, true
	case "eval":
		return FormEval, true
	case "eval-in":
		return FormEvalIn, true
	case "lambda":
		return FormLambda, true
	case "macro":
		return FormMacro, true
	case "macroexpand":
		return FormMacroExpand, true
	case "do":
		return FormDo, true
	default:
		return 0, false
	}
}
