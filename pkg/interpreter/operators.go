package interpreter

import (
	"math"

	"lisp/interpreter-go/pkg/runtime"
)

func applyBinaryOp(op runtime.BinaryOp, left, right runtime.Value) (runtime.Value, error) {
	if op == runtime.OpConcat {
		ls, lok := left.(runtime.StringValue)
		rs, rok := right.(runtime.StringValue)
		if !lok || !rok {
			return nil, typeMismatch("%s expects two strings, got %s and %s", op, describe(left), describe(right))
		}
		return runtime.StringValue{Val: ls.Val + rs.Val}, nil
	}

	li, lInt := left.(runtime.IntegerValue)
	ri, rInt := right.(runtime.IntegerValue)
	if lInt && rInt {
		return applyIntegerOp(op, li.Val, ri.Val)
	}

	lf, lok := arithmeticOperand(left)
	rf, rok := arithmeticOperand(right)
	if !lok || !rok {
		return nil, typeMismatch("%s expects numbers, got %s and %s", op, describe(left), describe(right))
	}
	return applyFloatOp(op, lf, rf)
}

// Integer arithmetic wraps on overflow.
func applyIntegerOp(op runtime.BinaryOp, l, r int64) (runtime.Value, error) {
	switch op {
	case runtime.OpAdd:
		return runtime.IntegerValue{Val: l + r}, nil
	case runtime.OpSub:
		return runtime.IntegerValue{Val: l - r}, nil
	case runtime.OpMul:
		return runtime.IntegerValue{Val: l * r}, nil
	case runtime.OpDiv:
		if r == 0 {
			return nil, divisionByZero()
		}
		return runtime.IntegerValue{Val: l / r}, nil
	case runtime.OpMod:
		if r == 0 {
			return nil, divisionByZero()
		}
		return runtime.IntegerValue{Val: l % r}, nil
	default:
		return nil, typeMismatch("%s is not an arithmetic operator", op)
	}
}

func applyFloatOp(op runtime.BinaryOp, l, r float64) (runtime.Value, error) {
	switch op {
	case runtime.OpAdd:
		return runtime.FloatValue{Val: l + r}, nil
	case runtime.OpSub:
		return runtime.FloatValue{Val: l - r}, nil
	case runtime.OpMul:
		return runtime.FloatValue{Val: l * r}, nil
	case runtime.OpDiv:
		if r == 0 {
			return nil, divisionByZero()
		}
		return runtime.FloatValue{Val: l / r}, nil
	case runtime.OpMod:
		if r == 0 {
			return nil, divisionByZero()
		}
		return runtime.FloatValue{Val: math.Mod(l, r)}, nil
	default:
		return nil, typeMismatch("%s is not an arithmetic operator", op)
	}
}

func arithmeticOperand(val runtime.Value) (float64, bool) {
	switch v := val.(type) {
	case runtime.IntegerValue:
		return float64(v.Val), true
	case runtime.FloatValue:
		return v.Val, true
	default:
		return 0, false
	}
}

// comparableOperand is arithmeticOperand plus bools as 1 and 0.
func comparableOperand(val runtime.Value) (float64, bool) {
	if b, ok := val.(runtime.BoolValue); ok {
		if b.Val {
			return 1, true
		}
		return 0, true
	}
	return arithmeticOperand(val)
}

func applyBinaryPred(pred runtime.BinaryPred, left, right runtime.Value) (bool, error) {
	ls, lStr := left.(runtime.StringValue)
	rs, rStr := right.(runtime.StringValue)
	if lStr && rStr {
		switch pred {
		case runtime.PredEQ:
			return ls.Val == rs.Val, nil
		case runtime.PredNOEQ:
			return ls.Val != rs.Val, nil
		default:
			return false, typeMismatch("%s cannot compare strings", pred)
		}
	}

	l, lok := comparableOperand(left)
	r, rok := comparableOperand(right)
	if !lok || !rok {
		return false, typeMismatch("%s cannot compare %s and %s", pred, describe(left), describe(right))
	}
	switch pred {
	case runtime.PredGT:
		return l > r, nil
	case runtime.PredGTE:
		return l >= r, nil
	case runtime.PredLT:
		return l < r, nil
	case runtime.PredLTE:
		return l <= r, nil
	case runtime.PredEQ:
		return l == r, nil
	case runtime.PredNOEQ:
		return l != r, nil
	default:
		return false, typeMismatch("unknown predicate %s", pred)
	}
}
