package runtime

import (
	"strconv"
	"strings"
)

// Format renders a value in its display form: strings single-quoted, lists as
// parenthesized space-separated elements, operator tags by their spelling.
func Format(val Value) string {
	var b strings.Builder
	writeValue(&b, val)
	return b.String()
}

func writeValue(b *strings.Builder, val Value) {
	switch v := val.(type) {
	case StringValue:
		b.WriteByte('\'')
		b.WriteString(v.Val)
		b.WriteByte('\'')
	case IntegerValue:
		b.WriteString(strconv.FormatInt(v.Val, 10))
	case FloatValue:
		b.WriteString(strconv.FormatFloat(v.Val, 'f', -1, 64))
	case BoolValue:
		b.WriteString(strconv.FormatBool(v.Val))
	case SymbolValue:
		b.WriteString(v.Name)
	case ListValue:
		b.WriteByte('(')
		for idx, elem := range v.Elements().Values() {
			if idx > 0 {
				b.WriteByte(' ')
			}
			writeValue(b, elem)
		}
		b.WriteByte(')')
	case SpecialFormValue:
		b.WriteString(v.Form.String())
	case BinaryOpValue:
		b.WriteString(v.Op.String())
	case BinaryPredValue:
		b.WriteString(v.Pred.String())
	case nil:
		b.WriteString("nil")
	default:
		b.WriteString("[" + val.Kind().String() + "]")
	}
}
