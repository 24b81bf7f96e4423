package interp

import "strconv"

// IsTruthy implements the language's truthiness rule: nil and false are
// falsy, everything else (including 0 and "") is truthy.
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsEqual is structural equality for the value types the interpreter
// produces (nil, bool, float64, string) and reference equality for
// everything else (functions, classes, instances).
func IsEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// Stringify renders a runtime value the way `print` and the REPL do.
func Stringify(v any) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	case *Function:
		return "<fn " + val.decl.Name.Lexeme + ">"
	case *Class:
		return "<class " + val.Name + ">"
	case *Instance:
		return "<" + val.class.Name + " instance>"
	case *NativeFunction:
		return "<native fn>"
	default:
		return "<value>"
	}
}
