package calculator

import "fmt"

// Operator is one of the four supported binary operators
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// ParseOperator converts an operator token to an Operator.
// The display glyphs × and ÷ are accepted alongside * and /.
func ParseOperator(token string) (Operator, error) {
	switch token {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSubtract, nil
	case "*", "×":
		return OpMultiply, nil
	case "/", "÷":
		return OpDivide, nil
	default:
		return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperator, token)
	}
}

// Valid reports whether the operator is one of the four supported operators
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// Symbol returns the ASCII token for the operator, or "" for OpNone
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return ""
	}
}

// Glyph returns the symbol shown on the widget's button for the operator
func (o Operator) Glyph() string {
	switch o {
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return o.Symbol()
	}
}

// String implements fmt.Stringer
func (o Operator) String() string {
	if !o.Valid() {
		return "none"
	}
	return o.Symbol()
}

// apply evaluates a op b. ok is false for division by zero and for OpNone.
func (o Operator) apply(a, b float64) (result float64, ok bool) {
	switch o {
	case OpAdd:
		return a + b, true
	case OpSubtract:
		return a - b, true
	case OpMultiply:
		return a * b, true
	case OpDivide:
		if b == 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}
