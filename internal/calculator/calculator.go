// Package calculator implements the state machine behind a four-function
// calculator: digit entry, operator selection, deletion, clearing and
// computation, plus the policy that turns results into display strings.
package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const initialOperand = "0"

// State is a snapshot of the calculator's four fields
type State struct {
	CurrentOperand    string
	PreviousOperand   string
	Operation         Operator
	WaitingForOperand bool
}

// InitialState returns the state of a freshly created calculator
func InitialState() State {
	return State{CurrentOperand: initialOperand}
}

// IsError reports whether the display shows the error token
func (s State) IsError() bool {
	return s.CurrentOperand == ErrorDisplay
}

// Calculator is a single calculator instance.
// It is not safe for concurrent use; callers serialize key presses.
type Calculator struct {
	state State
}

// New creates a calculator in its initial state
func New() *Calculator {
	return &Calculator{state: InitialState()}
}

// Snapshot returns a copy of the current state
func (c *Calculator) Snapshot() State {
	return c.state
}

// CurrentOperand returns the operand being entered or the last result
func (c *Calculator) CurrentOperand() string {
	return c.state.CurrentOperand
}

// PreviousOperand returns the staged operand, or "" if none is staged
func (c *Calculator) PreviousOperand() string {
	return c.state.PreviousOperand
}

// Operation returns the staged operator, or OpNone
func (c *Calculator) Operation() Operator {
	return c.state.Operation
}

// WaitingForOperand reports whether the next digit starts a new operand
func (c *Calculator) WaitingForOperand() bool {
	return c.state.WaitingForOperand
}

// Display returns the two display lines: the staged operand followed by the
// pending operator glyph, and the current operand.
func (c *Calculator) Display() (previous, current string) {
	previous = c.state.PreviousOperand
	if previous != "" && c.state.Operation.Valid() {
		previous += " " + c.state.Operation.Glyph()
	}
	return previous, c.state.CurrentOperand
}

// AppendDigitOrPoint enters a digit '0'-'9' or the decimal point '.'.
// Any other token is rejected with ErrInvalidToken and the state is left unchanged.
func (c *Calculator) AppendDigitOrPoint(token byte) error {
	isPoint := token == '.'
	if !isPoint && (token < '0' || token > '9') {
		return fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}

	if c.state.WaitingForOperand {
		if isPoint {
			c.state.CurrentOperand = "0."
		} else {
			c.state.CurrentOperand = string(token)
		}
		c.state.WaitingForOperand = false
		return nil
	}

	if isPoint && strings.Contains(c.state.CurrentOperand, ".") {
		return nil
	}

	if c.state.CurrentOperand == initialOperand && !isPoint {
		c.state.CurrentOperand = string(token)
		return nil
	}

	c.state.CurrentOperand += string(token)
	return nil
}

// Delete removes the last character of the current operand.
// The operand falls back to "0" when nothing numeric would remain.
func (c *Calculator) Delete() {
	current := c.state.CurrentOperand
	if len(current) <= 1 || current == ErrorDisplay {
		c.state.CurrentOperand = initialOperand
		return
	}

	trimmed := current[:len(current)-1]
	if trimmed == "-" {
		trimmed = initialOperand
	}
	c.state.CurrentOperand = trimmed
}

// Clear resets the calculator to its initial state
func (c *Calculator) Clear() {
	c.state = InitialState()
}

// ChooseOperation stages op as the pending operator.
//
// With no operand staged, the current operand is staged. If an operand was
// entered since the last operator, the pending calculation is folded first and
// its result becomes the staged operand, so operators chain. Pressing an
// operator again before entering an operand only swaps the pending operator.
func (c *Calculator) ChooseOperation(op Operator) error {
	if !op.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}

	if c.state.PreviousOperand == "" {
		c.state.PreviousOperand = c.state.CurrentOperand
	} else if !c.state.WaitingForOperand {
		c.Compute()
		if c.state.IsError() {
			return nil
		}
		if c.state.PreviousOperand == "" {
			c.state.PreviousOperand = c.state.CurrentOperand
		}
	}

	c.state.Operation = op
	c.state.WaitingForOperand = true
	return nil
}

// Compute applies the staged operator to the staged and current operands.
//
// It is a no-op when either operand does not parse as a number or no operator
// is staged. Division by zero puts the calculator into the error state.
func (c *Calculator) Compute() {
	prev, ok := parseOperand(c.state.PreviousOperand)
	if !ok {
		return
	}
	current, ok := parseOperand(c.state.CurrentOperand)
	if !ok {
		return
	}
	if !c.state.Operation.Valid() {
		return
	}

	result, ok := c.state.Operation.apply(prev, current)
	if !ok {
		c.fail()
		return
	}

	c.state = State{
		CurrentOperand:    FormatNumber(result),
		WaitingForOperand: true,
	}
}

// Press applies a single key to the calculator
func (c *Calculator) Press(key Key) error {
	switch key.Kind {
	case KeyDigit:
		return c.AppendDigitOrPoint(key.Digit)
	case KeyPoint:
		return c.AppendDigitOrPoint('.')
	case KeyOperator:
		return c.ChooseOperation(key.Operator)
	case KeyClear:
		c.Clear()
	case KeyDelete:
		c.Delete()
	case KeyEquals:
		c.Compute()
	default:
		return fmt.Errorf("%w: kind %d", ErrUnknownKey, int(key.Kind))
	}
	return nil
}

// PressAll applies keys in order, stopping at the first rejected key
func (c *Calculator) PressAll(keys []Key) error {
	for i, key := range keys {
		if err := c.Press(key); err != nil {
			return fmt.Errorf("failed to press key %d (%s): %w", i+1, key, err)
		}
	}
	return nil
}

// fail enters the error state, from which the next digit starts a fresh operand
func (c *Calculator) fail() {
	c.state = State{
		CurrentOperand:    ErrorDisplay,
		WaitingForOperand: true,
	}
}

// parseOperand parses a display operand. The error token, the empty string
// and non-finite spellings such as "Inf" do not parse.
func parseOperand(s string) (float64, bool) {
	if s == "" || s == ErrorDisplay {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
