package results

import "github.com/averycrespi/calc-mcp/internal/calculator"

// CalculatorState represents the observable state of one calculator session
type CalculatorState struct {
	SessionID string  `json:"session_id"`
	Current   string  `json:"current"`
	Previous  string  `json:"previous"`
	Operation string  `json:"operation"`
	Waiting   bool    `json:"waiting"`
	Error     bool    `json:"error"`
	Display   Display `json:"display"`
}

// Display represents the two lines shown by the widget
type Display struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// NewCalculatorState builds the result for a calculator in the given session
func NewCalculatorState(sessionID string, c *calculator.Calculator) CalculatorState {
	state := c.Snapshot()
	previous, current := c.Display()
	return CalculatorState{
		SessionID: sessionID,
		Current:   state.CurrentOperand,
		Previous:  state.PreviousOperand,
		Operation: state.Operation.Symbol(),
		Waiting:   state.WaitingForOperand,
		Error:     state.IsError(),
		Display: Display{
			Previous: previous,
			Current:  current,
		},
	}
}
