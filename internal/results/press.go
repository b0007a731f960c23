package results

// PressToolArgs represents the arguments for the press tool
type PressToolArgs struct {
	SessionID string `json:"session_id,omitempty"`
	Keys      string `json:"keys"`
}

// PressToolResult represents the result of the press tool
type PressToolResult struct {
	Arguments PressToolArgs   `json:"arguments"`
	Pressed   []string        `json:"pressed"`
	State     CalculatorState `json:"state"`
}
