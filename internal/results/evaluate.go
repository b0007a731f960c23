package results

// EvaluateToolArgs represents the arguments for the evaluate tool
type EvaluateToolArgs struct {
	SessionID  string `json:"session_id,omitempty"`
	Expression string `json:"expression"`
}

// EvaluateToolResult represents the result of the evaluate tool
type EvaluateToolResult struct {
	Arguments EvaluateToolArgs `json:"arguments"`
	Result    string           `json:"result"`
	State     CalculatorState  `json:"state"`
}
