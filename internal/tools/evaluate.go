package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/averycrespi/calc-mcp/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
)

// EvaluateTool handles single-calculation requests
type EvaluateTool struct {
	sessions *session.Store
}

// NewEvaluateTool creates a new evaluate tool
func NewEvaluateTool(sessions *session.Store) *EvaluateTool {
	return &EvaluateTool{
		sessions: sessions,
	}
}

// GetTool returns the MCP tool definition
func (t *EvaluateTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolEvaluate,
		mcp.WithDescription("Clear the calculator, then key in one binary calculation and press '='. "+
			"The expression is two keypad numbers separated by an operator, with spaces, e.g. \"10 ÷ 4\" or \"0.1 + 0.2\"."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Calculation of the form \"<number> <operator> <number>\"")),
		mcp.WithString("session_id", mcp.Description(sessionIDDescription)),
	)
	return tool
}

// Handle processes the tool request
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expression := mcp.ParseString(req, "expression", "")
	if expression == "" {
		return mcp.NewToolResultError("expression parameter is required"), nil
	}

	keys, err := calculator.ParseCalculation(expression)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse expression: %v", err)), nil
	}

	id := sessionIDFromRequest(req)
	state, err := pressInSession(t.sessions, id, keys)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to evaluate in session %s: %v", id, err)), nil
	}

	return jsonToolResult(results.EvaluateToolResult{
		Arguments: results.EvaluateToolArgs{
			SessionID:  id,
			Expression: expression,
		},
		Result: state.Current,
		State:  state,
	})
}
