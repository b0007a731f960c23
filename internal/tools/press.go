package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/averycrespi/calc-mcp/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
)

// PressTool handles key press requests
type PressTool struct {
	sessions *session.Store
}

// NewPressTool creates a new press tool
func NewPressTool(sessions *session.Store) *PressTool {
	return &PressTool{
		sessions: sessions,
	}
}

// GetTool returns the MCP tool definition
func (t *PressTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolPress,
		mcp.WithDescription("Press calculator keys in order and return the resulting display. "+
			"Keys are digits 0-9, '.', '+', '-', '×' or '*', '÷' or '/', '=', 'AC' (clear) and 'DEL' (delete last character). "+
			"Examples: \"10 + 5 =\", \"3.14×2=\", \"AC 7 DEL\"."),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Key sequence to press")),
		mcp.WithString("session_id", mcp.Description(sessionIDDescription)),
	)
	return tool
}

// Handle processes the tool request
func (t *PressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sequence := mcp.ParseString(req, "keys", "")
	if strings.TrimSpace(sequence) == "" {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}

	keys, err := calculator.ParseKeys(sequence)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse keys: %v", err)), nil
	}

	id := sessionIDFromRequest(req)
	state, err := pressInSession(t.sessions, id, keys)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to press keys in session %s: %v", id, err)), nil
	}

	return jsonToolResult(results.PressToolResult{
		Arguments: results.PressToolArgs{
			SessionID: id,
			Keys:      sequence,
		},
		Pressed: keyLabels(keys),
		State:   state,
	})
}
