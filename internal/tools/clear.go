package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/averycrespi/calc-mcp/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
)

// ClearTool handles all-clear requests
type ClearTool struct {
	sessions *session.Store
}

// NewClearTool creates a new clear tool
func NewClearTool(sessions *session.Store) *ClearTool {
	return &ClearTool{
		sessions: sessions,
	}
}

// GetTool returns the MCP tool definition
func (t *ClearTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolClear,
		mcp.WithDescription("Clear the calculator (AC), discarding the display and any pending operation"),
		mcp.WithString("session_id", mcp.Description(sessionIDDescription)),
	)
	return tool
}

// Handle processes the tool request
func (t *ClearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := sessionIDFromRequest(req)
	state, err := pressInSession(t.sessions, id, []calculator.Key{{Kind: calculator.KeyClear}})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to clear session %s: %v", id, err)), nil
	}
	return jsonToolResult(state)
}
