package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calc-mcp/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
)

// StateTool handles display read requests
type StateTool struct {
	sessions *session.Store
}

// NewStateTool creates a new state tool
func NewStateTool(sessions *session.Store) *StateTool {
	return &StateTool{
		sessions: sessions,
	}
}

// GetTool returns the MCP tool definition
func (t *StateTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolState,
		mcp.WithDescription("Read the calculator display and pending operation without pressing any key"),
		mcp.WithString("session_id", mcp.Description(sessionIDDescription)),
	)
	return tool
}

// Handle processes the tool request
func (t *StateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := sessionIDFromRequest(req)
	state, err := pressInSession(t.sessions, id, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read session %s: %v", id, err)), nil
	}
	return jsonToolResult(state)
}
