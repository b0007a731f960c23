package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool name prefix for all MCP tools
const ToolPrefix = "calculator."

// Tool names
const (
	ToolPress        = ToolPrefix + "press"
	ToolState        = ToolPrefix + "state"
	ToolClear        = ToolPrefix + "clear"
	ToolEvaluate     = ToolPrefix + "evaluate"
	ToolFormatNumber = ToolPrefix + "format_number"
)

// DefaultSessionID is used when a tool call does not name a session
const DefaultSessionID = "default"

const sessionIDDescription = "Calculator session to act on. Defaults to the shared default session."

// sessionIDFromRequest extracts the session id argument, falling back to the default session
func sessionIDFromRequest(req mcp.CallToolRequest) string {
	id := strings.TrimSpace(mcp.ParseString(req, "session_id", ""))
	if id == "" {
		return DefaultSessionID
	}
	return id
}

// pressInSession applies keys to the named session, creating it if needed,
// and returns the resulting state.
func pressInSession(sessions *session.Store, id string, keys []calculator.Key) (results.CalculatorState, error) {
	var state results.CalculatorState
	_, _, err := sessions.DoOrCreate(id, func(id string, c *calculator.Calculator) error {
		if err := c.PressAll(keys); err != nil {
			return err
		}
		state = results.NewCalculatorState(id, c)
		return nil
	})
	return state, err
}

// jsonToolResult marshals a tool result as indented JSON text
func jsonToolResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// keyLabels returns the button labels for keys
func keyLabels(keys []calculator.Key) []string {
	labels := make([]string, len(keys))
	for i, key := range keys {
		labels[i] = key.Label()
	}
	return labels
}
