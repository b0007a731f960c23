package tools

import (
	"context"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/averycrespi/calc-mcp/internal/results"

	"github.com/mark3labs/mcp-go/mcp"
)

// FormatNumberTool handles number formatting requests
type FormatNumberTool struct{}

// NewFormatNumberTool creates a new format number tool
func NewFormatNumberTool() *FormatNumberTool {
	return &FormatNumberTool{}
}

// GetTool returns the MCP tool definition
func (t *FormatNumberTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolFormatNumber,
		mcp.WithDescription("Format a number the way the calculator display shows results: "+
			"rounded to 8 decimal places, exponential notation beyond 999999999 or below 0.000001, 'Error' for non-finite values"),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("Number to format")),
	)
	return tool
}

// Handle processes the tool request
func (t *FormatNumberTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if mcp.ParseArgument(req, "value", nil) == nil {
		return mcp.NewToolResultError("value parameter is required"), nil
	}
	value := mcp.ParseFloat64(req, "value", 0)

	return jsonToolResult(results.FormatNumberToolResult{
		Arguments: results.FormatNumberToolArgs{Value: value},
		Formatted: calculator.FormatNumber(value),
	})
}
