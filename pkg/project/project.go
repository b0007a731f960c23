package project

// Project metadata reported to MCP clients and by the CLI
const (
	Name    = "calc-mcp"
	Version = "0.1.0"
)
