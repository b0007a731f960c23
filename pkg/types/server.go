package types

import "context"

// Server defines the interface shared by the MCP and HTTP servers
type Server interface {
	Serve(ctx context.Context) error
}
