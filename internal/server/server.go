package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/averycrespi/calc-mcp/internal/tools"
	"github.com/averycrespi/calc-mcp/pkg/project"
	"github.com/averycrespi/calc-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var _ types.Server = &CalculatorServer{}

// CalculatorServer represents the calculator MCP server
type CalculatorServer struct {
	mcpServer *server.MCPServer
	sessions  *session.Store
	config    types.Config
	logger    *slog.Logger
}

// NewCalculatorServer creates a new calculator MCP server
func NewCalculatorServer(config types.Config, logger *slog.Logger) *CalculatorServer {
	mcpServer := server.NewMCPServer(project.Name, project.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	sessions := session.NewStore(
		session.WithTTL(config.SessionTTL),
		session.WithMaxSessions(config.MaxSessions),
	)

	s := &CalculatorServer{
		mcpServer: mcpServer,
		sessions:  sessions,
		config:    config,
		logger:    logger,
	}
	s.registerTools()
	return s
}

// Serve serves MCP over stdin and stdout until ctx is done or stdin closes
func (s *CalculatorServer) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// ServeIO serves MCP over the given reader and writer
func (s *CalculatorServer) ServeIO(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Starting calculator MCP server",
		"version", project.Version,
		"session_ttl", s.config.SessionTTL,
		"max_sessions", s.config.MaxSessions)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.sessions.RunJanitor(ctx, s.config.JanitorInterval)

	stdioServer := server.NewStdioServer(s.mcpServer)
	stdioServer.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	if err := stdioServer.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	s.logger.Info("Calculator MCP server stopped")
	return nil
}

func (s *CalculatorServer) registerTools() {
	pressTool := tools.NewPressTool(s.sessions)
	s.addTool(pressTool.GetTool(), pressTool.Handle)

	stateTool := tools.NewStateTool(s.sessions)
	s.addTool(stateTool.GetTool(), stateTool.Handle)

	clearTool := tools.NewClearTool(s.sessions)
	s.addTool(clearTool.GetTool(), clearTool.Handle)

	evaluateTool := tools.NewEvaluateTool(s.sessions)
	s.addTool(evaluateTool.GetTool(), evaluateTool.Handle)

	formatTool := tools.NewFormatNumberTool()
	s.addTool(formatTool.GetTool(), formatTool.Handle)
}

// addTool registers a tool, logging each call at debug level
func (s *CalculatorServer) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	name := tool.Name
	s.mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := handler(ctx, req)
		s.logger.Debug("Handled tool call",
			"tool", name,
			"is_error", result != nil && result.IsError,
			"error", err)
		return result, err
	})
}
