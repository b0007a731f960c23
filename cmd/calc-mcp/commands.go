package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/averycrespi/calc-mcp/internal/config"
	"github.com/averycrespi/calc-mcp/internal/logging"
	"github.com/averycrespi/calc-mcp/internal/server"
	"github.com/averycrespi/calc-mcp/internal/web"
	"github.com/averycrespi/calc-mcp/pkg/project"
	"github.com/averycrespi/calc-mcp/pkg/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// flags holds the command line overrides shared by the subcommands
type flags struct {
	configPath  string
	logLevel    string
	addr        string
	sessionTTL  time.Duration
	maxSessions int
}

func newRootCommand(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:           project.Name,
		Short:         "Four-function calculator served as a web widget or MCP tools",
		Version:       project.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&f.sessionTTL, "session-ttl", 0, "Idle time after which a calculator session is discarded")
	root.PersistentFlags().IntVar(&f.maxSessions, "max-sessions", 0, "Maximum number of live calculator sessions")

	root.AddCommand(newServeCommand(f), newMCPCommand(f))
	return root
}

func newServeCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator widget over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := f.load(cmd)
			if err != nil {
				return err
			}

			srv, err := web.NewServer(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create web server: %w", err)
			}
			return run(cmd, srv)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "Address to listen on (default "+config.DefaultAddr+")")
	return cmd
}

func newMCPCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve calculator tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := f.load(cmd)
			if err != nil {
				return err
			}
			return run(cmd, server.NewCalculatorServer(cfg, logger))
		},
	}
}

// load builds the effective configuration: defaults, then the config file, then flags
func (f *flags) load(cmd *cobra.Command) (types.Config, *slog.Logger, error) {
	cfg, err := config.NewLoader(afero.NewOsFs()).Load(f.configPath)
	if err != nil {
		return types.Config{}, nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = f.addr
	}
	if cmd.Flags().Changed("session-ttl") {
		cfg.SessionTTL = f.sessionTTL
	}
	if cmd.Flags().Changed("max-sessions") {
		cfg.MaxSessions = f.maxSessions
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return types.Config{}, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func run(cmd *cobra.Command, srv types.Server) error {
	if err := srv.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
