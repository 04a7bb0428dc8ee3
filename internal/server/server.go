// Package server exposes the conformance scenarios as MCP tools.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/scenario"
	"github.com/mj1618/a11y-conform/internal/store"
)

// Config holds MCP server configuration.
type Config struct {
	Version string
	// Launch opens a fresh target application for every tool call.
	Launch   func() (platform.Application, error)
	Fixture  string        // label recorded with each saved run
	Defaults scenario.Args // used for arguments a call leaves out
	History  *store.DB     // nil disables saving runs
	Logger   *slog.Logger
}

// Server wraps the MCP server. Tool calls are serialized.
type Server struct {
	cfg    Config
	mu     sync.Mutex
	logger *slog.Logger
	mcp    *mcpserver.MCPServer
}

// New creates a server with all tools registered.
func New(cfg Config) (*Server, error) {
	if cfg.Launch == nil {
		return nil, errors.New("server: no launcher configured")
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		mcp:    mcpserver.NewMCPServer("a11y-conform", cfg.Version, mcpserver.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s, nil
}

// Serve starts the server on the given transport.
func (s *Server) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", port)
		s.logger.Info("serving MCP over streamable HTTP", "addr", addr)
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}
